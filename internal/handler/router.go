package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"lead_tracker/internal/middleware"
	"lead_tracker/internal/service"
	"lead_tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports whether the database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps carries everything NewRouter wires together
type RouterDeps struct {
	AuthService  service.AuthService
	LeadService  service.LeadService
	JWTUtil      *utils.JWTUtil
	DB           Pinger
	Logger       *slog.Logger
	CORSOrigins  []string
	SecureCookie bool
}

// NewRouter builds the gin engine with middleware and all routes registered
func NewRouter(d RouterDeps) *gin.Engine {
	useJSONFieldNames()

	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logging(d.Logger), middleware.Metrics(), middleware.CORS(d.CORSOrigins))

	jwtAuthMW := middleware.JWTAuthMiddleware(d.JWTUtil)
	authHandler := NewAuthHandler(d.AuthService, d.Logger, int(d.JWTUtil.TTL()/time.Second), d.SecureCookie)
	leadHandler := NewLeadHandler(d.LeadService, d.Logger)

	apiGroup := router.Group("/api")
	authHandler.RegisterAuthRoutes(apiGroup, jwtAuthMW)
	leadHandler.RegisterLeadRoutes(apiGroup, jwtAuthMW)

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := d.DB.Ping(ctx); err != nil {
			d.Logger.Warn("health check failed", slog.Any("error", err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		writeMessage(c, http.StatusNotFound, "Not found")
	})

	return router
}
