package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"lead_tracker/internal/middleware"
	"lead_tracker/internal/model"
	"lead_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service      service.AuthService
	logger       *slog.Logger
	cookieMaxAge int
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. cookieMaxAge is in seconds.
func NewAuthHandler(s service.AuthService, logger *slog.Logger, cookieMaxAge int, secureCookie bool) *AuthHandler {
	return &AuthHandler{service: s, logger: logger, cookieMaxAge: cookieMaxAge, secureCookie: secureCookie}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if _, err := h.service.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeMessage(c, http.StatusBadRequest, "User already exists")
			return
		}
		if errors.Is(err, service.ErrPasswordTooLong) {
			writeMessage(c, http.StatusBadRequest, err.Error())
			return
		}
		writeServiceError(c, h.logger, "register", err)
		return
	}

	writeMessage(c, http.StatusCreated, "User created")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	_, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeMessage(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeServiceError(c, h.logger, "login", err)
		return
	}

	h.setSessionCookie(c, token, h.cookieMaxAge)
	writeMessage(c, http.StatusOK, "Logged in")
}

// Logout clears the session cookie. The token itself stays valid until it expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	writeMessage(c, http.StatusOK, "Logged out")
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.AuthUserID(c)
	if !ok {
		writeMessage(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.service.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeMessage(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		writeServiceError(c, h.logger, "current user", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", h.secureCookie, true)
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/me", authMW, h.Me)
	}
}
