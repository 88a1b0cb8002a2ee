package middleware

import (
	"net/http"
	"strings"

	"lead_tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	AuthUserKey = "authUser"

	// SessionCookie carries the signed session token
	SessionCookie = "token"
)

// JWTAuthMiddleware creates a middleware for JWT authentication.
// The token is read from the session cookie, falling back to a Bearer header.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := sessionToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		// Set user information in context
		c.Set(AuthUserKey, claims.UserID)

		c.Next()
	}
}

// AuthUserID returns the user ID set by JWTAuthMiddleware
func AuthUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(AuthUserKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
