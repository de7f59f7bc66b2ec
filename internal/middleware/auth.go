package middleware

import (
	"net/http"
	"strings"

	"clinic-appointment-backend/internal/models"
	"clinic-appointment-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates JWT access token from Authorization header
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		// Check Bearer prefix
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization format. Use: Bearer <token>")
			c.Abort()
			return
		}

		claims, err := utils.ValidateAccessToken(parts[1])
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		// Inject claims into context
		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// CurrentUser extracts the authenticated user id and role from the context.
// Both are set by AuthMiddleware; the bool is false on unauthenticated
// requests that somehow reached a protected handler.
func CurrentUser(c *gin.Context) (uint, models.Role, bool) {
	userID, ok := c.Get("userID")
	if !ok {
		return 0, "", false
	}
	role, ok := c.Get("role")
	if !ok {
		return 0, "", false
	}
	return userID.(uint), role.(models.Role), true
}
