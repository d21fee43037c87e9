package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GatewayAuth trusts the X-User-ID and X-User-Role headers set by an upstream
// gateway that has already validated credentials. Requests without a user ID
// are rejected. Only safe behind proper network isolation.
func GatewayAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "Missing X-User-ID header from gateway",
			})
			return
		}

		c.Set("user_id", userID)
		c.Set("user_role", c.GetHeader("X-User-Role"))
		c.Next()
	}
}

// NoAuth lets every request through as the anonymous user (AUTH_MODE=none)
func NoAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", "anonymous")
		c.Next()
	}
}

// Auth picks the middleware for the configured AUTH_MODE
func Auth(gatewayMode bool) gin.HandlerFunc {
	if gatewayMode {
		return GatewayAuth()
	}
	return NoAuth()
}
