package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MetricsAuthMiddleware protects the metrics endpoint with a Bearer token.
// An empty configured token leaves the endpoint open.
func MetricsAuthMiddleware(token string) gin.HandlerFunc {
	unauthorized := func(c *gin.Context, message string) {
		c.Header("WWW-Authenticate", `Bearer realm="Metrics"`)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":   "unauthorized",
			"message": message,
		})
	}

	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(c, "Bearer token required")
			return
		}

		provided := strings.TrimPrefix(authHeader, "Bearer ")
		// Constant-time comparison to prevent timing attacks
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			unauthorized(c, "Invalid token")
			return
		}

		c.Next()
	}
}
