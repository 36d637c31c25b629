package middleware

import (
	"github.com/go-sessiongate/sessiongate/internal/models"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is the gin context key under which RequireAuth stores the
// resolved user for downstream handlers
const ContextUserKey = "current_user"

// CurrentUser returns the user resolved by RequireAuth for this request
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// IPMiddleware extracts client IP and stores it in the context
func IPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Gin's ClientIP() handles X-Forwarded-For and other headers
		c.Set("client_ip", c.ClientIP())
		c.Next()
	}
}
