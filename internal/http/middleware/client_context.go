package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/marifyahya/test-backenddev/domain"
)

// ClientContext attaches the caller's address and user agent to the request context
// for audit events
func ClientContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := domain.WithClientContext(c.Request.Context(), &domain.ClientContext{
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
