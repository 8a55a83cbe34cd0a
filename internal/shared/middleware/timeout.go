package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	sharedError "github.com/pizzaria-erp/go-api-server/internal/shared/error"
	"github.com/pizzaria-erp/go-api-server/internal/shared/logger"
)

const DefaultTimeout = 30 * time.Second

// Timeout bounds request processing with a context deadline. Repositories
// pass the context on to connection acquisition and queries, so a request
// stuck waiting for the pool gives up at the deadline. When the handler
// wrote nothing by then, a 503 is sent.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}

		logger.FromContext(ctx).Warn("prazo da requisição excedido",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"timeout", timeout.String(),
			"status", c.Writer.Status(),
		)

		if !c.Writer.Written() {
			c.AbortWithStatusJSON(sharedError.ServiceUnavailable.Status, sharedError.ServiceUnavailable)
		}
	}
}
