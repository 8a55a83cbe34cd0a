package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	sharedContext "github.com/pizzaria-erp/go-api-server/internal/shared/context"
	"github.com/pizzaria-erp/go-api-server/internal/shared/logger"
)

// LoggerMiddleware binds a request logger carrying request_id to the
// request context and writes one access log line per request. Repositories
// and the gorm logger pick the request logger up from the context.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		reqLogger := slog.Default().With("request_id", GetRequestID(c))
		c.Request = c.Request.WithContext(logger.WithLogger(c.Request.Context(), reqLogger))

		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"route", c.FullPath(),
			"status", status,
			"latency", time.Since(start).String(),
			"ip", c.ClientIP(),
			"userAgent", c.Request.UserAgent(),
		}
		if raw != "" {
			fields = append(fields, "query", raw)
		}
		if employeeID, ok := sharedContext.GetEmployeeID(c); ok {
			fields = append(fields, "employee_id", employeeID)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.String())
		}

		msg := "requisição processada"
		switch {
		case status >= 500:
			reqLogger.Error(msg, fields...)
		case status >= 400:
			reqLogger.Warn(msg, fields...)
		default:
			reqLogger.Info(msg, fields...)
		}
	}
}
