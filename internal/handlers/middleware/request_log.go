package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/unusualpills/internal/domain/ports"
)

// RequestLogger registra metadados de cada requisição HTTP
func RequestLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"client_ip", c.ClientIP(),
			"latency", time.Since(start).String(),
			"request_id", c.GetString(RequestIDContextKey),
		}
		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.String())
		}

		if c.Writer.Status() >= 500 {
			logger.Error("http request", args...)
			return
		}
		logger.Info("http request", args...)
	}
}
