package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/enrichx/directory-service/internal/utils/logger"
)

// LoggingMiddleware logs every request with a generated request id.
func LoggingMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		requestLogger := logger.WithRequestID(log, requestID)
		c.Set("logger", requestLogger)

		startTime := time.Now()
		c.Next()

		requestLogger.Info("Request completed",
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(startTime)),
			zap.Int("size", c.Writer.Size()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
