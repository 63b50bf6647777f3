package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/enrichx/directory-service/internal/config"
)

// RateLimiter is the contract the middleware needs from the redis-backed
// limiter in internal/utils/rate.
type RateLimiter interface {
	Allow(ctx context.Context, key string, rule config.RateLimitRule) (bool, error)
}

// RateLimitMiddleware limits requests per client IP under the given rule.
// Limiter errors fail open; the limiter already logs them.
func RateLimitMiddleware(limiter RateLimiter, rule config.RateLimitRule, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || !rule.Enabled {
			c.Next()
			return
		}

		key := c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), key, rule)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			logger.Warn("Rate limit exceeded",
				zap.String("key", key),
				zap.Int("limit", rule.Limit),
				zap.Duration("window", rule.Window),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests",
				"code":  "RATE_LIMITED",
			})
			return
		}

		c.Next()
	}
}
