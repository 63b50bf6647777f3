package rate

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/enrichx/directory-service/internal/config"
)

// Limiter is a fixed-window request limiter backed by redis.
type Limiter struct {
	client *redis.Client
	logger *zap.Logger
}

// NewLimiter creates a new rate limiter.
func NewLimiter(client *redis.Client, logger *zap.Logger) *Limiter {
	return &Limiter{client: client, logger: logger.Named("rate_limiter")}
}

// Allow reports whether a request under the given key fits the rule.
// On redis errors the request is allowed, so a broken limiter never locks
// operators out of their own admin API.
func (l *Limiter) Allow(ctx context.Context, key string, rule config.RateLimitRule) (bool, error) {
	if !rule.Enabled {
		return true, nil
	}

	redisKey := fmt.Sprintf("rate:%s", key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		l.logger.Error("Failed to increment rate limit counter", zap.Error(err), zap.String("key", key))
		return true, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, rule.Window).Err(); err != nil {
			l.logger.Error("Failed to set rate limit window", zap.Error(err), zap.String("key", key))
			return true, err
		}
	}

	return count <= int64(rule.Limit), nil
}

// NewRedisClient connects to redis and verifies the connection.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}
	return client, nil
}
