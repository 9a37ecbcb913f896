package cache

import (
	"context"
	"time"

	"garage-api/core/config"
	"garage-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds the shared redis client. It returns nil when no
// address is configured: the rate limiter and notification queue both treat
// a nil client as "backend absent" and degrade rather than fail.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		logger.Warn("Cache:Init:NotConfigured", "effect", "rate limiting disabled, notifications log-only")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Keep the client; the backend may come up later and every caller
		// already tolerates per-call failures.
		logger.Warn("Cache:Init:PingFailed", "addr", cfg.Addr, "error", err)
	} else {
		logger.Info("Cache:Init:Success", "addr", cfg.Addr, "db", cfg.DB)
	}

	return client
}
