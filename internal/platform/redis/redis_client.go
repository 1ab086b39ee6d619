// Package redis creates the Redis client used by the news cache.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"news_backend/internal/config"
)

const pingTimeout = 5 * time.Second

// NewRedisClient connects to Redis and verifies the connection with PING.
// It returns (nil, nil) when Redis is disabled, which turns caching off.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (*redis.Client, error) {
	if !cfg.Enabled {
		log.Info("Redis disabled, news lookups are not cached")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 接続確認
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Error("Redis connection failed", zap.String("address", cfg.Address), zap.Error(err))
		_ = rdb.Close()
		return nil, err
	}

	log.Info("Redis connection successful", zap.String("address", cfg.Address))
	return rdb, nil
}
