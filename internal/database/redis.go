package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Pincessis17/MerchFlow/pkg/config"
	"github.com/Pincessis17/MerchFlow/pkg/logger"

	"github.com/go-redis/redis/v8"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// GetRedis returns the shared Redis client. Used for login rate
// limiting, elevated-session keys and the notification pub/sub channel.
func GetRedis() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.GetConfig()
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.GetLogger().Warnf("Redis ping failed: %v", err)
		}
	})
	return redisClient
}

// SetRedis overrides the shared client, used by tests
func SetRedis(client *redis.Client) {
	redisClient = client
}

// CloseRedis closes the shared client
func CloseRedis() error {
	if redisClient != nil {
		return redisClient.Close()
	}
	return nil
}
