package cache

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/storefront/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("cache",
	fx.Provide(
		NewRedisClient,
		NewProductListCache,
	),
)

// NewRedisClient returns nil when REDIS_ADDR is not set. Consumers fall back to
// in-process implementations in that case.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			if err := client.Ping(pingCtx).Err(); err != nil {
				// Redis backed features degrade per call.
				log.Warn("redis unreachable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client
}

func NewProductListCache(client *redis.Client, log *zap.Logger) ProductListCache {
	if client == nil {
		return NewMemoryProductListCache(defaultProductListTTL)
	}
	return NewRedisProductListCache(client, defaultProductListTTL, log.Named("cache.products"))
}
