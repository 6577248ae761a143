package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"shareit/internal/infra/cache"
	"shareit/internal/pkg/config"
	"shareit/internal/usecase/shared"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewUserCache,
	),
)

// NewUserCache returns a no-op cache unless REDIS_ADDR is set. An unreachable
// Redis is logged, not fatal: lookups fall back to the store.
func NewUserCache(lc fx.Lifecycle, cfg config.Config) shared.UserCache {
	if cfg.Redis.Addr == "" {
		return cache.NopUserCache{}
	}

	client := cache.NewRedisClient(cfg.Redis)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unreachable, user cache will miss", "addr", cfg.Redis.Addr, "error", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return cache.NewRedisUserCache(client, cfg.Redis.UserTTL)
}
