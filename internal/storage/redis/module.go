package redis

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/orderservice/internal/config"
	"github.com/polkiloo/orderservice/internal/domain/repository"
)

// Module wires Redis product cache.
var Module = fx.Options(
	fx.Provide(newProductCache),
	fx.Provide(func(c *ProductCache) repository.ProductCache { return c }),
	fx.Invoke(registerLifecycle),
)

type cacheParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newProductCache(p cacheParams) *ProductCache {
	return New(Options{
		Address:  p.Config.RedisAddress,
		Password: p.Config.RedisPassword,
		DB:       p.Config.RedisDB,
		TTL:      p.Config.ProductCacheTTL,
	}, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, cache *ProductCache, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := cache.HealthCheck(ctx); err != nil {
				logger.Warn("redis is not reachable, fallback cache degraded", slog.Any("error", err))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return cache.Close()
		},
	})
}
