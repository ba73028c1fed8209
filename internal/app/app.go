package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/orderservice/internal/config"
	"github.com/polkiloo/orderservice/internal/metrics"
	"github.com/polkiloo/orderservice/internal/storage/postgres"
	"github.com/polkiloo/orderservice/internal/storage/redis"
	"github.com/polkiloo/orderservice/internal/usecase"
	"github.com/polkiloo/orderservice/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newServiceFacade,
		newHTTPServer,
		newCacheRefresher,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Auth     *usecase.AuthUseCase
	Orders   *usecase.OrderUseCase
	Products *usecase.ProductUseCase
	Storage  *postgres.Storage
	Cache    *redis.ProductCache
}

func newServiceFacade(p facadeParams) *ServiceFacade {
	return NewServiceFacade(p.Auth, p.Orders, p.Products, map[string]HealthChecker{
		"postgres": p.Storage,
		"redis":    p.Cache,
	})
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade  *ServiceFacade
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

func newCacheRefresher(p workerParams) *worker.CacheRefresher {
	return worker.NewCacheRefresher(
		p.Facade,
		p.Config.CacheRefreshInterval,
		p.Config.CacheRefreshBatch,
		p.Config.WorkerPoolSize,
		p.Logger,
		p.Metrics,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.CacheRefresher
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting order service", slog.String("addr", p.Server.Addr))
			// the start context is cancelled once startup completes
			p.Worker.Start(context.WithoutCancel(ctx))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("order service stopped")
			return nil
		},
	})
}
