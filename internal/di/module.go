package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/orderservice/internal/adapter/catalog"
	"github.com/polkiloo/orderservice/internal/app"
	"github.com/polkiloo/orderservice/internal/config"
	"github.com/polkiloo/orderservice/internal/events"
	"github.com/polkiloo/orderservice/internal/logger"
	"github.com/polkiloo/orderservice/internal/metrics"
	"github.com/polkiloo/orderservice/internal/pkg/auth"
	"github.com/polkiloo/orderservice/internal/server/http/handlers"
	"github.com/polkiloo/orderservice/internal/server/http/router"
	"github.com/polkiloo/orderservice/internal/storage/postgres"
	"github.com/polkiloo/orderservice/internal/storage/redis"
	"github.com/polkiloo/orderservice/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		postgres.Module,
		redis.Module,
		catalog.Module,
		usecase.Module,
		fx.Provide(func(f *app.ServiceFacade) handlers.ServiceFacade { return f }),
		router.Module,
		app.Module,
		events.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
