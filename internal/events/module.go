package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/orderservice/internal/config"
	"github.com/polkiloo/orderservice/internal/worker"
)

// Module wires the catalog event consumer.
var Module = fx.Options(
	fx.Provide(newProductConsumer),
	fx.Invoke(registerLifecycle),
)

type consumerParams struct {
	fx.In

	Config    *config.Config
	Refresher *worker.CacheRefresher
	Logger    *slog.Logger
}

func newProductConsumer(p consumerParams) *ProductConsumer {
	return NewProductConsumer(p.Config.KafkaBrokers, p.Config.KafkaProductTopic, p.Config.KafkaGroupID, p.Refresher, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, consumer *ProductConsumer, logger *slog.Logger) {
	if !consumer.Enabled() {
		logger.Info("kafka brokers not configured, catalog events disabled")
		return
	}

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				if err := consumer.Start(runCtx); err != nil && runCtx.Err() == nil {
					logger.Error("catalog event consumer exited", slog.String("error", err.Error()))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			err := consumer.Stop()
			select {
			case <-done:
			case <-ctx.Done():
				return ctx.Err()
			}
			return err
		},
	})
}
