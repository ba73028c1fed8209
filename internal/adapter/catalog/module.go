package catalog

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/orderservice/internal/config"
	"github.com/polkiloo/orderservice/internal/metrics"
)

// Module exposes catalog client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.CartServiceAddress, p.Config.ProductServiceAddress, p.Logger, Options{
		Timeout: p.Config.GatewayTimeout,
		Metrics: p.Metrics,
	})
}
