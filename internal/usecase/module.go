package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/orderservice/internal/config"
	pkgAuth "github.com/polkiloo/orderservice/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newAuthUseCase,
	NewOrderUseCase,
	NewProductUseCase,
)

func newAuthUseCase(cfg *config.Config, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return NewAuthUseCase(cfg.Users, hasher, strategy)
}
