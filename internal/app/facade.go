package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/polkiloo/orderservice/internal/domain/model"
	"github.com/polkiloo/orderservice/internal/usecase"
)

// HealthChecker is a dependency that can report its readiness.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// ServiceFacade exposes a unified API for HTTP handlers and background workers.
// Role based overrides are resolved here before use cases are called.
type ServiceFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	products *usecase.ProductUseCase
	checks   map[string]HealthChecker
}

// NewServiceFacade constructs ServiceFacade instance.
func NewServiceFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	products *usecase.ProductUseCase,
	checks map[string]HealthChecker,
) *ServiceFacade {
	return &ServiceFacade{auth: auth, orders: orders, products: products, checks: checks}
}

// Authenticate validates credentials and returns auth token.
func (f *ServiceFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

// ParseToken validates token and returns its principal.
func (f *ServiceFacade) ParseToken(token string) (model.Principal, error) {
	return f.auth.ParseToken(token)
}

// CreateOrder places an order from the caller's cart.
func (f *ServiceFacade) CreateOrder(ctx context.Context, principal model.Principal, req model.CreateOrderRequest) (*model.Order, error) {
	return f.orders.CreateOrder(ctx, principal.UserID, req)
}

// GetOrder returns an order visible to the caller. Admins see every order.
func (f *ServiceFacade) GetOrder(ctx context.Context, principal model.Principal, orderID string) (*model.Order, error) {
	if principal.IsAdmin() {
		return f.orders.GetOrderAsAdmin(ctx, orderID)
	}
	return f.orders.GetOrder(ctx, orderID, principal.UserID)
}

// OrderDetails returns an order visible to the caller with its products resolved.
func (f *ServiceFacade) OrderDetails(ctx context.Context, principal model.Principal, orderID string) (*model.OrderDetails, error) {
	if !principal.IsAdmin() {
		return f.products.OrderDetails(ctx, orderID, principal.UserID)
	}
	order, err := f.orders.GetOrderAsAdmin(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return f.products.ResolveItems(ctx, order), nil
}

// OrdersByUser returns a page of the user's orders. Callers enforce visibility.
func (f *ServiceFacade) OrdersByUser(ctx context.Context, userID string, page model.PageRequest) (*model.OrderPage, error) {
	return f.orders.ListByUser(ctx, userID, page)
}

// PlaceProductOrder orders a single product for the caller.
func (f *ServiceFacade) PlaceProductOrder(ctx context.Context, principal model.Principal, req model.ProductOrderRequest) (*model.Order, error) {
	return f.products.PlaceProductOrder(ctx, principal.UserID, req)
}

// Product resolves product data, possibly from the fallback cache.
func (f *ServiceFacade) Product(ctx context.Context, productID string) (*model.ProductResolution, error) {
	return f.products.Resolve(ctx, productID)
}

// RecentProductIDs returns products worth keeping warm in the cache.
func (f *ServiceFacade) RecentProductIDs(ctx context.Context, limit int) ([]string, error) {
	return f.products.RecentProductIDs(ctx, limit)
}

// RefreshProduct re-fetches a product into the cache.
func (f *ServiceFacade) RefreshProduct(ctx context.Context, productID string) error {
	return f.products.Refresh(ctx, productID)
}

// Ready checks every registered dependency and returns the first failure.
func (f *ServiceFacade) Ready(ctx context.Context) error {
	names := make([]string, 0, len(f.checks))
	for name := range f.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := f.checks[name].HealthCheck(ctx); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
