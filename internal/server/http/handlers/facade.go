package handlers

import (
	"context"

	"github.com/polkiloo/orderservice/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (model.Principal, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, principal model.Principal, req model.CreateOrderRequest) (*model.Order, error)
	GetOrder(ctx context.Context, principal model.Principal, orderID string) (*model.Order, error)
	OrderDetails(ctx context.Context, principal model.Principal, orderID string) (*model.OrderDetails, error)
	OrdersByUser(ctx context.Context, userID string, page model.PageRequest) (*model.OrderPage, error)
}

// ProductFacade provides product lookups and single product orders.
type ProductFacade interface {
	PlaceProductOrder(ctx context.Context, principal model.Principal, req model.ProductOrderRequest) (*model.Order, error)
	Product(ctx context.Context, productID string) (*model.ProductResolution, error)
}

// HealthFacade reports readiness of backing services.
type HealthFacade interface {
	Ready(ctx context.Context) error
}

// ServiceFacade aggregates the full set of operations used across handlers.
type ServiceFacade interface {
	AuthFacade
	OrderFacade
	ProductFacade
	HealthFacade
}
