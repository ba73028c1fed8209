package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/orderservice/internal/domain/model"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn       func(context.Context, model.Principal, model.CreateOrderRequest) (*model.Order, error)
	GetFn          func(context.Context, model.Principal, string) (*model.Order, error)
	DetailsFn      func(context.Context, model.Principal, string) (*model.OrderDetails, error)
	OrdersByUserFn func(context.Context, string, model.PageRequest) (*model.OrderPage, error)
}

// CreateOrder delegates to provided function or returns a default pending order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, principal model.Principal, req model.CreateOrderRequest) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, principal, req)
	}
	order := model.NewOrder(principal.UserID, req.ShippingAddress)
	order.ID = "order-1"
	return order, nil
}

// GetOrder returns configured order or a default one owned by the caller.
func (s OrderFacadeStub) GetOrder(ctx context.Context, principal model.Principal, orderID string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, principal, orderID)
	}
	return SampleOrder(orderID, principal.UserID), nil
}

// OrderDetails returns configured details or the default order without products.
func (s OrderFacadeStub) OrderDetails(ctx context.Context, principal model.Principal, orderID string) (*model.OrderDetails, error) {
	if s.DetailsFn != nil {
		return s.DetailsFn(ctx, principal, orderID)
	}
	order := SampleOrder(orderID, principal.UserID)
	return &model.OrderDetails{Order: order, Products: make([]*model.ProductResolution, len(order.Items))}, nil
}

// OrdersByUser returns configured page or a single-order page.
func (s OrderFacadeStub) OrdersByUser(ctx context.Context, userID string, page model.PageRequest) (*model.OrderPage, error) {
	if s.OrdersByUserFn != nil {
		return s.OrdersByUserFn(ctx, userID, page)
	}
	return model.NewOrderPage([]model.Order{*SampleOrder("order-1", userID)}, page, 1), nil
}

// ProductFacadeStub simulates product lookups and single product orders.
type ProductFacadeStub struct {
	PlaceFn   func(context.Context, model.Principal, model.ProductOrderRequest) (*model.Order, error)
	ProductFn func(context.Context, string) (*model.ProductResolution, error)
}

// PlaceProductOrder delegates to override or returns a single item order.
func (s ProductFacadeStub) PlaceProductOrder(ctx context.Context, principal model.Principal, req model.ProductOrderRequest) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, principal, req)
	}
	order := model.NewOrder(principal.UserID, req.ShippingAddress)
	order.ID = "order-1"
	order.AddItem(model.NewOrderItem(req.ProductID, "Widget", req.Quantity, decimal.RequireFromString("9.99")))
	order.Recalculate()
	return order, nil
}

// Product returns configured resolution or a live default product.
func (s ProductFacadeStub) Product(ctx context.Context, productID string) (*model.ProductResolution, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, productID)
	}
	return &model.ProductResolution{
		Product: &model.Product{ID: productID, Name: "Widget", Price: decimal.RequireFromString("9.99")},
		Source:  model.ProductSourceLive,
	}, nil
}

// HealthFacadeStub reports configured readiness.
type HealthFacadeStub struct {
	Err error
}

// Ready returns configured error.
func (s HealthFacadeStub) Ready(context.Context) error {
	return s.Err
}

// ServiceFacadeStub aggregates facade dependencies for HTTP layer tests.
type ServiceFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	ProductFacadeStub
	HealthFacadeStub
}

// SampleOrder builds a pending order with a single item.
func SampleOrder(id, userID string) *model.Order {
	order := model.NewOrder(userID, model.Address{Street: "1 Main St", City: "Springfield", ZipCode: "62701", Country: "US"})
	order.ID = id
	order.AddItem(model.NewOrderItem("p1", "Widget", 2, decimal.RequireFromString("9.99")))
	order.Recalculate()
	order.CreatedAt = time.Unix(0, 0).UTC()
	order.UpdatedAt = order.CreatedAt
	return order
}

// RefresherFacadeStub mimics worker interactions with the product facade.
type RefresherFacadeStub struct {
	Batches   [][]string
	RecentFn  func(context.Context, int) ([]string, error)
	RefreshFn func(context.Context, string) error
	Refreshed []string
	mu        sync.Mutex
	calls     int32
}

// Lock exposes internal mutex for external synchronization.
func (s *RefresherFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *RefresherFacadeStub) Unlock() { s.mu.Unlock() }

// RecentProductIDs returns batches from configured queue.
func (s *RefresherFacadeStub) RecentProductIDs(ctx context.Context, limit int) ([]string, error) {
	if s.RecentFn != nil {
		return s.RecentFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.calls, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	return nil, nil
}

// RefreshProduct records refreshed products.
func (s *RefresherFacadeStub) RefreshProduct(ctx context.Context, productID string) error {
	var err error
	if s.RefreshFn != nil {
		err = s.RefreshFn(ctx, productID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Refreshed = append(s.Refreshed, productID)
	return err
}

// EnqueuerStub records product ids scheduled for refresh.
type EnqueuerStub struct {
	Accept bool
	IDs    []string
	mu     sync.Mutex
}

// Lock exposes internal mutex for external synchronization.
func (s *EnqueuerStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *EnqueuerStub) Unlock() { s.mu.Unlock() }

// Enqueue stores id and reports configured acceptance.
func (s *EnqueuerStub) Enqueue(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.IDs = append(s.IDs, productID)
	return s.Accept
}
