package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/polkiloo/orderservice/internal/adapter/catalog"
	domainErrors "github.com/polkiloo/orderservice/internal/domain/errors"
	"github.com/polkiloo/orderservice/internal/domain/model"
	"github.com/polkiloo/orderservice/internal/domain/repository"
	"github.com/polkiloo/orderservice/internal/metrics"
)

const (
	sourceCart    = "cart"
	sourceProduct = "product"
)

// OrderUseCase turns carts into persisted orders and serves order reads.
type OrderUseCase struct {
	orders  repository.OrderRepository
	catalog catalog.Client
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, client catalog.Client, m *metrics.Metrics, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, catalog: client, metrics: m, logger: logger}
}

// CreateOrder snapshots the cart into a new pending order.
// Gateway failures other than a missing cart are returned unchanged.
func (u *OrderUseCase) CreateOrder(ctx context.Context, userID string, req model.CreateOrderRequest) (*model.Order, error) {
	cart, err := u.catalog.FetchCart(ctx, req.CartID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrCartNotFound
		}
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, domainErrors.ErrCartEmpty
	}

	for _, line := range cart.Items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("cart %s product %s quantity %d: %w", req.CartID, line.ProductID, line.Quantity, domainErrors.ErrInvalidQuantity)
		}
	}

	order := model.NewOrder(userID, req.ShippingAddress)
	for _, line := range cart.Items {
		order.AddItem(model.NewOrderItem(line.ProductID, line.ProductName, line.Quantity, line.Price))
	}
	order.Recalculate()

	saved, err := u.orders.Save(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	u.observeCreated(sourceCart)
	u.logger.Info("order created",
		slog.String("order_id", saved.ID),
		slog.String("user_id", userID),
		slog.String("cart_id", req.CartID),
		slog.Int("items", len(saved.Items)),
		slog.String("total", saved.TotalAmount.String()),
	)
	return saved, nil
}

// GetOrder returns the order only to its owner. Foreign orders look absent.
func (u *OrderUseCase) GetOrder(ctx context.Context, orderID, userID string) (*model.Order, error) {
	order, err := u.GetOrderAsAdmin(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrOrderNotFound
	}
	return order, nil
}

// GetOrderAsAdmin returns the order without the ownership check.
func (u *OrderUseCase) GetOrderAsAdmin(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// ListByUser returns a page of user orders.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID string, page model.PageRequest) (*model.OrderPage, error) {
	normalized, err := page.Normalize()
	if err != nil {
		return nil, err
	}
	return u.orders.FindByUser(ctx, userID, normalized)
}

func (u *OrderUseCase) observeCreated(source string) {
	if u.metrics == nil {
		return
	}
	u.metrics.OrdersCreated.WithLabelValues(source).Inc()
}
