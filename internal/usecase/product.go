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

// ProductUseCase resolves product data through the catalog with cache-aside fallback.
// The cache is written only after a successful live fetch and read only while the
// catalog is unavailable.
type ProductUseCase struct {
	catalog catalog.Client
	cache   repository.ProductCache
	orders  repository.OrderRepository
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(
	client catalog.Client,
	cache repository.ProductCache,
	orders repository.OrderRepository,
	m *metrics.Metrics,
	logger *slog.Logger,
) *ProductUseCase {
	return &ProductUseCase{catalog: client, cache: cache, orders: orders, metrics: m, logger: logger}
}

// Resolve returns live product data, or the last cached snapshot during a catalog outage.
func (u *ProductUseCase) Resolve(ctx context.Context, productID string) (*model.ProductResolution, error) {
	product, err := u.catalog.FetchProduct(ctx, productID)
	if err == nil {
		u.writeThrough(ctx, productID, product)
		return &model.ProductResolution{Product: product, Source: model.ProductSourceLive}, nil
	}

	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return nil, domainErrors.ErrProductNotFound
	case errors.Is(err, domainErrors.ErrUnavailable):
		return u.fallback(ctx, productID, err)
	default:
		return nil, err
	}
}

// Refresh re-fetches a product and overwrites its cached snapshot. It never reads the cache.
func (u *ProductUseCase) Refresh(ctx context.Context, productID string) error {
	product, err := u.catalog.FetchProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("refresh product %s: %w", productID, err)
	}
	if err := u.cache.Put(ctx, productID, product); err != nil {
		return fmt.Errorf("cache product %s: %w", productID, err)
	}
	return nil
}

// RecentProductIDs lists products of the latest orders, newest first.
func (u *ProductUseCase) RecentProductIDs(ctx context.Context, limit int) ([]string, error) {
	return u.orders.RecentProductIDs(ctx, limit)
}

// PlaceProductOrder creates a single item order priced from the resolved product snapshot.
func (u *ProductUseCase) PlaceProductOrder(ctx context.Context, userID string, req model.ProductOrderRequest) (*model.Order, error) {
	if req.Quantity <= 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}
	if err := req.ShippingAddress.Validate(); err != nil {
		return nil, err
	}

	resolved, err := u.Resolve(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if resolved.Stale() {
		u.logger.Warn("pricing order from cached product",
			slog.String("product_id", req.ProductID),
			slog.String("user_id", userID),
		)
	}

	product := resolved.Product
	order := model.NewOrder(userID, req.ShippingAddress)
	order.AddItem(model.NewOrderItem(req.ProductID, product.Name, req.Quantity, product.Price))
	order.Recalculate()

	saved, err := u.orders.Save(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	if u.metrics != nil {
		u.metrics.OrdersCreated.WithLabelValues(sourceProduct).Inc()
	}
	u.logger.Info("order created",
		slog.String("order_id", saved.ID),
		slog.String("user_id", userID),
		slog.String("product_id", req.ProductID),
		slog.String("source", string(resolved.Source)),
		slog.String("total", saved.TotalAmount.String()),
	)
	return saved, nil
}

// OrderDetails returns the owner's order together with resolved products.
func (u *ProductUseCase) OrderDetails(ctx context.Context, orderID, userID string) (*model.OrderDetails, error) {
	order, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrOrderNotFound
	}
	return u.ResolveItems(ctx, order), nil
}

// ResolveItems attaches product data to every order item. Unresolvable products stay nil.
func (u *ProductUseCase) ResolveItems(ctx context.Context, order *model.Order) *model.OrderDetails {
	details := &model.OrderDetails{Order: order, Products: make([]*model.ProductResolution, len(order.Items))}
	resolved := make(map[string]*model.ProductResolution, len(order.Items))

	for i, item := range order.Items {
		if res, ok := resolved[item.ProductID]; ok {
			details.Products[i] = res
			continue
		}
		res, err := u.Resolve(ctx, item.ProductID)
		if err != nil {
			u.logger.Warn("product details unavailable",
				slog.String("order_id", order.ID),
				slog.String("product_id", item.ProductID),
				slog.Any("error", err),
			)
		}
		resolved[item.ProductID] = res
		details.Products[i] = res
	}
	return details
}

func (u *ProductUseCase) writeThrough(ctx context.Context, productID string, product *model.Product) {
	if err := u.cache.Put(ctx, productID, product); err != nil {
		u.logger.Warn("failed to cache product",
			slog.String("product_id", productID),
			slog.Any("error", err),
		)
	}
}

func (u *ProductUseCase) fallback(ctx context.Context, productID string, cause error) (*model.ProductResolution, error) {
	cached, ok, err := u.cache.Get(ctx, productID)
	if err != nil {
		u.logger.Error("product cache read failed",
			slog.String("product_id", productID),
			slog.Any("error", err),
		)
	}
	if err != nil || !ok {
		u.observeFallback(metrics.FallbackMiss)
		u.logger.Warn("catalog unavailable and product not cached",
			slog.String("product_id", productID),
			slog.Any("cause", cause),
		)
		return nil, domainErrors.ErrProductUnavailable
	}

	u.observeFallback(metrics.FallbackHit)
	u.logger.Warn("serving cached product",
		slog.String("product_id", productID),
		slog.Any("cause", cause),
	)
	return &model.ProductResolution{Product: cached, Source: model.ProductSourceCache}, nil
}

func (u *ProductUseCase) observeFallback(result string) {
	if u.metrics == nil {
		return
	}
	u.metrics.CacheFallbacks.WithLabelValues(result).Inc()
}
