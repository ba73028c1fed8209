package repository

import (
	"context"

	"github.com/polkiloo/orderservice/internal/domain/model"
)

// OrderRepository persists order aggregates together with their items.
type OrderRepository interface {
	Save(ctx context.Context, order *model.Order) (*model.Order, error)
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindByUser(ctx context.Context, userID string, page model.PageRequest) (*model.OrderPage, error)
	RecentProductIDs(ctx context.Context, limit int) ([]string, error)
}
