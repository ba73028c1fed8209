package repository

import (
	"context"

	"github.com/polkiloo/orderservice/internal/domain/model"
)

// ProductCache keeps last known good product snapshots keyed by product id.
type ProductCache interface {
	Put(ctx context.Context, productID string, product *model.Product) error
	Get(ctx context.Context, productID string) (*model.Product, bool, error)
}
