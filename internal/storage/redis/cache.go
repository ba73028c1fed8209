package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/polkiloo/orderservice/internal/domain/model"
)

const productKeyPrefix = "product::"

// ProductCache stores last known product snapshots in Redis as JSON.
type ProductCache struct {
	client goredis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// Options configures connection to Redis.
type Options struct {
	Address  string
	Password string
	DB       int
	// TTL of cached entries, zero keeps them until overwritten.
	TTL time.Duration
}

// New opens Redis client for product cache.
func New(opts Options, logger *slog.Logger) *ProductCache {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewWithClient(client, opts.TTL, logger)
}

// NewWithClient wraps existing client.
func NewWithClient(client goredis.UniversalClient, ttl time.Duration, logger *slog.Logger) *ProductCache {
	if ttl < 0 {
		ttl = 0
	}
	return &ProductCache{client: client, ttl: ttl, logger: logger}
}

func productKey(productID string) string {
	return productKeyPrefix + productID
}

// Put overwrites cached snapshot for product.
func (c *ProductCache) Put(ctx context.Context, productID string, product *model.Product) error {
	if product == nil {
		return fmt.Errorf("cache product %s: nil snapshot", productID)
	}
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("encode product %s: %w", productID, err)
	}
	if err := c.client.Set(ctx, productKey(productID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache product %s: %w", productID, err)
	}
	c.logger.Debug("product cached", slog.String("product_id", productID), slog.Duration("ttl", c.ttl))
	return nil
}

// Get returns cached snapshot. Second result is false when nothing was cached.
func (c *ProductCache) Get(ctx context.Context, productID string) (*model.Product, bool, error) {
	data, err := c.client.Get(ctx, productKey(productID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cached product %s: %w", productID, err)
	}

	var product model.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, false, fmt.Errorf("decode cached product %s: %w", productID, err)
	}
	return &product, true, nil
}

// HealthCheck verifies Redis connectivity.
func (c *ProductCache) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err()
}

// Close releases Redis connections.
func (c *ProductCache) Close() error {
	return c.client.Close()
}
