package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is a read-only snapshot of remote shopping cart.
type Cart struct {
	ID           string
	UserID       string
	Items        []CartItem
	LastModified time.Time
}

// CartItem is a line of remote cart.
type CartItem struct {
	ProductID   string
	ProductName string
	Price       decimal.Decimal
	Quantity    int
}

// Product is the last known product snapshot served by the catalog.
type Product struct {
	ID          string          `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
}

// ProductSource tells where resolved product data came from.
type ProductSource string

const (
	ProductSourceLive  ProductSource = "live"
	ProductSourceCache ProductSource = "cache"
)

// ProductResolution is a product snapshot together with its origin.
type ProductResolution struct {
	Product *Product
	Source  ProductSource
}

// Stale reports whether product was served from fallback cache.
func (r ProductResolution) Stale() bool {
	return r.Source == ProductSourceCache
}

// OrderDetails is an order with catalog data resolved for each item.
// Products[i] belongs to Order.Items[i] and is nil when it could not be resolved.
type OrderDetails struct {
	Order    *Order
	Products []*ProductResolution
}
