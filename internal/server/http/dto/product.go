package dto

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/orderservice/internal/domain/model"
)

// ProductResponse is a product snapshot together with its origin.
type ProductResponse struct {
	ProductID   string          `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Source      string          `json:"source"`
	Stale       bool            `json:"stale"`
}

// FromResolution builds response from resolved product.
func FromResolution(res *model.ProductResolution) ProductResponse {
	p := res.Product
	return ProductResponse{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Source:      string(res.Source),
		Stale:       res.Stale(),
	}
}
