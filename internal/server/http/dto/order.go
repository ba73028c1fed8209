package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/orderservice/internal/domain/errors"
	"github.com/polkiloo/orderservice/internal/domain/model"
)

// Address is the shipping address payload.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// ToModel converts payload into address value object.
func (a *Address) ToModel() model.Address {
	if a == nil {
		return model.Address{}
	}
	return model.Address{Street: a.Street, City: a.City, State: a.State, ZipCode: a.ZipCode, Country: a.Country}
}

// FromAddress builds payload from address value object.
func FromAddress(a model.Address) Address {
	return Address{Street: a.Street, City: a.City, State: a.State, ZipCode: a.ZipCode, Country: a.Country}
}

// CreateOrderRequest describes cart checkout payload.
type CreateOrderRequest struct {
	CartID          string   `json:"cartId"`
	ShippingAddress *Address `json:"shippingAddress"`
	PaymentMethodID string   `json:"paymentMethodId"`
}

// Validate performs presence checks on the payload.
func (r CreateOrderRequest) Validate() error {
	if strings.TrimSpace(r.CartID) == "" || strings.TrimSpace(r.PaymentMethodID) == "" || r.ShippingAddress == nil {
		return domainErrors.ErrInvalidRequest
	}
	return r.ShippingAddress.ToModel().Validate()
}

// ToModel converts payload into use case request.
func (r CreateOrderRequest) ToModel() model.CreateOrderRequest {
	return model.CreateOrderRequest{
		CartID:          strings.TrimSpace(r.CartID),
		ShippingAddress: r.ShippingAddress.ToModel(),
		PaymentMethodID: r.PaymentMethodID,
	}
}

// ProductOrderRequest describes single product order payload.
type ProductOrderRequest struct {
	ProductID       string   `json:"productId"`
	Quantity        int      `json:"quantity"`
	ShippingAddress *Address `json:"shippingAddress"`
}

// ToModel converts payload into use case request.
func (r ProductOrderRequest) ToModel() model.ProductOrderRequest {
	return model.ProductOrderRequest{
		ProductID:       strings.TrimSpace(r.ProductID),
		Quantity:        r.Quantity,
		ShippingAddress: r.ShippingAddress.ToModel(),
	}
}

// OrderItemResponse is a single order line.
type OrderItemResponse struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse is the order representation returned by the API.
type OrderResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"userId"`
	Status          string              `json:"status"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	ShippingAddress Address             `json:"shippingAddress"`
	OrderItems      []OrderItemResponse `json:"orderItems"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// FromOrder builds response from order aggregate.
func FromOrder(order *model.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Subtotal:    item.Subtotal,
		})
	}
	return OrderResponse{
		ID:              order.ID,
		UserID:          order.UserID,
		Status:          string(order.Status),
		TotalAmount:     order.TotalAmount,
		ShippingAddress: FromAddress(order.ShippingAddress),
		OrderItems:      items,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

// OrderDetailsItemResponse is an order line with current catalog data.
type OrderDetailsItemResponse struct {
	OrderItemResponse
	Product *ProductResponse `json:"product"`
}

// OrderDetailsResponse is an order with resolved products.
type OrderDetailsResponse struct {
	OrderResponse
	OrderItems []OrderDetailsItemResponse `json:"orderItems"`
}

// FromOrderDetails builds response from resolved order details.
func FromOrderDetails(details *model.OrderDetails) OrderDetailsResponse {
	base := FromOrder(details.Order)
	items := make([]OrderDetailsItemResponse, len(base.OrderItems))
	for i, item := range base.OrderItems {
		items[i] = OrderDetailsItemResponse{OrderItemResponse: item}
		if i < len(details.Products) && details.Products[i] != nil {
			product := FromResolution(details.Products[i])
			items[i].Product = &product
		}
	}
	return OrderDetailsResponse{OrderResponse: base, OrderItems: items}
}
