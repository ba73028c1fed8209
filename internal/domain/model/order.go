package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/orderservice/internal/domain/errors"
)

// OrderStatus describes fulfillment lifecycle. Persisted as its string tag.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusFailed     OrderStatus = "FAILED"
)

var orderStatuses = map[OrderStatus]struct{}{
	OrderStatusPending:    {},
	OrderStatusProcessing: {},
	OrderStatusShipped:    {},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
	OrderStatusFailed:     {},
}

// ParseOrderStatus converts persisted tag back into OrderStatus.
func ParseOrderStatus(tag string) (OrderStatus, error) {
	status := OrderStatus(strings.ToUpper(strings.TrimSpace(tag)))
	if _, ok := orderStatuses[status]; !ok {
		return "", fmt.Errorf("unknown order status %q", tag)
	}
	return status, nil
}

// Address is the shipping address value object embedded into order.
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// Validate checks mandatory address fields. State is optional.
func (a Address) Validate() error {
	for _, v := range []string{a.Street, a.City, a.ZipCode, a.Country} {
		if strings.TrimSpace(v) == "" {
			return domainErrors.ErrInvalidAddress
		}
	}
	return nil
}

// Order is the aggregate root owning its items.
type Order struct {
	ID              string
	UserID          string
	Status          OrderStatus
	TotalAmount     decimal.Decimal
	ShippingAddress Address
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem is a line of an order. It has no lifecycle outside its parent.
type OrderItem struct {
	ID          string
	OrderID     string
	Position    int
	ProductID   string
	ProductName string
	Quantity    int
	Price       decimal.Decimal
	Subtotal    decimal.Decimal
}

// NewOrder creates a pending order for user with given shipping address.
func NewOrder(userID string, address Address) *Order {
	return &Order{
		UserID:          userID,
		Status:          OrderStatusPending,
		TotalAmount:     decimal.Zero,
		ShippingAddress: address,
	}
}

// NewOrderItem snapshots product data and derives subtotal.
func NewOrderItem(productID, productName string, quantity int, price decimal.Decimal) OrderItem {
	return OrderItem{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		Price:       price,
		Subtotal:    LineTotal(price, quantity),
	}
}

// AddItem attaches item to the order and links it back to the parent.
func (o *Order) AddItem(item OrderItem) {
	item.OrderID = o.ID
	item.Position = len(o.Items)
	o.Items = append(o.Items, item)
}

// Recalculate derives total amount from item subtotals.
func (o *Order) Recalculate() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal)
	}
	o.TotalAmount = total
}

// LineTotal returns exact price * quantity.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// CreateOrderRequest carries input for cart based order creation.
type CreateOrderRequest struct {
	CartID          string
	ShippingAddress Address
	PaymentMethodID string
}

// ProductOrderRequest carries input for single product order placement.
type ProductOrderRequest struct {
	ProductID       string
	Quantity        int
	ShippingAddress Address
}
