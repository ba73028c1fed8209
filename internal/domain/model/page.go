package model

import (
	"strings"

	domainErrors "github.com/polkiloo/orderservice/internal/domain/errors"
)

const (
	DefaultPageSize  = 20
	MaxPageSize      = 100
	DefaultSortField = "createdAt"
)

// SortDirection controls ordering of paged queries.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// ParseSortDirection treats "asc" case-insensitively as ascending, anything else as descending.
func ParseSortDirection(dir string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		return SortAsc
	}
	return SortDesc
}

// PageRequest describes a 0-indexed page of orders.
type PageRequest struct {
	Page      int
	Size      int
	SortBy    string
	Direction SortDirection
}

// DefaultPageRequest returns the first page sorted by creation time, newest first.
func DefaultPageRequest() PageRequest {
	return PageRequest{Page: 0, Size: DefaultPageSize, SortBy: DefaultSortField, Direction: SortDesc}
}

// Normalize fills empty sort settings, caps size and rejects impossible pages.
func (p PageRequest) Normalize() (PageRequest, error) {
	if p.Page < 0 || p.Size <= 0 {
		return p, domainErrors.ErrInvalidPagination
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	if strings.TrimSpace(p.SortBy) == "" {
		p.SortBy = DefaultSortField
	}
	if p.Direction != SortAsc {
		p.Direction = SortDesc
	}
	return p, nil
}

// OrderPage is a single page of user orders.
type OrderPage struct {
	Orders        []Order
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

// NewOrderPage computes page metadata.
func NewOrderPage(orders []Order, req PageRequest, total int64) *OrderPage {
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return &OrderPage{
		Orders:        orders,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}
