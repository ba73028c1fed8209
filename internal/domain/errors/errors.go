package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUnavailable        = errors.New("dependency unavailable")
	ErrCartNotFound       = errors.New("cart not found")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrOrderNotFound      = errors.New("order not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidSortField   = errors.New("invalid sort field")
	ErrInvalidPagination  = errors.New("invalid pagination")
	ErrInvalidAddress     = errors.New("invalid shipping address")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRequest     = errors.New("invalid request")
)

// ErrProductUnavailable means catalog is down and no cached snapshot exists.
var ErrProductUnavailable = fmt.Errorf("product data %w", ErrUnavailable)
