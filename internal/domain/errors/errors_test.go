package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"not found", ErrNotFound},
		{"unavailable", ErrUnavailable},
		{"cart not found", ErrCartNotFound},
		{"cart empty", ErrCartEmpty},
		{"order not found", ErrOrderNotFound},
		{"product not found", ErrProductNotFound},
		{"invalid sort", ErrInvalidSortField},
		{"invalid pagination", ErrInvalidPagination},
		{"invalid address", ErrInvalidAddress},
		{"invalid quantity", ErrInvalidQuantity},
		{"invalid credentials", ErrInvalidCredentials},
		{"invalid request", ErrInvalidRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
			wrapped := fmt.Errorf("context: %w", tc.err)
			if !stdErrors.Is(wrapped, tc.err) {
				t.Fatalf("expected wrapped error to match: %v", tc.err)
			}
		})
	}
}

func TestProductUnavailableIsUnavailable(t *testing.T) {
	if !stdErrors.Is(ErrProductUnavailable, ErrUnavailable) {
		t.Fatal("expected product unavailable to wrap unavailable")
	}
	if stdErrors.Is(ErrUnavailable, ErrProductUnavailable) {
		t.Fatal("generic unavailable must not match product unavailable")
	}
}
