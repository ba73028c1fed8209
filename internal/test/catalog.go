package test

import (
	"context"
	"sync"

	domainErrors "github.com/polkiloo/orderservice/internal/domain/errors"
	"github.com/polkiloo/orderservice/internal/domain/model"
)

// CatalogClientStub serves carts and products from maps unless overridden.
type CatalogClientStub struct {
	FetchCartFn    func(context.Context, string) (*model.Cart, error)
	FetchProductFn func(context.Context, string) (*model.Product, error)

	Carts    map[string]*model.Cart
	Products map[string]*model.Product
	Err      error

	mu            sync.Mutex
	cartCalls     int
	productCalls  int
	productLookup []string
}

// FetchCart returns configured cart or ErrNotFound.
func (s *CatalogClientStub) FetchCart(ctx context.Context, cartID string) (*model.Cart, error) {
	s.mu.Lock()
	s.cartCalls++
	s.mu.Unlock()
	if s.FetchCartFn != nil {
		return s.FetchCartFn(ctx, cartID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	cart, ok := s.Carts[cartID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return cart, nil
}

// FetchProduct returns configured product or ErrNotFound.
func (s *CatalogClientStub) FetchProduct(ctx context.Context, productID string) (*model.Product, error) {
	s.mu.Lock()
	s.productCalls++
	s.productLookup = append(s.productLookup, productID)
	s.mu.Unlock()
	if s.FetchProductFn != nil {
		return s.FetchProductFn(ctx, productID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	product, ok := s.Products[productID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *product
	return &out, nil
}

// CartCalls reports how many carts were requested.
func (s *CatalogClientStub) CartCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartCalls
}

// ProductCalls reports how many products were requested.
func (s *CatalogClientStub) ProductCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productCalls
}

// ProductLookups returns requested product ids in call order.
func (s *CatalogClientStub) ProductLookups() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.productLookup...)
}
