package test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/orderservice/internal/domain/errors"
	"github.com/polkiloo/orderservice/internal/domain/model"
)

// OrderRepositoryStub stores orders in-memory for tests.
type OrderRepositoryStub struct {
	SaveFn             func(context.Context, *model.Order) (*model.Order, error)
	FindByIDFn         func(context.Context, string) (*model.Order, error)
	FindByUserFn       func(context.Context, string, model.PageRequest) (*model.OrderPage, error)
	RecentProductIDsFn func(context.Context, int) ([]string, error)

	Orders    map[string]*model.Order
	Saved     []*model.Order
	Pages     []model.PageRequest
	RecentIDs []string
	Now       time.Time
	Err       error
	mu        sync.Mutex
	sequence  int
}

// NewOrderRepositoryStub constructs stub repository with initialized storage.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.Order)}
}

// Save assigns identifiers and timestamps the way the real store does.
func (s *OrderRepositoryStub) Save(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, order)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}

	saved := *order
	saved.Items = append([]model.OrderItem(nil), order.Items...)
	now := s.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	if saved.ID == "" {
		saved.ID = s.nextID("order")
	}
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = now
	}
	saved.UpdatedAt = now
	for i := range saved.Items {
		if saved.Items[i].ID == "" {
			saved.Items[i].ID = s.nextID("item")
		}
		saved.Items[i].OrderID = saved.ID
		saved.Items[i].Position = i
	}

	s.Orders[saved.ID] = &saved
	s.Saved = append(s.Saved, &saved)
	out := saved
	return &out, nil
}

// FindByID returns stored order or ErrNotFound.
func (s *OrderRepositoryStub) FindByID(ctx context.Context, id string) (*model.Order, error) {
	if s.FindByIDFn != nil {
		return s.FindByIDFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *order
	return &out, nil
}

// FindByUser records the page request and pages stored orders by creation time.
func (s *OrderRepositoryStub) FindByUser(ctx context.Context, userID string, page model.PageRequest) (*model.OrderPage, error) {
	s.mu.Lock()
	s.Pages = append(s.Pages, page)
	s.mu.Unlock()
	if s.FindByUserFn != nil {
		return s.FindByUserFn(ctx, userID, page)
	}
	if s.Err != nil {
		return nil, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var owned []model.Order
	for _, o := range s.Orders {
		if o.UserID == userID {
			owned = append(owned, *o)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if page.Direction == model.SortAsc {
			return owned[i].CreatedAt.Before(owned[j].CreatedAt)
		}
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	total := int64(len(owned))
	start := page.Page * page.Size
	if start > len(owned) {
		start = len(owned)
	}
	end := start + page.Size
	if end > len(owned) {
		end = len(owned)
	}
	return model.NewOrderPage(owned[start:end], page, total), nil
}

// RecentProductIDs returns configured identifiers truncated to limit.
func (s *OrderRepositoryStub) RecentProductIDs(ctx context.Context, limit int) ([]string, error) {
	if s.RecentProductIDsFn != nil {
		return s.RecentProductIDsFn(ctx, limit)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if limit < len(s.RecentIDs) {
		return s.RecentIDs[:limit], nil
	}
	return s.RecentIDs, nil
}

func (s *OrderRepositoryStub) nextID(prefix string) string {
	s.sequence++
	return fmt.Sprintf("%s-%d", prefix, s.sequence)
}

// ProductCacheStub keeps product snapshots in a map.
type ProductCacheStub struct {
	Products map[string]*model.Product
	PutErr   error
	GetErr   error
	Puts     int
	Gets     int
	mu       sync.Mutex
}

// NewProductCacheStub constructs empty cache stub.
func NewProductCacheStub() *ProductCacheStub {
	return &ProductCacheStub{Products: make(map[string]*model.Product)}
}

// Put overwrites cached snapshot unless PutErr is configured.
func (s *ProductCacheStub) Put(ctx context.Context, productID string, product *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Puts++
	if s.PutErr != nil {
		return s.PutErr
	}
	if s.Products == nil {
		s.Products = make(map[string]*model.Product)
	}
	stored := *product
	s.Products[productID] = &stored
	return nil
}

// Get returns cached snapshot and whether it was present.
func (s *ProductCacheStub) Get(ctx context.Context, productID string) (*model.Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Gets++
	if s.GetErr != nil {
		return nil, false, s.GetErr
	}
	product, ok := s.Products[productID]
	if !ok {
		return nil, false, nil
	}
	out := *product
	return &out, true, nil
}
