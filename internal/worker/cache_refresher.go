package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/orderservice/internal/domain/errors"
	"github.com/polkiloo/orderservice/internal/metrics"
)

// ProductFacade exposes the subset of application functionality required by the refresher.
type ProductFacade interface {
	RecentProductIDs(ctx context.Context, limit int) ([]string, error)
	RefreshProduct(ctx context.Context, productID string) error
}

// CacheRefresher keeps fallback product snapshots warm by re-fetching recently
// ordered products and products announced by the catalog.
type CacheRefresher struct {
	facade       ProductFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger
	metrics      *metrics.Metrics

	jobs    chan string
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.Mutex
	running bool
}

// NewCacheRefresher constructs refresher worker pool.
func NewCacheRefresher(facade ProductFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger, m *metrics.Metrics) *CacheRefresher {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Minute
	}
	return &CacheRefresher{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		metrics:      m,
		jobs:         make(chan string, batchSize*workers),
	}
}

// Start launches background refreshing. Calling Start twice is a no-op.
func (r *CacheRefresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.running = true

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop cancels refreshing and waits for all workers to finish.
func (r *CacheRefresher) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.running = false
	r.mu.Unlock()

	r.wg.Wait()
}

// Enqueue schedules a single product refresh. It reports false when the
// refresher is stopped or its queue is full.
func (r *CacheRefresher) Enqueue(productID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running || productID == "" {
		return false
	}
	select {
	case r.jobs <- productID:
		return true
	default:
		r.logger.Warn("refresh queue full, dropping product", slog.String("product_id", productID))
		return false
	}
}

func (r *CacheRefresher) dispatch(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *CacheRefresher) fetchAndDispatch(ctx context.Context) {
	ids, err := r.facade.RecentProductIDs(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("fetch products for refresh failed", slog.String("error", err.Error()))
		return
	}
	for _, id := range ids {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- id:
		}
	}
}

func (r *CacheRefresher) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case productID := <-r.jobs:
			r.refresh(ctx, productID)
		}
	}
}

func (r *CacheRefresher) refresh(ctx context.Context, productID string) {
	err := r.facade.RefreshProduct(ctx, productID)
	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
	case errors.Is(err, domainErrors.ErrNotFound):
		outcome = metrics.OutcomeNotFound
		r.logger.Info("product gone from catalog", slog.String("product_id", productID))
	case errors.Is(err, domainErrors.ErrUnavailable):
		outcome = metrics.OutcomeUnavailable
		r.logger.Warn("catalog unavailable during refresh", slog.String("product_id", productID), slog.String("error", err.Error()))
	default:
		outcome = metrics.OutcomeError
		r.logger.Error("product refresh failed", slog.String("product_id", productID), slog.String("error", err.Error()))
	}
	if r.metrics != nil {
		r.metrics.CacheRefreshes.WithLabelValues(outcome).Inc()
	}
}
