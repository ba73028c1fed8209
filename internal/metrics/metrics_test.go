package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersAreRegistered(t *testing.T) {
	m := New()
	m.GatewayRequests.WithLabelValues("product", OutcomeUnavailable).Inc()
	m.CacheFallbacks.WithLabelValues(FallbackHit).Add(2)
	m.OrdersCreated.WithLabelValues("cart").Inc()

	if got := testutil.ToFloat64(m.GatewayRequests.WithLabelValues("product", OutcomeUnavailable)); got != 1 {
		t.Fatalf("expected 1 gateway request, got %v", got)
	}
	if got := testutil.ToFloat64(m.CacheFallbacks.WithLabelValues(FallbackHit)); got != 2 {
		t.Fatalf("expected 2 fallback hits, got %v", got)
	}

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "orders_orders_created_total" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected orders_created_total family to be gathered")
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.CacheRefreshes.WithLabelValues(OutcomeSuccess).Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "orders_product_cache_refresh_total") {
		t.Fatalf("expected refresh counter in output, got %s", body)
	}
}

func TestSeparateInstancesDoNotCollide(t *testing.T) {
	first := New()
	second := New()
	first.OrdersCreated.WithLabelValues("product").Inc()
	if got := testutil.ToFloat64(second.OrdersCreated.WithLabelValues("product")); got != 0 {
		t.Fatalf("expected isolated registries, got %v", got)
	}
}
