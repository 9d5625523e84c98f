package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.IncInFlight()
	m.ObserveRequest("GET", "/api/v1/products", 200, 120*time.Millisecond)
	m.DecInFlight()

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/products", "200")); got != 1 {
		t.Fatalf("expected requests=1, got %f", got)
	}
	if got := testutil.ToFloat64(m.inFlight); got != 0 {
		t.Fatalf("expected in-flight back to 0, got %f", got)
	}
	if count := testutil.CollectAndCount(m.duration); count != 1 {
		t.Fatalf("expected one histogram series, got %d", count)
	}
}

func TestHTTPMetricsNilReceiverSafe(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest("GET", "", 500, time.Second)
	m.IncInFlight()
	m.DecInFlight()
}

func TestNormalizeRoute(t *testing.T) {
	if got := normalizeRoute(""); got != "unmatched" {
		t.Fatalf("unexpected route label %q", got)
	}
}
