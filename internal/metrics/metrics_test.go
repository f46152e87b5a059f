package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRefreshMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newRefreshMetrics(reg)

	m.ObserveRun(250 * time.Millisecond)
	m.IncFetch(FetchOutcomeOK)
	m.IncFetch(FetchOutcomeOK)
	m.IncFetch(FetchOutcomeTimeout)
	m.IncRecorded()

	if got := testutil.ToFloat64(m.runs); got != 1 {
		t.Fatalf("expected 1 run, got %v", got)
	}
	if got := testutil.ToFloat64(m.fetches.WithLabelValues(FetchOutcomeOK)); got != 2 {
		t.Fatalf("expected 2 ok fetches, got %v", got)
	}
	if got := testutil.ToFloat64(m.fetches.WithLabelValues(FetchOutcomeTimeout)); got != 1 {
		t.Fatalf("expected 1 timeout fetch, got %v", got)
	}
	if got := testutil.ToFloat64(m.pages); got != 1 {
		t.Fatalf("expected 1 recorded reading, got %v", got)
	}
}

func TestRefreshMetricsNilReceiver(t *testing.T) {
	var m *RefreshMetrics
	m.ObserveRun(time.Second)
	m.IncFetch(FetchOutcomeOK)
	m.IncRecorded()
}

func TestHTTPMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newHTTPMetrics(reg)

	m.Observe("/api/v1/devices", "GET", 200, 15*time.Millisecond)
	m.Observe("/api/v1/devices", "GET", 200, 5*time.Millisecond)
	m.Observe("/api/v1/devices", "POST", 400, 2*time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("/api/v1/devices", "GET", "200")); got != 2 {
		t.Fatalf("expected 2 GET requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("/api/v1/devices", "POST", "400")); got != 1 {
		t.Fatalf("expected 1 POST request, got %v", got)
	}
}

func TestHTTPMetricsNilReceiver(t *testing.T) {
	var m *HTTPMetrics
	m.Observe("/health", "GET", 200, time.Millisecond)
}

func swapPrometheusRegistry(reg *prometheus.Registry) func() {
	prevRegisterer := prometheus.DefaultRegisterer
	prevGatherer := prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	return func() {
		prometheus.DefaultRegisterer = prevRegisterer
		prometheus.DefaultGatherer = prevGatherer
	}
}

func TestRefreshSingletonResets(t *testing.T) {
	restore := swapPrometheusRegistry(prometheus.NewRegistry())
	defer restore()

	ResetRefreshMetricsForTest()
	first := Refresh()
	if Refresh() != first {
		t.Fatalf("expected the singleton to be reused")
	}
	first.IncFetch(FetchOutcomeOK)
	if got := testutil.ToFloat64(first.fetches.WithLabelValues(FetchOutcomeOK)); got != 1 {
		t.Fatalf("expected 1 ok fetch, got %v", got)
	}

	restore()
	restore = swapPrometheusRegistry(prometheus.NewRegistry())
	ResetRefreshMetricsForTest()
	second := Refresh()
	if second == first {
		t.Fatalf("expected a fresh singleton after reset")
	}
	if got := testutil.ToFloat64(second.fetches.WithLabelValues(FetchOutcomeOK)); got != 0 {
		t.Fatalf("expected counters to start at zero after reset, got %v", got)
	}
}

func TestHTTPSingletonResets(t *testing.T) {
	restore := swapPrometheusRegistry(prometheus.NewRegistry())
	defer restore()

	ResetHTTPMetricsForTest()
	first := HTTP()
	if HTTP() != first {
		t.Fatalf("expected the singleton to be reused")
	}

	restore()
	restore = swapPrometheusRegistry(prometheus.NewRegistry())
	ResetHTTPMetricsForTest()
	if HTTP() == first {
		t.Fatalf("expected a fresh singleton after reset")
	}
}
