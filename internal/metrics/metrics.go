package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	FetchOutcomeOK                = "ok"
	FetchOutcomeTimeout           = "timeout"
	FetchOutcomeConnectionRefused = "connection_refused"
	FetchOutcomeResolveFailure    = "resolve_failure"
	FetchOutcomeHTTPError         = "http_error"
	FetchOutcomeParseFailure      = "parse_failure"
	FetchOutcomeStoreError        = "store_error"
)

// RefreshMetrics captures collector health signals.
type RefreshMetrics struct {
	runs        prometheus.Counter
	runDuration prometheus.Histogram
	fetches     *prometheus.CounterVec
	pages       prometheus.Counter
}

var (
	refreshMetricsOnce sync.Once
	refreshMetrics     *RefreshMetrics
)

// Refresh returns the singleton refresh metrics registry.
func Refresh() *RefreshMetrics {
	refreshMetricsOnce.Do(func() {
		refreshMetrics = newRefreshMetrics(prometheus.DefaultRegisterer)
	})
	return refreshMetrics
}

// ResetRefreshMetricsForTest resets the refresh metrics singleton for tests.
func ResetRefreshMetricsForTest() {
	refreshMetricsOnce = sync.Once{}
	refreshMetrics = nil
}

func newRefreshMetrics(registerer prometheus.Registerer) *RefreshMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "printledger_refresh_runs_total",
		Help: "Refresh batches executed, scheduled and user-triggered.",
	})
	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "printledger_refresh_run_duration_seconds",
		Help:    "Wall time of a full refresh batch across all devices.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})
	fetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "printledger_fetch_total",
		Help: "Device counter fetches by low-cardinality outcome.",
	}, []string{"outcome"})
	pages := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "printledger_readings_recorded_total",
		Help: "Counter readings persisted by the collector.",
	})

	registerer.MustRegister(runs, runDuration, fetches, pages)

	return &RefreshMetrics{
		runs:        runs,
		runDuration: runDuration,
		fetches:     fetches,
		pages:       pages,
	}
}

func (m *RefreshMetrics) ObserveRun(d time.Duration) {
	if m == nil {
		return
	}
	m.runs.Inc()
	m.runDuration.Observe(d.Seconds())
}

func (m *RefreshMetrics) IncFetch(outcome string) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(outcome).Inc()
}

func (m *RefreshMetrics) IncRecorded() {
	if m == nil {
		return
	}
	m.pages.Inc()
}
