package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics captures request throughput and latency per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var (
	httpMetricsOnce sync.Once
	httpMetrics     *HTTPMetrics
)

// HTTP returns the singleton HTTP metrics registry.
func HTTP() *HTTPMetrics {
	httpMetricsOnce.Do(func() {
		httpMetrics = newHTTPMetrics(prometheus.DefaultRegisterer)
	})
	return httpMetrics
}

// ResetHTTPMetricsForTest resets the HTTP metrics singleton for tests.
func ResetHTTPMetricsForTest() {
	httpMetricsOnce = sync.Once{}
	httpMetrics = nil
}

func newHTTPMetrics(registerer prometheus.Registerer) *HTTPMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "printledger_http_requests_total",
		Help: "HTTP requests by route template, method and status.",
	}, []string{"route", "method", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "printledger_http_request_duration_seconds",
		Help:    "HTTP request latency by route template and method.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"route", "method"})

	registerer.MustRegister(requests, duration)

	return &HTTPMetrics{requests: requests, duration: duration}
}

func (m *HTTPMetrics) Observe(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route, method).Observe(d.Seconds())
}

// GinMiddleware records every request against the route template, keeping
// label cardinality bounded regardless of path parameters.
func GinMiddleware() gin.HandlerFunc {
	m := HTTP()
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Observe(route, c.Request.Method, c.Writer.Status(), time.Since(started))
	}
}
