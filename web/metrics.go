// ABOUTME: Prometheus metrics for the flowtrace HTTP API, kept on a private registry per server.
// ABOUTME: Tracks request counts and latency by route plus path counts per analysis.
package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's collectors.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	AnalysesTotal   *prometheus.CounterVec
	PathsFound      prometheus.Histogram
	Truncations     prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{registry: reg}

	m.RequestsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowtrace_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	m.RequestDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flowtrace_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	m.AnalysesTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowtrace_analyses_total",
			Help: "Total number of diagram operations by kind",
		},
		[]string{"operation"},
	)
	m.PathsFound = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flowtrace_paths_found",
			Help:    "Number of simple paths found per path analysis",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 1000},
		},
	)
	m.Truncations = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "flowtrace_path_limit_reached_total",
			Help: "Path analyses stopped early by the path limit",
		},
	)
	return m
}

// RecordRequest records one completed HTTP request.
func (m *Metrics) RecordRequest(method, route string, status int, d time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordPaths records the outcome of one path analysis.
func (m *Metrics) RecordPaths(total int, truncated bool) {
	m.PathsFound.Observe(float64(total))
	if truncated {
		m.Truncations.Inc()
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
