// Package prometheus exposes the service's Prometheus metrics: HTTP
// request counters and histograms plus connection-pool gauges, all
// registered on a private registry labeled with the service name.
package prometheus

import (
	"database/sql"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DefaultRegistry is the registry served at /metrics.
	DefaultRegistry = prometheus.NewRegistry()

	// DefaultRegisterer labels every metric with the service name.
	DefaultRegisterer = prometheus.WrapRegistererWith(prometheus.Labels{"service": "todod"}, DefaultRegistry)

	metricsOnce sync.Once
	metrics     *Metrics
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestSize     *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	DatabaseConnectionsOpen  prometheus.Gauge
	DatabaseConnectionsIdle  prometheus.Gauge
	DatabaseConnectionsInUse prometheus.Gauge
	DatabaseWaitCount        prometheus.Gauge
}

// GetMetrics returns the global metrics instance.
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = NewMetrics(DefaultRegisterer)
	})
	return metrics
}

// NewMetrics creates a metrics collection on the given registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = DefaultRegisterer
	}

	return &Metrics{
		HTTPRequestsTotal: promauto.With(registerer).NewCounterVec(
			prometheus.CounterOpts{
				Name: "todod_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.With(registerer).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "todod_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestSize: promauto.With(registerer).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "todod_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 5),
			},
			[]string{"method", "path"},
		),
		HTTPResponseSize: promauto.With(registerer).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "todod_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 5),
			},
			[]string{"method", "path", "status"},
		),
		DatabaseConnectionsOpen: promauto.With(registerer).NewGauge(
			prometheus.GaugeOpts{
				Name: "todod_database_connections_open",
				Help: "Number of open database connections",
			},
		),
		DatabaseConnectionsIdle: promauto.With(registerer).NewGauge(
			prometheus.GaugeOpts{
				Name: "todod_database_connections_idle",
				Help: "Number of idle database connections",
			},
		),
		DatabaseConnectionsInUse: promauto.With(registerer).NewGauge(
			prometheus.GaugeOpts{
				Name: "todod_database_connections_in_use",
				Help: "Number of database connections in use",
			},
		),
		DatabaseWaitCount: promauto.With(registerer).NewGauge(
			prometheus.GaugeOpts{
				Name: "todod_database_wait_count",
				Help: "Total number of connections waited for",
			},
		),
	}
}

// RecordHTTPRequest records one completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	m.HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	m.HTTPResponseSize.WithLabelValues(method, path, status).Observe(float64(responseSize))
}

// UpdatePoolStats publishes connection pool statistics.
func (m *Metrics) UpdatePoolStats(stats sql.DBStats) {
	m.DatabaseConnectionsOpen.Set(float64(stats.OpenConnections))
	m.DatabaseConnectionsIdle.Set(float64(stats.Idle))
	m.DatabaseConnectionsInUse.Set(float64(stats.InUse))
	m.DatabaseWaitCount.Set(float64(stats.WaitCount))
}
