package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AppMetrics holds the request-level Prometheus instruments.
type AppMetrics struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	activeConnections prometheus.Gauge
	dbOperationsTotal *prometheus.CounterVec
}

func NewAppMetrics(registry *prometheus.Registry) *AppMetrics {
	m := &AppMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		activeConnections: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_active_connections",
				Help: "In-flight HTTP requests.",
			},
		),
		dbOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "db_operations_total",
				Help: "Total number of database operations.",
			},
			[]string{"operation", "table"},
		),
	}

	registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.activeConnections,
		m.dbOperationsTotal,
	)

	return m
}

func (m *AppMetrics) RecordRequest(method, path string, status int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *AppMetrics) IncrementActiveConnections() {
	m.activeConnections.Inc()
}

func (m *AppMetrics) DecrementActiveConnections() {
	m.activeConnections.Dec()
}

func (m *AppMetrics) RecordDatabaseOperation(operation, table string) {
	m.dbOperationsTotal.WithLabelValues(operation, table).Inc()
}
