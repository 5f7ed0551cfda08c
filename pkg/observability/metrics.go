package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the service. Every method is
// safe on a nil receiver so callers don't need to branch on ENABLE_METRICS.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests  *prometheus.CounterVec
	Queries       *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec
}

// NewMetrics creates collectors on a private registry
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "status"},
		),
		Queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "neptune_queries_total",
				Help:      "openCypher queries sent to Neptune",
			},
			[]string{"operation", "outcome"},
		),
		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "neptune_query_duration_seconds",
				Help:      "openCypher query latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}

	registry.MustRegister(m.HTTPRequests, m.Queries, m.QueryDuration)

	return m
}

// ObserveQuery records one query round trip
func (m *Metrics) ObserveQuery(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.Queries.WithLabelValues(operation, outcome).Inc()
	m.QueryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// ObserveHTTP records one served request
func (m *Metrics) ObserveHTTP(method string, status int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
