package infrastructure

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus counters the dashboard exposes on
// /metrics. Counters only; there is no long-lived state worth gauging.
type Metrics struct {
	RequestsTotal     *prometheus.CounterVec
	IngestRowsTotal   prometheus.Counter
	IngestRepairs     *prometheus.CounterVec
	SyntheticFallback prometheus.Counter
	FilterFallbacks   *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates the metrics set on a private registry so tests can
// construct it repeatedly without duplicate-registration panics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldpulse_http_requests_total",
			Help: "HTTP requests by method, path and status code.",
		}, []string{"method", "path", "status"}),
		IngestRowsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "fieldpulse_ingest_rows_total",
			Help: "Raw rows read from the visit data source.",
		}),
		IngestRepairs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldpulse_ingest_repairs_total",
			Help: "Per-field repairs applied during normalization.",
		}, []string{"field"}),
		SyntheticFallback: factory.NewCounter(prometheus.CounterOpts{
			Name: "fieldpulse_ingest_synthetic_fallback_total",
			Help: "Times the synthetic demo dataset replaced the source.",
		}),
		FilterFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldpulse_filter_fallbacks_total",
			Help: "Filter axes that degraded to show-all on parse failure.",
		}, []string{"axis"}),
		registry: reg,
	}
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
