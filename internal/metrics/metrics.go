// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the server collectors. Each instance owns its registry so
// tests can build several servers side by side.
type Metrics struct {
	registry *prometheus.Registry

	ValidationFailures *prometheus.CounterVec
	Submissions        prometheus.Counter
	ActiveDrafts       prometheus.Gauge
	HTTPLatency        *prometheus.HistogramVec
}

// New registers every collector on a fresh registry, together with the Go
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ValidationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signupform_validation_failures_total",
				Help: "Rule failures observed while validating field values.",
			},
			[]string{"field", "kind"},
		),
		Submissions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "signupform_submissions_total",
				Help: "Successful form submissions.",
			},
		),
		ActiveDrafts: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "signupform_active_drafts",
				Help: "Form drafts currently held in memory.",
			},
		),
		HTTPLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "signupform_http_request_duration_seconds",
				Help:    "Latency of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
	m.registry.MustRegister(
		m.ValidationFailures,
		m.Submissions,
		m.ActiveDrafts,
		m.HTTPLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveFailure counts one rule failure.
func (m *Metrics) ObserveFailure(field, kind string) {
	m.ValidationFailures.WithLabelValues(field, kind).Inc()
}
