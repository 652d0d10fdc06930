package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	EnrichmentOutcomeGenerated     = "generated"
	EnrichmentOutcomeCached        = "cached"
	EnrichmentOutcomeFallbackNoKey = "fallback_no_key"
	EnrichmentOutcomeFallbackError = "fallback_error"
	EnrichmentOutcomeFallbackEmpty = "fallback_empty"
)

// EnrichmentMetrics tracks generated-text requests by kind and outcome.
type EnrichmentMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func NewEnrichmentMetrics(reg prometheus.Registerer) *EnrichmentMetrics {
	if reg == nil {
		return &EnrichmentMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "enrichment_requests_total",
		Help: "Enrichment requests, by kind and outcome.",
	}, []string{"kind", "outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "enrichment_generation_seconds",
		Help:    "Latency of calls to the text generation service.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	reg.MustRegister(requests, latency)
	return &EnrichmentMetrics{
		requests: requests,
		latency:  latency,
	}
}

func (m *EnrichmentMetrics) IncOutcome(kind, outcome string) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(normalizeLabel(kind), normalizeLabel(outcome)).Inc()
}

func (m *EnrichmentMetrics) ObserveGeneration(kind string, elapsed time.Duration) {
	if m == nil || m.latency == nil {
		return
	}
	m.latency.WithLabelValues(normalizeLabel(kind)).Observe(elapsed.Seconds())
}
