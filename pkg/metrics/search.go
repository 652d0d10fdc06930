package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	SearchOutcomeMatched  = "matched"
	SearchOutcomeNoMatch  = "no_match"
	SearchOutcomeRejected = "rejected"
)

// SearchMetrics counts search outcomes and suggestion calls.
type SearchMetrics struct {
	searches    *prometheus.CounterVec
	suggestions prometheus.Counter
	results     prometheus.Histogram
}

func NewSearchMetrics(reg prometheus.Registerer) *SearchMetrics {
	if reg == nil {
		return &SearchMetrics{}
	}
	searches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "search_requests_total",
		Help: "Searches executed, by outcome.",
	}, []string{"outcome"})
	suggestions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "search_suggestions_total",
		Help: "Suggestion lists generated.",
	})
	results := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "search_result_stores",
		Help:    "Number of stores returned per matched search.",
		Buckets: []float64{0, 1, 2, 3, 5, 10, 25},
	})
	reg.MustRegister(searches, suggestions, results)
	return &SearchMetrics{
		searches:    searches,
		suggestions: suggestions,
		results:     results,
	}
}

// ObserveSearch records an outcome and, for matches, the store count.
func (m *SearchMetrics) ObserveSearch(outcome string, stores int) {
	if m == nil || m.searches == nil {
		return
	}
	m.searches.WithLabelValues(normalizeLabel(outcome)).Inc()
	if outcome == SearchOutcomeMatched {
		m.results.Observe(float64(stores))
	}
}

func (m *SearchMetrics) IncSuggestions() {
	if m == nil || m.suggestions == nil {
		return
	}
	m.suggestions.Inc()
}
