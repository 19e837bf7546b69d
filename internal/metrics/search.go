package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/entsearch/internal/domain/entity/kind"
)

const namespace = "entsearch"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Total number of search invocations",
		},
		[]string{"filter", "status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Time spent aggregating, ranking and highlighting one search",
			Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
		},
		[]string{"filter"},
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of items returned per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
		[]string{"filter"},
	)

	RecordsSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_skipped_total",
			Help:      "Upstream records dropped by adapters",
		},
		[]string{"kind"},
	)
)

var registerSearchOnce sync.Once

// RegisterSearchMetrics registers the search metrics with the default registry.
// Safe to call more than once.
func RegisterSearchMetrics() {
	registerSearchOnce.Do(func() {
		prometheus.MustRegister(SearchRequestsTotal)
		prometheus.MustRegister(SearchDuration)
		prometheus.MustRegister(SearchResults)
		prometheus.MustRegister(RecordsSkippedTotal)
	})
}

// SearchRecorder reports search outcomes to Prometheus.
type SearchRecorder struct{}

// NewSearchRecorder creates a recorder. Call RegisterSearchMetrics to expose its series.
func NewSearchRecorder() *SearchRecorder {
	return &SearchRecorder{}
}

// RecordsSkipped counts records an adapter dropped.
func (SearchRecorder) RecordsSkipped(k kind.Kind, n int) {
	RecordsSkippedTotal.WithLabelValues(kindLabel(k)).Add(float64(n))
}

// SearchCompleted records a successful search.
func (SearchRecorder) SearchCompleted(filter kind.Kind, returned int, elapsed time.Duration) {
	label := kindLabel(filter)
	SearchRequestsTotal.WithLabelValues(label, "ok").Inc()
	SearchDuration.WithLabelValues(label).Observe(elapsed.Seconds())
	SearchResults.WithLabelValues(label).Observe(float64(returned))
}

// SearchRejected records a search refused for an invalid filter.
func (SearchRecorder) SearchRejected() {
	SearchRequestsTotal.WithLabelValues("invalid", "rejected").Inc()
}

// kindLabel bounds label cardinality to the known kinds.
func kindLabel(k kind.Kind) string {
	if k.IsValidFilter() {
		return k.String()
	}
	return "other"
}
