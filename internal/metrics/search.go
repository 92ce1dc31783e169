package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pawfect"

// Search outcomes.
const (
	OutcomeHit   = "hit"   // at least one result
	OutcomeEmpty = "empty" // valid search, no results
	OutcomeError = "error"
)

// Search and index Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Total number of product searches",
		},
		[]string{"category", "outcome"},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Product search duration in seconds",
			Buckets:   []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	IndexDocuments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_documents",
			Help:      "Number of products in the active index",
		},
	)

	IndexVocabularySize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_vocabulary_size",
			Help:      "Number of terms in the active vocabulary",
		},
	)

	IndexReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "index_reloads_total",
			Help:      "Index fits by result",
		},
		[]string{"status"}, // "ok" / "error"
	)

	LoginAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by result",
		},
		[]string{"result"}, // "ok" / "rejected"
	)
)

var registerOnce sync.Once

// Register registers all metrics with the default registry. Call once from main.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			SearchRequestsTotal,
			SearchDuration,
			SearchResults,
			IndexDocuments,
			IndexVocabularySize,
			IndexReloadsTotal,
			LoginAttemptsTotal,
		)
	})
}

// ObserveSearch records one search.
func ObserveSearch(category, outcome string, results int, elapsed time.Duration) {
	SearchRequestsTotal.WithLabelValues(category, outcome).Inc()
	SearchDuration.Observe(elapsed.Seconds())
	if outcome != OutcomeError {
		SearchResults.Observe(float64(results))
	}
}

// ObserveIndex records the size of a newly active index.
func ObserveIndex(documents, vocabulary int) {
	IndexDocuments.Set(float64(documents))
	IndexVocabularySize.Set(float64(vocabulary))
}
