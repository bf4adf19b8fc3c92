// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts API requests by route pattern, method and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "serralheria",
		Name:      "http_requests_total",
		Help:      "HTTP requests handled, by route, method and status code.",
	}, []string{"route", "method", "code"})

	// HTTPDuration observes request latency by route pattern.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "serralheria",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency, by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	// QuotesSaved counts successful quote saves.
	QuotesSaved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "serralheria",
		Name:      "quotes_saved_total",
		Help:      "Quotes saved, new or edited.",
	})

	// QuotesDeleted counts quote deletions.
	QuotesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "serralheria",
		Name:      "quotes_deleted_total",
		Help:      "Quotes deleted from the history.",
	})

	// QuotesStored is the number of quotes in the history.
	QuotesStored = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "serralheria",
		Name:      "quotes_stored",
		Help:      "Quotes currently in the history.",
	})

	// QuotedValue is the sum of stored quote totals, in reais.
	QuotedValue = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "serralheria",
		Name:      "quoted_value_reais",
		Help:      "Sum of the stored quote totals.",
	})

	// DocumentsExported counts generated documents by format (pdf, xlsx).
	DocumentsExported = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "serralheria",
		Name:      "documents_exported_total",
		Help:      "Documents generated, by format.",
	}, []string{"format"})
)

// ObserveHistory updates the history gauges.
func ObserveHistory(count int, totalQuoted float64) {
	QuotesStored.Set(float64(count))
	QuotedValue.Set(totalQuoted)
}
