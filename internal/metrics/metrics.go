// Package metrics exposes Prometheus counters for the ingestion pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the pipeline's Prometheus collectors.
type Metrics struct {
	ArticlesProcessed prometheus.Counter
	IncidentsCreated  prometheus.Counter
	ArticlesFiltered  prometheus.Counter
	DuplicatesSkipped prometheus.Counter
	FallbacksEngaged  prometheus.Counter
	SourceErrors      prometheus.Counter
}

// New registers the pipeline collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ArticlesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "monitor_articles_processed_total",
			Help: "Articles fetched and classified across all runs.",
		}),
		IncidentsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "monitor_incidents_created_total",
			Help: "Incidents accepted and persisted.",
		}),
		ArticlesFiltered: factory.NewCounter(prometheus.CounterOpts{
			Name: "monitor_articles_filtered_total",
			Help: "Articles rejected by the acceptance policy.",
		}),
		DuplicatesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "monitor_duplicates_skipped_total",
			Help: "Candidates suppressed as near-duplicates.",
		}),
		FallbacksEngaged: factory.NewCounter(prometheus.CounterOpts{
			Name: "monitor_classifier_fallbacks_total",
			Help: "Classifications decided by the keyword fallback.",
		}),
		SourceErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "monitor_source_errors_total",
			Help: "Sources whose listing fetch failed.",
		}),
	}
}

// NewNop returns metrics backed by a throwaway registry, for tests and
// callers that do not expose /metrics.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
