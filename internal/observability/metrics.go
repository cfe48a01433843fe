// Package observability exposes the Prometheus metrics for the matching
// pipeline.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ScrapeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrape_requests_total",
			Help: "Marketplace fetches by platform and outcome",
		},
		[]string{"platform", "outcome"},
	)

	PairsScoredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pairs_scored_total",
			Help: "Cross-platform product pairs scored",
		},
	)

	WorkflowDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "workflow_duration_seconds",
			Help:    "End-to-end matching workflow duration",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	MatchConfidence = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_confidence_total",
			Help: "Best-match confidence bands observed per workflow",
		},
		[]string{"confidence"},
	)

	CacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_cache_hits_total",
			Help: "Record cache lookups by result",
		},
		[]string{"result"},
	)
)

// Register installs the collectors on the default registry. Call once at
// startup.
func Register() {
	prometheus.MustRegister(
		ScrapeRequestsTotal,
		PairsScoredTotal,
		WorkflowDuration,
		MatchConfidence,
		CacheHitsTotal,
	)
}

// Handler serves the metrics endpoint; mount it on the API router.
func Handler() http.Handler {
	return promhttp.Handler()
}
