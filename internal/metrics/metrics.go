package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmrec_recommendation_requests_total",
			Help: "Recommendation requests by outcome (ok, empty)",
		},
		[]string{"outcome"},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "filmrec_recommendation_duration_seconds",
			Help:    "Time spent scoring and ranking one request",
			Buckets: prometheus.DefBuckets,
		},
	)

	StrategyStarved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmrec_strategy_starved_total",
			Help: "Strategies that produced no candidates for a request",
		},
		[]string{"strategy"},
	)

	IncompleteProfiles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filmrec_incomplete_profiles_total",
			Help: "Requests served from a partially fetched profile",
		},
	)

	// Catalog Metrics
	CatalogFilms = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "filmrec_catalog_films",
			Help: "Films in the live catalog snapshot",
		},
	)

	CatalogRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filmrec_catalog_rejected_records_total",
			Help: "Catalog records rejected by validation",
		},
	)

	CatalogSeedFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filmrec_catalog_seed_fallbacks_total",
			Help: "Catalog builds that fell back to the built-in seed films",
		},
	)

	// Cache Store Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filmrec_cache_hits_total",
			Help: "Cache store reads that found a fresh entry",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filmrec_cache_misses_total",
			Help: "Cache store reads that found nothing or an expired entry",
		},
	)

	CacheSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filmrec_cache_swept_entries_total",
			Help: "Expired entries removed by sweep",
		},
	)

	CacheCorrupt = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filmrec_cache_corrupt_entries_total",
			Help: "Persisted entries skipped at load because they could not be decoded",
		},
	)
)
