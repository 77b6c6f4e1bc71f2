package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics, served from /metrics. promauto registers each with the
// default registry at startup.
var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pairwatch_request_duration_seconds",
			Help:    "Time spent serving each HTTP request path",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		},
		[]string{"path"},
	)

	providerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pairwatch_provider_requests_total",
			Help: "Upstream provider calls by provider and result",
		},
		[]string{"provider", "result"},
	)

	providerBreakerOpen = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pairwatch_provider_breaker_open",
			Help: "1 while a provider's circuit breaker is open",
		},
		[]string{"provider"},
	)

	cacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pairwatch_cache_hits_total",
			Help: "Redis cache hits by cache key family",
		},
		[]string{"cache"},
	)

	cacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pairwatch_cache_misses_total",
			Help: "Redis cache misses by cache key family",
		},
		[]string{"cache"},
	)

	comparisonsBuilt = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pairwatch_comparisons_built_total",
			Help: "Pair comparisons computed from scratch (not served from cache)",
		},
	)

	marketOpenGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pairwatch_market_open",
			Help: "1 while the US equity market is open",
		},
	)
)
