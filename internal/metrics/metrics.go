// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the discovery pipeline:
// - Provider (TMDB) request latency, outcomes, and rate limiter waits
// - Circuit breaker state and transitions
// - Discovery run outcomes by provenance
// - Quality gate accept/reject counts
// - Result cache and room catalog store efficiency

var (
	// Provider Metrics
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "Total number of metadata provider requests",
		},
		[]string{"endpoint", "outcome"}, // outcome: "success", "retryable_error", "fatal_error"
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_request_duration_seconds",
			Help:    "Duration of metadata provider requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	ProviderRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_retries_total",
			Help: "Total number of provider request retries",
		},
		[]string{"endpoint"},
	)

	ProviderRateLimitWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "provider_rate_limit_wait_seconds",
			Help:    "Time spent waiting on the provider rate limiter",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Discovery Run Metrics
	DiscoveryRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_runs_total",
			Help: "Total number of discovery runs by result provenance",
		},
		[]string{"provenance"}, // "api", "mixed_with_fallback", "emergency_fallback", "empty"
	)

	DiscoveryRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "discovery_run_duration_seconds",
			Help:    "End-to-end duration of discovery runs in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	DiscoveryTierPages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_tier_pages_total",
			Help: "Total number of provider pages fetched per discovery tier",
		},
		[]string{"tier"}, // "1", "2", "3"
	)

	// Quality Gate Metrics
	CandidatesAccepted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "candidates_accepted_total",
			Help: "Total number of candidates accepted by the quality gate",
		},
		[]string{"tier"},
	)

	CandidatesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "candidates_rejected_total",
			Help: "Total number of candidates rejected by the quality gate",
		},
		[]string{"reason"},
	)

	// Result Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "result_cache_hits_total",
			Help: "Total number of result cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "result_cache_misses_total",
			Help: "Total number of result cache misses",
		},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "result_cache_evictions_total",
			Help: "Total number of result cache evictions",
		},
		[]string{"cause"}, // "expired", "capacity"
	)

	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "result_cache_entries",
			Help: "Current number of cached result batches",
		},
	)

	// Room Catalog Store Metrics
	CatalogOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_store_operations_total",
			Help: "Total number of room catalog store operations",
		},
		[]string{"operation", "outcome"}, // operation: "store", "get", "clear", "page"
	)

	CatalogOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_store_operation_duration_seconds",
			Help:    "Duration of room catalog store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// RecordProviderRequest records one provider call with its outcome and latency.
func RecordProviderRequest(endpoint, outcome string, duration time.Duration) {
	ProviderRequests.WithLabelValues(endpoint, outcome).Inc()
	ProviderRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordCatalogOp records one room catalog store operation.
func RecordCatalogOp(operation string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	CatalogOps.WithLabelValues(operation, outcome).Inc()
	CatalogOpDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordDiscoveryRun records one completed discovery run.
func RecordDiscoveryRun(provenance string, duration time.Duration) {
	DiscoveryRuns.WithLabelValues(provenance).Inc()
	DiscoveryRunDuration.Observe(duration.Seconds())
}
