// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

// Package metrics defines the Prometheus collectors exported at /metrics.
//
// Collectors are registered with the default registry through promauto.
// Callers should prefer the Record* helpers over touching collectors
// directly so label values stay consistent.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Catalog Metrics
	CatalogGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_generation_duration_seconds",
			Help:    "Time spent synthesizing catalog rows for one request",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"}, // "dynamic", "genre", "score"
	)

	CatalogRowsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_rows_generated_total",
			Help: "Total number of catalog rows returned",
		},
		[]string{"kind"}, // "loved", "watched", "genre", "static"
	)

	CatalogItemsScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_items_scored_total",
			Help: "Total number of library items run through the scorer",
		},
	)

	// Metadata Lookup Metrics
	MetadataLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metadata_lookups_total",
			Help: "Total number of genre lookups by media kind and result",
		},
		[]string{"kind", "result"}, // result: "success", "not_found", "unsupported", "error"
	)

	MetadataRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "metadata_request_duration_seconds",
			Help:    "Upstream metadata API latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "status"},
	)

	MetadataCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "metadata_cache_hits_total",
			Help: "Total number of metadata cache hits",
		},
	)

	MetadataCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "metadata_cache_misses_total",
			Help: "Total number of metadata cache misses",
		},
	)

	MetadataCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "metadata_cache_entries",
			Help: "Current number of cached metadata entries",
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

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCatalogGeneration records one synthesis run and the rows it produced.
func RecordCatalogGeneration(operation string, duration time.Duration, rowsByKind map[string]int) {
	CatalogGenerationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	for kind, n := range rowsByKind {
		if n > 0 {
			CatalogRowsGenerated.WithLabelValues(kind).Add(float64(n))
		}
	}
}

// RecordItemsScored counts items run through the scorer.
func RecordItemsScored(n int) {
	if n > 0 {
		CatalogItemsScored.Add(float64(n))
	}
}

// RecordMetadataLookup records the outcome of one genre lookup.
func RecordMetadataLookup(kind, result string) {
	MetadataLookups.WithLabelValues(kind, result).Inc()
}

// RecordMetadataRequest records one upstream metadata API call.
func RecordMetadataRequest(endpoint string, status int, duration time.Duration) {
	MetadataRequestDuration.WithLabelValues(endpoint, strconv.Itoa(status)).Observe(duration.Seconds())
}

// RecordMetadataCache records a cache hit or miss.
func RecordMetadataCache(hit bool) {
	if hit {
		MetadataCacheHits.Inc()
	} else {
		MetadataCacheMisses.Inc()
	}
}
