// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation lookups by engine and outcome",
		},
		[]string{"engine", "outcome"}, // outcome: ok, missing_parameter, invalid_request, not_found, unavailable
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time spent producing recommendations",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"engine"},
	)

	// Artifact Metrics
	ArtifactLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "artifact_load_duration_seconds",
			Help:    "Duration of model artifact loads",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"artifact", "source"},
	)

	ArtifactLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artifact_load_errors_total",
			Help: "Total number of failed model artifact loads",
		},
		[]string{"artifact"},
	)

	ArtifactItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "artifact_items",
			Help: "Number of movies in the loaded artifact",
		},
		[]string{"artifact"},
	)

	// Result Cache Metrics
	ResultCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "result_cache_hits_total",
			Help: "Total number of recommendation result cache hits",
		},
		[]string{"backend"},
	)

	ResultCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "result_cache_misses_total",
			Help: "Total number of recommendation result cache misses",
		},
		[]string{"backend"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
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

	// Application Info
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "movierec_info",
			Help: "Build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records the outcome of one recommendation lookup.
func RecordRecommendation(engine, outcome string, duration time.Duration) {
	RecommendationRequests.WithLabelValues(engine, outcome).Inc()
	RecommendationDuration.WithLabelValues(engine).Observe(duration.Seconds())
}

// RecordArtifactLoad records a model load attempt. items is ignored on error.
func RecordArtifactLoad(artifact, source string, duration time.Duration, items int, err error) {
	ArtifactLoadDuration.WithLabelValues(artifact, source).Observe(duration.Seconds())
	if err != nil {
		ArtifactLoadErrors.WithLabelValues(artifact).Inc()
		return
	}
	ArtifactItems.WithLabelValues(artifact).Set(float64(items))
}

// RecordCacheLookup counts a result cache hit or miss for backend.
func RecordCacheLookup(backend string, hit bool) {
	if hit {
		ResultCacheHits.WithLabelValues(backend).Inc()
	} else {
		ResultCacheMisses.WithLabelValues(backend).Inc()
	}
}

// RecordBreakerTransition updates breaker state metrics.
// state follows gobreaker's numbering: 0 closed, 1 half-open, 2 open.
func RecordBreakerTransition(name, from, to string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}
