// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

// Package metrics declares the Prometheus collectors exported by Movierec.
//
// All collectors are registered with the default registry through promauto
// and served on /metrics by the API router. Callers use the Record* helpers
// rather than touching the vectors directly so label sets stay consistent.
//
// # Families
//
//   - api_*: HTTP request counts, latency, in-flight gauge, rate-limit rejections
//   - recommendation_*: per-engine outcomes and latency
//   - artifact_*: model load latency, failures, loaded sizes
//   - result_cache_*: hit/miss counters per cache backend
//   - circuit_breaker_*: breaker state and transitions around artifact loads
package metrics
