// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

/*
Package middleware provides chi-compatible HTTP middleware.

  - RequestID: X-Request-ID propagation and logging context
  - PrometheusMetrics: request counters and latency histograms keyed by route pattern
  - AccessLog: one structured zerolog line per request
  - Compression: gzip for clients that accept it

All middleware has the func(http.Handler) http.Handler shape used by chi.Router.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
