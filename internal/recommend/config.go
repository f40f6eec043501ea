// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package recommend

import (
	"fmt"
	"time"
)

// Config contains the ranking and artifact-guard parameters.
type Config struct {
	// TopK is the number of results returned per request.
	TopK int

	// MinRatings is the exclusive lower bound on a column's rating count for
	// it to appear in correlation results.
	MinRatings int

	// BreakerFailures is the number of consecutive load failures that opens
	// the artifact circuit breaker.
	BreakerFailures uint32

	// BreakerTimeout is how long the breaker stays open before a trial load.
	BreakerTimeout time.Duration

	// CacheTTL bounds the lifetime of cached correlation results.
	CacheTTL time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		TopK:            5,
		MinRatings:      100,
		BreakerFailures: 3,
		BreakerTimeout:  30 * time.Second,
		CacheTTL:        time.Hour,
	}
}

// Validate checks the configuration for invalid values.
//
//nolint:gocritic // value receiver keeps Config a plain value type
func (c Config) Validate() error {
	if c.TopK < 1 {
		return fmt.Errorf("top_k must be at least 1, got %d", c.TopK)
	}
	if c.MinRatings < 0 {
		return fmt.Errorf("min_ratings must be non-negative, got %d", c.MinRatings)
	}
	if c.BreakerFailures < 1 {
		return fmt.Errorf("breaker_failures must be at least 1")
	}
	if c.BreakerTimeout <= 0 {
		return fmt.Errorf("breaker_timeout must be positive")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must be non-negative")
	}
	return nil
}
