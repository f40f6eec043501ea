// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

/*
Package config loads and validates the service configuration.

Configuration is layered with koanf, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: CONFIG_PATH, ./config.yaml, /etc/movierec/config.yaml
 3. Environment variables mapped through envTransformFunc

# Sections

  - server: listen address and timeouts (HTTP_PORT, HTTP_HOST)
  - artifacts: where models are read from (ARTIFACT_SOURCE, ARTIFACT_PATH, DUCKDB_PATH)
  - recommend: ranking and load breaker tuning (TOP_K, MIN_RATINGS)
  - cache: correlation result cache (CACHE_BACKEND, CACHE_TTL, CACHE_PATH)
  - security: identity, CORS and rate limiting (AUTH_MODE, JWT_SECRET)
  - logging: zerolog level and format (LOG_LEVEL, LOG_FORMAT, LOG_CALLER)

Unknown environment variables are ignored.

# Example

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    log.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
