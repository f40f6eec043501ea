// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/movierec/internal/cache"
)

const minJWTSecretLength = 32

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateArtifacts(); err != nil {
		return err
	}
	if err := c.RecommendationConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateArtifacts() error {
	switch c.Artifacts.Source {
	case SourceSnapshot:
		if c.Artifacts.Path == "" {
			return fmt.Errorf("ARTIFACT_PATH is required when ARTIFACT_SOURCE=snapshot")
		}
	case SourceDuckDB:
		if c.Artifacts.DuckDBPath == "" {
			return fmt.Errorf("DUCKDB_PATH is required when ARTIFACT_SOURCE=duckdb")
		}
	default:
		return fmt.Errorf("ARTIFACT_SOURCE must be one of: snapshot, duckdb (got %q)", c.Artifacts.Source)
	}
	if c.Artifacts.SimilarityVersion < 0 || c.Artifacts.CorrelationVersion < 0 {
		return fmt.Errorf("snapshot versions must be non-negative")
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case cache.BackendNone:
		return nil
	case cache.BackendMemory:
	case cache.BackendBadger:
		if c.Cache.Path == "" {
			return fmt.Errorf("CACHE_PATH is required when CACHE_BACKEND=badger")
		}
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of: none, memory, badger (got %q)", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when caching is enabled")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	switch c.Security.AuthMode {
	case "none":
	case "jwt":
		if err := c.validateJWTSecret(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("AUTH_MODE must be one of: none, jwt (got %q)", c.Security.AuthMode)
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}

	if c.IsProduction() {
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain '*' in production")
			}
		}
	}
	return nil
}

func (c *Config) validateJWTSecret() error {
	secret := c.Security.JWTSecret
	if secret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_MODE=jwt")
	}
	if len(secret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	upper := strings.ToUpper(secret)
	for _, p := range []string{"REPLACE", "CHANGEME", "YOUR_SECRET"} {
		if strings.Contains(upper, p) {
			return fmt.Errorf("JWT_SECRET looks like a placeholder value")
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
