// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/movierec/internal/cache"
	"github.com/tomtom215/movierec/internal/logging"
	"github.com/tomtom215/movierec/internal/recommend"
	"github.com/tomtom215/movierec/internal/recommend/storage"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cache     CacheConfig     `koanf:"cache"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development or production
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Artifact source kinds.
const (
	SourceSnapshot = "snapshot"
	SourceDuckDB   = "duckdb"
)

// ArtifactsConfig selects where the models are read from.
type ArtifactsConfig struct {
	Source     string `koanf:"source"`      // snapshot or duckdb
	Path       string `koanf:"path"`        // snapshot directory
	DuckDBPath string `koanf:"duckdb_path"` // database file for the duckdb source
	Preload    bool   `koanf:"preload"`     // load both models at startup

	// Pinned snapshot versions; 0 loads the latest.
	SimilarityVersion  int `koanf:"similarity_version"`
	CorrelationVersion int `koanf:"correlation_version"`
}

// RecommendConfig tunes ranking and artifact loading.
type RecommendConfig struct {
	TopK            int           `koanf:"top_k"`
	MinRatings      int           `koanf:"min_ratings"`
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// CacheConfig configures the correlation result cache.
type CacheConfig struct {
	Backend string        `koanf:"backend"` // none, memory or badger
	TTL     time.Duration `koanf:"ttl"`
	Path    string        `koanf:"path"` // badger directory
}

// SecurityConfig holds identity, CORS and rate limit settings.
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"` // none or jwt
	JWTSecret         string        `koanf:"jwt_secret"`
	JWTIssuer         string        `koanf:"jwt_issuer"` // optional expected iss claim
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// RecommendationConfig converts the recommend and cache sections into the
// engine configuration.
func (c *Config) RecommendationConfig() recommend.Config {
	return recommend.Config{
		TopK:            c.Recommend.TopK,
		MinRatings:      c.Recommend.MinRatings,
		BreakerFailures: c.Recommend.BreakerFailures,
		BreakerTimeout:  c.Recommend.BreakerTimeout,
		CacheTTL:        c.Cache.TTL,
	}
}

// CacheOptions converts the cache section into cache.Options.
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend: c.Cache.Backend,
		TTL:     c.Cache.TTL,
		Path:    c.Cache.Path,
	}
}

// LoggingOptions converts the logging section into logging.Config.
func (c *Config) LoggingOptions() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	return cfg
}

// ArtifactSource builds the configured model source.
func (c *Config) ArtifactSource() recommend.ArtifactSource {
	if c.Artifacts.Source == SourceDuckDB {
		return storage.NewDuckDBSource(c.Artifacts.DuckDBPath)
	}
	src := storage.NewSnapshotSource(c.Artifacts.Path)
	src.SimilarityVersion = c.Artifacts.SimilarityVersion
	src.CorrelationVersion = c.Artifacts.CorrelationVersion
	return src
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
