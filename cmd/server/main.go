// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

// Package main is the entry point for the movierec HTTP server.
//
// The server answers "movies like this one" lookups from two prebuilt
// artifacts: a content similarity matrix and a user rating table. Startup
// order:
//
//  1. Configuration (koanf: defaults, config.yaml, environment)
//  2. Logging (zerolog)
//  3. Artifact source (snapshot directory or DuckDB file) behind the
//     load-once artifact store
//  4. Correlation result cache (none, memory or badger)
//  5. Authentication (none or jwt)
//  6. chi router
//  7. Supervisor tree: artifact preload (data layer), HTTP server (api layer)
//
// SIGINT and SIGTERM cancel the tree; the HTTP server drains in-flight
// requests for up to server.shutdown_timeout.
//
//	export ARTIFACT_PATH=/srv/movierec/artifacts
//	export AUTH_MODE=jwt JWT_SECRET=...
//	./movierec-server
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/movierec/internal/api"
	"github.com/tomtom215/movierec/internal/auth"
	"github.com/tomtom215/movierec/internal/cache"
	"github.com/tomtom215/movierec/internal/config"
	"github.com/tomtom215/movierec/internal/logging"
	"github.com/tomtom215/movierec/internal/metrics"
	"github.com/tomtom215/movierec/internal/recommend"
	"github.com/tomtom215/movierec/internal/supervisor"
	"github.com/tomtom215/movierec/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// preloadTimeout bounds the startup warm-up of both artifacts.
const preloadTimeout = 5 * time.Minute

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(cfg.LoggingOptions())

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
	logging.Info().
		Str("version", version).
		Str("artifact_source", cfg.Artifacts.Source).
		Str("cache_backend", cfg.Cache.Backend).
		Str("auth_mode", cfg.Security.AuthMode).
		Msg("Starting movierec")

	store := recommend.NewArtifactStore(cfg.ArtifactSource(), cfg.RecommendationConfig(), logging.WithComponent("artifacts"))

	resultCache, err := cache.Open(cfg.CacheOptions())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open result cache")
	}
	defer func() {
		if resultCache == nil {
			return
		}
		if err := resultCache.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing result cache")
		}
	}()

	var opts []recommend.ServiceOption
	if resultCache != nil {
		opts = append(opts, recommend.WithResultCache(resultCache))
	}
	svc, err := recommend.NewService(store, cfg.RecommendationConfig(), logging.WithComponent("recommend"), opts...)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation service")
	}

	authMiddleware := newAuthMiddleware(cfg)

	router := api.NewRouter(
		api.NewHandler(svc, store, version, cfg.Server.Timeout),
		api.NewChiMiddleware(&api.ChiMiddlewareConfig{
			CORSAllowedOrigins: cfg.Security.CORSOrigins,
			CORSMaxAge:         86400,
			RateLimitRequests:  cfg.Security.RateLimitReqs,
			RateLimitWindow:    cfg.Security.RateLimitWindow,
			RateLimitDisabled:  cfg.Security.RateLimitDisabled,
		}),
		authMiddleware,
	)
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if cfg.Artifacts.Preload {
		tree.AddDataService(services.NewArtifactPreloadService(store, preloadTimeout, logging.WithComponent("supervisor")))
	} else {
		logging.Info().Msg("Artifact preload disabled, models load on first lookup")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, s := range unstopped {
		logging.Warn().Str("service", s.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("movierec stopped")
}

// newAuthMiddleware builds bearer-token verification for jwt mode.
func newAuthMiddleware(cfg *config.Config) *auth.Middleware {
	if cfg.Security.AuthMode != auth.AuthModeJWT {
		logging.Warn().Msg("Authentication is DISABLED (AUTH_MODE=none), all endpoints are public")
		return auth.NewMiddleware(nil, auth.AuthModeNone)
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}
	logging.Info().Msg("JWT authentication enabled")
	return auth.NewMiddleware(jwtManager, auth.AuthModeJWT)
}
