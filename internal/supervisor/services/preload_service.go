// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// Preloader loads every model the service needs. *recommend.ArtifactStore
// satisfies it.
type Preloader interface {
	Preload(ctx context.Context) error
}

// ArtifactPreloadService warms the artifact store at startup.
//
// It runs once. Success and failure both return suture.ErrDoNotRestart:
// a failed preload is not retried here because every lookup retries the
// load on its own.
type ArtifactPreloadService struct {
	store   Preloader
	timeout time.Duration
	logger  zerolog.Logger
	name    string
	done    chan struct{}
	err     error
}

// NewArtifactPreloadService creates the preload service. A zero timeout
// leaves the load bounded only by the supervisor context.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewArtifactPreloadService(store Preloader, timeout time.Duration, logger zerolog.Logger) *ArtifactPreloadService {
	return &ArtifactPreloadService{
		store:   store,
		timeout: timeout,
		logger:  logger.With().Str("service", "artifact-preload").Logger(),
		name:    "artifact-preload",
		done:    make(chan struct{}),
	}
}

// Serve implements suture.Service.
func (s *ArtifactPreloadService) Serve(ctx context.Context) error {
	select {
	case <-s.done:
		return suture.ErrDoNotRestart
	default:
	}

	loadCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	s.logger.Info().Msg("preloading recommendation artifacts")

	err := s.store.Preload(loadCtx)
	if err != nil {
		s.logger.Warn().Err(err).Dur("duration", time.Since(start)).
			Msg("artifact preload failed, lookups will load on demand")
	} else {
		s.logger.Info().Dur("duration", time.Since(start)).Msg("artifacts preloaded")
	}

	s.err = err
	close(s.done)
	return suture.ErrDoNotRestart
}

// Done is closed once the preload attempt has finished.
func (s *ArtifactPreloadService) Done() <-chan struct{} {
	return s.done
}

// Err returns the preload error. Only meaningful after Done is closed.
func (s *ArtifactPreloadService) Err() error {
	<-s.done
	return s.err
}

// String names the service in supervisor events.
func (s *ArtifactPreloadService) String() string {
	return s.name
}
