// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/movierec/internal/metrics"
)

// ArtifactSource reads model artifacts from persistent storage.
// Implementations must return either a complete model or an error.
type ArtifactSource interface {
	// Kind names the storage backend ("snapshot", "duckdb").
	Kind() string
	LoadSimilarity(ctx context.Context) (*SimilarityModel, ArtifactInfo, error)
	LoadCorrelation(ctx context.Context) (*CorrelationModel, ArtifactInfo, error)
}

// ArtifactStore owns the process-wide model state. Each model is loaded at
// most once successfully and then shared read-only; failed loads are not
// cached. Loads go through a per-model circuit breaker so that a broken
// artifact location is not hammered by every request.
type ArtifactStore struct {
	source ArtifactSource
	logger zerolog.Logger

	similarity  atomic.Pointer[SimilarityArtifacts]
	correlation atomic.Pointer[CorrelationArtifacts]
	simMu       sync.Mutex
	corMu       sync.Mutex

	simBreaker *gobreaker.CircuitBreaker[*SimilarityArtifacts]
	corBreaker *gobreaker.CircuitBreaker[*CorrelationArtifacts]
}

// NewArtifactStore creates a store reading from source.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewArtifactStore(source ArtifactSource, cfg Config, logger zerolog.Logger) *ArtifactStore {
	return &ArtifactStore{
		source:     source,
		logger:     logger.With().Str("component", "artifacts").Str("source", source.Kind()).Logger(),
		simBreaker: gobreaker.NewCircuitBreaker[*SimilarityArtifacts](breakerSettings("artifact-similarity", cfg, logger)),
		corBreaker: gobreaker.NewCircuitBreaker[*CorrelationArtifacts](breakerSettings("artifact-correlation", cfg, logger)),
	}
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func breakerSettings(name string, cfg Config, logger zerolog.Logger) gobreaker.Settings {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	failures := cfg.BreakerFailures
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// A caller giving up says nothing about storage health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("Artifact circuit breaker state change")
			metrics.RecordBreakerTransition(name, from.String(), to.String(), int(to))
		},
	}
}

// LoadSimilarityArtifacts returns the similarity model and its title index,
// loading them on first use.
func (s *ArtifactStore) LoadSimilarityArtifacts(ctx context.Context) (*SimilarityArtifacts, error) {
	return loadOnce(ctx, &s.similarity, &s.simMu, s.simBreaker, string(EngineSimilarity), s.loadSimilarity)
}

// LoadCorrelationArtifacts returns the rating model and its cleaned title
// index, loading them on first use.
func (s *ArtifactStore) LoadCorrelationArtifacts(ctx context.Context) (*CorrelationArtifacts, error) {
	return loadOnce(ctx, &s.correlation, &s.corMu, s.corBreaker, string(EngineCorrelation), s.loadCorrelation)
}

func loadOnce[T any](
	ctx context.Context,
	slot *atomic.Pointer[T],
	mu *sync.Mutex,
	cb *gobreaker.CircuitBreaker[*T],
	name string,
	load func(context.Context) (*T, error),
) (*T, error) {
	if a := slot.Load(); a != nil {
		return a, nil
	}

	mu.Lock()
	defer mu.Unlock()
	if a := slot.Load(); a != nil {
		return a, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load %s artifacts: %w", name, err)
	}

	a, err := cb.Execute(func() (*T, error) { return load(ctx) })
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %s artifacts: %w", ErrArtifactUnavailable, name, err)
		}
		return nil, err
	}
	slot.Store(a)
	return a, nil
}

func (s *ArtifactStore) loadSimilarity(ctx context.Context) (*SimilarityArtifacts, error) {
	start := time.Now()
	model, info, err := s.source.LoadSimilarity(ctx)
	if err == nil {
		err = model.Validate()
	}
	if err != nil {
		metrics.RecordArtifactLoad(string(EngineSimilarity), s.source.Kind(), time.Since(start), 0, err)
		if ctx.Err() != nil {
			return nil, fmt.Errorf("load similarity artifacts: %w", err)
		}
		s.logger.Error().Err(err).Msg("Similarity artifacts unavailable")
		return nil, fmt.Errorf("%w: load similarity artifacts: %w", ErrArtifactUnavailable, err)
	}

	info.Name = string(EngineSimilarity)
	info.Source = s.source.Kind()
	info.Movies = len(model.Movies)
	info.LoadedAt = time.Now().UTC()
	a := NewSimilarityArtifacts(model, info)

	metrics.RecordArtifactLoad(info.Name, info.Source, time.Since(start), info.Movies, nil)
	s.logger.Info().
		Int("movies", info.Movies).
		Int("index_keys", a.Index.Len()).
		Int("version", info.Version).
		Dur("duration", time.Since(start)).
		Msg("Similarity artifacts loaded")
	return a, nil
}

func (s *ArtifactStore) loadCorrelation(ctx context.Context) (*CorrelationArtifacts, error) {
	start := time.Now()
	model, info, err := s.source.LoadCorrelation(ctx)
	if err == nil {
		err = model.Validate()
	}
	if err != nil {
		metrics.RecordArtifactLoad(string(EngineCorrelation), s.source.Kind(), time.Since(start), 0, err)
		if ctx.Err() != nil {
			return nil, fmt.Errorf("load correlation artifacts: %w", err)
		}
		s.logger.Error().Err(err).Msg("Correlation artifacts unavailable")
		return nil, fmt.Errorf("%w: load correlation artifacts: %w", ErrArtifactUnavailable, err)
	}

	info.Name = string(EngineCorrelation)
	info.Source = s.source.Kind()
	info.Movies = len(model.Titles)
	info.Users = model.Users()
	info.LoadedAt = time.Now().UTC()
	a := NewCorrelationArtifacts(model, info)

	metrics.RecordArtifactLoad(info.Name, info.Source, time.Since(start), info.Movies, nil)
	s.logger.Info().
		Int("movies", info.Movies).
		Int("users", info.Users).
		Int("index_keys", a.Index.Len()).
		Int("version", info.Version).
		Dur("duration", time.Since(start)).
		Msg("Correlation artifacts loaded")
	return a, nil
}

// Loaded reports whether both models are resident.
func (s *ArtifactStore) Loaded() bool {
	return s.similarity.Load() != nil && s.correlation.Load() != nil
}

// Status returns the info of every resident model.
func (s *ArtifactStore) Status() []ArtifactInfo {
	var out []ArtifactInfo
	if a := s.similarity.Load(); a != nil {
		out = append(out, a.Info)
	}
	if a := s.correlation.Load(); a != nil {
		out = append(out, a.Info)
	}
	return out
}

// Preload loads both models and joins their errors.
func (s *ArtifactStore) Preload(ctx context.Context) error {
	_, simErr := s.LoadSimilarityArtifacts(ctx)
	_, corErr := s.LoadCorrelationArtifacts(ctx)
	return errors.Join(simErr, corErr)
}
