// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/movierec/internal/cache"
	"github.com/tomtom215/movierec/internal/logging"
	"github.com/tomtom215/movierec/internal/metrics"
	"github.com/tomtom215/movierec/internal/validation"
)

// Service answers recommendation requests. It is safe for concurrent use.
type Service struct {
	store       *ArtifactStore
	similarity  SimilarityRecommender
	correlation CorrelationRecommender
	results     cache.Store
	logger      zerolog.Logger
}

// ServiceOption configures optional Service behaviour.
type ServiceOption func(*Service)

// WithResultCache caches correlation results in c.
func WithResultCache(c cache.Store) ServiceOption {
	return func(s *Service) { s.results = c }
}

// NewService creates the façade over store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(store *ArtifactStore, cfg Config, logger zerolog.Logger, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("artifact store is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}

	s := &Service{
		store:       store,
		similarity:  SimilarityRecommender{TopK: cfg.TopK},
		correlation: CorrelationRecommender{TopK: cfg.TopK, MinRatings: cfg.MinRatings},
		logger:      logger.With().Str("component", "recommend").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Store returns the artifact store backing the service.
func (s *Service) Store() *ArtifactStore {
	return s.store
}

// GetRecommendations validates req, resolves its query with the selected
// engine's title index and ranks related movies.
func (s *Service) GetRecommendations(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	res, err := s.getRecommendations(ctx, req)
	metrics.RecordRecommendation(string(req.Engine), outcome(err), time.Since(start))

	if err != nil && errors.Is(err, ErrArtifactUnavailable) {
		logging.Ctx(ctx).Error().Err(err).Str("engine", string(req.Engine)).Msg("Recommendation failed")
	}
	return res, err
}

func (s *Service) getRecommendations(ctx context.Context, req Request) (*Result, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("%w: query", ErrMissingParameter)
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, verr.Error())
	}

	switch req.Engine {
	case EngineSimilarity:
		return s.recommendSimilar(ctx, req.Query)
	case EngineCorrelation:
		return s.recommendCorrelated(ctx, req.Query)
	default:
		return nil, fmt.Errorf("%w: unsupported engine %q", ErrInvalidRequest, req.Engine)
	}
}

func (s *Service) recommendSimilar(ctx context.Context, query string) (*Result, error) {
	a, err := s.store.LoadSimilarityArtifacts(ctx)
	if err != nil {
		return nil, err
	}
	ref, err := a.Index.Resolve(query)
	if err != nil {
		return nil, err
	}
	titles, err := s.similarity.Recommend(a, ref)
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().Str("title", ref.Title).Int("results", len(titles)).Msg("Similarity recommendations")
	return &Result{Engine: EngineSimilarity, Titles: titles}, nil
}

func (s *Service) recommendCorrelated(ctx context.Context, query string) (*Result, error) {
	a, err := s.store.LoadCorrelationArtifacts(ctx)
	if err != nil {
		return nil, err
	}
	ref, err := a.Index.Resolve(query)
	if err != nil {
		return nil, err
	}

	key := s.correlationKey(a, ref)
	if cached, ok := s.cachedCorrelations(ctx, key); ok {
		return &Result{Engine: EngineCorrelation, Correlations: cached}, nil
	}

	movies, err := s.correlation.Recommend(a, ref)
	if err != nil {
		return nil, err
	}
	s.storeCorrelations(ctx, key, movies)

	logging.Ctx(ctx).Debug().Str("title", ref.Title).Int("results", len(movies)).Msg("Correlation recommendations")
	return &Result{Engine: EngineCorrelation, Correlations: movies}, nil
}

func (s *Service) correlationKey(a *CorrelationArtifacts, ref TitleRef) string {
	return cache.GenerateKey(string(EngineCorrelation), map[string]interface{}{
		"checksum":    a.Info.Checksum,
		"column":      ref.Index,
		"min_ratings": s.correlation.MinRatings,
		"top_k":       s.correlation.TopK,
	})
}

func (s *Service) cachedCorrelations(ctx context.Context, key string) ([]CorrelatedMovie, bool) {
	if s.results == nil {
		return nil, false
	}
	data, ok := s.results.Get(ctx, key)
	metrics.RecordCacheLookup(s.results.Backend(), ok)
	if !ok {
		return nil, false
	}
	var movies []CorrelatedMovie
	if err := json.Unmarshal(data, &movies); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Discarding undecodable cached result")
		return nil, false
	}
	return movies, true
}

func (s *Service) storeCorrelations(ctx context.Context, key string, movies []CorrelatedMovie) {
	if s.results == nil {
		return
	}
	data, err := json.Marshal(movies)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Encode result for cache")
		return
	}
	s.results.Set(ctx, key, data)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMissingParameter):
		return "missing_parameter"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrArtifactUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
