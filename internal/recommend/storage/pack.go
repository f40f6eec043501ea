// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package storage

import (
	"context"
	"fmt"

	"github.com/tomtom215/movierec/internal/recommend"
)

// Pack reads both models from src, validates them and saves each as a new
// snapshot version in store. Nothing is written unless both models load and
// validate.
func Pack(ctx context.Context, src recommend.ArtifactSource, store *Store) ([]ModelMetadata, error) {
	sim, _, err := src.LoadSimilarity(ctx)
	if err != nil {
		return nil, fmt.Errorf("read similarity model: %w", err)
	}
	if err := sim.Validate(); err != nil {
		return nil, fmt.Errorf("invalid similarity model: %w", err)
	}

	cor, _, err := src.LoadCorrelation(ctx)
	if err != nil {
		return nil, fmt.Errorf("read correlation model: %w", err)
	}
	if err := cor.Validate(); err != nil {
		return nil, fmt.Errorf("invalid correlation model: %w", err)
	}

	simMeta, err := store.Save(ctx, SimilarityName, 0, sim, ModelMetadata{
		Source:     src.Kind(),
		MovieCount: len(sim.Movies),
	})
	if err != nil {
		return nil, fmt.Errorf("save similarity snapshot: %w", err)
	}

	corMeta, err := store.Save(ctx, CorrelationName, 0, cor, ModelMetadata{
		Source:     src.Kind(),
		MovieCount: len(cor.Titles),
		UserCount:  cor.Users(),
	})
	if err != nil {
		return nil, fmt.Errorf("save correlation snapshot: %w", err)
	}

	return []ModelMetadata{simMeta, corMeta}, nil
}
