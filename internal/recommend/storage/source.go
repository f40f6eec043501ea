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

// Snapshot series names.
const (
	SimilarityName  = "similarity"
	CorrelationName = "correlation"
)

// SnapshotSource reads models from a snapshot Store.
type SnapshotSource struct {
	dir string

	// Pinned versions; 0 means latest.
	SimilarityVersion  int
	CorrelationVersion int
}

// NewSnapshotSource reads snapshots from dir. The directory is rescanned on
// every load so that snapshots published after startup are picked up by the
// first successful load.
func NewSnapshotSource(dir string) *SnapshotSource {
	return &SnapshotSource{dir: dir}
}

// Kind implements recommend.ArtifactSource.
func (s *SnapshotSource) Kind() string { return "snapshot" }

// LoadSimilarity implements recommend.ArtifactSource.
func (s *SnapshotSource) LoadSimilarity(ctx context.Context) (*recommend.SimilarityModel, recommend.ArtifactInfo, error) {
	var model recommend.SimilarityModel
	info, err := s.load(ctx, SimilarityName, s.SimilarityVersion, &model)
	if err != nil {
		return nil, recommend.ArtifactInfo{}, err
	}
	return &model, info, nil
}

// LoadCorrelation implements recommend.ArtifactSource.
func (s *SnapshotSource) LoadCorrelation(ctx context.Context) (*recommend.CorrelationModel, recommend.ArtifactInfo, error) {
	var model recommend.CorrelationModel
	info, err := s.load(ctx, CorrelationName, s.CorrelationVersion, &model)
	if err != nil {
		return nil, recommend.ArtifactInfo{}, err
	}
	return &model, info, nil
}

func (s *SnapshotSource) load(ctx context.Context, name string, version int, target interface{}) (recommend.ArtifactInfo, error) {
	store, err := OpenStore(s.dir)
	if err != nil {
		return recommend.ArtifactInfo{}, err
	}
	meta, err := store.Load(ctx, name, version, target)
	if err != nil {
		return recommend.ArtifactInfo{}, fmt.Errorf("load %s snapshot: %w", name, err)
	}
	return recommend.ArtifactInfo{Version: meta.Version, Checksum: meta.Checksum}, nil
}
