// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package recommend

import (
	"fmt"
	"sort"
)

// SimilarityArtifacts is a loaded similarity model together with its index.
type SimilarityArtifacts struct {
	Model *SimilarityModel
	Index *TitleIndex
	Info  ArtifactInfo
}

// NewSimilarityArtifacts indexes model by lower-cased title in movie table order.
func NewSimilarityArtifacts(model *SimilarityModel, info ArtifactInfo) *SimilarityArtifacts {
	refs := make([]TitleRef, len(model.Movies))
	for i, mv := range model.Movies {
		refs[i] = TitleRef{Title: mv.Title, Index: mv.RowIndex}
	}
	return &SimilarityArtifacts{
		Model: model,
		Index: NewTitleIndex(LowerTitle, refs),
		Info:  info,
	}
}

// SimilarityRecommender ranks movies by their similarity row.
type SimilarityRecommender struct {
	TopK int
}

type scoredIndex struct {
	index int
	score float64
}

// Recommend returns up to TopK titles most similar to ref.
//
// The query row is paired with column indices and stable-sorted by
// descending score, so equal scores keep the lower index first. The first
// ranked entry is the query movie itself and is skipped.
func (r SimilarityRecommender) Recommend(a *SimilarityArtifacts, ref TitleRef) ([]string, error) {
	if ref.Index < 0 || ref.Index >= len(a.Model.Scores) {
		return nil, fmt.Errorf("%w: row %d outside similarity matrix", ErrNotFound, ref.Index)
	}

	row := a.Model.Scores[ref.Index]
	ranked := make([]scoredIndex, len(row))
	for i, s := range row {
		ranked[i] = scoredIndex{index: i, score: s}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) <= 1 {
		return []string{}, nil
	}
	ranked = ranked[1:]
	if len(ranked) > r.TopK {
		ranked = ranked[:r.TopK]
	}

	titles := make([]string, 0, len(ranked))
	for _, si := range ranked {
		title, ok := a.Index.TitleAt(si.index)
		if !ok {
			return nil, fmt.Errorf("%w: row %d has no movie", ErrNotFound, si.index)
		}
		titles = append(titles, title)
	}
	return titles, nil
}
