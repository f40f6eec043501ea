// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package recommend

import (
	"fmt"
	"math"
	"sort"
)

// CorrelationArtifacts is a loaded rating model together with its cleaned
// title index.
type CorrelationArtifacts struct {
	Model *CorrelationModel
	Index *TitleIndex
	Info  ArtifactInfo
}

// NewCorrelationArtifacts indexes model columns by CleanTitle in column order.
func NewCorrelationArtifacts(model *CorrelationModel, info ArtifactInfo) *CorrelationArtifacts {
	refs := make([]TitleRef, len(model.Titles))
	for j, t := range model.Titles {
		refs[j] = TitleRef{Title: t, Index: j}
	}
	return &CorrelationArtifacts{
		Model: model,
		Index: NewTitleIndex(CleanTitle, refs),
		Info:  info,
	}
}

// CorrelationRecommender ranks columns by rating correlation with the query.
type CorrelationRecommender struct {
	TopK       int
	MinRatings int
}

// Recommend returns up to TopK columns ordered by descending Pearson
// correlation with ref's column. Columns with an undefined correlation or a
// rating count not above MinRatings are left out. The query column is not
// excluded and ranks first when it passes the count filter.
func (r CorrelationRecommender) Recommend(a *CorrelationArtifacts, ref TitleRef) ([]CorrelatedMovie, error) {
	m := a.Model
	if ref.Index < 0 || ref.Index >= len(m.Columns) {
		return nil, fmt.Errorf("%w: column %d outside rating matrix", ErrNotFound, ref.Index)
	}

	query := m.Columns[ref.Index]
	rated := ratedRows(query)

	results := make([]CorrelatedMovie, 0, len(m.Columns))
	for j, col := range m.Columns {
		corr, ok := pearson(query, col, rated)
		if !ok {
			continue
		}
		title := m.Titles[j]
		if count, found := m.Counts[title]; !found || count <= r.MinRatings {
			continue
		}
		results = append(results, CorrelatedMovie{Title: title, Correlation: corr})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Correlation > results[j].Correlation
	})
	if len(results) > r.TopK {
		results = results[:r.TopK]
	}
	return results, nil
}

func ratedRows(col []float64) []int {
	rows := make([]int, 0, len(col))
	for i, v := range col {
		if !math.IsNaN(v) {
			rows = append(rows, i)
		}
	}
	return rows
}

// pearson computes the correlation of x and y over the rows in candidates
// where both are rated. It reports false when fewer than two rows overlap or
// either side has zero variance over the overlap.
func pearson(x, y []float64, candidates []int) (float64, bool) {
	var n int
	var sumX, sumY float64
	for _, i := range candidates {
		if math.IsNaN(y[i]) {
			continue
		}
		n++
		sumX += x[i]
		sumY += y[i]
	}
	if n < 2 {
		return 0, false
	}

	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var num, denX, denY float64
	for _, i := range candidates {
		if math.IsNaN(y[i]) {
			continue
		}
		dx := x[i] - meanX
		dy := y[i] - meanY
		num += dx * dy
		denX += dx * dx
		denY += dy * dy
	}
	if denX == 0 || denY == 0 {
		return 0, false
	}

	r := num / math.Sqrt(denX*denY)
	return math.Max(-1, math.Min(1, r)), true
}
