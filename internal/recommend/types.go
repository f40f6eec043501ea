// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package recommend

import (
	"fmt"
	"math"
	"time"
)

// Engine selects which artifact answers a request.
type Engine string

const (
	// EngineSimilarity ranks by the content similarity matrix.
	EngineSimilarity Engine = "similarity"

	// EngineCorrelation ranks by user-rating correlation.
	EngineCorrelation Engine = "correlation"
)

// Engines lists the supported engines in a stable order.
func Engines() []Engine {
	return []Engine{EngineSimilarity, EngineCorrelation}
}

// Movie is one row of the similarity model's movie table.
type Movie struct {
	RowIndex int
	Title    string
}

// SimilarityModel is the content engine artifact.
// Scores[i][j] is the similarity of movie row i to movie row j.
type SimilarityModel struct {
	Movies []Movie
	Scores [][]float64
}

// Validate checks the structural invariants a loaded model must satisfy.
func (m *SimilarityModel) Validate() error {
	if m == nil {
		return fmt.Errorf("similarity model is nil")
	}
	n := len(m.Scores)
	if n == 0 {
		return fmt.Errorf("similarity matrix is empty")
	}
	for i, row := range m.Scores {
		if len(row) != n {
			return fmt.Errorf("similarity matrix is not square: row %d has %d columns, want %d", i, len(row), n)
		}
	}
	if len(m.Movies) == 0 {
		return fmt.Errorf("movie table is empty")
	}
	for _, mv := range m.Movies {
		if mv.RowIndex < 0 || mv.RowIndex >= n {
			return fmt.Errorf("movie %q has row index %d outside matrix of size %d", mv.Title, mv.RowIndex, n)
		}
	}
	return nil
}

// CorrelationModel is the collaborative engine artifact.
//
// Columns[j] holds the ratings of every user for the movie Titles[j]; an
// unrated cell is NaN. Counts maps a column title to its number of ratings.
type CorrelationModel struct {
	Titles  []string
	Columns [][]float64
	Counts  map[string]int
}

// Users returns the number of rating rows.
func (m *CorrelationModel) Users() int {
	if m == nil || len(m.Columns) == 0 {
		return 0
	}
	return len(m.Columns[0])
}

// Validate checks the structural invariants a loaded model must satisfy.
func (m *CorrelationModel) Validate() error {
	if m == nil {
		return fmt.Errorf("correlation model is nil")
	}
	if len(m.Titles) == 0 {
		return fmt.Errorf("rating matrix has no columns")
	}
	if len(m.Titles) != len(m.Columns) {
		return fmt.Errorf("rating matrix has %d titles but %d columns", len(m.Titles), len(m.Columns))
	}
	users := len(m.Columns[0])
	for j, col := range m.Columns {
		if len(col) != users {
			return fmt.Errorf("rating column %q has %d rows, want %d", m.Titles[j], len(col), users)
		}
	}
	if m.Counts == nil {
		return fmt.Errorf("rating counts are missing")
	}
	return nil
}

// Unrated is the cell value for a missing rating.
func Unrated() float64 { return math.NaN() }

// CorrelatedMovie is one correlation engine result.
type CorrelatedMovie struct {
	Title       string  `json:"title"`
	Correlation float64 `json:"correlation"`
}

// ArtifactInfo describes a loaded artifact.
type ArtifactInfo struct {
	Name     string    `json:"name"`
	Source   string    `json:"source"`
	Version  int       `json:"version,omitempty"`
	Checksum string    `json:"checksum"`
	Movies   int       `json:"movies"`
	Users    int       `json:"users,omitempty"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Request is the validated input of Service.GetRecommendations. The query
// cap matches the HTTP body limit so any title that fits a request is looked
// up rather than rejected.
type Request struct {
	Engine Engine `json:"engine" validate:"required,oneof=similarity correlation"`
	Query  string `json:"query" validate:"required,max=65536"`
}

// Result holds the ranked output of one engine. Exactly one of Titles or
// Correlations is set, according to Engine.
type Result struct {
	Engine       Engine
	Titles       []string
	Correlations []CorrelatedMovie
}
