// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package recommend

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

// sixMovieModel returns movies "M0".."M5" where row 0 is
// [1.0, 0.8, 0.8, 0.5, 0.3, 0.1].
func sixMovieModel() *SimilarityModel {
	movies := make([]Movie, 6)
	for i := range movies {
		movies[i] = Movie{RowIndex: i, Title: fmt.Sprintf("M%d", i)}
	}
	scores := [][]float64{
		{1.0, 0.8, 0.8, 0.5, 0.3, 0.1},
		{0.8, 1.0, 0.2, 0.2, 0.2, 0.2},
		{0.8, 0.2, 1.0, 0.4, 0.4, 0.9},
		{0.5, 0.2, 0.4, 1.0, 0.1, 0.1},
		{0.3, 0.2, 0.4, 0.1, 1.0, 0.0},
		{0.1, 0.2, 0.9, 0.1, 0.0, 1.0},
	}
	return &SimilarityModel{Movies: movies, Scores: scores}
}

func TestSimilarityRecommender_TieOrder(t *testing.T) {
	t.Parallel()

	a := NewSimilarityArtifacts(sixMovieModel(), ArtifactInfo{})
	r := SimilarityRecommender{TopK: 5}

	got, err := r.Recommend(a, TitleRef{Title: "M0", Index: 0})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	want := []string{"M1", "M2", "M3", "M4", "M5"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Recommend() = %v, want %v", got, want)
	}
}

func TestSimilarityRecommender_ExcludesQueryAndLimits(t *testing.T) {
	t.Parallel()

	a := NewSimilarityArtifacts(sixMovieModel(), ArtifactInfo{})

	tests := []struct {
		name string
		topK int
		row  int
		want []string
	}{
		{name: "row 2 top 2", topK: 2, row: 2, want: []string{"M5", "M0"}},
		{name: "row 5 all", topK: 10, row: 5, want: []string{"M2", "M1", "M0", "M3", "M4"}},
		{name: "row 3 top 1", topK: 1, row: 3, want: []string{"M0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := SimilarityRecommender{TopK: tt.topK}.Recommend(a, TitleRef{Index: tt.row})
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Recommend() = %v, want %v", got, tt.want)
			}
			query := fmt.Sprintf("M%d", tt.row)
			for _, title := range got {
				if title == query {
					t.Errorf("result contains the query movie %s", query)
				}
			}
		})
	}
}

func TestSimilarityRecommender_FewMovies(t *testing.T) {
	t.Parallel()

	model := &SimilarityModel{
		Movies: []Movie{{0, "A"}, {1, "B"}, {2, "C"}},
		Scores: [][]float64{
			{1, 0.2, 0.7},
			{0.2, 1, 0.1},
			{0.7, 0.1, 1},
		},
	}
	a := NewSimilarityArtifacts(model, ArtifactInfo{})

	got, err := SimilarityRecommender{TopK: 5}.Recommend(a, TitleRef{Index: 0})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"C", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Recommend() = %v, want %v", got, want)
	}

	single := NewSimilarityArtifacts(&SimilarityModel{Movies: []Movie{{0, "Solo"}}, Scores: [][]float64{{1}}}, ArtifactInfo{})
	got, err = SimilarityRecommender{TopK: 5}.Recommend(single, TitleRef{Index: 0})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected no results for a single movie, got %v", got)
	}
}

func TestSimilarityRecommender_MissingMovieRow(t *testing.T) {
	t.Parallel()

	// Row 2 of the matrix has no movie record.
	model := &SimilarityModel{
		Movies: []Movie{{0, "A"}, {1, "B"}},
		Scores: [][]float64{
			{1, 0.1, 0.9},
			{0.1, 1, 0.1},
			{0.9, 0.1, 1},
		},
	}
	a := NewSimilarityArtifacts(model, ArtifactInfo{})

	_, err := SimilarityRecommender{TopK: 5}.Recommend(a, TitleRef{Index: 0})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Recommend() error = %v, want ErrNotFound", err)
	}

	_, err = SimilarityRecommender{TopK: 5}.Recommend(a, TitleRef{Index: 7})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Recommend() out of range error = %v, want ErrNotFound", err)
	}
}

func TestSimilarityModel_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		model   *SimilarityModel
		wantErr bool
	}{
		{name: "valid", model: sixMovieModel()},
		{name: "nil", model: nil, wantErr: true},
		{name: "empty", model: &SimilarityModel{}, wantErr: true},
		{name: "ragged", model: &SimilarityModel{Movies: []Movie{{0, "A"}}, Scores: [][]float64{{1, 2}, {1}}}, wantErr: true},
		{name: "no movies", model: &SimilarityModel{Scores: [][]float64{{1}}}, wantErr: true},
		{name: "row out of range", model: &SimilarityModel{Movies: []Movie{{3, "A"}}, Scores: [][]float64{{1}}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.model.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
