// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"sort"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/movierec/internal/recommend"
)

// DuckDBSource reads models from a DuckDB database file opened read-only.
type DuckDBSource struct {
	path string
}

// NewDuckDBSource creates a source for the database at path.
func NewDuckDBSource(path string) *DuckDBSource {
	return &DuckDBSource{path: path}
}

// Kind implements recommend.ArtifactSource.
func (s *DuckDBSource) Kind() string { return "duckdb" }

func (s *DuckDBSource) open(ctx context.Context) (*sql.DB, error) {
	connStr := fmt.Sprintf("%s?access_mode=read_only", s.path)
	db, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close() //nolint:errcheck // best effort cleanup on error path
		return nil, fmt.Errorf("duckdb ping failed: %w", err)
	}
	return db, nil
}

// LoadSimilarity implements recommend.ArtifactSource. Matrix cells missing
// from the similarity table are zero.
func (s *DuckDBSource) LoadSimilarity(ctx context.Context) (*recommend.SimilarityModel, recommend.ArtifactInfo, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, recommend.ArtifactInfo{}, err
	}
	defer db.Close() //nolint:errcheck // read-only connection

	movies, err := queryMovies(ctx, db)
	if err != nil {
		return nil, recommend.ArtifactInfo{}, err
	}

	var size sql.NullInt64
	err = db.QueryRowContext(ctx, `
		SELECT GREATEST(
			(SELECT MAX(row_index) FROM movies),
			(SELECT MAX(GREATEST(row_index, col_index)) FROM similarity)
		) + 1`).Scan(&size)
	if err != nil {
		return nil, recommend.ArtifactInfo{}, fmt.Errorf("size similarity matrix: %w", err)
	}
	n := int(size.Int64)
	// The matrix is square over the movie table; a larger index is corrupt.
	if n > len(movies) {
		return nil, recommend.ArtifactInfo{}, fmt.Errorf(
			"similarity index %d out of range for %d movies", n-1, len(movies))
	}

	scores := make([][]float64, n)
	for i := range scores {
		scores[i] = make([]float64, n)
	}

	rows, err := db.QueryContext(ctx, `SELECT row_index, col_index, score FROM similarity`)
	if err != nil {
		return nil, recommend.ArtifactInfo{}, fmt.Errorf("query similarity: %w", err)
	}
	defer rows.Close() //nolint:errcheck // rows.Err is checked below

	for rows.Next() {
		var i, j int
		var score float64
		if err := rows.Scan(&i, &j, &score); err != nil {
			return nil, recommend.ArtifactInfo{}, fmt.Errorf("scan similarity: %w", err)
		}
		if i < 0 || j < 0 {
			return nil, recommend.ArtifactInfo{}, fmt.Errorf("negative similarity index (%d, %d)", i, j)
		}
		scores[i][j] = score
	}
	if err := rows.Err(); err != nil {
		return nil, recommend.ArtifactInfo{}, fmt.Errorf("iterate similarity: %w", err)
	}

	model := &recommend.SimilarityModel{Movies: movies, Scores: scores}
	checksum, err := Fingerprint(model)
	if err != nil {
		return nil, recommend.ArtifactInfo{}, err
	}
	return model, recommend.ArtifactInfo{Checksum: checksum}, nil
}

func queryMovies(ctx context.Context, db *sql.DB) ([]recommend.Movie, error) {
	rows, err := db.QueryContext(ctx, `SELECT row_index, title FROM movies ORDER BY row_index`)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close() //nolint:errcheck // rows.Err is checked below

	var movies []recommend.Movie
	for rows.Next() {
		var m recommend.Movie
		if err := rows.Scan(&m.RowIndex, &m.Title); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return movies, nil
}

// LoadCorrelation implements recommend.ArtifactSource. The rating matrix is
// pivoted with titles ascending as columns and user ids ascending as rows;
// duplicate ratings of one user for one title are averaged.
func (s *DuckDBSource) LoadCorrelation(ctx context.Context) (*recommend.CorrelationModel, recommend.ArtifactInfo, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, recommend.ArtifactInfo{}, err
	}
	defer db.Close() //nolint:errcheck // read-only connection

	titles, err := queryStrings(ctx, db, `SELECT DISTINCT title FROM ratings ORDER BY title`)
	if err != nil {
		return nil, recommend.ArtifactInfo{}, fmt.Errorf("query rated titles: %w", err)
	}
	users, err := queryInts(ctx, db, `SELECT DISTINCT user_id FROM ratings ORDER BY user_id`)
	if err != nil {
		return nil, recommend.ArtifactInfo{}, fmt.Errorf("query users: %w", err)
	}

	colOf := make(map[string]int, len(titles))
	for j, t := range titles {
		colOf[t] = j
	}
	rowOf := make(map[int]int, len(users))
	for i, u := range users {
		rowOf[u] = i
	}

	columns := make([][]float64, len(titles))
	for j := range columns {
		col := make([]float64, len(users))
		for i := range col {
			col[i] = recommend.Unrated()
		}
		columns[j] = col
	}

	rows, err := db.QueryContext(ctx, `SELECT user_id, title, AVG(rating) FROM ratings GROUP BY user_id, title`)
	if err != nil {
		return nil, recommend.ArtifactInfo{}, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close() //nolint:errcheck // rows.Err is checked below

	for rows.Next() {
		var user int
		var title string
		var rating float64
		if err := rows.Scan(&user, &title, &rating); err != nil {
			return nil, recommend.ArtifactInfo{}, fmt.Errorf("scan rating: %w", err)
		}
		columns[colOf[title]][rowOf[user]] = rating
	}
	if err := rows.Err(); err != nil {
		return nil, recommend.ArtifactInfo{}, fmt.Errorf("iterate ratings: %w", err)
	}

	counts, err := queryCounts(ctx, db)
	if err != nil {
		return nil, recommend.ArtifactInfo{}, err
	}

	model := &recommend.CorrelationModel{Titles: titles, Columns: columns, Counts: counts}
	checksum, err := Fingerprint(model)
	if err != nil {
		return nil, recommend.ArtifactInfo{}, err
	}
	return model, recommend.ArtifactInfo{Checksum: checksum}, nil
}

func queryCounts(ctx context.Context, db *sql.DB) (map[string]int, error) {
	rows, err := db.QueryContext(ctx, `SELECT title, num_ratings FROM rating_counts`)
	if err != nil {
		return nil, fmt.Errorf("query rating counts: %w", err)
	}
	defer rows.Close() //nolint:errcheck // rows.Err is checked below

	counts := make(map[string]int)
	for rows.Next() {
		var title string
		var n int64
		if err := rows.Scan(&title, &n); err != nil {
			return nil, fmt.Errorf("scan rating count: %w", err)
		}
		counts[title] = int(n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating counts: %w", err)
	}
	return counts, nil
}

func queryStrings(ctx context.Context, db *sql.DB, query string) ([]string, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // rows.Err is checked below

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func queryInts(ctx context.Context, db *sql.DB, query string) ([]int, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // rows.Err is checked below

	var out []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Fingerprint returns a SHA-256 digest of a model. For a similarity model it
// equals the checksum a snapshot of the model carries. Rating counts are
// hashed in title order since gob map encoding is unordered.
func Fingerprint(v interface{}) (string, error) {
	if m, ok := v.(*recommend.CorrelationModel); ok {
		v = canonicalCorrelation(m)
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return "", fmt.Errorf("fingerprint model: %w", err)
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}

type titleCount struct {
	Title string
	Count int
}

type correlationDigest struct {
	Titles  []string
	Columns [][]float64
	Counts  []titleCount
}

func canonicalCorrelation(m *recommend.CorrelationModel) correlationDigest {
	counts := make([]titleCount, 0, len(m.Counts))
	for title, n := range m.Counts {
		counts = append(counts, titleCount{Title: title, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Title < counts[j].Title })
	return correlationDigest{Titles: m.Titles, Columns: m.Columns, Counts: counts}
}
