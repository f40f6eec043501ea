// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/movierec/internal/auth"
	"github.com/tomtom215/movierec/internal/config"
	"github.com/tomtom215/movierec/internal/models"
	"github.com/tomtom215/movierec/internal/recommend"
)

// memSource serves fixed models, or fails when broken is set.
type memSource struct {
	broken atomic.Bool
}

func (s *memSource) Kind() string { return "memory" }

func (s *memSource) LoadSimilarity(context.Context) (*recommend.SimilarityModel, recommend.ArtifactInfo, error) {
	if s.broken.Load() {
		return nil, recommend.ArtifactInfo{}, errors.New("disk on fire")
	}
	titles := []string{"Alien", "Aliens", "Heat", "Ronin", "Thief", "Collateral"}
	movies := make([]recommend.Movie, len(titles))
	scores := make([][]float64, len(titles))
	for i, title := range titles {
		movies[i] = recommend.Movie{RowIndex: i, Title: title}
		scores[i] = make([]float64, len(titles))
		for j := range scores[i] {
			scores[i][j] = 1 - 0.1*float64(abs(i-j))
		}
	}
	return &recommend.SimilarityModel{Movies: movies, Scores: scores}, recommend.ArtifactInfo{Checksum: "sim"}, nil
}

func (s *memSource) LoadCorrelation(context.Context) (*recommend.CorrelationModel, recommend.ArtifactInfo, error) {
	if s.broken.Load() {
		return nil, recommend.ArtifactInfo{}, errors.New("disk on fire")
	}
	return &recommend.CorrelationModel{
		Titles: []string{"Alien (1979)", "Aliens (1986)", "Heat (1995)", "Obscure (2001)"},
		Columns: [][]float64{
			{1, 2, 3, 4},
			{2, 4, 6, 8},
			{4, 3, 2, 1},
			{1, 2, 3, 5},
		},
		Counts: map[string]int{"Alien (1979)": 300, "Aliens (1986)": 250, "Heat (1995)": 101, "Obscure (2001)": 3},
	}, recommend.ArtifactInfo{Checksum: "cor"}, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

type testEnv struct {
	handler http.Handler
	source  *memSource
	store   *recommend.ArtifactStore
}

func newTestEnv(t *testing.T, authMiddleware *auth.Middleware) *testEnv {
	t.Helper()

	src := &memSource{}
	cfg := recommend.DefaultConfig()
	cfg.BreakerFailures = 100
	store := recommend.NewArtifactStore(src, cfg, zerolog.Nop())
	svc, err := recommend.NewService(store, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	mw := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})
	router := NewRouter(NewHandler(svc, store, "test", 5*time.Second), mw, authMiddleware)
	return &testEnv{handler: router.SetupChi(), source: src, store: store}
}

func (e *testEnv) do(t *testing.T, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestGetRecommendations_Similarity(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/api/v1/recommendations/similarity?title=ALIEN", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp models.SimilarityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"Aliens", "Heat", "Ronin", "Thief", "Collateral"}
	if strings.Join(resp.Recommendations, ",") != strings.Join(want, ",") {
		t.Errorf("recommendations = %v, want %v", resp.Recommendations, want)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing security headers")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
}

func TestGetRecommendations_Correlation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/api/v1/recommendations/correlation?title=aliens%20(1999)", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp models.CorrelationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Obscure has too few ratings; the query column itself is kept.
	wantTitles := []string{"Alien (1979)", "Aliens (1986)", "Heat (1995)"}
	wantCorr := []float64{1, 1, -1}
	if len(resp.Recommendations) != len(wantTitles) {
		t.Fatalf("recommendations = %+v", resp.Recommendations)
	}
	for i, m := range resp.Recommendations {
		if m.Title != wantTitles[i] || !near(m.Correlation, wantCorr[i]) {
			t.Errorf("recommendations[%d] = %+v, want %s %v", i, m, wantTitles[i], wantCorr[i])
		}
	}
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func TestRecommendations_Errors(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
		wantCode   string
		wantError  string
	}{
		{"missing title", http.MethodGet, "/api/v1/recommendations/similarity", "", http.StatusBadRequest, CodeMissingParameter, "missing parameter"},
		{"empty title", http.MethodGet, "/api/v1/recommendations/correlation?title=", "", http.StatusBadRequest, CodeMissingParameter, "missing parameter"},
		{"unknown movie", http.MethodGet, "/api/v1/recommendations/similarity?title=Nope", "", http.StatusNotFound, CodeNotFound, "movie not found"},
		{"trailing space is not trimmed", http.MethodGet, "/api/v1/recommendations/similarity?title=alien%20", "", http.StatusNotFound, CodeNotFound, "movie not found"},
		{"unknown engine", http.MethodGet, "/api/v1/recommendations/magic?title=Alien", "", http.StatusBadRequest, CodeInvalidRequest, ""},
		{"post missing query", http.MethodPost, "/api/v1/recommendations", `{"engine":"similarity"}`, http.StatusBadRequest, CodeMissingParameter, "missing parameter"},
		{"post malformed", http.MethodPost, "/api/v1/recommendations", `{"engine":`, http.StatusBadRequest, CodeInvalidRequest, ""},
		{"post unknown engine", http.MethodPost, "/api/v1/recommendations", `{"engine":"x","query":"Alien"}`, http.StatusBadRequest, CodeInvalidRequest, ""},
		{"unknown route", http.MethodGet, "/api/v1/nope", "", http.StatusNotFound, CodeNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := env.do(t, tt.method, tt.target, tt.body, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			resp := decodeError(t, rec)
			if resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
			}
			if tt.wantError != "" && resp.Error != tt.wantError {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantError)
			}
		})
	}
}

func TestPostRecommendations(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodPost, "/api/v1/recommendations", `{"engine":"similarity","query":"heat"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp models.SimilarityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Heat is row 2: rows 1 and 3 tie at 0.9, lower index first.
	want := []string{"Aliens", "Ronin", "Alien", "Thief", "Collateral"}
	if strings.Join(resp.Recommendations, ",") != strings.Join(want, ",") {
		t.Errorf("recommendations = %v, want %v", resp.Recommendations, want)
	}
}

func TestRecommendations_ArtifactUnavailable(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)
	env.source.broken.Store(true)

	rec := env.do(t, http.MethodGet, "/api/v1/recommendations/similarity?title=Alien", "", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	resp := decodeError(t, rec)
	if resp.Code != CodeArtifactUnavailable || resp.Error != "service unavailable" {
		t.Errorf("error body = %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "disk on fire") {
		t.Error("internal error detail leaked to client")
	}

	// Failures are not cached: the next request loads successfully.
	env.source.broken.Store(false)
	rec = env.do(t, http.MethodGet, "/api/v1/recommendations/similarity?title=Alien", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status after recovery = %d, want 200", rec.Code)
	}
}

func TestHealthAndArtifacts(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	if rec := env.do(t, http.MethodGet, "/api/v1/health/live", "", nil); rec.Code != http.StatusOK {
		t.Errorf("live status = %d", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/api/v1/health/ready", "", nil); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready before load = %d, want 503", rec.Code)
	}

	if err := env.store.Preload(context.Background()); err != nil {
		t.Fatalf("Preload: %v", err)
	}

	if rec := env.do(t, http.MethodGet, "/api/v1/health/ready", "", nil); rec.Code != http.StatusOK {
		t.Errorf("ready after load = %d, want 200", rec.Code)
	}

	rec := env.do(t, http.MethodGet, "/api/v1/artifacts", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("artifacts status = %d", rec.Code)
	}
	var resp models.ArtifactsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Loaded || len(resp.Artifacts) != 2 {
		t.Fatalf("artifacts = %+v", resp)
	}
	if resp.Artifacts[0].Name != "similarity" || resp.Artifacts[0].Movies != 6 || resp.Artifacts[1].Users != 4 {
		t.Errorf("artifacts = %+v", resp.Artifacts)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	env.do(t, http.MethodGet, "/api/v1/recommendations/similarity?title=Alien", "", nil)
	rec := env.do(t, http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "recommendation_requests_total") {
		t.Error("metrics output missing recommendation_requests_total")
	}
}

func TestRecommendations_JWTAuth(t *testing.T) {
	t.Parallel()

	secCfg := &config.SecurityConfig{JWTSecret: strings.Repeat("s", 40)}
	jwtManager, err := auth.NewJWTManager(secCfg)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	env := newTestEnv(t, auth.NewMiddleware(jwtManager, auth.AuthModeJWT))

	rec := env.do(t, http.MethodGet, "/api/v1/recommendations/similarity?title=Alien", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d, want 401", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Error != "unauthorized" {
		t.Errorf("error = %q", resp.Error)
	}

	token, err := jwtManager.GenerateToken("alice", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	rec = env.do(t, http.MethodGet, "/api/v1/recommendations/similarity?title=Alien", "", http.Header{
		"Authorization": []string{"Bearer " + token},
	})
	if rec.Code != http.StatusOK {
		t.Errorf("status with token = %d, want 200", rec.Code)
	}

	// Health probes stay open.
	if rec := env.do(t, http.MethodGet, "/api/v1/health/live", "", nil); rec.Code != http.StatusOK {
		t.Errorf("live status = %d, want 200", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	mw := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitRequests: 2, RateLimitWindow: time.Minute})
	h := mw.RateLimit("test")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.10:1234"
		h.ServeHTTP(last, req)
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", last.Code)
	}
	if resp := decodeError(t, last); resp.Code != CodeRateLimited {
		t.Errorf("code = %q", resp.Code)
	}
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err    error
		status int
		code   string
	}{
		{recommend.ErrMissingParameter, http.StatusBadRequest, CodeMissingParameter},
		{recommend.ErrInvalidRequest, http.StatusBadRequest, CodeInvalidRequest},
		{recommend.ErrNotFound, http.StatusNotFound, CodeNotFound},
		{recommend.ErrArtifactUnavailable, http.StatusInternalServerError, CodeArtifactUnavailable},
		{errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tt := range tests {
		got := classifyError(tt.err)
		if got.Status != tt.status || got.Code != tt.code {
			t.Errorf("classifyError(%v) = %+v", tt.err, got)
		}
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	if got := sanitizeLogValue("a\nb\x7f"); got != `a\x0ab\x7f` {
		t.Errorf("sanitizeLogValue = %q", got)
	}
}
