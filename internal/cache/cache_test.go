// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package cache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestGenerateKey(t *testing.T) {
	t.Parallel()

	a := GenerateKey("correlation", map[string]interface{}{"column": 3, "min_ratings": 100})
	b := GenerateKey("correlation", map[string]interface{}{"min_ratings": 100, "column": 3})
	c := GenerateKey("correlation", map[string]interface{}{"column": 4, "min_ratings": 100})

	if a != b {
		t.Errorf("expected equal keys for equal params, got %s and %s", a, b)
	}
	if a == c {
		t.Error("expected different keys for different params")
	}
	if len(a) != len("correlation:")+32 {
		t.Errorf("unexpected key length %d: %s", len(a), a)
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    Options
		wantNil bool
		backend string
		wantErr bool
	}{
		{name: "none", opts: Options{Backend: BackendNone}, wantNil: true},
		{name: "empty", opts: Options{}, wantNil: true},
		{name: "memory", opts: Options{Backend: BackendMemory, TTL: time.Minute}, backend: BackendMemory},
		{name: "badger in memory", opts: Options{Backend: BackendBadger, TTL: time.Minute, InMemory: true}, backend: BackendBadger},
		{name: "unknown", opts: Options{Backend: "redis"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := Open(tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if tt.wantNil {
				if s != nil {
					t.Errorf("expected nil store, got %T", s)
				}
				return
			}
			defer func() { _ = s.Close() }()
			if s.Backend() != tt.backend {
				t.Errorf("Backend() = %s, want %s", s.Backend(), tt.backend)
			}
		})
	}
}

func testStoreRoundTrip(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok := s.Get(ctx, "missing"); ok {
		t.Error("expected miss for unknown key")
	}

	want := []byte(`[{"title":"Star Wars (1977)","correlation":1}]`)
	s.Set(ctx, "k1", want)

	got, ok := s.Get(ctx, "k1")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get() = %s, want %s", got, want)
	}
}

func TestMemory(t *testing.T) {
	t.Parallel()

	m := NewMemory(time.Minute)
	defer func() { _ = m.Close() }()
	testStoreRoundTrip(t, m)
}

func TestMemory_CopiesValue(t *testing.T) {
	t.Parallel()

	m := NewMemory(time.Minute)
	defer func() { _ = m.Close() }()

	v := []byte("abc")
	m.Set(context.Background(), "k", v)
	v[0] = 'z'

	got, _ := m.Get(context.Background(), "k")
	if string(got) != "abc" {
		t.Errorf("stored value changed with caller buffer: %s", got)
	}
}

func TestMemory_Expiry(t *testing.T) {
	t.Parallel()

	m := NewMemory(10 * time.Millisecond)
	defer func() { _ = m.Close() }()

	m.Set(context.Background(), "k", []byte("v"))
	time.Sleep(30 * time.Millisecond)

	if _, ok := m.Get(context.Background(), "k"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestMemory_Sweep(t *testing.T) {
	t.Parallel()

	m := NewMemory(time.Minute)
	defer func() { _ = m.Close() }()

	m.Set(context.Background(), "a", []byte("1"))
	m.Set(context.Background(), "b", []byte("2"))

	if removed := m.sweep(time.Now()); removed != 0 {
		t.Errorf("sweep removed %d fresh entries", removed)
	}
	if removed := m.sweep(time.Now().Add(2 * time.Minute)); removed != 2 {
		t.Errorf("sweep removed %d entries, want 2", removed)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d after sweep, want 0", m.Len())
	}
}

func TestMemory_CloseIdempotent(t *testing.T) {
	t.Parallel()

	m := NewMemory(time.Minute)
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestBadger(t *testing.T) {
	t.Parallel()

	b, err := OpenBadger("", time.Minute, true)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	defer func() { _ = b.Close() }()
	testStoreRoundTrip(t, b)
}

func TestBadger_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b, err := OpenBadger(dir, time.Hour, false)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	b.Set(context.Background(), "k", []byte("persisted"))
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}

	b2, err := OpenBadger(dir, time.Hour, false)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer func() { _ = b2.Close() }()

	got, ok := b2.Get(context.Background(), "k")
	if !ok || string(got) != "persisted" {
		t.Errorf("Get() after reopen = %q, %v", got, ok)
	}
}
