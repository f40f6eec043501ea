// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

type fakePreloader struct {
	calls atomic.Int32
	err   error
	block bool
}

func (f *fakePreloader) Preload(ctx context.Context) error {
	f.calls.Add(1)
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.err
}

var _ suture.Service = (*ArtifactPreloadService)(nil)

func TestArtifactPreloadService_Serve(t *testing.T) {
	t.Parallel()

	loadErr := errors.New("similarity_v1.gob.gz: checksum mismatch")
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"success", nil, nil},
		{"failure", loadErr, loadErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := &fakePreloader{err: tt.err}
			svc := NewArtifactPreloadService(store, time.Second, zerolog.Nop())

			if err := svc.Serve(context.Background()); !errors.Is(err, suture.ErrDoNotRestart) {
				t.Fatalf("Serve() = %v, want ErrDoNotRestart", err)
			}
			if svc.Err() != tt.wantErr { //nolint:errorlint // identity check against the injected error
				t.Errorf("Err() = %v, want %v", svc.Err(), tt.wantErr)
			}

			// A second Serve must not load again.
			if err := svc.Serve(context.Background()); !errors.Is(err, suture.ErrDoNotRestart) {
				t.Fatalf("second Serve() = %v, want ErrDoNotRestart", err)
			}
			if got := store.calls.Load(); got != 1 {
				t.Errorf("Preload called %d times, want 1", got)
			}
		})
	}
}

func TestArtifactPreloadService_Timeout(t *testing.T) {
	t.Parallel()

	store := &fakePreloader{block: true}
	svc := NewArtifactPreloadService(store, 20*time.Millisecond, zerolog.Nop())

	_ = svc.Serve(context.Background())
	if !errors.Is(svc.Err(), context.DeadlineExceeded) {
		t.Errorf("Err() = %v, want deadline exceeded", svc.Err())
	}
}

func TestArtifactPreloadService_UnderSupervisor(t *testing.T) {
	t.Parallel()

	store := &fakePreloader{err: errors.New("boom")}
	svc := NewArtifactPreloadService(store, time.Second, zerolog.Nop())

	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          time.Second,
	})
	sup.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	select {
	case <-svc.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("preload never finished")
	}

	// Give the supervisor a chance to (wrongly) restart the service.
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-errCh

	if got := store.calls.Load(); got != 1 {
		t.Errorf("Preload called %d times, want 1", got)
	}
}
