// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Store is a key/value cache with a fixed entry lifetime.
type Store interface {
	// Get returns the stored value and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key. Failures are logged and dropped.
	Set(ctx context.Context, key string, value []byte)

	// Backend names the implementation for metrics and logs.
	Backend() string

	// Close releases resources held by the store.
	Close() error
}

// Backend identifiers accepted by Open.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	TTL     time.Duration

	// Path is the badger directory. Ignored unless Backend is badger.
	Path string

	// InMemory runs badger without touching disk (tests).
	InMemory bool
}

// Open creates the configured store. It returns nil, nil for BackendNone.
//
//nolint:gocritic // Options is a small value type
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendNone:
		return nil, nil
	case BackendMemory:
		return NewMemory(opts.TTL), nil
	case BackendBadger:
		b, err := OpenBadger(opts.Path, opts.TTL, opts.InMemory)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}

// GenerateKey derives a compact key from a method name and its parameters.
//
//	key := cache.GenerateKey("correlation", map[string]any{"column": 12})
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
