// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/movierec/internal/logging"
)

const resultKeyPrefix = "result:"

// Badger is a persistent cache backed by BadgerDB.
type Badger struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenBadger opens (or creates) a badger database at path.
func OpenBadger(path string, ttl time.Duration, inMemory bool) (*Badger, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if inMemory {
		opts = opts.WithInMemory(true).WithDir("").WithValueDir("")
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}
	return NewBadger(db, ttl), nil
}

// NewBadger wraps an open database.
func NewBadger(db *badger.DB, ttl time.Duration) *Badger {
	return &Badger{db: db, ttl: ttl}
}

// Get implements Store.
func (b *Badger) Get(ctx context.Context, key string) ([]byte, bool) {
	var out []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(resultKeyPrefix + key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false
	}
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Result cache read failed")
		return nil, false
	}
	return out, true
}

// Set implements Store.
func (b *Badger) Set(ctx context.Context, key string, value []byte) {
	err := b.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(resultKeyPrefix+key), value)
		if b.ttl > 0 {
			e = e.WithTTL(b.ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Result cache write failed")
	}
}

// Backend implements Store.
func (b *Badger) Backend() string { return BackendBadger }

// Close implements Store.
func (b *Badger) Close() error {
	return b.db.Close()
}
