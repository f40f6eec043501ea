// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package recommend

import (
	"fmt"
	"strings"
)

// NormalizeFunc maps a title to its lookup key.
type NormalizeFunc func(string) string

// LowerTitle is the similarity engine key: the whole title lower-cased.
// Surrounding whitespace is significant.
func LowerTitle(title string) string {
	return strings.ToLower(title)
}

// CleanTitle is the correlation engine key: the lower-cased title up to the
// first "(", with surrounding whitespace removed.
//
//	CleanTitle("Toy Story (1995)") == "toy story"
func CleanTitle(title string) string {
	before, _, _ := strings.Cut(strings.ToLower(title), "(")
	return strings.TrimSpace(before)
}

// TitleRef identifies a resolved entry: its canonical title and its row
// (similarity) or column (correlation) position.
type TitleRef struct {
	Title string
	Index int
}

// TitleIndex resolves normalized titles. It is immutable after construction
// and safe for concurrent use.
type TitleIndex struct {
	normalize NormalizeFunc
	byKey     map[string]TitleRef
	byIndex   map[int]string
}

// NewTitleIndex builds an index over refs in order. When two refs normalize
// to the same key the later one wins.
func NewTitleIndex(normalize NormalizeFunc, refs []TitleRef) *TitleIndex {
	ix := &TitleIndex{
		normalize: normalize,
		byKey:     make(map[string]TitleRef, len(refs)),
		byIndex:   make(map[int]string, len(refs)),
	}
	for _, ref := range refs {
		ix.byKey[normalize(ref.Title)] = ref
		ix.byIndex[ref.Index] = ref.Title
	}
	return ix
}

// Resolve normalizes query and looks it up by exact key equality.
func (ix *TitleIndex) Resolve(query string) (TitleRef, error) {
	ref, ok := ix.byKey[ix.normalize(query)]
	if !ok {
		return TitleRef{}, fmt.Errorf("%w: %q", ErrNotFound, query)
	}
	return ref, nil
}

// TitleAt returns the canonical title stored for a row or column position.
func (ix *TitleIndex) TitleAt(index int) (string, bool) {
	t, ok := ix.byIndex[index]
	return t, ok
}

// Len returns the number of distinct keys.
func (ix *TitleIndex) Len() int {
	return len(ix.byKey)
}
