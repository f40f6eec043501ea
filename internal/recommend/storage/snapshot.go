// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

const snapshotExt = ".gob.gz"

// ErrNoSnapshot is returned when no version of a model exists.
var ErrNoSnapshot = errors.New("no snapshot found")

// ModelMetadata describes one stored snapshot.
type ModelMetadata struct {
	Name       string    `json:"name"`
	Version    int       `json:"version"`
	SavedAt    time.Time `json:"saved_at"`
	Source     string    `json:"source"`
	MovieCount int       `json:"movie_count"`
	UserCount  int       `json:"user_count"`

	// Checksum is the SHA-256 of the uncompressed model encoding.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed model size.
	SizeBytes int64 `json:"size_bytes"`
}

// storedFile is the on-disk format of a snapshot.
type storedFile struct {
	Metadata       ModelMetadata
	CompressedData []byte
}

// Store manages snapshot files in one directory.
type Store struct {
	baseDir string
	mu      sync.RWMutex

	// latest version per model name
	versions map[string]int
}

// NewStore opens a store rooted at baseDir, creating the directory if needed.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}

	s := &Store{baseDir: baseDir, versions: make(map[string]int)}
	if err := s.scan(); err != nil {
		return nil, fmt.Errorf("scan snapshots: %w", err)
	}
	return s, nil
}

// OpenStore opens an existing snapshot directory without creating it.
func OpenStore(baseDir string) (*Store, error) {
	info, err := os.Stat(baseDir)
	if err != nil {
		return nil, fmt.Errorf("open snapshot directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("snapshot path %s is not a directory", baseDir)
	}
	s := &Store{baseDir: baseDir, versions: make(map[string]int)}
	if err := s.scan(); err != nil {
		return nil, fmt.Errorf("scan snapshots: %w", err)
	}
	return s, nil
}

// Dir returns the snapshot directory.
func (s *Store) Dir() string { return s.baseDir }

func (s *Store) scan() error {
	found, err := s.listVersions()
	if err != nil {
		return err
	}
	for name, versions := range found {
		s.versions[name] = versions[0]
	}
	return nil
}

// listVersions returns every version per model, highest first.
func (s *Store) listVersions() (map[string][]int, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}

	found := make(map[string][]int)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, version, ok := parseSnapshotFilename(entry.Name())
		if !ok {
			continue
		}
		found[name] = append(found[name], version)
	}
	for _, versions := range found {
		sort.Sort(sort.Reverse(sort.IntSlice(versions)))
	}
	return found, nil
}

// parseSnapshotFilename splits "similarity_v3.gob.gz" into ("similarity", 3).
func parseSnapshotFilename(filename string) (string, int, bool) {
	base, ok := strings.CutSuffix(filename, snapshotExt)
	if !ok {
		return "", 0, false
	}
	idx := strings.LastIndex(base, "_v")
	if idx <= 0 {
		return "", 0, false
	}
	version, err := strconv.Atoi(base[idx+2:])
	if err != nil || version < 1 {
		return "", 0, false
	}
	return base[:idx], version, true
}

func (s *Store) snapshotPath(name string, version int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_v%d%s", name, version, snapshotExt))
}

// Save writes data as version of name. A version of 0 means latest+1.
// The returned metadata has Name, Version, SavedAt, Checksum and SizeBytes
// filled in.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *Store) Save(ctx context.Context, name string, version int, data interface{}, meta ModelMetadata) (ModelMetadata, error) {
	if err := ctx.Err(); err != nil {
		return ModelMetadata{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if version == 0 {
		version = s.versions[name] + 1
	}

	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(data); err != nil {
		return ModelMetadata{}, fmt.Errorf("encode model: %w", err)
	}
	sum := sha256.Sum256(raw.Bytes())

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw.Bytes()); err != nil {
		return ModelMetadata{}, fmt.Errorf("compress model: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return ModelMetadata{}, fmt.Errorf("finalize compression: %w", err)
	}

	meta.Name = name
	meta.Version = version
	meta.SavedAt = time.Now().UTC()
	meta.Checksum = hex.EncodeToString(sum[:])
	meta.SizeBytes = int64(compressed.Len())

	// Write to a temp file and rename so readers never see a partial snapshot.
	final := s.snapshotPath(name, version)
	tmp, err := os.CreateTemp(s.baseDir, ".snapshot-*")
	if err != nil {
		return ModelMetadata{}, fmt.Errorf("create snapshot file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }() //nolint:errcheck // no-op after successful rename

	if err := gob.NewEncoder(tmp).Encode(storedFile{Metadata: meta, CompressedData: compressed.Bytes()}); err != nil {
		_ = tmp.Close() //nolint:errcheck // write error takes precedence
		return ModelMetadata{}, fmt.Errorf("write snapshot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return ModelMetadata{}, fmt.Errorf("close snapshot file: %w", err)
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		return ModelMetadata{}, fmt.Errorf("publish snapshot file: %w", err)
	}

	if version > s.versions[name] {
		s.versions[name] = version
	}
	return meta, nil
}

// Load decodes version of name into target. A version of 0 loads the latest.
// The checksum is verified before decoding.
func (s *Store) Load(ctx context.Context, name string, version int, target interface{}) (*ModelMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	if version == 0 {
		latest, ok := s.versions[name]
		if !ok {
			s.mu.RUnlock()
			return nil, fmt.Errorf("%w for %s in %s", ErrNoSnapshot, name, s.baseDir)
		}
		version = latest
	}
	path := s.snapshotPath(name, version)
	s.mu.RUnlock()

	sf, err := readStoredFile(path)
	if err != nil {
		return nil, err
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("decompress model: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // read errors are reported below

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("read decompressed data: %w", err)
	}

	sum := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(sum[:]); checksum != sf.Metadata.Checksum {
		return nil, fmt.Errorf("checksum mismatch for %s: expected %s, got %s", filepath.Base(path), sf.Metadata.Checksum, checksum)
	}

	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(target); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return &sf.Metadata, nil
}

func readStoredFile(path string) (*storedFile, error) {
	f, err := os.Open(path) //nolint:gosec // path is built from the store directory and model name
	if err != nil {
		return nil, fmt.Errorf("open snapshot file: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // read-only

	var sf storedFile
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return nil, fmt.Errorf("read snapshot file %s: %w", filepath.Base(path), err)
	}
	return &sf, nil
}

// GetLatestVersion returns the latest version of name.
func (s *Store) GetLatestVersion(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.versions[name]
	return v, ok
}

// ListModels returns metadata for every stored snapshot ordered by name,
// then by descending version. Unreadable files are skipped.
func (s *Store) ListModels(ctx context.Context) ([]ModelMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found, err := s.listVersions()
	if err != nil {
		return nil, fmt.Errorf("read snapshot directory: %w", err)
	}

	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)

	var models []ModelMetadata
	for _, name := range names {
		for _, version := range found[name] {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			sf, err := readStoredFile(s.snapshotPath(name, version))
			if err != nil {
				continue
			}
			models = append(models, sf.Metadata)
		}
	}
	return models, nil
}

// Prune removes all but the newest keep versions of name and returns the
// number of files removed.
func (s *Store) Prune(ctx context.Context, name string, keep int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if keep < 1 {
		keep = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	found, err := s.listVersions()
	if err != nil {
		return 0, fmt.Errorf("read snapshot directory: %w", err)
	}

	removed := 0
	versions := found[name]
	for i := keep; i < len(versions); i++ {
		if err := os.Remove(s.snapshotPath(name, versions[i])); err != nil {
			return removed, fmt.Errorf("remove %s v%d: %w", name, versions[i], err)
		}
		removed++
	}
	return removed, nil
}
