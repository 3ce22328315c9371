// Package filekv stores key-value pairs in a single JSON file.
package filekv

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/tally-dev/tally/internal/kv"
)

// Ensure Store implements kv.Store
var _ kv.Store = (*Store)(nil)

// Store keeps every key in one JSON object on disk. Each write rewrites the
// whole file through a temp file and rename, so the file on disk is always
// either the old or the new version.
type Store struct {
	path string

	mu   sync.Mutex
	data map[string]string
}

// Open loads the file at path, creating its directory if needed.
// A missing file is treated as an empty store.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	data := make(map[string]string)
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading store %s: %w", path, err)
	case len(raw) > 0:
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("parsing store %s: %w", path, err)
		}
	}

	return &Store{path: path, data: data}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value for key.
func (s *Store) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return []byte(v), nil
}

// Put writes value under key and flushes the file.
func (s *Store) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := maps.Clone(s.data)
	next[key] = string(value)
	return s.commit(next)
}

// Delete removes keys and flushes the file once.
func (s *Store) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := maps.Clone(s.data)
	for _, k := range keys {
		delete(next, k)
	}
	return s.commit(next)
}

// Close is a no-op; every write is already on disk.
func (s *Store) Close() error {
	return nil
}

func (s *Store) commit(next map[string]string) error {
	raw, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tally-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replacing store %s: %w", s.path, err)
	}

	s.data = next
	return nil
}
