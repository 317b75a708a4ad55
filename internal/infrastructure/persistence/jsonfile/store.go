// Package jsonfile persists browser state as pretty-printed JSON files
// under the user's data directory. Every write replaces the whole file;
// partial updates do not exist at this layer.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// File names under the data directory.
const (
	HistoryFile   = "history.json"
	BookmarksFile = "bookmarks.json"
	SessionFile   = "session.json"
)

// Store reads and writes one JSON value of type T at a fixed path.
type Store[T any] struct {
	path string
}

// NewStore creates a store backed by path.
func NewStore[T any](path string) *Store[T] {
	return &Store[T]{path: path}
}

// Path returns the backing file path.
func (s *Store[T]) Path() string {
	return s.path
}

// Load reads and decodes the stored value. A missing file surfaces as
// an error wrapping fs.ErrNotExist; callers decide whether that is a
// first run or a failure.
func (s *Store[T]) Load() (T, error) {
	var value T

	data, err := os.ReadFile(s.path)
	if err != nil {
		return value, fmt.Errorf("failed to read %s: %w", filepath.Base(s.path), err)
	}

	if err := json.Unmarshal(data, &value); err != nil {
		return value, fmt.Errorf("failed to decode %s: %w", filepath.Base(s.path), err)
	}

	return value, nil
}

// Save writes the value wholesale, pretty-printed with two-space
// indentation. The write goes through a temp file and rename so a
// crash mid-write never leaves a torn file behind.
func (s *Store[T]) Save(value T) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(s.path), err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(tempPath), err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(s.path), err)
	}

	return nil
}
