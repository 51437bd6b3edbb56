// Package storage persists pipeline state as JSON files in the data
// directory. Files are loaded once per run, mutated in memory and written
// back with a temp-file-then-rename so a failed write never corrupts the
// previous on-disk state.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ainews/internal/logger"
)

type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// Load reads the named JSON file into v. A missing file leaves v at its zero
// value. A file that exists but does not parse is treated as corrupted state:
// it is logged and v keeps its zero value, so the run falls back to an empty
// default instead of crashing.
func (s *Store) Load(name string, v any) error {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		logger.Warn("state file corrupted, starting from empty", "file", name, "error", err)
		return nil
	}
	return nil
}

// Save marshals v and atomically replaces the named file.
func (s *Store) Save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp := s.path(name + ".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, s.path(name)); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
