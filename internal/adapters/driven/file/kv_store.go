// Package file provides a KeyValueStore backed by a single JSON document on disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/deep-core/internal/core/domain"
	"github.com/custodia-labs/deep-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.KeyValueStore = (*KeyValueStore)(nil)

// CorruptSuffix is appended to a store file that could not be decoded
// when it is moved aside before the next write.
const CorruptSuffix = ".corrupt"

var errCorrupt = errors.New("corrupt store file")

// KeyValueStore keeps every key in one JSON object. Writes replace the file
// atomically through a temp file and rename.
type KeyValueStore struct {
	path   string
	logger *slog.Logger

	mu sync.Mutex
}

// NewKeyValueStore creates a store at path. The file and its directory are
// created on first write.
func NewKeyValueStore(path string, logger *slog.Logger) *KeyValueStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &KeyValueStore{
		path:   path,
		logger: logger.With("store", "file"),
	}
}

// Path returns the backing file location
func (s *KeyValueStore) Path() string {
	return s.path
}

// Get returns the value for key or domain.ErrNotFound
func (s *KeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return nil, err
	}

	value, ok := values[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return value, nil
}

// Set replaces the value for key. A file that cannot be decoded is renamed
// with CorruptSuffix and a fresh document is started.
func (s *KeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	switch {
	case errors.Is(err, errCorrupt):
		backup := s.path + CorruptSuffix
		if renameErr := os.Rename(s.path, backup); renameErr != nil {
			return fmt.Errorf("failed to move corrupt store aside: %w", renameErr)
		}
		s.logger.Warn("moved corrupt store file aside", "path", s.path, "backup", backup, "error", err)
		values = make(map[string][]byte)
	case err != nil:
		return err
	}
	values[key] = value

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	return s.writeAtomic(data)
}

// read loads the whole file. A missing file is an empty store.
func (s *KeyValueStore) read() (map[string][]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string][]byte), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store %s: %w", s.path, err)
	}

	values := make(map[string][]byte)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w %s: %w", errCorrupt, s.path, err)
	}
	return values, nil
}

func (s *KeyValueStore) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
