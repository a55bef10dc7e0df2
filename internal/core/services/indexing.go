package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/custodia-labs/deep-core/internal/core/domain"
	"github.com/custodia-labs/deep-core/internal/core/ports/driven"
	"github.com/custodia-labs/deep-core/internal/core/ports/driving"
)

// Verify interface compliance
var (
	_ driving.IndexingService = (*IndexingService)(nil)
	_ driven.PathSource       = (*IndexingService)(nil)
)

// IndexingService is the registry of roots that providers search.
// The list is persisted in full to the key-value store after every mutation.
type IndexingService struct {
	store  driven.KeyValueStore
	logger *slog.Logger
	now    func() time.Time

	mu    sync.RWMutex
	paths []domain.IndexedPath
}

// IndexingServiceConfig holds dependencies for the registry.
type IndexingServiceConfig struct {
	Store  driven.KeyValueStore
	Logger *slog.Logger
	Now    func() time.Time // Clock for DateAdded (default: time.Now)
}

// NewIndexingService creates the registry and loads persisted paths.
// Load failures are logged and leave the registry empty.
func NewIndexingService(ctx context.Context, cfg IndexingServiceConfig) *IndexingService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	s := &IndexingService{
		store:  cfg.Store,
		logger: logger.With("category", "indexing"),
		now:    now,
		paths:  make([]domain.IndexedPath, 0),
	}
	s.Load(ctx)
	return s
}

// Load replaces the in-memory list with the persisted one.
func (s *IndexingService) Load(ctx context.Context) {
	paths := s.readPaths(ctx)

	s.mu.Lock()
	s.paths = paths
	s.mu.Unlock()
}

func (s *IndexingService) readPaths(ctx context.Context) []domain.IndexedPath {
	empty := make([]domain.IndexedPath, 0)
	if s.store == nil {
		return empty
	}

	data, err := s.store.Get(ctx, domain.IndexingPathsKey)
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Info("no saved paths, starting with empty list")
		return empty
	}
	if err != nil {
		s.logger.Error("failed to load indexing paths", "error", err)
		return empty
	}

	var paths []domain.IndexedPath
	if err := json.Unmarshal(data, &paths); err != nil {
		s.logger.Error("failed to decode indexing paths", "error", err)
		return empty
	}
	if paths == nil {
		paths = empty
	}

	s.logger.Info("loaded indexing paths", "count", len(paths))
	return paths
}

// AddPath adds an enabled root unless the identical path string already exists.
func (s *IndexingService) AddPath(ctx context.Context, path string) (domain.IndexedPath, bool, error) {
	if strings.TrimSpace(path) == "" {
		return domain.IndexedPath{}, false, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := lo.Find(s.paths, func(p domain.IndexedPath) bool { return p.Path == path }); ok {
		s.logger.Warn("path already exists", "path", path)
		return existing, false, nil
	}

	entry := domain.NewIndexedPath(path, s.now())
	s.paths = append(s.paths, entry)
	s.logger.Info("added indexing path", "path", path, "id", entry.ID)

	s.saveLocked(ctx)
	return entry, true, nil
}

// RemovePath deletes the entry with the given id. Unknown ids are a no-op.
func (s *IndexingService) RemovePath(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, ok := lo.Find(s.paths, func(p domain.IndexedPath) bool { return p.ID == id })
	if !ok {
		return nil
	}

	s.paths = lo.Reject(s.paths, func(p domain.IndexedPath, _ int) bool { return p.ID == id })
	s.logger.Info("removed indexing path", "path", removed.Path, "id", id)

	s.saveLocked(ctx)
	return nil
}

// TogglePath replaces the entry in place with IsEnabled flipped.
func (s *IndexingService) TogglePath(ctx context.Context, id string) (domain.IndexedPath, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, idx, ok := lo.FindIndexOf(s.paths, func(p domain.IndexedPath) bool { return p.ID == id })
	if !ok {
		return domain.IndexedPath{}, fmt.Errorf("indexing path %s: %w", id, domain.ErrNotFound)
	}

	updated := s.paths[idx].Toggled()
	s.paths[idx] = updated
	s.logger.Info("toggled indexing path", "path", updated.Path, "enabled", updated.IsEnabled)

	s.saveLocked(ctx)
	return updated, nil
}

// Paths returns a copy of all entries in insertion order.
func (s *IndexingService) Paths() []domain.IndexedPath {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.IndexedPath, len(s.paths))
	copy(out, s.paths)
	return out
}

// EnabledPaths returns the enabled entries in insertion order.
func (s *IndexingService) EnabledPaths() []domain.IndexedPath {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Filter(s.paths, func(p domain.IndexedPath, _ int) bool { return p.IsEnabled })
}

// saveLocked writes the full list. The caller must hold s.mu.
// Failures are logged; the in-memory mutation stands either way.
func (s *IndexingService) saveLocked(ctx context.Context) {
	if s.store == nil {
		return
	}

	data, err := json.Marshal(s.paths)
	if err != nil {
		s.logger.Error("failed to encode indexing paths", "error", err)
		return
	}

	if err := s.store.Set(ctx, domain.IndexingPathsKey, data); err != nil {
		s.logger.Error("failed to save indexing paths", "error", err)
	}
}
