package driving

import (
	"context"

	"github.com/custodia-labs/deep-core/internal/core/domain"
)

// IndexingService manages the set of roots providers search
type IndexingService interface {
	// AddPath adds an enabled root. Adding an existing path is a no-op that
	// returns the existing entry with added=false.
	AddPath(ctx context.Context, path string) (entry domain.IndexedPath, added bool, err error)

	// RemovePath deletes the entry with the given id; unknown ids are ignored
	RemovePath(ctx context.Context, id string) error

	// TogglePath flips IsEnabled on the entry with the given id
	TogglePath(ctx context.Context, id string) (domain.IndexedPath, error)

	// Paths lists entries in insertion order
	Paths() []domain.IndexedPath

	// EnabledPaths lists enabled entries in insertion order
	EnabledPaths() []domain.IndexedPath
}
