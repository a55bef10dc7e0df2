package driven

import (
	"context"

	"github.com/custodia-labs/deep-core/internal/core/domain"
)

// SearchProvider is a pluggable source of search results (files, apps, ...)
type SearchProvider interface {
	// Name returns a display name, e.g. "Files" or "Applications"
	Name() string

	// Search returns results for a non-empty trimmed query, best match first.
	// Implementations should stop early when ctx is cancelled and wrap
	// failures with domain.ErrSearchFailed.
	Search(ctx context.Context, query string) ([]*domain.SearchResult, error)

	// CancelSearch asks the provider to stop any in-flight work.
	// Must be idempotent and must not block.
	CancelSearch()
}

// PathSource exposes the roots a filesystem-backed provider should walk
type PathSource interface {
	EnabledPaths() []domain.IndexedPath
}
