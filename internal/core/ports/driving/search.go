package driving

import (
	"context"

	"github.com/custodia-labs/deep-core/internal/core/domain"
)

// SearchController owns the query pipeline and its read model
type SearchController interface {
	// SetQuery replaces the query text and starts or clears a search
	SetQuery(raw string)

	// Refresh re-runs the current query, if any
	Refresh()

	// Snapshot returns the current read model
	Snapshot() domain.Snapshot

	// Subscribe returns a channel receiving the latest snapshot after each change.
	// The returned func stops delivery and closes the channel.
	Subscribe() (<-chan domain.Snapshot, func())

	// Next moves the selection down, clamped to the last result
	Next()

	// Previous moves the selection up, clamped to the first result
	Previous()

	// Selected returns the focused result
	Selected() (*domain.SearchResult, bool)

	// Confirm opens the focused result
	Confirm(ctx context.Context) (*domain.SearchResult, error)

	// Preview shows a quick-look preview of the focused result
	Preview(ctx context.Context) (*domain.SearchResult, error)

	// Reveal shows the focused result in its containing folder
	Reveal(ctx context.Context) (*domain.SearchResult, error)

	// ToggleDetail flips the detail panel preference and returns the new value
	ToggleDetail() bool

	// DetailAvailable reports whether the focused result supports the detail panel
	DetailAvailable() bool

	// ShowDetail reports whether the detail panel should be visible
	ShowDetail() bool

	// Close cancels in-flight work and closes subscriptions
	Close()
}
