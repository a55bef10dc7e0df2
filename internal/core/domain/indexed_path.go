package domain

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// IndexingPathsKey is the storage key holding the serialized path list
const IndexingPathsKey = "indexing.paths"

// IndexedPath is a filesystem root that providers search
type IndexedPath struct {
	ID          string    `json:"id"`
	Path        string    `json:"path"`
	DisplayName string    `json:"displayName"`
	IsEnabled   bool      `json:"isEnabled"`
	DateAdded   time.Time `json:"dateAdded"`
}

// NewIndexedPath creates an enabled entry for the given path
func NewIndexedPath(path string, now time.Time) IndexedPath {
	return IndexedPath{
		ID:          uuid.NewString(),
		Path:        path,
		DisplayName: DisplayNameFor(path),
		IsEnabled:   true,
		DateAdded:   now,
	}
}

// Toggled returns a copy with IsEnabled flipped. ID and DateAdded are kept.
func (p IndexedPath) Toggled() IndexedPath {
	p.IsEnabled = !p.IsEnabled
	return p
}

// DisplayNameFor returns the last path component, ignoring trailing separators
func DisplayNameFor(path string) string {
	base := filepath.Base(path)
	if base == "." {
		return ""
	}
	return base
}
