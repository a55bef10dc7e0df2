package driven

import "context"

// KeyValueStore is a durable string-keyed blob store
type KeyValueStore interface {
	// Get returns the value for key or domain.ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value for key
	Set(ctx context.Context, key string, value []byte) error
}
