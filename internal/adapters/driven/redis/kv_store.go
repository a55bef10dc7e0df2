package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/deep-core/internal/core/domain"
	"github.com/custodia-labs/deep-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.KeyValueStore = (*KeyValueStore)(nil)

// DefaultKeyPrefix namespaces every key this store writes
const DefaultKeyPrefix = "deep:kv:"

// KeyValueStore implements driven.KeyValueStore using plain Redis strings.
// Keys never expire.
type KeyValueStore struct {
	client *redis.Client
	prefix string
}

// NewKeyValueStore creates a new Redis-backed KeyValueStore
func NewKeyValueStore(client *redis.Client) *KeyValueStore {
	return &KeyValueStore{client: client, prefix: DefaultKeyPrefix}
}

// Connect parses a redis:// URL and verifies the server responds
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// Get returns the value for key or domain.ErrNotFound
func (s *KeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return data, nil
}

// Set replaces the value for key
func (s *KeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
