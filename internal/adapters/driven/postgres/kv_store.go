package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/deep-core/internal/core/domain"
	"github.com/custodia-labs/deep-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.KeyValueStore = (*KeyValueStore)(nil)

// KeyValueStore implements driven.KeyValueStore using PostgreSQL
type KeyValueStore struct {
	db *DB
}

// NewKeyValueStore creates a new KeyValueStore
func NewKeyValueStore(db *DB) *KeyValueStore {
	return &KeyValueStore{db: db}
}

// Get returns the value for key or domain.ErrNotFound
func (s *KeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM kv_store WHERE key = $1`

	var value []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set upserts the value for key
func (s *KeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now()); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
