package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/deep-core/internal/core/domain"
	"github.com/custodia-labs/deep-core/internal/core/ports/driven"
)

// Ensure MockKeyValueStore implements KeyValueStore
var _ driven.KeyValueStore = (*MockKeyValueStore)(nil)

// MockKeyValueStore is an in-memory KeyValueStore with failure injection
type MockKeyValueStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	sets   int

	// GetErr and SetErr, when non-nil, are returned instead of touching values
	GetErr error
	SetErr error
}

// NewMockKeyValueStore creates a new MockKeyValueStore
func NewMockKeyValueStore() *MockKeyValueStore {
	return &MockKeyValueStore{
		values: make(map[string][]byte),
	}
}

func (m *MockKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	value, ok := m.values[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *MockKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.SetErr != nil {
		return m.SetErr
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[key] = stored
	return nil
}

// Put seeds a value without counting it as a Set call
func (m *MockKeyValueStore) Put(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// SetCalls returns how many times Set was called
func (m *MockKeyValueStore) SetCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sets
}
