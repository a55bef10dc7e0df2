package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/deep-core/internal/core/ports/driven"
)

// Ensure MockResultOpener implements ResultOpener
var _ driven.ResultOpener = (*MockResultOpener)(nil)

// OpenerCall records one command sent to the opener
type OpenerCall struct {
	Command string
	Path    string
}

// MockResultOpener records commands instead of launching anything
type MockResultOpener struct {
	mu    sync.Mutex
	calls []OpenerCall

	// Err, when non-nil, is returned from every command
	Err error
}

// NewMockResultOpener creates a new MockResultOpener
func NewMockResultOpener() *MockResultOpener {
	return &MockResultOpener{}
}

func (m *MockResultOpener) Open(ctx context.Context, path string) error {
	return m.record("open", path)
}

func (m *MockResultOpener) Reveal(ctx context.Context, path string) error {
	return m.record("reveal", path)
}

func (m *MockResultOpener) Preview(ctx context.Context, path string) error {
	return m.record("preview", path)
}

func (m *MockResultOpener) record(command, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, OpenerCall{Command: command, Path: path})
	return m.Err
}

// Calls returns the recorded commands in order
func (m *MockResultOpener) Calls() []OpenerCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]OpenerCall, len(m.calls))
	copy(out, m.calls)
	return out
}
