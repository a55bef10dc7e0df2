package mocks

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/deep-core/internal/core/domain"
	"github.com/custodia-labs/deep-core/internal/core/ports/driven"
)

// Ensure the provider mocks implement SearchProvider
var (
	_ driven.SearchProvider = (*MockSearchProvider)(nil)
	_ driven.SearchProvider = (*GatedSearchProvider)(nil)
)

// MockSearchProvider is an expectation-based provider
type MockSearchProvider struct {
	mock.Mock
}

func (m *MockSearchProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockSearchProvider) Search(ctx context.Context, query string) ([]*domain.SearchResult, error) {
	args := m.Called(ctx, query)
	results, _ := args.Get(0).([]*domain.SearchResult)
	return results, args.Error(1)
}

func (m *MockSearchProvider) CancelSearch() {
	m.Called()
}

// GatedCall is one blocked Search invocation waiting to be released
type GatedCall struct {
	Query   string
	Ctx     context.Context
	release chan gatedOutcome
}

type gatedOutcome struct {
	results []*domain.SearchResult
	err     error
}

// Release completes the call with the given outcome. Only the first release counts.
func (c *GatedCall) Release(results []*domain.SearchResult, err error) {
	select {
	case c.release <- gatedOutcome{results: results, err: err}:
	default:
	}
}

// GatedSearchProvider blocks every Search until the test releases it,
// letting tests decide the order in which searches complete.
type GatedSearchProvider struct {
	// IgnoreCancel makes Search wait for Release even after ctx is cancelled,
	// like a provider that does not honour cancellation
	IgnoreCancel bool

	started chan *GatedCall
	cancels atomic.Int32

	mu    sync.Mutex
	calls []*GatedCall
}

// NewGatedSearchProvider creates a new GatedSearchProvider
func NewGatedSearchProvider() *GatedSearchProvider {
	return &GatedSearchProvider{
		started: make(chan *GatedCall, 64),
	}
}

func (p *GatedSearchProvider) Name() string {
	return "Gated"
}

func (p *GatedSearchProvider) Search(ctx context.Context, query string) ([]*domain.SearchResult, error) {
	call := &GatedCall{Query: query, Ctx: ctx, release: make(chan gatedOutcome, 1)}

	p.mu.Lock()
	p.calls = append(p.calls, call)
	p.mu.Unlock()
	p.started <- call

	if p.IgnoreCancel {
		out := <-call.release
		return out.results, out.err
	}

	select {
	case out := <-call.release:
		return out.results, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *GatedSearchProvider) CancelSearch() {
	p.cancels.Add(1)
}

// Started delivers each call as it begins
func (p *GatedSearchProvider) Started() <-chan *GatedCall {
	return p.started
}

// Calls returns every call seen so far
func (p *GatedSearchProvider) Calls() []*GatedCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*GatedCall, len(p.calls))
	copy(out, p.calls)
	return out
}

// CancelCount returns how many times CancelSearch was called
func (p *GatedSearchProvider) CancelCount() int {
	return int(p.cancels.Load())
}
