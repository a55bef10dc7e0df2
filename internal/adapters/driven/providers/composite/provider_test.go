package composite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deep-core/internal/core/domain"
	"github.com/custodia-labs/deep-core/internal/core/ports/driven"
	"github.com/custodia-labs/deep-core/internal/core/ports/driven/mocks"
)

func result(id string, score float64) *domain.SearchResult {
	return &domain.SearchResult{ID: id, Title: id, RelevanceScore: score}
}

func ids(results []*domain.SearchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func newMock(name string, results []*domain.SearchResult, err error) *mocks.MockSearchProvider {
	m := new(mocks.MockSearchProvider)
	m.On("Name").Return(name).Maybe()
	m.On("Search", mock.Anything, "q").Return(results, err)
	m.On("CancelSearch").Return().Maybe()
	return m
}

func TestProvider_Merge(t *testing.T) {
	files := newMock("Files", []*domain.SearchResult{result("f1", 0.9), result("f2", 0.5)}, nil)
	apps := newMock("Applications", []*domain.SearchResult{result("a1", 0.9), result("a2", 0.7)}, nil)

	p := New(Config{Providers: []driven.SearchProvider{files, apps}})
	assert.Equal(t, "Files + Applications", p.Name())

	results, err := p.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, []string{"f1", "a1", "a2", "f2"}, ids(results), "ties keep provider order")

	files.AssertExpectations(t)
	apps.AssertExpectations(t)
}

func TestProvider_MaxResults(t *testing.T) {
	a := newMock("A", []*domain.SearchResult{result("a1", 0.9), result("a2", 0.1)}, nil)
	b := newMock("B", []*domain.SearchResult{result("b1", 0.5)}, nil)

	p := New(Config{Providers: []driven.SearchProvider{a, b}, MaxResults: 2})
	results, err := p.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "b1"}, ids(results))
}

func TestProvider_PartialFailure(t *testing.T) {
	ok := newMock("OK", []*domain.SearchResult{result("r", 1)}, nil)
	broken := newMock("Broken", nil, errors.New("permission denied"))

	p := New(Config{Providers: []driven.SearchProvider{broken, ok}})
	results, err := p.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, []string{"r"}, ids(results))
}

func TestProvider_AllFail(t *testing.T) {
	a := newMock("A", nil, errors.New("boom"))
	b := newMock("B", nil, errors.New("bang"))

	p := New(Config{Providers: []driven.SearchProvider{a, b}})
	_, err := p.Search(context.Background(), "q")
	assert.ErrorIs(t, err, domain.ErrSearchFailed)
	assert.ErrorContains(t, err, "boom")
	assert.ErrorContains(t, err, "bang")
}

func TestProvider_NoProviders(t *testing.T) {
	p := New(Config{})
	results, err := p.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestProvider_CancelSearch(t *testing.T) {
	a := new(mocks.MockSearchProvider)
	b := new(mocks.MockSearchProvider)
	a.On("CancelSearch").Return().Once()
	b.On("CancelSearch").Return().Once()

	New(Config{Providers: []driven.SearchProvider{a, b}}).CancelSearch()

	a.AssertExpectations(t)
	b.AssertExpectations(t)
}

func TestProvider_ContextCancelled(t *testing.T) {
	a := newMock("A", nil, context.Canceled)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(Config{Providers: []driven.SearchProvider{a}})
	_, err := p.Search(ctx, "q")
	assert.ErrorIs(t, err, domain.ErrSearchFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProvider_CancelledWhileChildrenSucceed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fast := newMock("Fast", []*domain.SearchResult{result("f1", 0.9)}, nil)
	cancelling := new(mocks.MockSearchProvider)
	cancelling.On("Name").Return("Cancelling").Maybe()
	cancelling.On("Search", mock.Anything, "q").Run(func(mock.Arguments) { cancel() }).
		Return([]*domain.SearchResult{result("c1", 0.8)}, nil)

	p := New(Config{Providers: []driven.SearchProvider{fast, cancelling}})
	results, err := p.Search(ctx, "q")
	assert.Nil(t, results)
	assert.ErrorIs(t, err, domain.ErrSearchFailed)
	assert.ErrorIs(t, err, context.Canceled)
}
