package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deep-core/internal/adapters/driven/providers/stub"
	"github.com/custodia-labs/deep-core/internal/core/domain"
	"github.com/custodia-labs/deep-core/internal/core/ports/driven/mocks"
	"github.com/custodia-labs/deep-core/internal/runtime"
)

func testResult(id string, score float64, rt domain.ResultType) *domain.SearchResult {
	return &domain.SearchResult{
		ID:             id,
		Title:          id,
		Path:           "/tmp/" + id,
		Type:           rt,
		RelevanceScore: score,
	}
}

func nextCall(t *testing.T, p *mocks.GatedSearchProvider) *mocks.GatedCall {
	t.Helper()
	select {
	case call := <-p.Started():
		return call
	case <-time.After(2 * time.Second):
		t.Fatal("search did not start")
		return nil
	}
}

func waitSettled(t *testing.T, c *SearchController) domain.Snapshot {
	t.Helper()
	require.Eventually(t, func() bool {
		return !c.Snapshot().IsSearching
	}, 2*time.Second, 5*time.Millisecond)
	return c.Snapshot()
}

func resultIDs(results []*domain.SearchResult) []string {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}
	return ids
}

func newGatedController(t *testing.T) (*SearchController, *mocks.GatedSearchProvider) {
	t.Helper()
	provider := mocks.NewGatedSearchProvider()
	c := NewSearchController(SearchControllerConfig{Provider: provider})
	t.Cleanup(c.Close)
	return c, provider
}

func TestSearchController_PublishesProviderOrder(t *testing.T) {
	c, provider := newGatedController(t)

	c.SetQuery("  notes  ")
	snap := c.Snapshot()
	assert.True(t, snap.IsSearching, "searching must be set before SetQuery returns")
	assert.Equal(t, domain.SearchStateSearching, snap.State())
	assert.Equal(t, "notes", snap.TrimmedQuery)

	call := nextCall(t, provider)
	assert.Equal(t, "notes", call.Query, "provider receives the trimmed query")

	// Deliberately not sorted: the controller must not re-rank
	call.Release([]*domain.SearchResult{
		testResult("low", 0.2, domain.ResultTypeFile),
		testResult("high", 0.9, domain.ResultTypeFile),
		testResult("mid", 0.5, domain.ResultTypeFile),
	}, nil)

	snap = waitSettled(t, c)
	assert.Equal(t, []string{"low", "high", "mid"}, resultIDs(snap.Results))
	assert.Equal(t, 0, snap.SelectedIndex)
	assert.Equal(t, domain.SearchStateSettled, snap.State())
}

func TestSearchController_StaleCompletionAfterNewer(t *testing.T) {
	c, provider := newGatedController(t)
	provider.IgnoreCancel = true

	c.SetQuery("q1")
	first := nextCall(t, provider)
	c.SetQuery("q2")
	second := nextCall(t, provider)

	assert.Error(t, first.Ctx.Err(), "superseded search context must be cancelled")
	assert.GreaterOrEqual(t, provider.CancelCount(), 1)

	second.Release([]*domain.SearchResult{testResult("q2-result", 1, domain.ResultTypeFile)}, nil)
	snap := waitSettled(t, c)
	require.Equal(t, []string{"q2-result"}, resultIDs(snap.Results))

	first.Release([]*domain.SearchResult{testResult("q1-result", 1, domain.ResultTypeFile)}, nil)
	c.Wait()

	snap = c.Snapshot()
	assert.Equal(t, []string{"q2-result"}, resultIDs(snap.Results))
	assert.Equal(t, "q2", snap.Query)
}

func TestSearchController_StaleCompletionBeforeNewer(t *testing.T) {
	c, provider := newGatedController(t)
	provider.IgnoreCancel = true

	c.SetQuery("q1")
	first := nextCall(t, provider)
	c.SetQuery("q2")
	second := nextCall(t, provider)

	first.Release([]*domain.SearchResult{testResult("q1-result", 1, domain.ResultTypeFile)}, nil)
	require.Never(t, func() bool {
		snap := c.Snapshot()
		return len(snap.Results) > 0 || !snap.IsSearching
	}, 100*time.Millisecond, 5*time.Millisecond)

	second.Release([]*domain.SearchResult{testResult("q2-result", 1, domain.ResultTypeFile)}, nil)
	snap := waitSettled(t, c)
	assert.Equal(t, []string{"q2-result"}, resultIDs(snap.Results))
}

func TestSearchController_SameTrimmedQueryIsNewGeneration(t *testing.T) {
	c, provider := newGatedController(t)
	provider.IgnoreCancel = true

	c.SetQuery("notes")
	first := nextCall(t, provider)
	gen := c.Snapshot().Generation

	c.SetQuery("notes ")
	second := nextCall(t, provider)
	assert.Greater(t, c.Snapshot().Generation, gen)

	first.Release([]*domain.SearchResult{testResult("old", 1, domain.ResultTypeFile)}, nil)
	require.Never(t, func() bool {
		return len(c.Snapshot().Results) > 0
	}, 100*time.Millisecond, 5*time.Millisecond)

	second.Release([]*domain.SearchResult{testResult("new", 1, domain.ResultTypeFile)}, nil)
	snap := waitSettled(t, c)
	assert.Equal(t, []string{"new"}, resultIDs(snap.Results))
}

func TestSearchController_EmptyQueryClearsSynchronously(t *testing.T) {
	c, provider := newGatedController(t)

	c.SetQuery("notes")
	call := nextCall(t, provider)
	call.Release([]*domain.SearchResult{testResult("a", 1, domain.ResultTypeFile)}, nil)
	waitSettled(t, c)

	c.SetQuery("q")
	inFlight := nextCall(t, provider)

	c.SetQuery(" \n\t")
	snap := c.Snapshot()
	assert.False(t, snap.HasQuery)
	assert.Empty(t, snap.Results)
	assert.NotNil(t, snap.Results)
	assert.False(t, snap.IsSearching)
	assert.Equal(t, 0, snap.SelectedIndex)
	assert.Equal(t, domain.SearchStateIdle, snap.State())
	assert.Error(t, inFlight.Ctx.Err())

	c.Wait()
	assert.Empty(t, c.Snapshot().Results)
}

func TestSearchController_ProviderFailurePublishesEmpty(t *testing.T) {
	c, provider := newGatedController(t)

	c.SetQuery("a")
	nextCall(t, provider).Release([]*domain.SearchResult{testResult("a", 1, domain.ResultTypeFile)}, nil)
	waitSettled(t, c)

	c.SetQuery("ab")
	nextCall(t, provider).Release(nil, fmt.Errorf("%w: disk gone", domain.ErrSearchFailed))

	snap := waitSettled(t, c)
	assert.Empty(t, snap.Results)
	assert.True(t, snap.HasQuery)
}

func TestSearchController_ProviderSwitchKeepsLiveQuery(t *testing.T) {
	registry := runtime.NewProviders()
	registry.Register("slow", stub.New(stub.Config{Latency: 300 * time.Millisecond}))
	registry.Register("fast", stub.New(stub.Config{Latency: 10 * time.Millisecond}))

	c := NewSearchController(SearchControllerConfig{Provider: registry})
	t.Cleanup(c.Close)

	c.SetQuery("notes")
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, registry.SetActive("fast"))

	snap := waitSettled(t, c)
	assert.Equal(t, "notes", snap.TrimmedQuery)
	assert.Len(t, snap.Results, 2, "the live query is answered by the new provider")
}

func TestSearchController_Refresh(t *testing.T) {
	c, provider := newGatedController(t)

	c.Refresh()
	assert.Equal(t, domain.SearchStateIdle, c.Snapshot().State())
	assert.Empty(t, provider.Calls(), "no query, nothing to re-run")

	c.SetQuery(" notes ")
	first := nextCall(t, provider)
	before := c.Snapshot().Generation

	c.Refresh()
	second := nextCall(t, provider)
	assert.Equal(t, "notes", second.Query)
	assert.Greater(t, c.Snapshot().Generation, before)
	assert.Error(t, first.Ctx.Err(), "the superseded search is cancelled")

	second.Release([]*domain.SearchResult{testResult("fresh", 1, domain.ResultTypeFile)}, nil)
	snap := waitSettled(t, c)
	assert.Equal(t, []string{"fresh"}, resultIDs(snap.Results))
	assert.Equal(t, " notes ", snap.Query)
}

func TestSearchController_Selection(t *testing.T) {
	c, provider := newGatedController(t)

	// No-ops on an empty set
	c.Next()
	c.Previous()
	assert.Equal(t, 0, c.Snapshot().SelectedIndex)
	_, ok := c.Selected()
	assert.False(t, ok)

	c.SetQuery("x")
	nextCall(t, provider).Release([]*domain.SearchResult{
		testResult("a", 1, domain.ResultTypeFile),
		testResult("b", 0.9, domain.ResultTypeFile),
		testResult("c", 0.8, domain.ResultTypeFile),
	}, nil)
	waitSettled(t, c)

	c.Previous()
	assert.Equal(t, 0, c.Snapshot().SelectedIndex)

	c.Next()
	c.Next()
	c.Next()
	assert.Equal(t, 2, c.Snapshot().SelectedIndex)

	selected, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, "c", selected.ID)

	c.Previous()
	assert.Equal(t, 1, c.Snapshot().SelectedIndex)

	c.SetQuery("xy")
	nextCall(t, provider).Release([]*domain.SearchResult{
		testResult("d", 1, domain.ResultTypeFile),
		testResult("e", 0.5, domain.ResultTypeFile),
	}, nil)
	snap := waitSettled(t, c)
	assert.Equal(t, 0, snap.SelectedIndex, "a new result set resets the selection")
}

func TestSearchController_Commands(t *testing.T) {
	provider := mocks.NewGatedSearchProvider()
	opener := mocks.NewMockResultOpener()
	c := NewSearchController(SearchControllerConfig{Provider: provider, Opener: opener})
	defer c.Close()

	ctx := context.Background()

	_, err := c.Confirm(ctx)
	assert.ErrorIs(t, err, domain.ErrNoSelection)

	c.SetQuery("x")
	nextCall(t, provider).Release([]*domain.SearchResult{
		testResult("a", 1, domain.ResultTypeFile),
		testResult("b", 0.9, domain.ResultTypeFile),
	}, nil)
	waitSettled(t, c)
	c.Next()

	result, err := c.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", result.ID)

	_, err = c.Preview(ctx)
	require.NoError(t, err)
	_, err = c.Reveal(ctx)
	require.NoError(t, err)

	assert.Equal(t, []mocks.OpenerCall{
		{Command: "open", Path: "/tmp/b"},
		{Command: "preview", Path: "/tmp/b"},
		{Command: "reveal", Path: "/tmp/b"},
	}, opener.Calls())

	opener.Err = errors.New("no handler")
	result, err = c.Confirm(ctx)
	assert.Error(t, err)
	assert.Equal(t, "b", result.ID)
}

func TestSearchController_Detail(t *testing.T) {
	provider := mocks.NewGatedSearchProvider()
	c := NewSearchController(SearchControllerConfig{Provider: provider, DetailEnabled: true})
	defer c.Close()

	assert.False(t, c.DetailAvailable())
	assert.False(t, c.ShowDetail())

	c.SetQuery("x")
	nextCall(t, provider).Release([]*domain.SearchResult{
		testResult("doc", 1, domain.ResultTypeDocument),
		testResult("app", 0.9, domain.ResultTypeApplication),
	}, nil)
	waitSettled(t, c)

	assert.True(t, c.DetailAvailable())
	assert.True(t, c.ShowDetail())

	c.Next()
	assert.False(t, c.DetailAvailable(), "applications have no detail panel")
	assert.False(t, c.ShowDetail())

	c.Previous()
	assert.False(t, c.ToggleDetail())
	assert.True(t, c.DetailAvailable())
	assert.False(t, c.ShowDetail())
	assert.False(t, c.Snapshot().DetailEnabled)
}

func TestSearchController_Subscribe(t *testing.T) {
	c, provider := newGatedController(t)

	updates, unsubscribe := c.Subscribe()

	initial := <-updates
	assert.False(t, initial.HasQuery)

	c.SetQuery("x")
	c.Next()
	nextCall(t, provider).Release([]*domain.SearchResult{testResult("a", 1, domain.ResultTypeFile)}, nil)
	waitSettled(t, c)

	// Latest wins: the buffered value is the settled snapshot
	select {
	case snap := <-updates:
		assert.False(t, snap.IsSearching)
		assert.Equal(t, []string{"a"}, resultIDs(snap.Results))
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}

	unsubscribe()
	unsubscribe()
	_, open := <-updates
	assert.False(t, open)
}

func TestSearchController_Close(t *testing.T) {
	provider := mocks.NewGatedSearchProvider()
	c := NewSearchController(SearchControllerConfig{Provider: provider})

	updates, _ := c.Subscribe()
	<-updates

	c.SetQuery("x")
	call := nextCall(t, provider)

	c.Close()
	c.Wait()

	assert.Error(t, call.Ctx.Err())
	_, open := <-updates
	assert.False(t, open)

	gen := c.Snapshot().Generation
	c.SetQuery("y")
	assert.Equal(t, gen, c.Snapshot().Generation, "closed controller ignores queries")

	_, err := c.Confirm(context.Background())
	assert.ErrorIs(t, err, domain.ErrClosed)

	late, _ := c.Subscribe()
	_, open = <-late
	assert.False(t, open)
}

func TestSearchController_Debounce(t *testing.T) {
	provider := mocks.NewGatedSearchProvider()
	c := NewSearchController(SearchControllerConfig{Provider: provider, Debounce: 50 * time.Millisecond})
	defer c.Close()

	c.SetQuery("n")
	c.SetQuery("no")
	c.SetQuery("not")
	assert.True(t, c.Snapshot().IsSearching)

	call := nextCall(t, provider)
	assert.Equal(t, "not", call.Query)
	call.Release(nil, nil)

	waitSettled(t, c)
	c.Wait()
	assert.Len(t, provider.Calls(), 1, "superseded keystrokes never reach the provider")
}

func TestSearchController_ExpectationProvider(t *testing.T) {
	provider := new(mocks.MockSearchProvider)
	results := []*domain.SearchResult{testResult("a", 1, domain.ResultTypeCode)}

	provider.On("Name").Return("Mock").Maybe()
	provider.On("CancelSearch").Return().Maybe()
	provider.On("Search", mock.Anything, "notes").Return(results, nil).Once()

	c := NewSearchController(SearchControllerConfig{Provider: provider})
	defer c.Close()

	c.SetQuery("notes")
	c.Wait()

	assert.Equal(t, []string{"a"}, resultIDs(c.Snapshot().Results))
	provider.AssertExpectations(t)
}

func TestSearchController_NoProvider(t *testing.T) {
	c := NewSearchController(SearchControllerConfig{})
	defer c.Close()

	c.SetQuery("notes")
	c.Wait()

	snap := c.Snapshot()
	assert.False(t, snap.IsSearching)
	assert.Empty(t, snap.Results)
}
