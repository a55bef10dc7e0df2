package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/custodia-labs/deep-core/internal/core/domain"
	"github.com/custodia-labs/deep-core/internal/core/ports/driven"
	"github.com/custodia-labs/deep-core/internal/core/ports/driving"
)

// Verify interface compliance
var _ driving.SearchController = (*SearchController)(nil)

// SearchController owns the query pipeline. All state lives behind mu;
// provider calls run on their own goroutine and report back through complete.
//
// Every query change bumps the generation. A completion is applied only if it
// carries the current generation, so late results for an older query are dropped.
type SearchController struct {
	provider driven.SearchProvider
	opener   driven.ResultOpener
	logger   *slog.Logger
	debounce time.Duration

	mu            sync.Mutex
	query         string
	results       []*domain.SearchResult
	searching     bool
	selected      int
	generation    uint64
	detailEnabled bool
	cancel        context.CancelFunc
	subscribers   map[int]chan domain.Snapshot
	nextSubID     int
	closed        bool

	wg sync.WaitGroup
}

// SearchControllerConfig holds dependencies for the controller.
type SearchControllerConfig struct {
	Provider      driven.SearchProvider
	Opener        driven.ResultOpener // Optional; commands only return the result when nil
	Logger        *slog.Logger
	Debounce      time.Duration // Delay before a search starts (default: none)
	DetailEnabled bool          // Initial detail panel preference
}

// NewSearchController creates a controller in the idle state.
func NewSearchController(cfg SearchControllerConfig) *SearchController {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SearchController{
		provider:      cfg.Provider,
		opener:        cfg.Opener,
		logger:        logger.With("category", "search"),
		debounce:      cfg.Debounce,
		detailEnabled: cfg.DetailEnabled,
		results:       make([]*domain.SearchResult, 0),
		subscribers:   make(map[int]chan domain.Snapshot),
	}
}

// SetQuery replaces the query text. An empty trimmed query clears results
// immediately; anything else supersedes the in-flight search and starts a new one.
func (c *SearchController) SetQuery(raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.query = raw
	c.generation++
	c.cancelInFlightLocked()

	trimmed := domain.Query(raw).Trimmed()
	if trimmed == "" {
		c.results = make([]*domain.SearchResult, 0)
		c.searching = false
		c.selected = 0
		c.publishLocked()
		return
	}

	c.startLocked(trimmed)
}

// Refresh re-runs the current query, e.g. after the active provider changed.
// It is a no-op when there is no query.
func (c *SearchController) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()

	trimmed := domain.Query(c.query).Trimmed()
	if c.closed || trimmed == "" {
		return
	}

	c.generation++
	c.cancelInFlightLocked()
	c.startLocked(trimmed)
}

// startLocked launches a search for the current generation. The caller must hold c.mu.
func (c *SearchController) startLocked(trimmed string) {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.searching = true

	c.wg.Add(1)
	go c.run(ctx, c.generation, trimmed)

	c.publishLocked()
}

// run performs one search and reports the outcome.
func (c *SearchController) run(ctx context.Context, gen uint64, query string) {
	defer c.wg.Done()

	if c.debounce > 0 {
		timer := time.NewTimer(c.debounce)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}

	if c.provider == nil {
		c.complete(gen, query, nil, fmt.Errorf("%w: no provider configured", domain.ErrSearchFailed), 0)
		return
	}

	c.logger.Debug("starting search", "query", query, "generation", gen, "provider", c.provider.Name())

	start := time.Now()
	results, err := c.provider.Search(ctx, query)
	if c.cancelledElsewhere(ctx, err) {
		// The provider was cancelled underneath a live query, typically by a
		// provider switch. Run it once more against whatever is active now.
		c.logger.Debug("search cancelled by provider, retrying", "query", query, "generation", gen)
		results, err = c.provider.Search(ctx, query)
	}
	c.complete(gen, query, results, err, time.Since(start))
}

// cancelledElsewhere reports whether err is a cancellation this controller did not ask for.
func (c *SearchController) cancelledElsewhere(ctx context.Context, err error) bool {
	return errors.Is(err, context.Canceled) && ctx.Err() == nil
}

// complete applies a finished search if it is still current.
func (c *SearchController) complete(gen uint64, query string, results []*domain.SearchResult, err error, took time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.generation {
		c.logger.Debug("discarding stale search results", "query", query, "generation", gen, "current", c.generation)
		return
	}

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	if err != nil {
		c.logger.Error("search failed", "query", query, "error", err)
		results = nil
	} else {
		c.logger.Info("search completed", "query", query, "count", len(results), "took", took)
	}

	if results == nil {
		results = make([]*domain.SearchResult, 0)
	}

	c.results = results
	c.searching = false
	c.selected = 0
	c.publishLocked()
}

// cancelInFlightLocked stops the current search, if any. The caller must hold c.mu.
func (c *SearchController) cancelInFlightLocked() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	c.cancel = nil
	if c.provider != nil {
		c.provider.CancelSearch()
	}
}

// Snapshot returns the current read model.
func (c *SearchController) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *SearchController) snapshotLocked() domain.Snapshot {
	results := make([]*domain.SearchResult, len(c.results))
	copy(results, c.results)

	q := domain.Query(c.query)
	return domain.Snapshot{
		Query:         c.query,
		TrimmedQuery:  q.Trimmed(),
		HasQuery:      q.HasQuery(),
		Results:       results,
		IsSearching:   c.searching,
		SelectedIndex: c.selected,
		Generation:    c.generation,
		DetailEnabled: c.detailEnabled,
	}
}

// Subscribe returns a channel that always holds the most recent snapshot.
// Slow readers miss intermediate states but never a final one.
func (c *SearchController) Subscribe() (<-chan domain.Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan domain.Snapshot, 1)
	if c.closed {
		close(ch)
		return ch, func() {}
	}

	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = ch
	ch <- c.snapshotLocked()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subscribers[id]; ok {
				delete(c.subscribers, id)
				close(sub)
			}
		})
	}
}

// publishLocked pushes the current snapshot to every subscriber, replacing
// any undelivered one. The caller must hold c.mu.
func (c *SearchController) publishLocked() {
	if len(c.subscribers) == 0 {
		return
	}

	snap := c.snapshotLocked()
	for _, ch := range c.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

// Next moves the selection down, stopping at the last result.
func (c *SearchController) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selected < len(c.results)-1 {
		c.selected++
		c.publishLocked()
	}
}

// Previous moves the selection up, stopping at the first result.
func (c *SearchController) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selected > 0 {
		c.selected--
		c.publishLocked()
	}
}

// Selected returns the focused result.
func (c *SearchController) Selected() (*domain.SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedLocked()
}

func (c *SearchController) selectedLocked() (*domain.SearchResult, bool) {
	if c.selected < 0 || c.selected >= len(c.results) {
		return nil, false
	}
	return c.results[c.selected], true
}

// Confirm opens the focused result.
func (c *SearchController) Confirm(ctx context.Context) (*domain.SearchResult, error) {
	return c.act(ctx, "open", func(o driven.ResultOpener) func(context.Context, string) error { return o.Open })
}

// Preview shows a quick-look preview of the focused result.
func (c *SearchController) Preview(ctx context.Context) (*domain.SearchResult, error) {
	return c.act(ctx, "preview", func(o driven.ResultOpener) func(context.Context, string) error { return o.Preview })
}

// Reveal shows the focused result in its containing folder.
func (c *SearchController) Reveal(ctx context.Context) (*domain.SearchResult, error) {
	return c.act(ctx, "reveal", func(o driven.ResultOpener) func(context.Context, string) error { return o.Reveal })
}

// act runs an opener command on the focused result outside the lock.
func (c *SearchController) act(ctx context.Context, name string, pick func(driven.ResultOpener) func(context.Context, string) error) (*domain.SearchResult, error) {
	c.mu.Lock()
	closed := c.closed
	result, ok := c.selectedLocked()
	c.mu.Unlock()

	if closed {
		return nil, domain.ErrClosed
	}
	if !ok {
		return nil, domain.ErrNoSelection
	}
	if c.opener == nil {
		return result, nil
	}

	if err := pick(c.opener)(ctx, result.Path); err != nil {
		c.logger.Error("result command failed", "command", name, "path", result.Path, "error", err)
		return result, fmt.Errorf("%s %s: %w", name, result.Path, err)
	}

	c.logger.Info("result command", "command", name, "path", result.Path)
	return result, nil
}

// ToggleDetail flips the detail panel preference.
func (c *SearchController) ToggleDetail() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.detailEnabled = !c.detailEnabled
	c.publishLocked()
	return c.detailEnabled
}

// DetailAvailable reports whether the focused result supports the detail panel.
func (c *SearchController) DetailAvailable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	result, ok := c.selectedLocked()
	return ok && result.Type.SupportsDetail()
}

// ShowDetail reports whether the detail panel should be visible.
func (c *SearchController) ShowDetail() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	result, ok := c.selectedLocked()
	return c.detailEnabled && ok && result.Type.SupportsDetail()
}

// Close cancels any in-flight search and closes all subscriptions.
// Further query changes are ignored.
func (c *SearchController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.generation++
	c.cancelInFlightLocked()

	for id, ch := range c.subscribers {
		delete(c.subscribers, id)
		close(ch)
	}
}

// Wait blocks until all started searches have returned.
func (c *SearchController) Wait() {
	c.wg.Wait()
}
