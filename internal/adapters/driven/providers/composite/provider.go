// Package composite fans a query out to several providers and merges their results.
package composite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/deep-core/internal/core/domain"
	"github.com/custodia-labs/deep-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SearchProvider = (*Provider)(nil)

// DefaultMaxResults caps the merged list
const DefaultMaxResults = 50

// Provider queries every child concurrently.
type Provider struct {
	providers  []driven.SearchProvider
	maxResults int
	logger     *slog.Logger
}

// Config holds composite provider dependencies.
type Config struct {
	Providers  []driven.SearchProvider
	MaxResults int // Merged result cap (default: DefaultMaxResults)
	Logger     *slog.Logger
}

// New creates a composite provider.
func New(cfg Config) *Provider {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Provider{
		providers:  cfg.Providers,
		maxResults: maxResults,
		logger:     logger.With("provider", "composite"),
	}
}

// Name joins the child names, e.g. "Files + Applications".
func (p *Provider) Name() string {
	return strings.Join(lo.Map(p.providers, func(sp driven.SearchProvider, _ int) string {
		return sp.Name()
	}), " + ")
}

// Search runs every child and merges by descending score. Children are
// listed in priority order, which breaks ties. A failing child is skipped
// unless every child fails.
func (p *Provider) Search(ctx context.Context, query string) ([]*domain.SearchResult, error) {
	sets := make([][]*domain.SearchResult, len(p.providers))
	errs := make([]error, len(p.providers))

	// Child failures stay in errs so one child cannot abort the others;
	// only cancellation of the caller's context fails the group.
	var g errgroup.Group
	for i, sp := range p.providers {
		g.Go(func() error {
			sets[i], errs[i] = sp.Search(ctx, query)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchFailed, err)
	}

	failed := 0
	var merged []*domain.SearchResult
	for i, err := range errs {
		if err != nil {
			failed++
			p.logger.Warn("provider failed", "name", p.providers[i].Name(), "query", query, "error", err)
			continue
		}
		merged = append(merged, sets[i]...)
	}

	if len(p.providers) > 0 && failed == len(p.providers) {
		return nil, fmt.Errorf("%w: all providers failed: %w", domain.ErrSearchFailed, errors.Join(errs...))
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].RelevanceScore > merged[j].RelevanceScore
	})

	if len(merged) > p.maxResults {
		merged = merged[:p.maxResults]
	}
	if merged == nil {
		merged = []*domain.SearchResult{}
	}
	return merged, nil
}

// CancelSearch forwards to every child.
func (p *Provider) CancelSearch() {
	for _, sp := range p.providers {
		sp.CancelSearch()
	}
}
