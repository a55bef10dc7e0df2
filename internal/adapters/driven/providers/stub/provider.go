// Package stub provides a fixed-fixture SearchProvider for development and tests.
package stub

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/custodia-labs/deep-core/internal/adapters/driven/providers"
	"github.com/custodia-labs/deep-core/internal/core/domain"
	"github.com/custodia-labs/deep-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SearchProvider = (*Provider)(nil)

// DefaultLatency simulates disk or network delay
const DefaultLatency = 50 * time.Millisecond

// Provider filters a fixed set of candidates by title or subtitle.
type Provider struct {
	latency    time.Duration
	candidates []*domain.SearchResult
	logger     *slog.Logger
	inflight   providers.InFlight
}

// Config holds stub provider options.
type Config struct {
	Latency time.Duration    // Artificial delay (default: DefaultLatency, negative disables)
	Now     func() time.Time // Clock for fixture dates (default: time.Now)
	Logger  *slog.Logger
}

// New creates a stub provider. Candidate IDs are fixed for its lifetime.
func New(cfg Config) *Provider {
	latency := cfg.Latency
	if latency == 0 {
		latency = DefaultLatency
	}
	if latency < 0 {
		latency = 0
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Provider{
		latency:    latency,
		candidates: fixtures(now()),
		logger:     logger.With("provider", "stub"),
	}
}

// Name returns the provider display name.
func (p *Provider) Name() string {
	return "Stub Provider"
}

// Search waits the configured latency then returns matching candidates,
// highest relevance first.
func (p *Provider) Search(ctx context.Context, query string) ([]*domain.SearchResult, error) {
	ctx, done := p.inflight.Track(ctx)
	defer done()

	if p.latency > 0 {
		timer := time.NewTimer(p.latency)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("%w: %w", domain.ErrSearchFailed, ctx.Err())
		case <-timer.C:
		}
	}

	trimmed := strings.ToLower(domain.Query(query).Trimmed())
	if trimmed == "" {
		return []*domain.SearchResult{}, nil
	}

	matches := lo.Filter(p.candidates, func(r *domain.SearchResult, _ int) bool {
		return strings.Contains(strings.ToLower(r.Title), trimmed) ||
			strings.Contains(strings.ToLower(r.Subtitle), trimmed)
	})

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].RelevanceScore > matches[j].RelevanceScore
	})

	p.logger.Debug("stub search", "query", query, "count", len(matches))
	return lo.Map(matches, func(r *domain.SearchResult, _ int) *domain.SearchResult {
		copied := *r
		return &copied
	}), nil
}

// CancelSearch stops every in-flight latency wait.
func (p *Provider) CancelSearch() {
	p.inflight.CancelAll()
}

func fixtures(now time.Time) []*domain.SearchResult {
	day := 24 * time.Hour
	return []*domain.SearchResult{
		fixture("DeepSearchView.swift", "Deep/Deep", "/Users/.../Deep/DeepSearchView.swift", domain.ResultTypeCode,
			now.Add(-time.Hour), now.Add(-7*day), 24_576, 1.0),
		fixture("AppDelegate.swift", "Deep/Deep", "/Users/.../Deep/AppDelegate.swift", domain.ResultTypeCode,
			now.Add(-2*time.Hour), now.Add(-14*day), 12_288, 0.95),
		fixture("Deep.xcodeproj", "Desktop/SwiftProjects/Deep", "/Users/.../Deep.xcodeproj", domain.ResultTypeFolder,
			now.Add(-5*time.Minute), now.Add(-30*day), 4096, 0.9),
		fixture("Design_Assets.figma", "Documents/Projects", "/Users/.../Design_Assets.figma", domain.ResultTypeFile,
			now.Add(-30*time.Minute), now.Add(-5*day), 524_288, 0.85),
		fixture("Meeting_Notes.pdf", "Documents", "/Users/.../Meeting_Notes.pdf", domain.ResultTypePDF,
			now.Add(-12*time.Hour), now.Add(-10*day), 2_048_000, 0.8),
		fixture("Xcode.app", "Applications", "/Applications/Xcode.app", domain.ResultTypeApplication,
			now.Add(-2*day), now.Add(-180*day), 15_728_640_000, 0.75),
		fixture("Screenshot.png", "Desktop", "/Users/.../Screenshot.png", domain.ResultTypeImage,
			now.Add(-10*time.Minute), now.Add(-10*time.Minute), 524_288, 0.7),
		fixture("Notes.md", "Documents", "/Users/.../Notes.md", domain.ResultTypeDocument,
			now.Add(-4*time.Hour), now.Add(-3*day), 8192, 0.65),
	}
}

func fixture(title, subtitle, path string, rt domain.ResultType, modified, created time.Time, size int64, score float64) *domain.SearchResult {
	return &domain.SearchResult{
		ID:             uuid.NewString(),
		Title:          title,
		Subtitle:       subtitle,
		Path:           path,
		Type:           rt,
		ModifiedDate:   modified,
		CreatedDate:    created,
		Size:           size,
		RelevanceScore: score,
	}
}
