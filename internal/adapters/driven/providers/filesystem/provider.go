// Package filesystem provides a SearchProvider that walks the enabled indexed paths.
// It matches entry names only; there is no persistent index.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/custodia-labs/deep-core/internal/adapters/driven/providers"
	"github.com/custodia-labs/deep-core/internal/core/domain"
	"github.com/custodia-labs/deep-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SearchProvider = (*Provider)(nil)

const (
	DefaultMaxResults = 50
	DefaultMaxDepth   = 8

	scoreExact    = 1.0
	scorePrefix   = 0.9
	scoreContains = 0.7
	depthBoost    = 0.1
)

// Provider walks each enabled root and matches entry names against the query.
type Provider struct {
	paths       driven.PathSource
	classifiers driven.ClassifierRegistry
	maxResults  int
	maxDepth    int
	logger      *slog.Logger
	inflight    providers.InFlight
}

// Config holds filesystem provider dependencies.
type Config struct {
	Paths       driven.PathSource
	Classifiers driven.ClassifierRegistry
	MaxResults  int // Result cap (default: DefaultMaxResults)
	MaxDepth    int // Levels below each root to descend (default: DefaultMaxDepth)
	Logger      *slog.Logger
}

// New creates a filesystem provider.
func New(cfg Config) *Provider {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Provider{
		paths:       cfg.Paths,
		classifiers: cfg.Classifiers,
		maxResults:  maxResults,
		maxDepth:    maxDepth,
		logger:      logger.With("provider", "filesystem"),
	}
}

// Name returns the provider display name.
func (p *Provider) Name() string {
	return "Files"
}

// Search walks every enabled root. Results are ordered by descending score,
// with discovery order breaking ties, and capped at the configured maximum.
func (p *Provider) Search(ctx context.Context, query string) ([]*domain.SearchResult, error) {
	ctx, done := p.inflight.Track(ctx)
	defer done()

	needle := strings.ToLower(domain.Query(query).Trimmed())
	if needle == "" || p.paths == nil {
		return []*domain.SearchResult{}, nil
	}

	var results []*domain.SearchResult
	for _, root := range p.paths.EnabledPaths() {
		found, err := p.walk(ctx, root, needle)
		if err != nil {
			return nil, fmt.Errorf("%w: walking %s: %w", domain.ErrSearchFailed, root.Path, err)
		}
		results = append(results, found...)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})

	// Nested roots can surface the same entry twice; keep the best-scored one
	results = lo.UniqBy(results, func(r *domain.SearchResult) string { return r.Path })

	if len(results) > p.maxResults {
		results = results[:p.maxResults]
	}

	p.logger.Debug("filesystem search", "query", query, "count", len(results))
	return results, nil
}

// CancelSearch stops every in-flight walk.
func (p *Provider) CancelSearch() {
	p.inflight.CancelAll()
}

func (p *Provider) walk(ctx context.Context, root domain.IndexedPath, needle string) ([]*domain.SearchResult, error) {
	var results []*domain.SearchResult

	err := filepath.WalkDir(root.Path, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root.Path {
				return err
			}
			p.logger.Debug("skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == root.Path {
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root.Path, path)
		if relErr != nil {
			return nil
		}
		depth := strings.Count(rel, string(filepath.Separator)) + 1

		resultType := p.classify(name, d.IsDir())
		if score := matchScore(strings.ToLower(name), needle); score > 0 {
			if result := p.newResult(root, path, rel, d, resultType, score+depthBoost/float64(depth)); result != nil {
				results = append(results, result)
			}
		}

		if d.IsDir() && (depth >= p.maxDepth || resultType == domain.ResultTypeApplication) {
			return fs.SkipDir
		}
		return nil
	})

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	if err != nil {
		// A missing or unreadable root contributes nothing
		p.logger.Warn("failed to walk indexed path", "path", root.Path, "error", err)
		return nil, nil
	}
	return results, nil
}

func (p *Provider) classify(name string, isDir bool) domain.ResultType {
	if p.classifiers != nil {
		return p.classifiers.Classify(name, isDir)
	}
	if isDir {
		return domain.ResultTypeFolder
	}
	return domain.ResultTypeFile
}

func (p *Provider) newResult(root domain.IndexedPath, path, rel string, d fs.DirEntry, rt domain.ResultType, score float64) *domain.SearchResult {
	info, err := d.Info()
	if err != nil {
		return nil
	}

	subtitle := root.DisplayName
	if dir := filepath.Dir(rel); dir != "." {
		subtitle = filepath.ToSlash(filepath.Join(root.DisplayName, dir))
	}

	return &domain.SearchResult{
		ID:       uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+path)).String(),
		Title:    d.Name(),
		Subtitle: subtitle,
		Path:     path,
		Type:     rt,
		// Birth time is not portable; modification time stands in
		ModifiedDate:   info.ModTime(),
		CreatedDate:    info.ModTime(),
		Size:           info.Size(),
		RelevanceScore: score,
	}
}

// matchScore rates a lowercase name against a lowercase needle. Zero means no match.
func matchScore(name, needle string) float64 {
	switch {
	case name == needle:
		return scoreExact
	case strings.HasPrefix(name, needle):
		return scorePrefix
	case strings.Contains(name, needle):
		return scoreContains
	default:
		return 0
	}
}
