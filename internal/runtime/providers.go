package runtime

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/deep-core/internal/core/domain"
	"github.com/custodia-labs/deep-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SearchProvider = (*Providers)(nil)

// Providers holds the named search providers and which one is active.
// It is itself a SearchProvider that delegates to the active entry, so the
// active provider can be switched at runtime without rebuilding the controller.
// Thread-safe for concurrent access.
type Providers struct {
	mu sync.RWMutex

	providers map[string]driven.SearchProvider
	active    string
}

// NewProviders creates an empty provider registry
func NewProviders() *Providers {
	return &Providers{
		providers: make(map[string]driven.SearchProvider),
	}
}

// Register adds or replaces a provider under key. The first registered
// provider becomes active.
func (p *Providers) Register(key string, provider driven.SearchProvider) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.providers[key] = provider
	if p.active == "" {
		p.active = key
	}
}

// SetActive switches the active provider. The previous one is asked to
// cancel its in-flight work.
func (p *Providers) SetActive(key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.providers[key]; !ok {
		return fmt.Errorf("provider %q: %w", key, domain.ErrNotFound)
	}
	if key == p.active {
		return nil
	}

	if old, ok := p.providers[p.active]; ok {
		old.CancelSearch()
	}
	p.active = key
	return nil
}

// Active returns the active key and provider (provider may be nil)
func (p *Providers) Active() (string, driven.SearchProvider) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.active, p.providers[p.active]
}

// Lookup returns the provider registered under key
func (p *Providers) Lookup(key string) (driven.SearchProvider, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	provider, ok := p.providers[key]
	return provider, ok
}

// Keys returns the registered keys, sorted
func (p *Providers) Keys() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	keys := make([]string, 0, len(p.providers))
	for k := range p.providers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Name returns the active provider's name
func (p *Providers) Name() string {
	_, provider := p.Active()
	if provider == nil {
		return "None"
	}
	return provider.Name()
}

// Search delegates to the active provider
func (p *Providers) Search(ctx context.Context, query string) ([]*domain.SearchResult, error) {
	key, provider := p.Active()
	if provider == nil {
		return nil, fmt.Errorf("%w: no active provider", domain.ErrSearchFailed)
	}

	results, err := provider.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", key, err)
	}
	return results, nil
}

// CancelSearch forwards to every registered provider, since a search may
// still be running on one that was active before a switch
func (p *Providers) CancelSearch() {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, provider := range p.providers {
		provider.CancelSearch()
	}
}
