// Package providers holds helpers shared by the SearchProvider adapters.
package providers

import (
	"context"
	"sync"
)

// InFlight tracks running searches so CancelSearch can stop all of them.
// The zero value is ready to use.
type InFlight struct {
	mu      sync.Mutex
	nextID  int
	cancels map[int]context.CancelFunc
}

// Track derives a cancellable context for one search.
// The returned func must be called when the search returns.
func (f *InFlight) Track(ctx context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)

	f.mu.Lock()
	if f.cancels == nil {
		f.cancels = make(map[int]context.CancelFunc)
	}
	id := f.nextID
	f.nextID++
	f.cancels[id] = cancel
	f.mu.Unlock()

	return ctx, func() {
		f.mu.Lock()
		delete(f.cancels, id)
		f.mu.Unlock()
		cancel()
	}
}

// CancelAll cancels every tracked search. It never blocks on the searches.
func (f *InFlight) CancelAll() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, cancel := range f.cancels {
		cancel()
		delete(f.cancels, id)
	}
}

// Len returns the number of tracked searches.
func (f *InFlight) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cancels)
}
