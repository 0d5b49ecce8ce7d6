package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// DefaultTTL is how long a page view stays addressable.
const DefaultTTL = 12 * time.Hour

// Registry keeps live page views in memory.
type Registry struct {
	mu         sync.RWMutex
	views      map[string]*Dashboard
	ttl        time.Duration
	newFetcher FetcherFactory
}

// NewRegistry creates an empty registry. A non-positive ttl selects DefaultTTL.
func NewRegistry(ttl time.Duration, newFetcher FetcherFactory) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry{
		views:      make(map[string]*Dashboard),
		ttl:        ttl,
		newFetcher: newFetcher,
	}
}

// Create registers a new page view authenticated with token.
func (r *Registry) Create(token string) *Dashboard {
	d := New(uuid.NewString(), token, r.newFetcher)

	r.mu.Lock()
	r.views[d.id] = d
	r.mu.Unlock()

	return d
}

// Get returns the page view with the given ID, or nil if it is unknown or
// expired.
func (r *Registry) Get(id string) *Dashboard {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.views[id]
	if !ok || d.expired(r.ttl) {
		return nil
	}
	return d
}

// Delete removes a page view.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.views, id)
	r.mu.Unlock()
}

// Len returns the number of registered views, expired ones included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}

// Sweep removes expired views and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, d := range r.views {
		if d.expired(r.ttl) {
			delete(r.views, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				log.WithField("component", "dashboard").Debugf("Swept %d expired views", n)
			}
		}
	}
}
