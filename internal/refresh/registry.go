// Package refresh tracks per-view version counters so the presentation
// layer can poll for staleness instead of holding a push connection.
package refresh

import (
	"sync"

	"crm_backend/internal/events"
)

// Registry keeps a monotonically increasing version per logical view.
// A version advance means the view's data changed and should be re-fetched.
type Registry struct {
	mu       sync.RWMutex
	versions map[string]uint64
}

// NewRegistry creates a registry with all known views at version zero.
func NewRegistry() *Registry {
	return &Registry{
		versions: map[string]uint64{
			events.ViewLeads:     0,
			events.ViewCustomers: 0,
			events.ViewOffers:    0,
			events.ViewNotes:     0,
			events.ViewDashboard: 0,
		},
	}
}

// Bump advances the version of each named view.
func (r *Registry) Bump(views []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, view := range views {
		r.versions[view]++
	}
}

// Versions returns a copy of the current counters.
func (r *Registry) Versions() map[string]uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]uint64, len(r.versions))
	for view, version := range r.versions {
		out[view] = version
	}
	return out
}
