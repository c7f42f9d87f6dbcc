package hub

import (
	"fmt"
	"sync"
)

// Registry holds the hubs mounted in this process. Hubs not listed in the
// enabled set are skipped at registration.
type Registry struct {
	mu      sync.RWMutex
	enabled map[string]bool
	order   []string
	hubs    map[string]Hub
}

// NewRegistry enables every hub when enabled is empty.
func NewRegistry(enabled []string) *Registry {
	r := &Registry{hubs: map[string]Hub{}}
	if len(enabled) > 0 {
		r.enabled = make(map[string]bool, len(enabled))
		for _, n := range enabled {
			r.enabled[n] = true
		}
	}
	return r
}

func (r *Registry) Enabled(name string) bool {
	return r.enabled == nil || r.enabled[name]
}

// Register mounts h and reports whether it was enabled.
func (r *Registry) Register(h Hub) (bool, error) {
	if h.Name == "" || h.Dashboard == nil {
		return false, fmt.Errorf("hub: %q needs a name and a dashboard", h.Name)
	}
	if !r.Enabled(h.Name) {
		return false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.hubs[h.Name]; dup {
		return false, fmt.Errorf("hub: %q registered twice", h.Name)
	}
	r.hubs[h.Name] = h
	r.order = append(r.order, h.Name)
	return true, nil
}

func (r *Registry) Get(name string) (Hub, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.hubs[name]
	return h, ok
}

// Hubs returns the mounted hubs in registration order.
func (r *Registry) Hubs() []Hub {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Hub, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.hubs[n])
	}
	return out
}
