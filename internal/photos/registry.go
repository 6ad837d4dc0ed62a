package photos

import "sync"

// Registry hands out one Manager per event, created on first use.
type Registry struct {
	mu       sync.Mutex
	managers map[string]*Manager
	newFn    func(eventID string) *Manager
}

func NewRegistry(newFn func(eventID string) *Manager) *Registry {
	return &Registry{
		managers: make(map[string]*Manager),
		newFn:    newFn,
	}
}

// Get returns the manager for eventID.
func (r *Registry) Get(eventID string) *Manager {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.managers[eventID]; ok {
		return m
	}
	m := r.newFn(eventID)
	r.managers[eventID] = m
	return m
}

// Lookup returns the manager for eventID without creating one.
func (r *Registry) Lookup(eventID string) (*Manager, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.managers[eventID]
	return m, ok
}

// Len returns the number of managers created so far.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.managers)
}
