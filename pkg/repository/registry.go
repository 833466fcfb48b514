package repository

import (
	"fmt"
	"sort"
	"sync"
)

// Registry owns the lookup caches of a process, keyed by identifier
// (usually the asset type name). It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	caches map[string]*Cache
}

func NewRegistry() *Registry {
	return &Registry{caches: make(map[string]*Cache)}
}

// Register adds a cache under id. Registering an id twice is an error.
func (r *Registry) Register(id string, c *Cache) error {
	if c == nil {
		return fmt.Errorf("cache %q is nil", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.caches[id]; exists {
		return fmt.Errorf("cache %q already registered", id)
	}
	r.caches[id] = c
	return nil
}

func (r *Registry) Find(id string) (*Cache, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.caches[id]
	return c, ok
}

// Unregister removes id and reports whether it was registered.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.caches[id]; !ok {
		return false
	}
	delete(r.caches, id)
	return true
}

// IDs returns the registered identifiers in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.caches))
	for id := range r.caches {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
