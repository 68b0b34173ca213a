// Package view provides a generation guard for concurrently-issued fetches.
//
// A view that issues several independent fetches has no ordering guarantee
// between their completions. Each fetch takes a generation number when it
// starts; a completion whose generation is no longer current for its view key
// must be discarded instead of overwriting fresher state.
package view

import "sync"

// Registry tracks the current generation per view key.
type Registry struct {
	mu   sync.Mutex
	gens map[string]uint64
}

func NewRegistry() *Registry {
	return &Registry{
		gens: make(map[string]uint64),
	}
}

// Next advances the generation for key and returns it. Call when a new fetch
// is issued; every earlier generation for the same key becomes stale.
func (r *Registry) Next(key string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gens[key]++
	return r.gens[key]
}

// Current reports whether gen is still the live generation for key.
func (r *Registry) Current(key string, gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.gens[key] == gen
}

// Invalidate marks every outstanding generation for key stale without issuing
// a new one. Used when a view is torn down and dangling completions must not
// touch shared state anymore.
func (r *Registry) Invalidate(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gens[key]++
}
