package ratelimit

import (
	"sync"
)

// Registry reuses limiter instances per (namespace, limit, window) triple.
// Entries live until Reset.
type Registry struct {
	backend  Backend
	limiters sync.Map // Config.Key() -> Limiter
}

// NewRegistry creates a registry building limiters from backend. A nil
// backend means limiting is unavailable.
func NewRegistry(backend Backend) *Registry {
	return &Registry{backend: backend}
}

// Available reports whether a backend is configured.
func (r *Registry) Available() bool {
	return r != nil && r.backend != nil
}

// Get returns the limiter for cfg, constructing it on first use. Concurrent
// first calls for the same triple all receive the same instance.
func (r *Registry) Get(cfg Config) (Limiter, error) {
	if !r.Available() {
		return nil, ErrNoBackend
	}
	if _, err := cfg.validate(); err != nil {
		return nil, err
	}

	key := cfg.Key()
	if l, ok := r.limiters.Load(key); ok {
		return l.(Limiter), nil
	}

	limiter, err := r.backend.NewLimiter(cfg)
	if err != nil {
		return nil, err
	}
	actual, _ := r.limiters.LoadOrStore(key, limiter)
	return actual.(Limiter), nil
}

// Len returns the number of cached limiters.
func (r *Registry) Len() int {
	n := 0
	r.limiters.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Reset drops every cached limiter.
func (r *Registry) Reset() {
	r.limiters.Range(func(k, _ any) bool {
		r.limiters.Delete(k)
		return true
	})
}
