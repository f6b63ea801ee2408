package handler

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
)

// Registry is an ordered collection of handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers []Handler // sorted by priority, stable on ties

	initMu      sync.Mutex
	initialized atomic.Bool
	initializer func(*Registry) error
	initErr     error
}

// Option configures a Registry.
type Option func(*Registry)

// WithInitializer sets the function EnsureInitialized runs exactly once.
func WithInitializer(fn func(*Registry) error) Option {
	return func(r *Registry) {
		r.initializer = fn
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds h. Names must be unique.
func (r *Registry) Register(h Handler) error {
	if h == nil {
		return fmt.Errorf("handler: nil handler")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.handlers {
		if existing.Name() == h.Name() {
			return fmt.Errorf("handler: %q already registered", h.Name())
		}
	}
	r.handlers = append(r.handlers, h)
	slices.SortStableFunc(r.handlers, func(a, b Handler) int {
		return a.Priority() - b.Priority()
	})
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(hs ...Handler) {
	for _, h := range hs {
		if err := r.Register(h); err != nil {
			panic(err)
		}
	}
}

// Unregister removes the handler with h's name and reports whether it was present.
func (r *Registry) Unregister(h Handler) bool {
	if h == nil {
		return false
	}
	return r.UnregisterName(h.Name())
}

// UnregisterName removes the handler called name.
func (r *Registry) UnregisterName(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.handlers, func(h Handler) bool { return h.Name() == name })
	if i < 0 {
		return false
	}
	r.handlers = slices.Delete(r.handlers, i, i+1)
	return true
}

// All returns a snapshot in ascending priority. Handlers with equal priority
// keep their registration order.
func (r *Registry) All() []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.handlers)
}

// Get returns the handler called name.
func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.handlers {
		if h.Name() == name {
			return h, true
		}
	}
	return nil, false
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// EnsureInitialized runs the initializer once, even under concurrent first
// calls. Later calls return the first result.
func (r *Registry) EnsureInitialized() error {
	if r.initialized.Load() {
		return r.initErr
	}
	r.initMu.Lock()
	defer r.initMu.Unlock()
	if r.initialized.Load() {
		return r.initErr
	}
	if r.initializer != nil {
		r.initErr = r.initializer(r)
	}
	r.initialized.Store(true)
	return r.initErr
}
