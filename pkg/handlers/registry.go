package handlers

import (
	"sort"
	"sync"

	"github.com/arthur-debert/dotlink/pkg/errors"
)

// Registry maps directive names to their handlers. It is safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates a registry holding the given handlers
func NewRegistry(handlers ...Handler) (*Registry, error) {
	r := &Registry{handlers: make(map[string]Handler)}
	for _, h := range handlers {
		if err := r.Register(h); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a handler under its Name
func (r *Registry) Register(h Handler) error {
	if h == nil || h.Name() == "" {
		return errors.New(errors.ErrInvalidInput, "handler name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[h.Name()]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "directive '%s' is already registered", h.Name())
	}
	r.handlers[h.Name()] = h
	return nil
}

// Get returns the handler for a directive
func (r *Registry) Get(directive string) (Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, exists := r.handlers[directive]
	if !exists {
		return nil, errors.Newf(errors.ErrDirectiveUnknown, "action %s not handled", directive)
	}
	return h, nil
}

// Has checks if a directive is registered
func (r *Registry) Has(directive string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.handlers[directive]
	return exists
}

// Names returns all registered directives in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
