package render

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores renderers by dialect, providing discovery and duplication
// safeguards. Implementations can embed or wrap this for dependency injection.
type Registry struct {
	mu        sync.RWMutex
	renderers map[Dialect]Renderer
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[Dialect]Renderer),
	}
}

// Register adds a renderer by its Dialect(). Duplicate or unknown dialects
// return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	dialect := renderer.Dialect()
	if !dialect.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDialect, dialect)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[dialect]; exists {
		return fmt.Errorf("render: renderer for %q already registered", dialect)
	}

	r.renderers[dialect] = renderer
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves the renderer for a dialect.
func (r *Registry) Get(dialect Dialect) (Renderer, error) {
	if !dialect.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, dialect)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[dialect]
	if !ok {
		return nil, fmt.Errorf("%w for %q", ErrRendererNotFound, dialect)
	}
	return renderer, nil
}

// MustGet panics if the renderer is missing.
func (r *Registry) MustGet(dialect Dialect) Renderer {
	renderer, err := r.Get(dialect)
	if err != nil {
		panic(err)
	}
	return renderer
}

// List returns the registered dialects in sorted order.
func (r *Registry) List() []Dialect {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dialects := make([]Dialect, 0, len(r.renderers))
	for dialect := range r.renderers {
		dialects = append(dialects, dialect)
	}
	sort.Slice(dialects, func(i, j int) bool { return dialects[i] < dialects[j] })
	return dialects
}

// Has reports whether a renderer is registered for dialect.
func (r *Registry) Has(dialect Dialect) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[dialect]
	return ok
}
