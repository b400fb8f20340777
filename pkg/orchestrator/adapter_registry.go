package orchestrator

import (
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-modelgen/pkg/classdesc"
)

// AdapterRegistry holds the descriptor format adapters the orchestrator can
// load catalogs with. Names are case-insensitive; adapters keep their
// registration order.
type AdapterRegistry struct {
	mu      sync.RWMutex
	entries []classdesc.FormatAdapter
}

// NewAdapterRegistry returns an empty registry.
func NewAdapterRegistry() *AdapterRegistry {
	return &AdapterRegistry{}
}

func (r *AdapterRegistry) Register(adapter classdesc.FormatAdapter) error {
	if adapter == nil {
		return fmt.Errorf("orchestrator: nil format adapter")
	}
	name := adapterKey(adapter.Name())
	if name == "" {
		return fmt.Errorf("orchestrator: format adapter without a name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.find(name) != nil {
		return fmt.Errorf("orchestrator: format %q registered twice", name)
	}
	r.entries = append(r.entries, adapter)
	return nil
}

// MustRegister is Register for wiring code; it panics on error.
func (r *AdapterRegistry) MustRegister(adapter classdesc.FormatAdapter) {
	if err := r.Register(adapter); err != nil {
		panic(err)
	}
}

// Get returns the adapter registered under name.
func (r *AdapterRegistry) Get(name string) (classdesc.FormatAdapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if adapter := r.find(adapterKey(name)); adapter != nil {
		return adapter, nil
	}
	return nil, fmt.Errorf("orchestrator: unknown format %q (have %s)", name, strings.Join(r.names(), ", "))
}

// List returns the adapter names in registration order.
func (r *AdapterRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.names()
}

func (r *AdapterRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.find(adapterKey(name)) != nil
}

// Detect returns the adapters that claim the payload.
func (r *AdapterRegistry) Detect(src classdesc.Source, raw []byte) []classdesc.FormatAdapter {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []classdesc.FormatAdapter
	for _, adapter := range r.entries {
		if adapter.Detect(src, raw) {
			matches = append(matches, adapter)
		}
	}
	return matches
}

// find must be called with mu held.
func (r *AdapterRegistry) find(key string) classdesc.FormatAdapter {
	if key == "" {
		return nil
	}
	for _, adapter := range r.entries {
		if adapterKey(adapter.Name()) == key {
			return adapter
		}
	}
	return nil
}

func (r *AdapterRegistry) names() []string {
	out := make([]string, len(r.entries))
	for i, adapter := range r.entries {
		out[i] = adapterKey(adapter.Name())
	}
	return out
}

func adapterKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
