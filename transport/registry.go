package transport

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-leave-lookup/core"
)

type Registry struct {
	mu       sync.RWMutex
	adapters map[string]core.EnvelopeAdapter
}

func NewRegistry() *Registry {
	return &Registry{
		adapters: map[string]core.EnvelopeAdapter{},
	}
}

// NewDefaultRegistry registers both caller surfaces.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	_ = registry.Register(NewAgentActionAdapter())
	_ = registry.Register(NewGatewayAdapter())
	return registry
}

func (r *Registry) Register(adapter core.EnvelopeAdapter) error {
	if r == nil {
		return fmt.Errorf("transport: registry is nil")
	}
	if adapter == nil {
		return fmt.Errorf("transport: adapter is nil")
	}
	kind := normalizeKind(adapter.Kind())
	if kind == "" {
		return fmt.Errorf("transport: adapter kind is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.adapters[kind]; exists {
		return fmt.Errorf("transport: adapter kind %q already registered", kind)
	}
	r.adapters[kind] = adapter
	return nil
}

func (r *Registry) Get(kind string) (core.EnvelopeAdapter, bool) {
	if r == nil {
		return nil, false
	}
	kind = normalizeKind(kind)
	r.mu.RLock()
	defer r.mu.RUnlock()
	adapter, ok := r.adapters[kind]
	return adapter, ok
}

func (r *Registry) List() []core.EnvelopeAdapter {
	if r == nil {
		return []core.EnvelopeAdapter{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.adapters))
	for kind := range r.adapters {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	result := make([]core.EnvelopeAdapter, 0, len(kinds))
	for _, kind := range kinds {
		result = append(result, r.adapters[kind])
	}
	return result
}

// ResolveKind picks the envelope surface for an invocation. The choice
// depends only on the event shape, never on the outcome.
func ResolveKind(agentInvocation bool) string {
	if agentInvocation {
		return KindAgent
	}
	return KindGateway
}

func normalizeKind(kind string) string {
	return strings.TrimSpace(strings.ToLower(kind))
}
