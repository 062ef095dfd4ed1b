package component

import (
	"sort"
	"sync"
)

// Registry holds named assets (components, directives, filters). Lookups
// that miss fall back to the parent registry.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]any
	parent  *Registry
}

// NewRegistry returns an empty registry delegating to parent.
func NewRegistry(parent *Registry) *Registry {
	return &Registry{
		entries: map[string]any{},
		parent:  parent,
	}
}

// Parent returns the fallback registry.
func (r *Registry) Parent() *Registry {
	if r == nil {
		return nil
	}
	return r.parent
}

// Get resolves name through the registry chain.
func (r *Registry) Get(name string) (any, bool) {
	value, _, ok := r.lookup(name)
	return value, ok
}

// lookup resolves name and also returns the registry that owns the entry.
func (r *Registry) lookup(name string) (any, *Registry, bool) {
	for cur := r; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		value, ok := cur.entries[name]
		cur.mu.RUnlock()
		if ok {
			return value, cur, true
		}
	}
	return nil, nil, false
}

// promote replaces the raw entry under name with def. When another caller
// already promoted the entry, that definition wins and is returned.
func (r *Registry) promote(name string, def *Definition) *Definition {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.entries[name].(*Definition); ok {
		return existing
	}
	if r.entries == nil {
		r.entries = map[string]any{}
	}
	r.entries[name] = def
	return def
}

// Definition resolves name and returns it when it is a *Definition.
func (r *Registry) Definition(name string) (*Definition, bool) {
	value, ok := r.Get(name)
	if !ok {
		return nil, false
	}
	def, ok := value.(*Definition)
	return def, ok
}

// Set registers value under name on this registry only.
func (r *Registry) Set(name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = map[string]any{}
	}
	r.entries[name] = value
}

// Has reports whether name resolves anywhere in the chain.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// HasOwn reports whether name is registered directly on r.
func (r *Registry) HasOwn(name string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// OwnNames returns names registered directly on r, sorted.
func (r *Registry) OwnNames() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Names returns every resolvable name, sorted.
func (r *Registry) Names() []string {
	seen := map[string]struct{}{}
	var names []string
	for cur := r; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		for name := range cur.entries {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
		cur.mu.RUnlock()
	}
	sort.Strings(names)
	return names
}

func asRegistry(value any) *Registry {
	switch typed := value.(type) {
	case *Registry:
		return typed
	case map[string]any:
		r := NewRegistry(nil)
		for name, entry := range typed {
			r.Set(name, entry)
		}
		return r
	case map[string]*Definition:
		r := NewRegistry(nil)
		for name, def := range typed {
			r.Set(name, def)
		}
		return r
	default:
		return nil
	}
}
