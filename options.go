package component

import (
	"sort"
	"sync/atomic"
)

// Well-known option keys.
const (
	KeyName            = "name"
	KeyEl              = "el"
	KeyBase            = "_base"
	KeyComponents      = "components"
	KeyDirectives      = "directives"
	KeyFilters         = "filters"
	KeyData            = "data"
	KeyProps           = "props"
	KeyPropsData       = "propsData"
	KeyMethods         = "methods"
	KeyComputed        = "computed"
	KeyWatch           = "watch"
	KeyInject          = "inject"
	KeyProvide         = "provide"
	KeyExtends         = "extends"
	KeyMixins          = "mixins"
	KeyAbstract        = "abstract"
	KeyParent          = "parent"
	KeyParentVnode     = "_parentVnode"
	KeyParentListeners = "_parentListeners"
	KeyRenderChildren  = "_renderChildren"
	KeyComponentTag    = "_componentTag"
	KeyRender          = "render"
	KeyStaticRenderFns = "staticRenderFns"
	KeyIsComponent     = "_isComponent"
)

// generationCounter stamps every Options value on creation. Generations are
// never reused, so comparing two of them answers "is this the same object".
var generationCounter uint64

func nextGeneration() uint64 {
	return atomic.AddUint64(&generationCounter, 1)
}

// Options is a component configuration object. Own values are checked first;
// a miss falls through to base, which is never copied or mutated.
type Options struct {
	values     map[string]any
	base       *Options
	generation uint64

	// definitions extended from these options, keyed by parent CID
	extendCache map[int]*Definition
}

// NewOptions copies values into a fresh Options with no fallback.
func NewOptions(values map[string]any) *Options {
	o := &Options{
		values:     make(map[string]any, len(values)),
		generation: nextGeneration(),
	}
	for key, value := range values {
		o.values[key] = value
	}
	return o
}

// NewOptionsFrom returns an empty Options whose lookups fall back to base.
func NewOptionsFrom(base *Options) *Options {
	return &Options{
		values:     map[string]any{},
		base:       base,
		generation: nextGeneration(),
	}
}

// Generation identifies this object. It does not change on Set.
func (o *Options) Generation() uint64 {
	if o == nil {
		return 0
	}
	return o.generation
}

// Base returns the fallback options, if any.
func (o *Options) Base() *Options {
	if o == nil {
		return nil
	}
	return o.base
}

// Get looks key up in the own values, then along the fallback chain.
func (o *Options) Get(key string) (any, bool) {
	for cur := o; cur != nil; cur = cur.base {
		if value, ok := cur.values[key]; ok {
			return value, true
		}
	}
	return nil, false
}

// Value is Get without the presence flag.
func (o *Options) Value(key string) any {
	value, _ := o.Get(key)
	return value
}

// Set stores value as an own entry.
func (o *Options) Set(key string, value any) {
	if o.values == nil {
		o.values = map[string]any{}
	}
	o.values[key] = value
}

// Delete removes an own entry. Fallback values stay visible.
func (o *Options) Delete(key string) {
	if o == nil {
		return
	}
	delete(o.values, key)
}

// Has reports whether key resolves through the own values or the fallback.
func (o *Options) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// HasOwn reports whether key is stored directly on o.
func (o *Options) HasOwn(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.values[key]
	return ok
}

// OwnKeys returns the own keys sorted.
func (o *Options) OwnKeys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, 0, len(o.values))
	for key := range o.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Keys returns every key visible through o, own and inherited, sorted.
func (o *Options) Keys() []string {
	seen := map[string]struct{}{}
	var keys []string
	for cur := o; cur != nil; cur = cur.base {
		for key := range cur.values {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Len counts the visible keys.
func (o *Options) Len() int {
	return len(o.Keys())
}

// Flatten collapses the fallback chain into a plain map.
func (o *Options) Flatten() map[string]any {
	out := map[string]any{}
	for _, key := range o.Keys() {
		out[key], _ = o.Get(key)
	}
	return out
}

// Clone copies the own values into a new Options that shares the same base.
func (o *Options) Clone() *Options {
	if o == nil {
		return NewOptions(nil)
	}
	clone := NewOptions(o.values)
	clone.base = o.base
	return clone
}

// Name returns the declared component name.
func (o *Options) Name() string {
	name, _ := o.Value(KeyName).(string)
	return name
}

// Components returns the component registry, or nil when none is declared.
func (o *Options) Components() *Registry {
	return asRegistry(o.Value(KeyComponents))
}

// Extend copies every own value of from onto o.
func (o *Options) Extend(from *Options) {
	if from == nil {
		return
	}
	for key, value := range from.values {
		o.Set(key, value)
	}
}
