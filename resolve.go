package component

import (
	"reflect"
	"time"
)

// ResolveOutcome describes what a Resolve call did for one definition.
type ResolveOutcome string

const (
	// ResolveBase means the definition has no parent.
	ResolveBase ResolveOutcome = "base"
	// ResolveCached means no ancestor changed since the last resolution.
	ResolveCached ResolveOutcome = "cached"
	// ResolveRecomputed means the options were rebuilt from the parent.
	ResolveRecomputed ResolveOutcome = "recomputed"
)

// Resolver walks a definition chain and keeps each definition's cached
// options current with its ancestors.
type Resolver struct {
	logger  Logger
	metrics *Metrics
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// ResolverWithLogger records resolve events.
func ResolverWithLogger(logger Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// ResolverWithMetrics records resolve outcomes.
func ResolverWithMetrics(m *Metrics) ResolverOption {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// NewResolver constructs a Resolver.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{logger: noopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

var defaultResolver = NewResolver()

// ResolveOptions resolves def with a resolver that neither logs nor counts.
func ResolveOptions(def *Definition) *Options {
	return defaultResolver.Resolve(def)
}

// Resolve returns the effective options of def. Options are rebuilt only
// when the parent's resolved options are a different object than the one
// seen at the last rebuild; otherwise the cached options are returned as is.
func (r *Resolver) Resolve(def *Definition) *Options {
	if def == nil {
		return nil
	}
	options := def.options
	if def.super == nil {
		r.record(def, ResolveBase, nil, 0)
		return options
	}

	superOptions := r.Resolve(def.super)
	if superOptions.Generation() == def.superGeneration {
		r.record(def, ResolveCached, nil, 0)
		return options
	}

	start := time.Now()
	def.superOptions = superOptions
	def.superGeneration = superOptions.Generation()

	modified := resolveModifiedOptions(def)
	if modified != nil {
		def.extendOptions.Extend(modified)
	}
	options = def.merger.Merge(superOptions, def.extendOptions, nil)
	if name := options.Name(); name != "" {
		ensureComponents(options).Set(name, def)
	}
	def.options = options

	r.record(def, ResolveRecomputed, modified.OwnKeys(), time.Since(start))
	return options
}

func (r *Resolver) record(def *Definition, outcome ResolveOutcome, modified []string, took time.Duration) {
	r.metrics.observeResolve(outcome)
	r.logger.LogResolve(ResolveLogEvent{
		Definition: FormatDefinitionName(def),
		CID:        def.cid,
		Outcome:    outcome,
		Modified:   modified,
		Duration:   took,
	})
}

// resolveModifiedOptions collects the own options attached to def after it
// was created, by diffing against the sealed snapshot.
func resolveModifiedOptions(def *Definition) *Options {
	var modified *Options
	latest := def.options
	sealed := def.sealed
	for _, key := range latest.OwnKeys() {
		value, _ := latest.Get(key)
		sealedValue, ok := sealed.Get(key)
		if ok && sameValue(value, sealedValue) {
			continue
		}
		if modified == nil {
			modified = NewOptions(nil)
		}
		modified.Set(key, value)
	}
	return modified
}

// sameValue reports reference identity for maps, slices, pointers, chans and
// funcs and equality for comparable values. Funcs compare by code pointer, so
// two closures of the same literal are reported as the same value.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if va.Comparable() && vb.Comparable() {
		return va.Equal(vb)
	}
	return reflect.DeepEqual(a, b)
}
