package component

// Merger combines parent and child options into a new Options value. inst is
// nil when merging definitions and set when producing an instance's options.
// Implementations must be deterministic for identical inputs.
type Merger interface {
	Merge(parent, child *Options, inst *Instance) *Options
}

// MergeFunc adapts a function to Merger.
type MergeFunc func(parent, child *Options, inst *Instance) *Options

// Merge implements Merger.
func (f MergeFunc) Merge(parent, child *Options, inst *Instance) *Options {
	return f(parent, child, inst)
}

// Strategy composes the parent and child values of a single key. Absent
// values are passed as nil.
type Strategy func(parent, child any, inst *Instance, key string) any

// StrategyMerger merges options key by key using per-key strategies.
type StrategyMerger struct {
	strategies map[string]Strategy
	fallback   Strategy
}

// MergerOption configures a StrategyMerger.
type MergerOption func(*StrategyMerger)

// WithStrategy overrides the strategy used for key.
func WithStrategy(key string, strategy Strategy) MergerOption {
	return func(m *StrategyMerger) {
		if strategy == nil {
			delete(m.strategies, key)
			return
		}
		m.strategies[key] = strategy
	}
}

// WithDefaultStrategy replaces the strategy used for keys without one.
func WithDefaultStrategy(strategy Strategy) MergerOption {
	return func(m *StrategyMerger) {
		if strategy != nil {
			m.fallback = strategy
		}
	}
}

// NewStrategyMerger returns a merger preloaded with the standard strategies.
func NewStrategyMerger(opts ...MergerOption) *StrategyMerger {
	m := &StrategyMerger{
		strategies: defaultStrategies(),
		fallback:   DefaultStrategy,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// DefaultMerger returns a StrategyMerger with the standard strategies.
func DefaultMerger() Merger {
	return NewStrategyMerger()
}

// MergeOptions merges with the default merger.
func MergeOptions(parent, child *Options, inst *Instance) *Options {
	return defaultMerger.Merge(parent, child, inst)
}

var defaultMerger = NewStrategyMerger()

// Merge implements Merger. child is normalized in place; when it has not been
// merged before, its extends and mixins are folded into parent first.
func (m *StrategyMerger) Merge(parent, child *Options, inst *Instance) *Options {
	if parent == nil {
		parent = NewOptions(nil)
	}
	if child == nil {
		child = NewOptions(nil)
	}

	normalizeOptions(child)

	if !child.Has(KeyBase) {
		if extends := asOptions(child.Value(KeyExtends)); extends != nil {
			parent = m.Merge(parent, extends, inst)
		}
		for _, mixin := range asOptionsList(child.Value(KeyMixins)) {
			parent = m.Merge(parent, mixin, inst)
		}
	}

	out := NewOptions(nil)
	for _, key := range parent.Keys() {
		childValue, _ := child.Get(key)
		out.Set(key, m.strategyFor(key)(parent.Value(key), childValue, inst, key))
	}
	for _, key := range child.Keys() {
		if parent.Has(key) {
			continue
		}
		childValue, _ := child.Get(key)
		out.Set(key, m.strategyFor(key)(nil, childValue, inst, key))
	}
	return out
}

func (m *StrategyMerger) strategyFor(key string) Strategy {
	if strategy, ok := m.strategies[key]; ok {
		return strategy
	}
	return m.fallback
}

// normalizeOptions rewrites shorthand forms in place: hook funcs become hook
// lists, props and inject given as name lists become maps.
func normalizeOptions(o *Options) {
	for _, hook := range LifecycleHooks {
		if !o.HasOwn(hook) {
			continue
		}
		value := o.Value(hook)
		if _, ok := value.([]*Hook); ok {
			continue
		}
		if hooks, err := Hooks(value); err == nil {
			o.Set(hook, hooks)
		}
	}
	if names, ok := nameList(o.Value(KeyProps)); ok && o.HasOwn(KeyProps) {
		props := make(map[string]any, len(names))
		for _, name := range names {
			props[name] = PropOptions{}
		}
		o.Set(KeyProps, props)
	}
	if names, ok := nameList(o.Value(KeyInject)); ok && o.HasOwn(KeyInject) {
		inject := make(map[string]any, len(names))
		for _, name := range names {
			inject[name] = InjectOptions{From: name}
		}
		o.Set(KeyInject, inject)
	}
}

// nameList accepts []string and decoded []any lists of strings.
func nameList(value any) ([]string, bool) {
	switch typed := value.(type) {
	case []string:
		return typed, true
	case []any:
		names := make([]string, 0, len(typed))
		for _, entry := range typed {
			name, ok := entry.(string)
			if !ok {
				return nil, false
			}
			names = append(names, name)
		}
		return names, true
	default:
		return nil, false
	}
}

func asOptions(value any) *Options {
	switch typed := value.(type) {
	case *Options:
		return typed
	case *Definition:
		return typed.Options()
	case map[string]any:
		return NewOptions(typed)
	default:
		return nil
	}
}

func asOptionsList(value any) []*Options {
	switch typed := value.(type) {
	case []*Options:
		return typed
	case []any:
		out := make([]*Options, 0, len(typed))
		for _, entry := range typed {
			if options := asOptions(entry); options != nil {
				out = append(out, options)
			}
		}
		return out
	default:
		if options := asOptions(value); options != nil {
			return []*Options{options}
		}
		return nil
	}
}
