package component

// Definition is the declared configuration of a component type. A
// definition created with Extend keeps a non-owning reference to its parent
// and owns its cached resolved options.
type Definition struct {
	cid    int
	super  *Definition
	merger Merger

	options         *Options
	superOptions    *Options
	superGeneration uint64
	extendOptions   *Options
	sealed          *Options
}

// DefinitionOption configures a base definition.
type DefinitionOption func(*definitionConfig)

type definitionConfig struct {
	merger Merger
}

// WithMerger sets the merger used by the definition tree. Every definition
// extended from the base inherits it.
func WithMerger(m Merger) DefinitionOption {
	return func(cfg *definitionConfig) {
		if m != nil {
			cfg.merger = m
		}
	}
}

// cidCounter numbers definitions in creation order. Plain sequential
// mutation: definitions are created from a single goroutine.
var cidCounter int

func nextCID() int {
	cid := cidCounter
	cidCounter++
	return cid
}

// NewBase creates a root definition from global options. The asset
// registries are always present on the result and _base points back to the
// returned definition.
func NewBase(global *Options, opts ...DefinitionOption) *Definition {
	cfg := definitionConfig{merger: DefaultMerger()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	options := global.Clone()
	for _, key := range assetKeys {
		registry := asRegistry(options.Value(key))
		if registry == nil {
			registry = NewRegistry(nil)
		}
		options.Set(key, registry)
	}
	base := &Definition{
		cid:    nextCID(),
		merger: cfg.merger,
	}
	options.Set(KeyBase, base)
	base.options = options
	return base
}

// Extend creates a child definition whose options are the parent's current
// options merged with extendOptions. Extending twice from the same parent with
// the same extendOptions object returns the same definition.
func (d *Definition) Extend(extendOptions *Options) *Definition {
	if extendOptions == nil {
		extendOptions = NewOptions(nil)
	}
	if cached, ok := extendOptions.extendCache[d.cid]; ok {
		return cached
	}

	sub := &Definition{
		cid:    nextCID(),
		super:  d,
		merger: d.merger,
	}
	sub.options = d.merger.Merge(d.options, extendOptions, nil)
	if name := sub.options.Name(); name != "" {
		ensureComponents(sub.options).Set(name, sub)
	}
	sub.superOptions = d.options
	sub.superGeneration = d.options.Generation()
	sub.extendOptions = extendOptions
	sub.sealed = sub.options.Clone()

	if extendOptions.extendCache == nil {
		extendOptions.extendCache = map[int]*Definition{}
	}
	extendOptions.extendCache[d.cid] = sub
	return sub
}

// Mixin merges mixin into the definition's options, replacing the options
// object. Definitions extended from d see the change on their next resolve.
func (d *Definition) Mixin(mixin *Options) *Definition {
	d.options = d.merger.Merge(d.options, mixin, nil)
	return d
}

// Component registers def under name in the definition's own component
// registry. Raw options are extended from the tree's base first, taking name
// as their default name.
func (d *Definition) Component(name string, def any) (*Definition, error) {
	var resolved *Definition
	switch typed := def.(type) {
	case *Definition:
		resolved = typed
	case *Options:
		if typed.Name() == "" {
			typed.Set(KeyName, name)
		}
		resolved = d.Base().Extend(typed)
	case map[string]any:
		options := NewOptions(typed)
		if options.Name() == "" {
			options.Set(KeyName, name)
		}
		resolved = d.Base().Extend(options)
	default:
		return nil, ErrInvalidOption
	}
	ensureComponents(d.options).Set(name, resolved)
	return resolved, nil
}

// Base walks up to the root definition.
func (d *Definition) Base() *Definition {
	cur := d
	for cur.super != nil {
		cur = cur.super
	}
	return cur
}

// CID returns the definition's creation-order identifier.
func (d *Definition) CID() int { return d.cid }

// Super returns the parent definition, nil for a base.
func (d *Definition) Super() *Definition { return d.super }

// Merger returns the merger used by the definition tree.
func (d *Definition) Merger() Merger { return d.merger }

// Options returns the cached options without resolving the chain. Mutating
// the result is a late modification. Late values are detected by identity,
// and func values compare by code pointer: replacing a closure with another
// closure of the same literal goes unnoticed. Wrap funcs that need a stable
// identity, as NewHook does, and set the wrapper instead.
func (d *Definition) Options() *Options { return d.options }

// SuperOptions returns the parent options snapshot taken at the last
// recomputation.
func (d *Definition) SuperOptions() *Options { return d.superOptions }

// ExtendOptions returns the options the definition was declared with.
func (d *Definition) ExtendOptions() *Options { return d.extendOptions }

// SealedOptions returns the baseline snapshot taken at creation.
func (d *Definition) SealedOptions() *Options { return d.sealed }

// Name returns the declared name of the cached options.
func (d *Definition) Name() string {
	if d == nil {
		return ""
	}
	return d.options.Name()
}

func ensureComponents(o *Options) *Registry {
	if registry, ok := o.Value(KeyComponents).(*Registry); ok && o.HasOwn(KeyComponents) {
		return registry
	}
	registry := NewRegistry(asRegistry(o.Value(KeyComponents)))
	o.Set(KeyComponents, registry)
	return registry
}
