package catalog

import (
	"fmt"
	"sort"

	component "github.com/goliatone/go-component"
)

// Builder turns specs into definitions extended from one shared base. Each
// name is built once; later calls return the same definition. A Builder is
// not safe for concurrent use.
type Builder struct {
	base     *component.Definition
	specs    map[string]Spec
	defs     map[string]*component.Definition
	building map[string]bool
	wired    map[string]bool
}

// NewBuilder indexes specs by name. A nil base gets a fresh base definition
// with no global options.
func NewBuilder(base *component.Definition, specs ...Spec) (*Builder, error) {
	if base == nil {
		base = component.NewBase(component.NewOptions(nil))
	}
	b := &Builder{
		base:     base,
		specs:    make(map[string]Spec, len(specs)),
		defs:     map[string]*component.Definition{},
		building: map[string]bool{},
		wired:    map[string]bool{},
	}
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		if _, dup := b.specs[spec.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate spec %q", ErrInvalidSpec, spec.Name)
		}
		b.specs[spec.Name] = spec
	}
	return b, nil
}

// Base returns the definition every spec is extended from.
func (b *Builder) Base() *component.Definition { return b.base }

// Names returns the known spec names sorted.
func (b *Builder) Names() []string {
	names := make([]string, 0, len(b.specs))
	for name := range b.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build returns the definition for name, building its parents, mixins and
// registered components first. Component registration happens after every
// involved definition exists, so specs may register each other.
func (b *Builder) Build(name string) (*component.Definition, error) {
	def, err := b.define(name)
	if err != nil {
		return nil, err
	}
	if err := b.wire(name); err != nil {
		return nil, err
	}
	return def, nil
}

// BuildAll builds every spec.
func (b *Builder) BuildAll() (map[string]*component.Definition, error) {
	out := make(map[string]*component.Definition, len(b.specs))
	for _, name := range b.Names() {
		def, err := b.Build(name)
		if err != nil {
			return nil, err
		}
		out[name] = def
	}
	return out, nil
}

func (b *Builder) define(name string) (*component.Definition, error) {
	if def, ok := b.defs[name]; ok {
		return def, nil
	}
	if b.building[name] {
		return nil, fmt.Errorf("%w: %q", ErrCycle, name)
	}
	spec, ok := b.specs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	b.building[name] = true
	defer delete(b.building, name)

	parent := b.base
	if spec.Extends != "" {
		var err error
		if parent, err = b.define(spec.Extends); err != nil {
			return nil, fmt.Errorf("catalog: %q extends: %w", name, err)
		}
	}

	values := make(map[string]any, len(spec.Options)+3)
	for key, value := range spec.Options {
		values[key] = value
	}
	options := component.NewOptions(values)
	if options.Name() == "" {
		options.Set(component.KeyName, spec.Name)
	}

	if len(spec.Mixins) > 0 {
		mixins := make([]any, 0, len(spec.Mixins))
		for _, mixin := range spec.Mixins {
			def, err := b.define(mixin)
			if err != nil {
				return nil, fmt.Errorf("catalog: %q mixin: %w", name, err)
			}
			mixins = append(mixins, def)
		}
		options.Set(component.KeyMixins, mixins)
	}

	if spec.Template != nil {
		options.Set(component.KeyRender, templateRender(spec.Name, *spec.Template))
	}

	def := parent.Extend(options)
	b.defs[name] = def
	return def, nil
}

// wire registers the components of name and of its mixins. Mixin registries
// are copied at merge time, so their components are registered directly.
func (b *Builder) wire(name string) error {
	if b.wired[name] {
		return nil
	}
	b.wired[name] = true
	spec := b.specs[name]
	def := b.defs[name]

	for _, dep := range b.dependencies(spec) {
		if err := b.wire(dep); err != nil {
			return err
		}
	}
	for _, child := range b.components(spec, map[string]bool{}) {
		childDef, err := b.define(child)
		if err != nil {
			return fmt.Errorf("catalog: %q component: %w", name, err)
		}
		if _, err := def.Component(child, childDef); err != nil {
			return err
		}
		if err := b.wire(child); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) dependencies(spec Spec) []string {
	deps := append([]string(nil), spec.Mixins...)
	if spec.Extends != "" {
		deps = append(deps, spec.Extends)
	}
	return deps
}

func (b *Builder) components(spec Spec, seen map[string]bool) []string {
	if seen[spec.Name] {
		return nil
	}
	seen[spec.Name] = true
	out := append([]string(nil), spec.Components...)
	for _, mixin := range spec.Mixins {
		out = append(out, b.components(b.specs[mixin], seen)...)
	}
	return out
}
