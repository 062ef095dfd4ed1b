package component

import (
	"fmt"
	"strings"
	"sync/atomic"
	"unicode"
)

// uidCounter hands out instance ids. It starts at zero with the process and
// is never reset; ids are not reused.
var uidCounter uint64

func nextUID() uint64 {
	return atomic.AddUint64(&uidCounter, 1) - 1
}

// Method is a component method bound to an instance at call time.
type Method func(inst *Instance, args ...any) (any, error)

// Instance is a live component built from a Definition plus instance options.
// Subsystem fields are populated by the collaborators during Init.
type Instance struct {
	UID        uint64
	Definition *Definition
	Options    *Options

	RenderProxy any
	Self        *Instance

	Parent   *Instance
	Root     *Instance
	Children []*Instance
	Refs     map[string]any

	Events        map[string][]any
	Slots         map[string][]*VNode
	CreateElement CreateElementFunc

	// Vnode is the placeholder node in the parent's tree, Tree the rendered
	// tree of this instance.
	Vnode *VNode
	Tree  *VNode
	El    any

	Props    map[string]any
	Methods  map[string]Method
	Data     map[string]any
	Computed map[string]any
	Watchers map[string][]any
	Injected map[string]any
	Provided map[string]any

	frameworkInternal bool
	initialized       bool
	mounted           bool
	inactive          bool
	beingDestroyed    bool
	destroyed         bool
}

// NewInstance allocates an uninitialized instance of def.
func NewInstance(def *Definition) *Instance {
	return &Instance{Definition: def}
}

// IsFrameworkInternal reports whether the instance is marked as a framework
// object that state observers must not wrap.
func (i *Instance) IsFrameworkInternal() bool {
	return i != nil && i.frameworkInternal
}

// Initialized reports whether Init has run on the instance.
func (i *Instance) Initialized() bool {
	return i != nil && i.initialized
}

// Mounted reports whether the instance has been mounted.
func (i *Instance) Mounted() bool {
	return i != nil && i.mounted
}

// Name returns the formatted component name, e.g. "<TodoItem>".
func (i *Instance) Name() string {
	return FormatComponentName(i)
}

// CallMethod invokes a registered method.
func (i *Instance) CallMethod(name string, args ...any) (any, error) {
	method, ok := i.Methods[name]
	if !ok || method == nil {
		return nil, fmt.Errorf("component: method %q not defined on %s", name, i.Name())
	}
	return method(i, args...)
}

// FormatComponentName renders a display name for inst.
func FormatComponentName(inst *Instance) string {
	if inst == nil {
		return "<Anonymous>"
	}
	if inst.Root == inst && inst.Parent == nil && inst.Options != nil && inst.Options.Name() == "" {
		return "<Root>"
	}
	name := ""
	if inst.Options != nil {
		name = inst.Options.Name()
		if name == "" {
			name, _ = inst.Options.Value(KeyComponentTag).(string)
		}
	}
	if name == "" {
		return "<Anonymous>"
	}
	return "<" + classify(name) + ">"
}

// FormatDefinitionName renders a display name for def.
func FormatDefinitionName(def *Definition) string {
	if def == nil {
		return "<nil>"
	}
	if name := def.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("anonymous#%d", def.cid)
}

// classify turns kebab or snake case into PascalCase.
func classify(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if r == '-' || r == '_' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
