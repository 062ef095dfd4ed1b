package component

import (
	"fmt"
	"strings"
)

// defaultRender resolves slots and binds CreateElement to the instance.
type defaultRender struct{}

func (defaultRender) InitRender(inst *Instance) error {
	inst.Tree = nil
	parentVnode, _ := inst.Options.Value(KeyParentVnode).(*VNode)
	inst.Vnode = parentVnode

	var renderContext *Instance
	if parentVnode != nil {
		renderContext = parentVnode.Context
	}
	children, _ := inst.Options.Value(KeyRenderChildren).([]*VNode)
	inst.Slots = resolveSlots(children, renderContext)
	inst.CreateElement = createElementFor(inst)
	return nil
}

// resolveSlots groups slot content by slot name. Nodes without a slot name,
// or rendered in another context, go to the default slot.
func resolveSlots(children []*VNode, context *Instance) map[string][]*VNode {
	slots := map[string][]*VNode{}
	for _, child := range children {
		if child == nil {
			continue
		}
		name := "default"
		if child.Data != nil && child.Data.Slot != "" && child.Context == context {
			name = child.Data.Slot
		}
		slots[name] = append(slots[name], child)
	}
	if isWhitespaceOnly(slots["default"]) {
		delete(slots, "default")
	}
	return slots
}

func isWhitespaceOnly(nodes []*VNode) bool {
	for _, node := range nodes {
		if node.Tag != "" || node.ComponentOptions != nil || strings.TrimSpace(node.Text) != "" {
			return false
		}
	}
	return true
}

func createElementFor(inst *Instance) CreateElementFunc {
	return func(tag string, data *VNodeData, children ...*VNode) (*VNode, error) {
		if tag == "" {
			return &VNode{Context: inst}, nil
		}
		def, err := resolveComponent(inst, tag)
		if err != nil {
			return nil, err
		}
		if def == nil {
			return &VNode{Tag: tag, Data: data, Children: children, Context: inst}, nil
		}
		vnode := &VNode{
			Tag:     fmt.Sprintf("component-%d-%s", def.CID(), tag),
			Data:    data,
			Context: inst,
			ComponentOptions: &VNodeComponentOptions{
				Ctor:     def,
				Children: children,
				Tag:      tag,
			},
		}
		if data != nil {
			vnode.ComponentOptions.PropsData = data.Props
			vnode.ComponentOptions.Listeners = data.On
		}
		return vnode, nil
	}
}

// resolveComponent looks tag up in the instance's component registry, trying
// the tag as written, camelized and capitalized. Raw options are extended from
// the tree's base definition once and the result replaces the raw entry in
// the registry that holds it.
func resolveComponent(inst *Instance, tag string) (*Definition, error) {
	registry := inst.Options.Components()
	if registry == nil {
		return nil, nil
	}
	camelized := camelize(tag)
	for _, name := range []string{tag, camelized, capitalize(camelized)} {
		value, owner, ok := registry.lookup(name)
		if !ok {
			continue
		}
		switch typed := value.(type) {
		case *Definition:
			return typed, nil
		case *Options, map[string]any:
			base, _ := inst.Options.Value(KeyBase).(*Definition)
			if base == nil {
				return nil, fmt.Errorf("%w: no base definition to extend component %q", ErrInvalidOption, tag)
			}
			options := asOptions(typed).Clone()
			if options.Name() == "" {
				options.Set(KeyName, name)
			}
			return owner.promote(name, base.Extend(options)), nil
		default:
			return nil, fmt.Errorf("%w: component %q registered as %T", ErrInvalidOption, tag, value)
		}
	}
	return nil, nil
}

func camelize(s string) string {
	var b strings.Builder
	upper := false
	for _, r := range s {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
