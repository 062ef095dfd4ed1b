package component

import (
	"context"
	"fmt"
)

// TreeMounter renders an instance and creates, initializes and mounts a
// child instance for every component placeholder in the rendered tree.
// Child creation re-enters Initializer.InitContext.
type TreeMounter struct {
	init *Initializer
}

// NewTreeMounter returns a mounter that creates children through init.
func NewTreeMounter(init *Initializer) *TreeMounter {
	return &TreeMounter{init: init}
}

// Mount implements Mounter. Children are mounted before their parent's
// mounted hook runs.
func (m *TreeMounter) Mount(ctx context.Context, inst *Instance, target any) error {
	inst.El = target
	if err := m.init.callHook(ctx, inst, HookBeforeMount); err != nil {
		return err
	}

	tree, err := renderInstance(inst)
	if err != nil {
		return err
	}
	inst.Tree = tree
	if err := m.mountChildren(ctx, inst, tree); err != nil {
		return err
	}

	inst.mounted = true
	return m.init.callHook(ctx, inst, HookMounted)
}

func (m *TreeMounter) mountChildren(ctx context.Context, inst *Instance, node *VNode) error {
	if node == nil {
		return nil
	}
	if node.IsComponent() {
		child := NewInstance(node.ComponentOptions.Ctor)
		if err := m.init.InitContext(ctx, child, NewInternalOptions(inst, node)); err != nil {
			return err
		}
		node.ComponentInstance = child
		if node.Data != nil && node.Data.Ref != "" {
			inst.Refs[node.Data.Ref] = child
		}
		return m.Mount(ctx, child, nil)
	}
	if node.Data != nil && node.Data.Ref != "" {
		inst.Refs[node.Data.Ref] = node
	}
	for _, child := range node.Children {
		if err := m.mountChildren(ctx, inst, child); err != nil {
			return err
		}
	}
	return nil
}

func renderInstance(inst *Instance) (*VNode, error) {
	value, ok := inst.Options.Get(KeyRender)
	if !ok || value == nil {
		return nil, nil
	}
	var render RenderFunc
	switch typed := value.(type) {
	case RenderFunc:
		render = typed
	case func(*Instance, CreateElementFunc) (*VNode, error):
		render = typed
	default:
		return nil, fmt.Errorf("%w: render is %T", ErrInvalidOption, value)
	}
	tree, err := render(inst, inst.CreateElement)
	if err != nil {
		return nil, err
	}
	return tree, nil
}
