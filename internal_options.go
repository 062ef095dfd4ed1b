package component

import "fmt"

// NewInternalOptions returns the options the framework passes when it
// creates a child instance for a component placeholder node.
func NewInternalOptions(parent *Instance, vnode *VNode) *Options {
	o := NewOptions(map[string]any{
		KeyIsComponent: true,
		KeyParent:      parent,
		KeyParentVnode: vnode,
	})
	return o
}

// IsInternal reports whether supplied carries the internal instantiation
// marker.
func IsInternal(supplied *Options) bool {
	if supplied == nil {
		return false
	}
	marker, _ := supplied.Value(KeyIsComponent).(bool)
	return marker
}

// buildInternalOptions creates the options of an internally created instance
// without a merge. The result falls back to the definition's resolved
// options; only the listed fields become own values.
func buildInternalOptions(resolved, supplied *Options) (*Options, error) {
	opts := NewOptionsFrom(resolved)

	parentVnode, ok := supplied.Value(KeyParentVnode).(*VNode)
	if !ok || parentVnode == nil {
		return nil, ErrMissingParentVnode
	}
	opts.Set(KeyParent, supplied.Value(KeyParent))
	opts.Set(KeyParentVnode, parentVnode)

	vnodeComponentOptions := parentVnode.ComponentOptions
	if vnodeComponentOptions == nil {
		return nil, fmt.Errorf("%w: vnode %q is not a component node", ErrMissingParentVnode, parentVnode.Tag)
	}
	opts.Set(KeyPropsData, vnodeComponentOptions.PropsData)
	opts.Set(KeyParentListeners, vnodeComponentOptions.Listeners)
	opts.Set(KeyRenderChildren, vnodeComponentOptions.Children)
	opts.Set(KeyComponentTag, vnodeComponentOptions.Tag)

	if render, ok := supplied.Get(KeyRender); ok && render != nil {
		opts.Set(KeyRender, render)
		opts.Set(KeyStaticRenderFns, supplied.Value(KeyStaticRenderFns))
	}
	return opts, nil
}
