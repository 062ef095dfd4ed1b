package component

// VNode is a node of a rendered component tree. Component placeholder nodes
// carry ComponentOptions; once mounted their ComponentInstance is set.
type VNode struct {
	Tag      string
	Data     *VNodeData
	Children []*VNode
	Text     string

	// Context is the instance whose render produced the node.
	Context           *Instance
	ComponentOptions  *VNodeComponentOptions
	ComponentInstance *Instance
}

// VNodeData holds the per-node declarations passed to CreateElement.
type VNodeData struct {
	Attrs map[string]any
	Props map[string]any
	On    map[string]any
	Slot  string
	Ref   string
}

// VNodeComponentOptions is the component attachment metadata of a
// placeholder node, read by the internal options path.
type VNodeComponentOptions struct {
	Ctor      *Definition
	PropsData map[string]any
	Listeners map[string]any
	Children  []*VNode
	Tag       string
}

// CreateElementFunc builds a vnode. Tags registered as components produce
// component placeholder nodes.
type CreateElementFunc func(tag string, data *VNodeData, children ...*VNode) (*VNode, error)

// RenderFunc renders an instance into a vnode tree.
type RenderFunc func(inst *Instance, h CreateElementFunc) (*VNode, error)

// TextNode returns a text vnode.
func TextNode(text string) *VNode {
	return &VNode{Text: text}
}

// IsComponent reports whether the node is a component placeholder.
func (v *VNode) IsComponent() bool {
	return v != nil && v.ComponentOptions != nil
}
