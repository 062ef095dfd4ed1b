package catalog

import (
	"fmt"

	component "github.com/goliatone/go-component"
	"github.com/goliatone/go-component/pkg/state"
)

// templateRender compiles a static template into a render function. Bound
// props read the instance state at render time.
func templateRender(spec string, root Node) component.RenderFunc {
	return func(inst *component.Instance, h component.CreateElementFunc) (*component.VNode, error) {
		nodes, err := renderNode(inst, h, root)
		if err != nil {
			return nil, err
		}
		if len(nodes) != 1 {
			return nil, fmt.Errorf("%w: template of %q rendered %d root nodes", ErrInvalidSpec, spec, len(nodes))
		}
		return nodes[0], nil
	}
}

func renderNode(inst *component.Instance, h component.CreateElementFunc, node Node) ([]*component.VNode, error) {
	if node.Tag == "" {
		return []*component.VNode{component.TextNode(node.Text)}, nil
	}
	if node.Tag == "slot" {
		name := node.Name
		if name == "" {
			name = "default"
		}
		if content := inst.Slots[name]; len(content) > 0 {
			return content, nil
		}
		return renderChildren(inst, h, node.Children)
	}

	children, err := renderChildren(inst, h, node.Children)
	if err != nil {
		return nil, err
	}
	vnode, err := h(node.Tag, nodeData(inst, node), children...)
	if err != nil {
		return nil, err
	}
	return []*component.VNode{vnode}, nil
}

func renderChildren(inst *component.Instance, h component.CreateElementFunc, nodes []Node) ([]*component.VNode, error) {
	var out []*component.VNode
	for _, child := range nodes {
		rendered, err := renderNode(inst, h, child)
		if err != nil {
			return nil, err
		}
		out = append(out, rendered...)
	}
	return out, nil
}

func nodeData(inst *component.Instance, node Node) *component.VNodeData {
	if node.Ref == "" && node.Slot == "" && len(node.Props) == 0 && len(node.Bind) == 0 {
		return nil
	}
	data := &component.VNodeData{Ref: node.Ref, Slot: node.Slot}
	if len(node.Props) > 0 || len(node.Bind) > 0 {
		data.Props = make(map[string]any, len(node.Props)+len(node.Bind))
		for key, value := range node.Props {
			data.Props[key] = value
		}
		if len(node.Bind) > 0 {
			vars := state.Vars(inst)
			for prop, key := range node.Bind {
				data.Props[prop] = vars[key]
			}
		}
	}
	return data
}
