package component

import (
	"errors"
	"testing"
)

func TestBuildInternalOptionsCopiesOnlyListedFields(t *testing.T) {
	base := NewBase(NewOptions(nil))
	def := base.Extend(NewOptions(map[string]any{
		KeyName:    "item",
		"comments": false,
	}))
	resolved := ResolveOptions(def)

	parent := &Instance{UID: 99}
	children := []*VNode{TextNode("slot content")}
	vnode := &VNode{
		Tag: "component-1-item",
		ComponentOptions: &VNodeComponentOptions{
			Ctor:      def,
			PropsData: map[string]any{"label": "first"},
			Listeners: map[string]any{"click": "onClick"},
			Children:  children,
			Tag:       "item",
		},
	}

	opts, err := buildInternalOptions(resolved, NewInternalOptions(parent, vnode))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	own := opts.OwnKeys()
	want := []string{KeyComponentTag, KeyParentListeners, KeyParentVnode, KeyRenderChildren, KeyParent, KeyPropsData}
	if len(own) != len(want) {
		t.Fatalf("expected own keys %v, got %v", want, own)
	}
	for _, key := range want {
		if !opts.HasOwn(key) {
			t.Fatalf("expected %q to be an own key, got %v", key, own)
		}
	}

	if opts.Value(KeyParent) != parent {
		t.Fatalf("expected parent to be copied")
	}
	if opts.Value(KeyParentVnode) != vnode {
		t.Fatalf("expected parent vnode to be copied")
	}
	if opts.Value(KeyComponentTag) != "item" {
		t.Fatalf("expected component tag, got %v", opts.Value(KeyComponentTag))
	}
	if got := opts.Value(KeyPropsData).(map[string]any)["label"]; got != "first" {
		t.Fatalf("expected props data, got %v", got)
	}

	if opts.HasOwn("comments") || opts.HasOwn(KeyName) {
		t.Fatalf("expected definition options to stay on the fallback")
	}
	if got, ok := opts.Get("comments"); !ok || got != false {
		t.Fatalf("expected fallback lookup of comments, got %v %v", got, ok)
	}
	if opts.Name() != "item" {
		t.Fatalf("expected fallback name, got %q", opts.Name())
	}
	if opts.Base() != resolved {
		t.Fatalf("expected fallback to be the resolved options")
	}
}

func TestBuildInternalOptionsCopiesExplicitRender(t *testing.T) {
	base := NewBase(NewOptions(nil))
	def := base.Extend(NewOptions(map[string]any{KeyName: "item"}))
	vnode := &VNode{ComponentOptions: &VNodeComponentOptions{Ctor: def, Tag: "item"}}

	render := RenderFunc(func(inst *Instance, h CreateElementFunc) (*VNode, error) {
		return TextNode("inline"), nil
	})
	supplied := NewInternalOptions(nil, vnode)
	supplied.Set(KeyRender, render)
	supplied.Set(KeyStaticRenderFns, []RenderFunc{})

	opts, err := buildInternalOptions(ResolveOptions(def), supplied)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !opts.HasOwn(KeyRender) || !opts.HasOwn(KeyStaticRenderFns) {
		t.Fatalf("expected render fields to be copied, got %v", opts.OwnKeys())
	}
}

func TestBuildInternalOptionsRequiresParentVnode(t *testing.T) {
	base := NewBase(NewOptions(nil))
	def := base.Extend(NewOptions(nil))

	_, err := buildInternalOptions(ResolveOptions(def), NewOptions(map[string]any{KeyIsComponent: true}))
	if !errors.Is(err, ErrMissingParentVnode) {
		t.Fatalf("expected ErrMissingParentVnode, got %v", err)
	}

	_, err = buildInternalOptions(ResolveOptions(def), NewInternalOptions(nil, &VNode{Tag: "div"}))
	if !errors.Is(err, ErrMissingParentVnode) {
		t.Fatalf("expected ErrMissingParentVnode for a plain node, got %v", err)
	}
}

func TestIsInternal(t *testing.T) {
	if IsInternal(nil) {
		t.Fatalf("nil options are not internal")
	}
	if IsInternal(NewOptions(map[string]any{"el": "#app"})) {
		t.Fatalf("plain options are not internal")
	}
	if !IsInternal(NewInternalOptions(nil, nil)) {
		t.Fatalf("expected internal marker")
	}
}
