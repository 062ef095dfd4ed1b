package component

import "testing"

func TestCreateElementConvertsRawComponentOnce(t *testing.T) {
	base := NewBase(NewOptions(nil))
	parent := base.Extend(NewOptions(map[string]any{
		KeyName: "parent",
		KeyComponents: map[string]any{
			"rawLeaf": map[string]any{KeyProps: []string{"label"}},
		},
	}))

	first, err := New(parent, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	second, err := New(parent, NewOptions(map[string]any{KeyName: "other"}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	a, err := first.CreateElement("raw-leaf", nil)
	if err != nil {
		t.Fatalf("create element: %v", err)
	}
	b, err := first.CreateElement("raw-leaf", nil)
	if err != nil {
		t.Fatalf("create element: %v", err)
	}
	c, err := second.CreateElement("rawLeaf", nil)
	if err != nil {
		t.Fatalf("create element: %v", err)
	}
	if a.ComponentOptions == nil || b.ComponentOptions == nil || c.ComponentOptions == nil {
		t.Fatalf("expected component vnodes, got %+v %+v %+v", a, b, c)
	}
	ctor := a.ComponentOptions.Ctor
	if b.ComponentOptions.Ctor != ctor {
		t.Fatalf("expected repeated renders to share a constructor, got cid %d and %d", ctor.CID(), b.ComponentOptions.Ctor.CID())
	}
	if c.ComponentOptions.Ctor != ctor {
		t.Fatalf("expected instances to share a constructor, got cid %d and %d", ctor.CID(), c.ComponentOptions.Ctor.CID())
	}
	if a.Tag != b.Tag {
		t.Fatalf("expected stable vnode tags, got %q and %q", a.Tag, b.Tag)
	}
	if ctor.Name() != "rawLeaf" {
		t.Fatalf("expected registered name, got %q", ctor.Name())
	}

	stored, ok := parent.Options().Components().Definition("rawLeaf")
	if !ok || stored != ctor {
		t.Fatalf("expected the registry entry to hold the converted definition, got %v %v", stored, ok)
	}
}

func TestCreateElementKeepsUnknownTagsPlain(t *testing.T) {
	base := NewBase(NewOptions(nil))
	inst, err := New(base.Extend(NewOptions(nil)), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	vnode, err := inst.CreateElement("div", nil)
	if err != nil {
		t.Fatalf("create element: %v", err)
	}
	if vnode.ComponentOptions != nil || vnode.Tag != "div" {
		t.Fatalf("expected plain element, got %+v", vnode)
	}
}
