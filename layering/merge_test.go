package layering

import (
	"reflect"
	"testing"
)

func TestMergeStrongWinsAndNestedMapsCombine(t *testing.T) {
	weak := map[string]any{
		"title": "parent",
		"theme": map[string]any{"color": "blue", "size": "m"},
		"tags":  []any{"a"},
	}
	strong := map[string]any{
		"title": "child",
		"theme": map[string]any{"color": "red"},
	}

	got := Merge(strong, weak)
	want := map[string]any{
		"title": "child",
		"theme": map[string]any{"color": "red", "size": "m"},
		"tags":  []any{"a"},
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("merged data mismatch:\nwant: %#v\n got: %#v", want, got)
	}
}

func TestMergeDoesNotAliasInputs(t *testing.T) {
	weak := map[string]any{"nested": map[string]any{"k": "v"}, "list": []any{"x"}}
	got := Merge(map[string]any{}, weak)

	got["nested"].(map[string]any)["k"] = "changed"
	got["list"].([]any)[0] = "changed"

	if weak["nested"].(map[string]any)["k"] != "v" {
		t.Fatalf("expected nested map to be copied")
	}
	if weak["list"].([]any)[0] != "x" {
		t.Fatalf("expected slice to be copied")
	}
}

func TestMergeNonMapOverridesMap(t *testing.T) {
	got := Merge(map[string]any{"theme": "dark"}, map[string]any{"theme": map[string]any{"color": "blue"}})
	if got["theme"] != "dark" {
		t.Fatalf("expected strong scalar to replace weak map, got %#v", got["theme"])
	}
}

func TestMergeNilInputs(t *testing.T) {
	if got := Merge(nil, nil); got != nil {
		t.Fatalf("expected nil, got %#v", got)
	}
	got := Merge(map[string]any{"a": 1}, nil)
	if got["a"] != 1 {
		t.Fatalf("expected strong value, got %#v", got)
	}
}

func TestMergeLayersOrdersStrongestFirst(t *testing.T) {
	got := MergeLayers(
		map[string]any{"a": "instance"},
		map[string]any{"a": "mixin", "b": "mixin"},
		map[string]any{"a": "base", "b": "base", "c": "base"},
	)
	want := map[string]any{"a": "instance", "b": "mixin", "c": "base"}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("layers mismatch:\nwant: %#v\n got: %#v", want, got)
	}
	if MergeLayers() != nil {
		t.Fatalf("expected nil for no layers")
	}
}
