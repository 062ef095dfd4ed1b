package activity

import (
	"errors"
	"testing"
)

func TestBuildHookEvent(t *testing.T) {
	parent := uint64(3)
	meta := map[string]any{"custom": "value"}
	event := BuildHookEvent(LifecycleEventInput{
		UID:       9,
		ParentUID: &parent,
		Component: " <TodoItem> ",
		Hook:      "created",
		Path:      "internal",
		Metadata:  meta,
	})

	if event.Verb != "component.created" {
		t.Fatalf("expected verb component.created, got %q", event.Verb)
	}
	if event.ObjectType != ObjectTypeComponent || event.ObjectID != "9" || event.ParentID != "3" {
		t.Fatalf("unexpected object fields: %+v", event)
	}
	if event.Component != "<TodoItem>" {
		t.Fatalf("expected trimmed component, got %q", event.Component)
	}
	if event.Metadata["hook"] != "created" || event.Metadata["path"] != "internal" || event.Metadata["custom"] != "value" {
		t.Fatalf("unexpected metadata: %+v", event.Metadata)
	}
	event.Metadata["custom"] = "changed"
	if meta["custom"] != "value" {
		t.Fatalf("expected input metadata untouched")
	}
}

func TestBuildInitFailedEvent(t *testing.T) {
	event := BuildInitFailedEvent(LifecycleEventInput{UID: 1}, errors.New("boom"))
	if event.Verb != "component.init_failed" {
		t.Fatalf("unexpected verb %q", event.Verb)
	}
	if event.Metadata["error"] != "boom" {
		t.Fatalf("expected error metadata, got %+v", event.Metadata)
	}
	if event.ParentID != "" {
		t.Fatalf("expected empty parent id, got %q", event.ParentID)
	}
}
