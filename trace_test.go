package component

import (
	"testing"
)

func TestTraceOptionReportsProvenance(t *testing.T) {
	base := NewBase(NewOptions(map[string]any{"delimiters": "[[ ]]"}))
	card := base.Extend(NewOptions(map[string]any{KeyName: "card", "color": "red"}))
	fancy := card.Extend(NewOptions(map[string]any{KeyName: "fancy-card"}))
	fancy.Options().Set("color", "gold")

	trace := TraceOption(nil, fancy, "color")
	if !trace.Found || trace.Value != "gold" {
		t.Fatalf("expected effective late value, got %+v", trace)
	}
	if len(trace.Layers) != 3 {
		t.Fatalf("expected three layers, got %d", len(trace.Layers))
	}
	if trace.Layers[0].Definition != "fancy-card" || trace.Layers[0].Source != SourceLate {
		t.Fatalf("unexpected nearest layer %+v", trace.Layers[0])
	}
	if trace.Layers[1].Source != SourceDeclared || trace.Layers[1].Value != "red" {
		t.Fatalf("unexpected middle layer %+v", trace.Layers[1])
	}
	if trace.Layers[2].Found {
		t.Fatalf("expected base not to set color, got %+v", trace.Layers[2])
	}

	global := TraceOption(nil, fancy, "delimiters")
	last := global.Layers[len(global.Layers)-1]
	if last.Source != SourceGlobal || last.Value != "[[ ]]" {
		t.Fatalf("unexpected base layer %+v", last)
	}
}

func TestTraceJSONRoundTrip(t *testing.T) {
	base := NewBase(NewOptions(nil))
	def := base.Extend(NewOptions(map[string]any{KeyName: "widget"}))
	trace := TraceOption(NewResolver(), def, KeyName)

	payload, err := trace.ToJSON()
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	decoded, err := TraceFromJSON(payload)
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	if decoded.Key != KeyName || decoded.Value != "widget" || len(decoded.Layers) != len(trace.Layers) {
		t.Fatalf("unexpected decoded trace %+v", decoded)
	}
	if _, err := TraceFromJSON([]byte("{")); err == nil {
		t.Fatalf("expected malformed payload to fail")
	}
}

func TestDescribeListsVisibleKeys(t *testing.T) {
	base := NewBase(NewOptions(nil))
	def := base.Extend(NewOptions(map[string]any{
		KeyName:  "form",
		"config": map[string]any{"layout": "grid", "columns": 2},
	}))
	inst := NewOptionsFrom(ResolveOptions(def))
	inst.Set("size", "lg")

	fields := map[string]FieldDescriptor{}
	for _, field := range Describe(inst) {
		fields[field.Path] = field
	}
	if field := fields["config.layout"]; field.Type != "string" || field.Value != "grid" || field.Own {
		t.Fatalf("unexpected nested field %+v", field)
	}
	if field := fields["size"]; !field.Own {
		t.Fatalf("expected own field, got %+v", field)
	}
	if field := fields[KeyComponents]; field.Type != "registry" || field.Value != "form" {
		t.Fatalf("unexpected registry field %+v", field)
	}
	if len(Describe(nil)) != 0 {
		t.Fatalf("expected no fields for nil options")
	}
}
