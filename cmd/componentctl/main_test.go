package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	component "github.com/goliatone/go-component"
)

const specsYAML = `
components:
  - name: panel
    options:
      props: [title]
  - name: badge
    extends: panel
    options:
      props:
        title:
          type: string
      data:
        count: 2
      computed:
        shout: upper(title)
        double: count * 2
    template:
      tag: span
      children:
        - text: badge
  - name: app
    components: [badge]
    options:
      data:
        heading: Inbox
    template:
      tag: div
      children:
        - tag: badge
          bind:
            title: heading
`

func writeSpecs(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "specs.yaml")
	if err := os.WriteFile(path, []byte(specsYAML), 0o600); err != nil {
		t.Fatalf("write specs: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestListCommand(t *testing.T) {
	out := run(t, "list", "-f", writeSpecs(t))
	want := "app components badge\nbadge extends panel\npanel\n"
	if out != want {
		t.Fatalf("unexpected list output:\n%s", out)
	}
}

func TestResolveCommandJSON(t *testing.T) {
	out := run(t, "resolve", "badge", "-f", writeSpecs(t), "-o", "json")
	var fields []component.FieldDescriptor
	if err := json.Unmarshal([]byte(out), &fields); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	found := false
	for _, field := range fields {
		if field.Path == "name" && field.Value == "badge" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected resolved name, got %+v", fields)
	}
}

func TestTraceCommand(t *testing.T) {
	out := run(t, "trace", "badge", "props", "-f", writeSpecs(t))
	trace, err := component.TraceFromJSON([]byte(out))
	if err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if !trace.Found || len(trace.Layers) == 0 {
		t.Fatalf("expected props to be traced, got %+v", trace)
	}
	declared := 0
	for _, layer := range trace.Layers {
		if layer.Source == component.SourceDeclared {
			declared++
		}
	}
	if declared != 2 {
		t.Fatalf("expected badge and panel to declare props, got %+v", trace.Layers)
	}
}

func TestInitCommandMountsTree(t *testing.T) {
	out := run(t, "init", "app", "-f", writeSpecs(t), "--events")
	for _, want := range []string{
		"<App> uid=",
		"data: heading=Inbox",
		"<Badge> uid=",
		"props: title=Inbox",
		"computed: double=4 shout=INBOX",
		"component.created",
		"component.mounted",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestParseProps(t *testing.T) {
	props, err := parseProps([]string{"title=Hi", "empty="})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if props["title"] != "Hi" || props["empty"] != "" {
		t.Fatalf("unexpected props %v", props)
	}
	if _, err := parseProps([]string{"broken"}); err == nil {
		t.Fatalf("expected error for missing '='")
	}
}
