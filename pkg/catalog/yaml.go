package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-component/internal/hydrate"
)

// document is the YAML file layout. A stream may hold several documents.
type document struct {
	Namespace  string           `yaml:"namespace"`
	Components []map[string]any `yaml:"components"`
}

// LoadYAML decodes every spec in a YAML stream. Unknown spec fields are
// rejected and each spec is validated.
func LoadYAML(r io.Reader) ([]Spec, error) {
	return LoadYAMLSource("", r)
}

// LoadYAMLSource is LoadYAML with source, usually a file path, prefixed to
// the spec reference in decode errors.
func LoadYAMLSource(source string, r io.Reader) ([]Spec, error) {
	dec := yaml.NewDecoder(r)
	var specs []Spec
	for {
		var doc document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: yaml: %w", err)
		}
		for i, payload := range doc.Components {
			spec, err := DecodeSpec(hydrate.Context{Source: source, Namespace: doc.Namespace, Name: specName(payload), Index: i}, payload)
			if err != nil {
				return nil, err
			}
			specs = append(specs, spec)
		}
	}
	return specs, nil
}

var specDecoder = hydrate.NewDecoder[Spec](
	hydrate.WithDisallowUnknownFields[Spec](),
	hydrate.WithPreHook[Spec](normalizeSpecPayload),
	hydrate.WithPostHook[Spec](func(_ hydrate.Context, spec *Spec) error {
		return spec.Validate()
	}),
)

// DecodeSpec hydrates one spec from a generic payload.
func DecodeSpec(ctx hydrate.Context, payload map[string]any) (Spec, error) {
	return specDecoder.Decode(ctx, payload)
}

// normalizeSpecPayload accepts a single string for mixins and components.
func normalizeSpecPayload(_ hydrate.Context, payload map[string]any) (map[string]any, error) {
	for _, key := range []string{"mixins", "components"} {
		if value, ok := payload[key].(string); ok {
			payload[key] = []any{value}
		}
	}
	return payload, nil
}

func specName(payload map[string]any) string {
	name, _ := payload["name"].(string)
	return name
}

// Import saves specs in order, overwriting existing records.
func (c Catalog) Import(ctx context.Context, specs []Spec) error {
	for _, spec := range specs {
		if _, err := c.Put(ctx, spec, Meta{}); err != nil {
			return err
		}
	}
	return nil
}
