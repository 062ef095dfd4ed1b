package hydrate

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Context locates a component spec inside its source. Errors quote Ref so a
// failure in a multi-document catalog file points at the offending entry.
type Context struct {
	// Source names the stream the spec came from, such as a file path.
	Source string
	// Namespace is the catalog namespace the spec is imported into.
	Namespace string
	// Name is the declared component name, empty when the entry has none.
	Name string
	// Index is the entry's position within its document.
	Index int
}

// Ref returns "namespace/name", falling back to "components[i]" for entries
// without a name.
func (c Context) Ref() string {
	name := c.Name
	if name == "" {
		name = fmt.Sprintf("components[%d]", c.Index)
	}
	if c.Namespace != "" {
		name = c.Namespace + "/" + name
	}
	if c.Source != "" {
		return c.Source + ":" + name
	}
	return name
}

// PreHook rewrites a raw spec payload before it is decoded, typically to
// accept shorthand forms.
type PreHook func(Context, map[string]any) (map[string]any, error)

// PostHook validates or completes a decoded spec.
type PostHook[T any] func(Context, *T) error

// DecoderOption configures a Decoder.
type DecoderOption[T any] func(*Decoder[T])

// Decoder hydrates generic component spec payloads, as produced by the YAML
// loader, into typed specs. Payloads are normalised through JSON so YAML
// scalars and nested maps land on the struct's json tags.
type Decoder[T any] struct {
	preHooks  []PreHook
	postHooks []PostHook[T]
	strict    bool
	numbers   bool
}

// WithPreHook runs hook on a private copy of the payload before decoding.
func WithPreHook[T any](hook PreHook) DecoderOption[T] {
	return func(d *Decoder[T]) {
		if hook != nil {
			d.preHooks = append(d.preHooks, hook)
		}
	}
}

// WithPostHook runs hook on the decoded spec.
func WithPostHook[T any](hook PostHook[T]) DecoderOption[T] {
	return func(d *Decoder[T]) {
		if hook != nil {
			d.postHooks = append(d.postHooks, hook)
		}
	}
}

// WithDisallowUnknownFields rejects spec keys the target type does not
// declare.
func WithDisallowUnknownFields[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.strict = true
	}
}

// WithUseNumber keeps numeric option values as json.Number instead of
// float64.
func WithUseNumber[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.numbers = true
	}
}

// NewDecoder returns a decoder configured by opts.
func NewDecoder[T any](opts ...DecoderOption[T]) *Decoder[T] {
	d := &Decoder[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode hydrates payload into T. The caller's payload is never mutated.
func (d *Decoder[T]) Decode(ctx Context, payload map[string]any) (T, error) {
	var zero T
	if payload == nil {
		return zero, fmt.Errorf("hydrate: spec %s: empty entry", ctx.Ref())
	}

	current, err := clonePayload(payload)
	if err != nil {
		return zero, fmt.Errorf("hydrate: spec %s: copy payload: %w", ctx.Ref(), err)
	}
	for i, hook := range d.preHooks {
		next, err := hook(ctx, current)
		if err != nil {
			return zero, fmt.Errorf("hydrate: spec %s: normalise step %d: %w", ctx.Ref(), i, err)
		}
		if next != nil {
			current = next
		}
	}

	buffer, err := json.Marshal(current)
	if err != nil {
		return zero, fmt.Errorf("hydrate: spec %s: encode payload: %w", ctx.Ref(), err)
	}
	dec := json.NewDecoder(bytes.NewReader(buffer))
	if d.strict {
		dec.DisallowUnknownFields()
	}
	if d.numbers {
		dec.UseNumber()
	}
	var result T
	if err := dec.Decode(&result); err != nil {
		return zero, fmt.Errorf("hydrate: spec %s: %w", ctx.Ref(), err)
	}

	for _, hook := range d.postHooks {
		if err := hook(ctx, &result); err != nil {
			return zero, fmt.Errorf("hydrate: spec %s: %w", ctx.Ref(), err)
		}
	}
	return result, nil
}

func clonePayload(payload map[string]any) (map[string]any, error) {
	buffer, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(buffer, &out); err != nil {
		return nil, err
	}
	return out, nil
}
