package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("catalog: spec not found")

	ErrETagMismatch = errors.New("catalog: etag mismatch")

	// ErrInvalidSpec is returned for specs that fail validation.
	ErrInvalidSpec = errors.New("catalog: invalid spec")

	// ErrCycle is returned when extends or mixins refer back to a spec that
	// is still being built.
	ErrCycle = errors.New("catalog: extends cycle")
)

// DefaultNamespace is used by refs and catalogs without a namespace.
const DefaultNamespace = "default"

// Spec declares one component definition.
type Spec struct {
	Name       string         `json:"name" yaml:"name"`
	Extends    string         `json:"extends,omitempty" yaml:"extends,omitempty"`
	Mixins     []string       `json:"mixins,omitempty" yaml:"mixins,omitempty"`
	Components []string       `json:"components,omitempty" yaml:"components,omitempty"`
	Options    map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
	Template   *Node          `json:"template,omitempty" yaml:"template,omitempty"`
}

// Node is one element of a static render template. A node with Text and no
// Tag is a text node. The tag "slot" outputs the slot named by Name, or the
// default slot.
type Node struct {
	Tag      string            `json:"tag,omitempty" yaml:"tag,omitempty"`
	Text     string            `json:"text,omitempty" yaml:"text,omitempty"`
	Name     string            `json:"name,omitempty" yaml:"name,omitempty"`
	Ref      string            `json:"ref,omitempty" yaml:"ref,omitempty"`
	Slot     string            `json:"slot,omitempty" yaml:"slot,omitempty"`
	Props    map[string]any    `json:"props,omitempty" yaml:"props,omitempty"`
	Bind     map[string]string `json:"bind,omitempty" yaml:"bind,omitempty"`
	Children []Node            `json:"children,omitempty" yaml:"children,omitempty"`
}

// Validate checks the spec shape. References to other specs are checked by
// Builder.
func (s Spec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidSpec)
	}
	if s.Extends == s.Name {
		return fmt.Errorf("%w: %q extends itself", ErrInvalidSpec, s.Name)
	}
	for _, mixin := range s.Mixins {
		if mixin == "" || mixin == s.Name {
			return fmt.Errorf("%w: %q has invalid mixin %q", ErrInvalidSpec, s.Name, mixin)
		}
	}
	for _, name := range s.Components {
		if name == "" {
			return fmt.Errorf("%w: %q registers an unnamed component", ErrInvalidSpec, s.Name)
		}
	}
	if s.Template != nil {
		return s.Template.validate(s.Name)
	}
	return nil
}

func (n Node) validate(spec string) error {
	if n.Tag == "" && len(n.Children) > 0 {
		return fmt.Errorf("%w: %q has a text node with children", ErrInvalidSpec, spec)
	}
	for _, child := range n.Children {
		if err := child.validate(spec); err != nil {
			return err
		}
	}
	return nil
}

// Ref identifies one stored spec.
type Ref struct {
	Namespace string
	Name      string
}

// Meta is storage-owned metadata used for audit and concurrency control.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	ETag       string            `json:"etag,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Store loads and saves one spec for a single ref.
type Store interface {
	Load(ctx context.Context, ref Ref) (spec Spec, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, spec Spec, meta Meta) (Meta, error)
	List(ctx context.Context, namespace string) ([]Ref, error)
}

type Mutator func(*Spec) error

func (r Ref) Identifier() (string, error) {
	if r.Name == "" {
		return "", fmt.Errorf("catalog: ref name is required")
	}
	if strings.Contains(r.Name, "/") {
		return "", fmt.Errorf("catalog: ref name %q contains '/'", r.Name)
	}
	namespace := r.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return namespace + "/" + r.Name, nil
}

func mergeMeta(base, override Meta) Meta {
	out := base
	if override.SnapshotID != "" {
		out.SnapshotID = override.SnapshotID
	}
	if override.ETag != "" {
		out.ETag = override.ETag
	}
	if !override.UpdatedAt.IsZero() {
		out.UpdatedAt = override.UpdatedAt
	}
	if override.Extra != nil {
		out.Extra = override.Extra
	}
	return out
}
