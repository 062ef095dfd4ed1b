package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Catalog validates specs and applies optimistic concurrency over a Store.
// Every successful write gets a fresh SnapshotID and ETag.
type Catalog struct {
	Store     Store
	Namespace string
	// Now defaults to time.Now.
	Now func() time.Time
}

func (c Catalog) ref(name string) Ref {
	return Ref{Namespace: c.Namespace, Name: name}
}

func (c Catalog) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Get loads one spec. It returns ErrNotFound when the store has no record.
func (c Catalog) Get(ctx context.Context, name string) (Spec, Meta, error) {
	if c.Store == nil {
		return Spec{}, Meta{}, fmt.Errorf("catalog: store is required")
	}
	spec, meta, ok, err := c.Store.Load(ctx, c.ref(name))
	if err != nil {
		return Spec{}, Meta{}, fmt.Errorf("catalog: load %q: %w", name, err)
	}
	if !ok {
		return Spec{}, Meta{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return spec, meta, nil
}

// Put validates and saves spec. A non-empty meta.ETag must match the stored
// one.
func (c Catalog) Put(ctx context.Context, spec Spec, meta Meta) (Meta, error) {
	return c.Mutate(ctx, spec.Name, meta, func(current *Spec) error {
		*current = spec
		return nil
	})
}

// Mutate loads one spec, applies fn, validates the result, then saves. A
// missing record starts from a Spec carrying only the name.
func (c Catalog) Mutate(ctx context.Context, name string, meta Meta, fn Mutator) (Meta, error) {
	if c.Store == nil {
		return Meta{}, fmt.Errorf("catalog: store is required")
	}
	if name == "" {
		return Meta{}, fmt.Errorf("%w: name is required", ErrInvalidSpec)
	}
	if fn == nil {
		return Meta{}, fmt.Errorf("catalog: mutator is required")
	}

	ref := c.ref(name)
	spec, loadedMeta, ok, err := c.Store.Load(ctx, ref)
	if err != nil {
		return Meta{}, fmt.Errorf("catalog: load %q: %w", name, err)
	}
	if !ok {
		spec = Spec{Name: name}
		loadedMeta = Meta{}
	}

	if meta.ETag != "" && loadedMeta.ETag != "" && meta.ETag != loadedMeta.ETag {
		return loadedMeta, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, loadedMeta.ETag)
	}

	if err := fn(&spec); err != nil {
		return loadedMeta, err
	}
	if spec.Name != name {
		return loadedMeta, fmt.Errorf("%w: mutator renamed %q to %q", ErrInvalidSpec, name, spec.Name)
	}
	if err := spec.Validate(); err != nil {
		return loadedMeta, err
	}

	saveMeta := mergeMeta(loadedMeta, Meta{Extra: meta.Extra})
	saveMeta.SnapshotID = uuid.NewString()
	saveMeta.ETag = uuid.NewString()
	saveMeta.UpdatedAt = c.now()

	saved, err := c.Store.Save(ctx, ref, spec, saveMeta)
	if err != nil {
		return loadedMeta, fmt.Errorf("catalog: save %q: %w", name, err)
	}
	return saved, nil
}

// Specs loads every spec in the catalog namespace sorted by name.
func (c Catalog) Specs(ctx context.Context) ([]Spec, error) {
	if c.Store == nil {
		return nil, fmt.Errorf("catalog: store is required")
	}
	refs, err := c.Store.List(ctx, c.Namespace)
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	specs := make([]Spec, 0, len(refs))
	for _, ref := range refs {
		spec, _, ok, err := c.Store.Load(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("catalog: load %q: %w", ref.Name, err)
		}
		if ok {
			specs = append(specs, spec)
		}
	}
	return specs, nil
}
