package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-component/pkg/catalog"
)

type countingStore struct {
	*catalog.MemoryStore
	saveCalls int
	saveErr   error
}

func (s *countingStore) Save(ctx context.Context, ref catalog.Ref, spec catalog.Spec, meta catalog.Meta) (catalog.Meta, error) {
	s.saveCalls++
	if s.saveErr != nil {
		return catalog.Meta{}, s.saveErr
	}
	return s.MemoryStore.Save(ctx, ref, spec, meta)
}

func TestRefIdentifier(t *testing.T) {
	cases := []struct {
		ref     catalog.Ref
		want    string
		wantErr bool
	}{
		{ref: catalog.Ref{Namespace: "ui", Name: "card"}, want: "ui/card"},
		{ref: catalog.Ref{Name: "card"}, want: "default/card"},
		{ref: catalog.Ref{Namespace: "ui"}, wantErr: true},
		{ref: catalog.Ref{Name: "a/b"}, wantErr: true},
	}
	for _, tc := range cases {
		got, err := tc.ref.Identifier()
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for %+v", tc.ref)
			}
			continue
		}
		if err != nil {
			t.Fatalf("identifier %+v: %v", tc.ref, err)
		}
		if got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestMemoryStoreIsolatesRecords(t *testing.T) {
	store := catalog.NewMemoryStore()
	ctx := context.Background()
	ref := catalog.Ref{Namespace: "ui", Name: "card"}
	spec := catalog.Spec{Name: "card", Mixins: []string{"base"}, Options: map[string]any{"name": "card"}}
	meta := catalog.Meta{SnapshotID: "s1", Extra: map[string]string{"by": "test"}}

	if _, err := store.Save(ctx, ref, spec, meta); err != nil {
		t.Fatalf("save: %v", err)
	}
	spec.Mixins[0] = "changed"
	spec.Options["name"] = "changed"
	meta.Extra["by"] = "changed"

	got, gotMeta, ok, err := store.Load(ctx, ref)
	if err != nil || !ok {
		t.Fatalf("load: ok=%t err=%v", ok, err)
	}
	if got.Mixins[0] != "base" || got.Options["name"] != "card" {
		t.Fatalf("expected stored spec to be isolated, got %+v", got)
	}
	if gotMeta.Extra["by"] != "test" {
		t.Fatalf("expected stored meta to be isolated, got %+v", gotMeta)
	}

	if _, _, ok, _ := store.Load(ctx, catalog.Ref{Namespace: "other", Name: "card"}); ok {
		t.Fatalf("expected namespaces to be separate")
	}

	if _, err := store.Save(ctx, catalog.Ref{Namespace: "ui", Name: "badge"}, catalog.Spec{Name: "badge"}, catalog.Meta{}); err != nil {
		t.Fatalf("save badge: %v", err)
	}
	refs, err := store.List(ctx, "ui")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(refs) != 2 || refs[0].Name != "badge" || refs[1].Name != "card" {
		t.Fatalf("expected sorted refs, got %+v", refs)
	}
}

func TestCatalogPutAssignsSnapshotAndChecksETag(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := catalog.Catalog{Store: catalog.NewMemoryStore(), Namespace: "ui", Now: func() time.Time { return now }}
	ctx := context.Background()

	first, err := c.Put(ctx, catalog.Spec{Name: "card"}, catalog.Meta{})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if first.SnapshotID == "" || first.ETag == "" || !first.UpdatedAt.Equal(now) {
		t.Fatalf("expected generated meta, got %+v", first)
	}

	_, err = c.Put(ctx, catalog.Spec{Name: "card"}, catalog.Meta{ETag: "stale"})
	if !errors.Is(err, catalog.ErrETagMismatch) {
		t.Fatalf("expected etag mismatch, got %v", err)
	}

	second, err := c.Put(ctx, catalog.Spec{Name: "card", Extends: "panel"}, catalog.Meta{ETag: first.ETag})
	if err != nil {
		t.Fatalf("put with etag: %v", err)
	}
	if second.ETag == first.ETag || second.SnapshotID == first.SnapshotID {
		t.Fatalf("expected a new snapshot, got %+v after %+v", second, first)
	}

	spec, meta, err := c.Get(ctx, "card")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if spec.Extends != "panel" || meta.ETag != second.ETag {
		t.Fatalf("unexpected stored spec %+v meta %+v", spec, meta)
	}

	if _, _, err := c.Get(ctx, "missing"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCatalogMutateValidationFailureDoesNotSave(t *testing.T) {
	store := &countingStore{MemoryStore: catalog.NewMemoryStore()}
	c := catalog.Catalog{Store: store}
	ctx := context.Background()

	if _, err := c.Put(ctx, catalog.Spec{Name: "card"}, catalog.Meta{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	store.saveCalls = 0

	_, err := c.Mutate(ctx, "card", catalog.Meta{}, func(spec *catalog.Spec) error {
		spec.Extends = "card"
		return nil
	})
	if !errors.Is(err, catalog.ErrInvalidSpec) {
		t.Fatalf("expected invalid spec, got %v", err)
	}

	boom := errors.New("boom")
	_, err = c.Mutate(ctx, "card", catalog.Meta{}, func(*catalog.Spec) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected mutator error, got %v", err)
	}

	_, err = c.Mutate(ctx, "card", catalog.Meta{}, func(spec *catalog.Spec) error {
		spec.Name = "other"
		return nil
	})
	if !errors.Is(err, catalog.ErrInvalidSpec) {
		t.Fatalf("expected rename to be rejected, got %v", err)
	}

	if store.saveCalls != 0 {
		t.Fatalf("expected no save calls, got %d", store.saveCalls)
	}
}

func TestCatalogMutateStartsFromEmptySpec(t *testing.T) {
	c := catalog.Catalog{Store: catalog.NewMemoryStore()}
	ctx := context.Background()

	_, err := c.Mutate(ctx, "badge", catalog.Meta{Extra: map[string]string{"source": "cli"}}, func(spec *catalog.Spec) error {
		if spec.Name != "badge" {
			t.Fatalf("expected name to be preset, got %q", spec.Name)
		}
		spec.Mixins = append(spec.Mixins, "colored")
		return nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}

	specs, err := c.Specs(ctx)
	if err != nil {
		t.Fatalf("specs: %v", err)
	}
	if len(specs) != 1 || specs[0].Mixins[0] != "colored" {
		t.Fatalf("unexpected specs %+v", specs)
	}
	_, meta, _ := c.Get(ctx, "badge")
	if meta.Extra["source"] != "cli" {
		t.Fatalf("expected extra metadata to be saved, got %+v", meta)
	}
}
