package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is a minimal in-memory Store intended for tests and the CLI.
// It uses Ref.Identifier() as its key.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
}

type memoryRecord struct {
	ref  Ref
	spec Spec
	meta Meta
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]memoryRecord{}}
}

func (s *MemoryStore) Load(_ context.Context, ref Ref) (Spec, Meta, bool, error) {
	key, err := ref.Identifier()
	if err != nil {
		return Spec{}, Meta{}, false, err
	}

	s.mu.RLock()
	record, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return Spec{}, Meta{}, false, nil
	}
	return cloneSpec(record.spec), cloneMeta(record.meta), true, nil
}

func (s *MemoryStore) Save(_ context.Context, ref Ref, spec Spec, meta Meta) (Meta, error) {
	key, err := ref.Identifier()
	if err != nil {
		return Meta{}, err
	}

	s.mu.Lock()
	s.records[key] = memoryRecord{ref: ref, spec: cloneSpec(spec), meta: cloneMeta(meta)}
	s.mu.Unlock()
	return cloneMeta(meta), nil
}

// List returns the refs stored under namespace sorted by name.
func (s *MemoryStore) List(_ context.Context, namespace string) ([]Ref, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	prefix := namespace + "/"

	s.mu.RLock()
	refs := make([]Ref, 0, len(s.records))
	for key, record := range s.records {
		if strings.HasPrefix(key, prefix) {
			refs = append(refs, Ref{Namespace: namespace, Name: record.ref.Name})
		}
	}
	s.mu.RUnlock()

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func cloneMeta(meta Meta) Meta {
	out := meta
	if meta.Extra == nil {
		return out
	}
	out.Extra = make(map[string]string, len(meta.Extra))
	for k, v := range meta.Extra {
		out.Extra[k] = v
	}
	return out
}

// cloneSpec copies the top-level slices and maps. Option values are shared.
func cloneSpec(spec Spec) Spec {
	out := spec
	out.Mixins = append([]string(nil), spec.Mixins...)
	out.Components = append([]string(nil), spec.Components...)
	if spec.Options != nil {
		out.Options = make(map[string]any, len(spec.Options))
		for k, v := range spec.Options {
			out.Options[k] = v
		}
	}
	return out
}
