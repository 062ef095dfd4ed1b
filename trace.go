package component

import (
	"encoding/json"
)

// Provenance sources.
const (
	// SourceDeclared is a value given in the options a definition was
	// declared with.
	SourceDeclared = "declared"
	// SourceLate is a value attached to the definition after creation.
	SourceLate = "late"
	// SourceGlobal is a value held by a base definition.
	SourceGlobal = "global"
)

// Trace captures where an option key is set along a definition chain, nearest
// definition first.
type Trace struct {
	Key    string       `json:"key"`
	Value  string       `json:"value,omitempty"`
	Found  bool         `json:"found"`
	Layers []Provenance `json:"layers"`
}

// Provenance details how one definition contributes to a traced key.
type Provenance struct {
	Definition string `json:"definition"`
	CID        int    `json:"cid"`
	Source     string `json:"source,omitempty"`
	Value      string `json:"value,omitempty"`
	Found      bool   `json:"found"`
}

// TraceOption resolves def and reports, for every definition from def up to
// its base, whether and how it sets key. A late value is one the resolver
// would absorb on the next recomputation; once absorbed it is reported as
// declared.
func TraceOption(r *Resolver, def *Definition, key string) Trace {
	if r == nil {
		r = defaultResolver
	}
	trace := Trace{Key: key}
	if def == nil {
		return trace
	}
	resolved := r.Resolve(def)
	if value, ok := resolved.Get(key); ok {
		trace.Found = true
		trace.Value = DescribeValue(value)
	}

	for cur := def; cur != nil; cur = cur.super {
		layer := Provenance{
			Definition: FormatDefinitionName(cur),
			CID:        cur.cid,
		}
		switch {
		case cur.super == nil:
			if value, ok := cur.options.Get(key); ok {
				layer.Found = true
				layer.Source = SourceGlobal
				layer.Value = DescribeValue(value)
			}
		case cur.extendOptions.HasOwn(key):
			layer.Found = true
			layer.Source = SourceDeclared
			layer.Value = DescribeValue(cur.extendOptions.Value(key))
		case cur.options.HasOwn(key) && !sameValue(cur.options.Value(key), cur.sealed.Value(key)):
			layer.Found = true
			layer.Source = SourceLate
			layer.Value = DescribeValue(cur.options.Value(key))
		}
		trace.Layers = append(trace.Layers, layer)
	}
	return trace
}

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a JSON payload that was previously generated via
// ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}
