// Package catalog stores declarative component specs and builds them into
// component definitions.
//
// A Spec names its parent (Extends), the specs it mixes in (Mixins) and the
// local components it registers (Components). Store implementations only
// load and save single specs; Catalog layers validation and optimistic
// concurrency on top of a Store, and Builder turns specs into one shared
// definition per name.
//
// Data flow:
//
//	LoadYAML -> hydrate.Decoder[Spec] -> Catalog.Put -> Store
//	Store -> Builder -> *component.Definition -> component.Initializer
//
// Deterministic keys:
//
//	Ref.Identifier() returns "<namespace>/<name>" and is the MemoryStore key.
package catalog
