// Package component resolves component definitions into options and
// initializes component instances from them.
//
// A Definition is created from a base with Extend and keeps its resolved
// options cached. Resolver.Resolve walks the definition chain and recomputes
// a definition's options only when its parent's options object changed,
// absorbing keys set on the cached options after the definition was sealed.
//
// Initializer.Init assigns an instance id, builds the instance options
// (merged for root instances, copied from the parent vnode for internal
// ones) and runs the collaborators in order: lifecycle, events, render,
// beforeCreate, injections, state, provide and created. Instances with an
// el option are mounted.
package component
