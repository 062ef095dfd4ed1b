// Package state is the default state initializer for component instances.
//
// InitState runs, in order:
//   - props: values from propsData, declared defaults, required and type checks
//   - methods: Go funcs, or names of functions in a FunctionRegistry
//   - data: a map or a data provider, deep copied per instance
//   - computed: Go getters, or expressions evaluated once through an
//     Evaluator (expr by default, cel, or goja with the js_eval build tag)
//   - watch: handlers registered per key, fired by Set
//
// There is no dependency tracking. Computed values are not re-evaluated when
// their inputs change.
package state
