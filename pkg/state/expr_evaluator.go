package state

import (
	"fmt"
	"sort"
	"strings"

	exprlang "github.com/expr-lang/expr"
	"github.com/expr-lang/expr/builtin"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprEvaluatorOption configures an expr evaluator instance.
type ExprEvaluatorOption func(*exprEvaluator)

// ExprWithProgramCache wires a ProgramCache into the expr evaluator.
func ExprWithProgramCache(cache ProgramCache) ExprEvaluatorOption {
	return func(e *exprEvaluator) {
		e.cache = cache
	}
}

// ExprWithFunctionRegistry wires a FunctionRegistry into the expr evaluator.
func ExprWithFunctionRegistry(registry *FunctionRegistry) ExprEvaluatorOption {
	return func(e *exprEvaluator) {
		if registry == nil {
			return
		}
		e.registry = registry.Clone()
	}
}

// exprEvaluator executes computed expressions using github.com/expr-lang/expr.
// Registry functions are compiled in; instance methods and variables are read
// from the environment at run time, so one program serves every instance.
type exprEvaluator struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewExprEvaluator constructs an Evaluator backed by expr-lang/expr.
func NewExprEvaluator(opts ...ExprEvaluatorOption) Evaluator {
	e := &exprEvaluator{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *exprEvaluator) Engine() string { return EngineExpr }

// Evaluate compiles and runs expression against ctx.Vars.
func (e *exprEvaluator) Evaluate(ctx EvalContext, expression string) (any, error) {
	if expression == "" {
		return nil, wrapEvaluatorError(EngineExpr, fmt.Errorf("expression must not be empty"))
	}
	ctx = ctx.withDefaults()
	program, err := e.loadOrCompile(expression, shadowedBuiltins(ctx))
	if err != nil {
		return nil, err
	}
	result, err := exprlang.Run(program, e.environment(ctx))
	if err != nil {
		return nil, wrapEvaluationError(EngineExpr, expression, ctx.Component, err)
	}
	return result, nil
}

// loadOrCompile caches per expression and set of shadowed builtins. Names
// that shadow a builtin are declared in the compile env and the builtin is
// disabled, so they resolve to the run time env like every other variable.
func (e *exprEvaluator) loadOrCompile(expression string, shadowed shadowSet) (*exprvm.Program, error) {
	cacheKey := EngineExpr + ":" + shadowed.key() + ":" + expression
	if e.cache != nil {
		if cached, ok := e.cache.Get(cacheKey); ok {
			if program, ok := cached.(*exprvm.Program); ok {
				return program, nil
			}
		}
	}
	declared := map[string]any{}
	options := []exprlang.Option{exprlang.AllowUndefinedVariables()}
	for _, name := range shadowed.vars {
		declared[name] = nil
		options = append(options, exprlang.DisableBuiltin(name))
	}
	for _, name := range shadowed.methods {
		declared[name] = (func(...any) (any, error))(nil)
		options = append(options, exprlang.DisableBuiltin(name))
	}
	options = append(options, exprlang.Env(declared))
	for _, name := range e.registry.Names() {
		options = append(options, exprlang.Function(name, e.registryFunction(name)))
	}
	program, err := exprlang.Compile(expression, options...)
	if err != nil {
		return nil, wrapEvaluationError(EngineExpr, expression, "", err)
	}
	if e.cache != nil {
		e.cache.Set(cacheKey, program)
	}
	return program, nil
}

// shadowSet lists the variable and method names of an evaluation that are
// also expr builtins, sorted.
type shadowSet struct {
	vars    []string
	methods []string
}

func (s shadowSet) key() string {
	return strings.Join(s.vars, ",") + "|" + strings.Join(s.methods, ",")
}

func shadowedBuiltins(ctx EvalContext) shadowSet {
	var set shadowSet
	isBuiltin := func(name string) bool {
		_, ok := builtin.Index[name]
		return ok
	}
	if isBuiltin("now") {
		set.vars = append(set.vars, "now")
	}
	for name := range ctx.Vars {
		if name != "now" && isBuiltin(name) {
			if _, method := ctx.Methods[name]; !method {
				set.vars = append(set.vars, name)
			}
		}
	}
	for name := range ctx.Methods {
		if isBuiltin(name) {
			set.methods = append(set.methods, name)
		}
	}
	sort.Strings(set.vars)
	sort.Strings(set.methods)
	return set
}

func (e *exprEvaluator) environment(ctx EvalContext) map[string]any {
	env := map[string]any{
		"now": ctx.Now,
	}
	for key, value := range ctx.Vars {
		env[key] = value
	}
	for name, fn := range ctx.Methods {
		method := fn
		env[name] = func(arguments ...any) (any, error) {
			return method(arguments...)
		}
	}
	if e.registry != nil {
		env["call"] = func(name string, arguments ...any) (any, error) {
			return e.registry.Call(name, arguments...)
		}
	}
	return env
}

func (e *exprEvaluator) registryFunction(name string) func(...any) (any, error) {
	return func(arguments ...any) (any, error) {
		return e.registry.Call(name, arguments...)
	}
}
