package state

import (
	"fmt"
	"sort"
	"strings"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// maxCallArgs bounds the arities of the CEL call overloads.
const maxCallArgs = 4

// CELEvaluatorOption configures the CEL evaluator.
type CELEvaluatorOption func(*celEvaluator)

// CELWithProgramCache wires a ProgramCache into the CEL evaluator.
func CELWithProgramCache(cache ProgramCache) CELEvaluatorOption {
	return func(e *celEvaluator) {
		e.cache = cache
	}
}

// CELWithFunctionRegistry wires a FunctionRegistry into the CEL evaluator.
// Registry functions are reachable as call("name", args...).
func CELWithFunctionRegistry(registry *FunctionRegistry) CELEvaluatorOption {
	return func(e *celEvaluator) {
		if registry == nil {
			return
		}
		e.registry = registry.Clone()
	}
}

type celEvaluator struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewCELEvaluator constructs an Evaluator backed by cel-go. Instance methods
// are not exposed to CEL expressions.
func NewCELEvaluator(opts ...CELEvaluatorOption) Evaluator {
	e := &celEvaluator{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *celEvaluator) Engine() string { return EngineCEL }

func (e *celEvaluator) Evaluate(ctx EvalContext, expression string) (any, error) {
	if expression == "" {
		return nil, wrapEvaluatorError(EngineCEL, fmt.Errorf("expression must not be empty"))
	}
	ctx = ctx.withDefaults()
	program, err := e.loadOrCompile(expression, ctx.Vars)
	if err != nil {
		return nil, wrapEvaluationError(EngineCEL, expression, ctx.Component, err)
	}
	out, _, err := program.Eval(e.activation(ctx))
	if err != nil {
		return nil, wrapEvaluationError(EngineCEL, expression, ctx.Component, err)
	}
	return out.Value(), nil
}

// loadOrCompile caches per expression and declared variable set, since the
// checked program depends on both.
func (e *celEvaluator) loadOrCompile(expression string, vars map[string]any) (celgo.Program, error) {
	names := make([]string, 0, len(vars))
	for key := range vars {
		names = append(names, key)
	}
	sort.Strings(names)
	cacheKey := EngineCEL + ":" + strings.Join(names, ",") + ":" + expression

	if e.cache != nil {
		if cached, ok := e.cache.Get(cacheKey); ok {
			if program, ok := cached.(celgo.Program); ok {
				return program, nil
			}
		}
	}

	env, err := e.buildEnv(names)
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.Set(cacheKey, program)
	}
	return program, nil
}

func (e *celEvaluator) buildEnv(names []string) (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("now", celgo.TimestampType),
	}
	if e.registry != nil {
		overloads := make([]celgo.FunctionOpt, 0, maxCallArgs+1)
		for arity := 0; arity <= maxCallArgs; arity++ {
			args := []*celgo.Type{celgo.StringType}
			for i := 0; i < arity; i++ {
				args = append(args, celgo.DynType)
			}
			overloads = append(overloads, celgo.Overload(
				fmt.Sprintf("call_string_dyn_%d", arity),
				args,
				celgo.DynType,
				celgo.FunctionBinding(e.callBinding()),
			))
		}
		opts = append(opts, celgo.Function("call", overloads...))
	}
	for _, name := range names {
		if name == "now" {
			continue
		}
		opts = append(opts, celgo.Variable(name, celgo.DynType))
	}
	return celgo.NewEnv(opts...)
}

func (e *celEvaluator) activation(ctx EvalContext) map[string]any {
	activation := map[string]any{
		"now": ctx.Now,
	}
	for key, value := range ctx.Vars {
		if key == "now" {
			continue
		}
		activation[key] = value
	}
	return activation
}

func (e *celEvaluator) callBinding() func(values ...ref.Val) ref.Val {
	return func(values ...ref.Val) ref.Val {
		if len(values) == 0 {
			return types.NewErr("state: call requires function name")
		}
		name, ok := values[0].Value().(string)
		if !ok {
			return types.NewErr("state: call name must be string")
		}
		args := make([]any, 0, len(values)-1)
		for _, val := range values[1:] {
			args = append(args, val.Value())
		}
		result, err := e.registry.Call(name, args...)
		if err != nil {
			return types.NewErr("%s", err.Error())
		}
		if result == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(result)
	}
}
