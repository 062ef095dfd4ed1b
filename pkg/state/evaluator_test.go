package state

import (
	"errors"
	"fmt"
	"testing"
)

func testRegistry(t *testing.T) *FunctionRegistry {
	t.Helper()
	registry := NewFunctionRegistry()
	if err := registry.Register("double", func(args ...any) (any, error) {
		switch v := args[0].(type) {
		case int:
			return v * 2, nil
		case int64:
			return v * 2, nil
		default:
			return nil, fmt.Errorf("double: unsupported %T", v)
		}
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	return registry
}

func TestExprEvaluatorReadsVarsAndFunctions(t *testing.T) {
	cache := NewProgramCache()
	evaluator := NewExprEvaluator(ExprWithProgramCache(cache), ExprWithFunctionRegistry(testRegistry(t)))

	ctx := EvalContext{
		Component: "<Counter>",
		Vars:      map[string]any{"count": 3, "label": "items"},
		Methods: map[string]Function{
			"suffix": func(args ...any) (any, error) { return fmt.Sprint(args[0], "!"), nil },
		},
	}
	got, err := evaluator.Evaluate(ctx, `count > 2 ? label : "few"`)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if got != "items" {
		t.Fatalf("expected items, got %v", got)
	}

	got, err = evaluator.Evaluate(ctx, "double(count)")
	if err != nil {
		t.Fatalf("evaluate function: %v", err)
	}
	if got != 6 {
		t.Fatalf("expected 6, got %v", got)
	}

	got, err = evaluator.Evaluate(ctx, "suffix(label)")
	if err != nil {
		t.Fatalf("evaluate method: %v", err)
	}
	if got != "items!" {
		t.Fatalf("expected items!, got %v", got)
	}

	before := cache.Len()
	if _, err := evaluator.Evaluate(EvalContext{Vars: map[string]any{"count": 1, "label": "x"}}, `count > 2 ? label : "few"`); err != nil {
		t.Fatalf("evaluate again: %v", err)
	}
	if cache.Len() != before {
		t.Fatalf("expected cached program to be reused, cache grew to %d", cache.Len())
	}
}

func TestExprEvaluatorStateShadowsBuiltins(t *testing.T) {
	cache := NewProgramCache()
	evaluator := NewExprEvaluator(ExprWithProgramCache(cache))

	ctx := EvalContext{
		Vars: map[string]any{"count": 3, "len": 4, "sum": 5, "items": []any{1, 2}},
		Methods: map[string]Function{
			"max": func(args ...any) (any, error) { return "method", nil },
		},
	}
	cases := map[string]any{
		"count * 2":           6,
		"len + sum":           9,
		"max(count)":          "method",
		"count(items, # > 1)": nil,
	}
	for expression, want := range cases {
		got, err := evaluator.Evaluate(ctx, expression)
		if want == nil {
			if err == nil {
				t.Fatalf("%s: expected the shadowed builtin to be unavailable", expression)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", expression, err)
		}
		if got != want {
			t.Fatalf("%s: expected %v, got %v", expression, want, got)
		}
	}

	// Without a shadowing variable the builtin still works.
	got, err := evaluator.Evaluate(EvalContext{Vars: map[string]any{"items": []any{1, 2, 3}}}, "count(items, # > 1)")
	if err != nil {
		t.Fatalf("builtin count: %v", err)
	}
	if got != 2 {
		t.Fatalf("expected builtin count 2, got %v", got)
	}
}

func TestExprEvaluatorWrapsErrors(t *testing.T) {
	evaluator := NewExprEvaluator()
	_, err := evaluator.Evaluate(EvalContext{Component: "<Broken>"}, "1 +")
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %T %v", err, err)
	}
	if evalErr.Engine != EngineExpr || evalErr.Expr != "1 +" {
		t.Fatalf("unexpected metadata %+v", evalErr)
	}
	if _, err := evaluator.Evaluate(EvalContext{}, ""); err == nil {
		t.Fatalf("expected empty expression to fail")
	}
}

func TestCELEvaluatorReadsVarsAndCall(t *testing.T) {
	evaluator := NewCELEvaluator(CELWithProgramCache(NewProgramCache()), CELWithFunctionRegistry(testRegistry(t)))
	ctx := EvalContext{Vars: map[string]any{"count": 4, "name": "ada"}}

	got, err := evaluator.Evaluate(ctx, `count > 3 && name == "ada"`)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if got != true {
		t.Fatalf("expected true, got %v", got)
	}

	got, err = evaluator.Evaluate(ctx, `call("double", count)`)
	if err != nil {
		t.Fatalf("evaluate call: %v", err)
	}
	if got != int64(8) {
		t.Fatalf("expected 8, got %v (%T)", got, got)
	}

	if _, err := evaluator.Evaluate(ctx, "missing + 1"); err == nil {
		t.Fatalf("expected undeclared variable to fail")
	}
}

func TestNewEvaluatorByEngine(t *testing.T) {
	for _, engine := range []string{"", EngineExpr, EngineCEL} {
		evaluator, err := NewEvaluator(engine, NewProgramCache(), nil)
		if err != nil || evaluator == nil {
			t.Fatalf("engine %q: %v", engine, err)
		}
	}
	if _, err := NewEvaluator("lua", nil, nil); !errors.Is(err, ErrNoEvaluator) {
		t.Fatalf("expected ErrNoEvaluator, got %v", err)
	}
	if !JSEvaluatorAvailable() {
		if _, err := NewEvaluator(EngineJS, nil, nil); !errors.Is(err, ErrNoEvaluator) {
			t.Fatalf("expected js to be unavailable without the build tag, got %v", err)
		}
	}
	if engineName(NewCELEvaluator()) != EngineCEL {
		t.Fatalf("expected cel engine name")
	}
}
