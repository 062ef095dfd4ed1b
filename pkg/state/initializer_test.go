package state_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	component "github.com/goliatone/go-component"
	"github.com/goliatone/go-component/pkg/state"
)

func newInstance(t *testing.T, s *state.Initializer, declared map[string]any, supplied map[string]any) (*component.Instance, error) {
	t.Helper()
	base := component.NewBase(component.NewOptions(nil))
	def := base.Extend(component.NewOptions(declared))
	in := component.NewInitializer(component.WithState(s))
	var opts *component.Options
	if supplied != nil {
		opts = component.NewOptions(supplied)
	}
	return in.New(def, opts)
}

func TestInitStatePropsDefaultsAndValidation(t *testing.T) {
	s := state.New()
	inst, err := newInstance(t, s, map[string]any{
		component.KeyName: "badge",
		component.KeyProps: map[string]any{
			"label": map[string]any{"type": "string", "required": true},
			"count": component.PropOptions{Type: "number", Default: 1},
			"tags":  component.PropOptions{Default: func() any { return []any{"new"} }},
		},
	}, map[string]any{
		component.KeyPropsData: map[string]any{"label": "hello"},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	want := map[string]any{"label": "hello", "count": 1, "tags": []any{"new"}}
	if !reflect.DeepEqual(inst.Props, want) {
		t.Fatalf("expected %v, got %v", want, inst.Props)
	}

	_, err = newInstance(t, s, map[string]any{
		component.KeyProps: map[string]any{"label": map[string]any{"required": true}},
	}, nil)
	if !errors.Is(err, state.ErrMissingProp) {
		t.Fatalf("expected ErrMissingProp, got %v", err)
	}

	_, err = newInstance(t, s, map[string]any{
		component.KeyProps: map[string]any{"count": "number"},
	}, map[string]any{component.KeyPropsData: map[string]any{"count": "three"}})
	if !errors.Is(err, state.ErrInvalidProp) {
		t.Fatalf("expected ErrInvalidProp, got %v", err)
	}

	_, err = newInstance(t, s, map[string]any{
		component.KeyProps: map[string]any{"size": component.PropOptions{Validator: func(v any) bool { return v == "sm" || v == "lg" }}},
	}, map[string]any{component.KeyPropsData: map[string]any{"size": "xl"}})
	if !errors.Is(err, state.ErrInvalidProp) {
		t.Fatalf("expected validator failure, got %v", err)
	}
}

func TestInitStateMethodsDataComputed(t *testing.T) {
	s := state.New(state.WithCustomFunction("upper", func(args ...any) (any, error) {
		return strings.ToUpper(args[0].(string)), nil
	}))
	inst, err := newInstance(t, s, map[string]any{
		component.KeyName:  "greeting",
		component.KeyProps: []string{"name"},
		component.KeyData: func(inst *component.Instance) map[string]any {
			return map[string]any{"greeting": "hello", "count": 2}
		},
		component.KeyMethods: map[string]any{
			"shout": "upper",
			"twice": func(inst *component.Instance, args ...any) (any, error) {
				return inst.Data["count"].(int) * 2, nil
			},
		},
		component.KeyComputed: map[string]any{
			"full":    `greeting + ", " + name`,
			"loud":    map[string]any{"get": "shout(full)"},
			"doubled": func(inst *component.Instance) (any, error) { return inst.CallMethod("twice") },
		},
	}, map[string]any{component.KeyPropsData: map[string]any{"name": "ada"}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if got, err := inst.CallMethod("shout", "abc"); err != nil || got != "ABC" {
		t.Fatalf("expected registry-backed method, got %v %v", got, err)
	}
	if inst.Computed["full"] != "hello, ada" {
		t.Fatalf("unexpected full %v", inst.Computed["full"])
	}
	if inst.Computed["loud"] != "HELLO, ADA" {
		t.Fatalf("unexpected loud %v", inst.Computed["loud"])
	}
	if inst.Computed["doubled"] != 4 {
		t.Fatalf("unexpected doubled %v", inst.Computed["doubled"])
	}
	vars := state.Vars(inst)
	if vars["name"] != "ada" || vars["greeting"] != "hello" || vars["full"] != "hello, ada" {
		t.Fatalf("unexpected vars %v", vars)
	}
}

func TestInitStateRejectsConflicts(t *testing.T) {
	s := state.New()
	_, err := newInstance(t, s, map[string]any{
		component.KeyProps: []string{"title"},
		component.KeyData:  map[string]any{"title": "dup"},
	}, nil)
	if !errors.Is(err, state.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	_, err = newInstance(t, s, map[string]any{
		component.KeyMethods: map[string]any{"save": "missing"},
	}, nil)
	if !errors.Is(err, state.ErrUnknownMethod) {
		t.Fatalf("expected ErrUnknownMethod, got %v", err)
	}
}

func TestInitStateEvaluationErrorsPropagate(t *testing.T) {
	var events []state.EvaluatorLogEvent
	s := state.New(state.WithEvaluatorLogger(state.EvaluatorLoggerFunc(func(event state.EvaluatorLogEvent) {
		events = append(events, event)
	})))
	_, err := newInstance(t, s, map[string]any{
		component.KeyName:     "broken",
		component.KeyComputed: map[string]any{"bad": "1 +"},
	}, nil)
	var evalErr *state.EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %T %v", err, err)
	}
	if evalErr.Scope != "<Broken>" {
		t.Fatalf("expected component scope, got %q", evalErr.Scope)
	}
	if len(events) != 1 || events[0].Key != "bad" || events[0].Err == nil {
		t.Fatalf("unexpected log events %+v", events)
	}
}

func TestInitStateWithCELEvaluator(t *testing.T) {
	evaluator, err := state.NewEvaluator(state.EngineCEL, state.NewProgramCache(), nil)
	if err != nil {
		t.Fatalf("evaluator: %v", err)
	}
	s := state.New(state.WithEvaluator(evaluator))
	inst, err := newInstance(t, s, map[string]any{
		component.KeyData:     map[string]any{"items": []any{"a", "b", "c"}},
		component.KeyComputed: map[string]any{"many": "size(items) > 2"},
	}, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if inst.Computed["many"] != true {
		t.Fatalf("expected cel computed value, got %v", inst.Computed["many"])
	}
}

func TestSetRunsWatchers(t *testing.T) {
	var seen [][2]any
	s := state.New()
	inst, err := newInstance(t, s, map[string]any{
		component.KeyData: map[string]any{"count": 0},
		component.KeyMethods: map[string]any{
			"onCount": func(inst *component.Instance, args ...any) (any, error) {
				seen = append(seen, [2]any{args[0], args[1]})
				return nil, nil
			},
		},
		component.KeyWatch: map[string]any{
			"count": []any{
				"onCount",
				map[string]any{"handler": func(inst *component.Instance, newValue, oldValue any) error {
					seen = append(seen, [2]any{"handler", newValue})
					return nil
				}},
			},
		},
	}, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if len(inst.Watchers["count"]) != 2 {
		t.Fatalf("expected two watchers, got %d", len(inst.Watchers["count"]))
	}

	if err := state.Set(inst, "count", 1); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := state.Set(inst, "count", 1); err != nil {
		t.Fatalf("set unchanged: %v", err)
	}
	want := [][2]any{{1, 0}, {"handler", 1}}
	if !reflect.DeepEqual(seen, want) {
		t.Fatalf("expected %v, got %v", want, seen)
	}
	if err := state.Set(inst, "missing", 1); !errors.Is(err, state.ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
}

func TestWatchersMergeAcrossDefinitions(t *testing.T) {
	var calls []string
	base := component.NewBase(component.NewOptions(nil))
	parent := base.Extend(component.NewOptions(map[string]any{
		component.KeyData: map[string]any{"value": "a"},
		component.KeyWatch: map[string]any{"value": func(*component.Instance, any, any) error {
			calls = append(calls, "parent")
			return nil
		}},
	}))
	child := parent.Extend(component.NewOptions(map[string]any{
		component.KeyWatch: map[string]any{"value": func(*component.Instance, any, any) error {
			calls = append(calls, "child")
			return nil
		}},
	}))
	in := component.NewInitializer(component.WithState(state.New()))
	inst, err := in.New(child, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := state.Set(inst, "value", "b"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !reflect.DeepEqual(calls, []string{"parent", "child"}) {
		t.Fatalf("expected parent watcher first, got %v", calls)
	}
}

func TestInitStateComputedReadsBuiltinNamedData(t *testing.T) {
	inst, err := newInstance(t, state.New(), map[string]any{
		component.KeyName: "counter",
		component.KeyData: func(*component.Instance) map[string]any {
			return map[string]any{"count": 2, "max": 10}
		},
		component.KeyComputed: map[string]any{
			"double":  "count * 2",
			"atLimit": "count >= max",
		},
	}, nil)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if inst.Computed["double"] != 4 || inst.Computed["atLimit"] != false {
		t.Fatalf("unexpected computed %v", inst.Computed)
	}
}
