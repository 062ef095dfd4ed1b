package state

import (
	"fmt"
	"sort"
	"time"

	component "github.com/goliatone/go-component"
)

// Initializer sets up props, methods, data, computed values and watchers in
// that order. It implements component.StateInitializer. There is no
// dependency tracking: computed values are evaluated once and watchers only
// fire through Set.
type Initializer struct {
	evaluator Evaluator
	functions *FunctionRegistry
	cache     ProgramCache
	logger    EvaluatorLogger
}

// Option configures an Initializer.
type Option func(*Initializer)

// WithEvaluator sets the evaluator used for computed expressions. Defaults
// to expr.
func WithEvaluator(evaluator Evaluator) Option {
	return func(s *Initializer) {
		s.evaluator = evaluator
	}
}

// WithFunctionRegistry makes registry functions available to expressions and
// to methods declared by name.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(s *Initializer) {
		if registry == nil {
			return
		}
		s.functions = registry.Clone()
	}
}

// WithCustomFunction registers fn under name.
func WithCustomFunction(name string, fn Function) Option {
	return func(s *Initializer) {
		if s.functions == nil {
			s.functions = NewFunctionRegistry()
		}
		_ = s.functions.Register(name, fn)
	}
}

// WithProgramCache sets the cache for the default evaluator.
func WithProgramCache(cache ProgramCache) Option {
	return func(s *Initializer) {
		s.cache = cache
	}
}

// WithEvaluatorLogger records computed evaluations.
func WithEvaluatorLogger(logger EvaluatorLogger) Option {
	return func(s *Initializer) {
		s.logger = logger
	}
}

// New builds a state Initializer.
func New(opts ...Option) *Initializer {
	s := &Initializer{}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.functions == nil {
		s.functions = NewFunctionRegistry()
	}
	if s.cache == nil {
		s.cache = NewProgramCache()
	}
	if s.logger == nil {
		s.logger = noopEvaluatorLogger{}
	}
	if s.evaluator == nil {
		s.evaluator = NewExprEvaluator(ExprWithProgramCache(s.cache), ExprWithFunctionRegistry(s.functions))
	}
	return s
}

// NewEvaluator builds the evaluator for engine sharing the initializer's
// cache and functions. It returns ErrNoEvaluator for unknown engines and for
// js without the js_eval build tag.
func NewEvaluator(engine string, cache ProgramCache, registry *FunctionRegistry) (Evaluator, error) {
	switch engine {
	case "", EngineExpr:
		return NewExprEvaluator(ExprWithProgramCache(cache), ExprWithFunctionRegistry(registry)), nil
	case EngineCEL:
		return NewCELEvaluator(CELWithProgramCache(cache), CELWithFunctionRegistry(registry)), nil
	case EngineJS:
		if evaluator := NewJSEvaluator(JSWithProgramCache(cache), JSWithFunctionRegistry(registry)); evaluator != nil {
			return evaluator, nil
		}
	}
	return nil, fmt.Errorf("%w: engine %q", ErrNoEvaluator, engine)
}

// InitState implements component.StateInitializer.
func (s *Initializer) InitState(inst *component.Instance) error {
	inst.Watchers = map[string][]any{}
	if err := s.initProps(inst); err != nil {
		return err
	}
	if err := s.initMethods(inst); err != nil {
		return err
	}
	if err := s.initData(inst); err != nil {
		return err
	}
	if err := s.initComputed(inst); err != nil {
		return err
	}
	return s.initWatch(inst)
}

func (s *Initializer) initMethods(inst *component.Instance) error {
	declared, _ := inst.Options.Value(component.KeyMethods).(map[string]any)
	if len(declared) == 0 {
		return nil
	}
	methods := make(map[string]component.Method, len(declared))
	for name, raw := range declared {
		if _, ok := inst.Props[name]; ok {
			return fmt.Errorf("%w: method %q is a prop on %s", ErrConflict, name, inst.Name())
		}
		method, err := s.bindMethod(name, raw)
		if err != nil {
			return fmt.Errorf("%s: %w", inst.Name(), err)
		}
		methods[name] = method
	}
	inst.Methods = methods
	return nil
}

func (s *Initializer) bindMethod(name string, raw any) (component.Method, error) {
	switch typed := raw.(type) {
	case component.Method:
		return typed, nil
	case func(*component.Instance, ...any) (any, error):
		return typed, nil
	case func(*component.Instance) (any, error):
		return func(inst *component.Instance, _ ...any) (any, error) { return typed(inst) }, nil
	case Function:
		return func(_ *component.Instance, args ...any) (any, error) { return typed(args...) }, nil
	case func(...any) (any, error):
		return func(_ *component.Instance, args ...any) (any, error) { return typed(args...) }, nil
	case string:
		fn, ok := s.functions.Lookup(typed)
		if !ok {
			return nil, fmt.Errorf("%w: method %q refers to %q", ErrUnknownMethod, name, typed)
		}
		return func(_ *component.Instance, args ...any) (any, error) { return fn(args...) }, nil
	default:
		return nil, fmt.Errorf("%w: method %q is %T", component.ErrInvalidOption, name, raw)
	}
}

func (s *Initializer) initData(inst *component.Instance) error {
	data, err := component.ResolveData(inst.Options.Value(component.KeyData), inst)
	if err != nil {
		return err
	}
	if data == nil {
		data = map[string]any{}
	}
	for key := range data {
		if _, ok := inst.Props[key]; ok {
			return fmt.Errorf("%w: data %q is a prop on %s", ErrConflict, key, inst.Name())
		}
		if _, ok := inst.Methods[key]; ok {
			return fmt.Errorf("%w: data %q is a method on %s", ErrConflict, key, inst.Name())
		}
	}
	inst.Data = data
	return nil
}

// initComputed evaluates Go getters first, then expressions in name order.
// An expression sees every getter result and the expressions sorted before
// it.
func (s *Initializer) initComputed(inst *component.Instance) error {
	declared, _ := inst.Options.Value(component.KeyComputed).(map[string]any)
	inst.Computed = map[string]any{}
	if len(declared) == 0 {
		return nil
	}
	names := make([]string, 0, len(declared))
	for name := range declared {
		if err := s.checkComputedName(inst, name); err != nil {
			return err
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var expressions []string
	for _, name := range names {
		getter := computedGetter(declared[name])
		switch typed := getter.(type) {
		case string:
			expressions = append(expressions, name)
		case func(*component.Instance) (any, error):
			value, err := typed(inst)
			if err != nil {
				return err
			}
			inst.Computed[name] = value
		case func(*component.Instance) any:
			inst.Computed[name] = typed(inst)
		default:
			return fmt.Errorf("%w: computed %q is %T", component.ErrInvalidOption, name, getter)
		}
	}

	for _, name := range expressions {
		expression := computedGetter(declared[name]).(string)
		value, err := s.evaluate(inst, name, expression)
		if err != nil {
			return err
		}
		inst.Computed[name] = value
	}
	return nil
}

func (s *Initializer) checkComputedName(inst *component.Instance, name string) error {
	if _, ok := inst.Props[name]; ok {
		return fmt.Errorf("%w: computed %q is a prop on %s", ErrConflict, name, inst.Name())
	}
	if _, ok := inst.Data[name]; ok {
		return fmt.Errorf("%w: computed %q is data on %s", ErrConflict, name, inst.Name())
	}
	if _, ok := inst.Methods[name]; ok {
		return fmt.Errorf("%w: computed %q is a method on %s", ErrConflict, name, inst.Name())
	}
	return nil
}

func computedGetter(value any) any {
	if spec, ok := value.(map[string]any); ok {
		return spec["get"]
	}
	return value
}

func (s *Initializer) evaluate(inst *component.Instance, key, expression string) (any, error) {
	ctx := EvalContext{
		Component: inst.Name(),
		Vars:      Vars(inst),
		Methods:   boundMethods(inst),
	}
	start := time.Now()
	value, err := s.evaluator.Evaluate(ctx, expression)
	err = wrapEvaluationError(engineName(s.evaluator), expression, ctx.Component, err)
	s.logger.LogEvaluation(EvaluatorLogEvent{
		Engine:    engineName(s.evaluator),
		Expr:      expression,
		Component: ctx.Component,
		Key:       key,
		Duration:  time.Since(start),
		Err:       err,
	})
	return value, err
}

// Vars flattens the readable state of inst: injections, props, data and
// computed values, later kinds winning.
func Vars(inst *component.Instance) map[string]any {
	vars := map[string]any{}
	for _, table := range []map[string]any{inst.Injected, inst.Props, inst.Data, inst.Computed} {
		for key, value := range table {
			vars[key] = value
		}
	}
	return vars
}

func boundMethods(inst *component.Instance) map[string]Function {
	if len(inst.Methods) == 0 {
		return nil
	}
	out := make(map[string]Function, len(inst.Methods))
	for name := range inst.Methods {
		method := name
		out[method] = func(args ...any) (any, error) {
			return inst.CallMethod(method, args...)
		}
	}
	return out
}
