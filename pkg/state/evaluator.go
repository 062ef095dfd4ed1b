package state

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoEvaluator is returned when an expression is declared but no evaluator
// is available for it.
var ErrNoEvaluator = errors.New("state: evaluator not configured")

// Engine names reported in log events and errors.
const (
	EngineExpr   = "expr"
	EngineCEL    = "cel"
	EngineJS     = "js"
	EngineCustom = "custom"
)

// EvalContext carries the values an expression can read.
type EvalContext struct {
	// Component is the formatted component name, used as the error scope.
	Component string
	// Vars holds the instance's props, data, injections and computed values.
	Vars map[string]any
	// Methods are instance-bound callables. Not every engine exposes them.
	Methods map[string]Function
	Now     time.Time
}

func (c EvalContext) withDefaults() EvalContext {
	if c.Now.IsZero() {
		c.Now = time.Now().UTC()
	}
	if c.Vars == nil {
		c.Vars = map[string]any{}
	}
	return c
}

// Evaluator evaluates computed expressions.
type Evaluator interface {
	Evaluate(ctx EvalContext, expression string) (any, error)
}

// EngineNamer is implemented by evaluators that report their engine name.
type EngineNamer interface {
	Engine() string
}

func engineName(e Evaluator) string {
	if named, ok := e.(EngineNamer); ok {
		return named.Engine()
	}
	if e == nil {
		return "unknown"
	}
	return EngineCustom
}

// EvaluationError captures evaluator metadata alongside the originating error.
type EvaluationError struct {
	Engine string
	Expr   string
	Scope  string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("state: %s evaluator %s scope=%s: %v", e.Engine, describeExpression(e.Expr), e.Scope, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapEvaluatorError(engine string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		return err
	}

	if strings.HasPrefix(err.Error(), "state:") {
		return err
	}
	return fmt.Errorf("state: %s evaluator: %w", engine, err)
}

func wrapEvaluationError(engine, expr, scope string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		if evalErr.Engine == "" {
			evalErr.Engine = engine
		}
		if evalErr.Expr == "" {
			evalErr.Expr = expr
		}
		if evalErr.Scope == "" {
			evalErr.Scope = scope
		}
		return evalErr
	}

	return &EvaluationError{
		Engine: engine,
		Expr:   expr,
		Scope:  scope,
		Err:    err,
	}
}

// EvaluatorLogEvent describes an evaluation attempt for logging.
type EvaluatorLogEvent struct {
	Engine    string
	Expr      string
	Component string
	Key       string
	Duration  time.Duration
	Err       error
}

// EvaluatorLogger records evaluator events.
type EvaluatorLogger interface {
	LogEvaluation(EvaluatorLogEvent)
}

// EvaluatorLoggerFunc adapts a function to EvaluatorLogger.
type EvaluatorLoggerFunc func(EvaluatorLogEvent)

// LogEvaluation implements EvaluatorLogger.
func (f EvaluatorLoggerFunc) LogEvaluation(event EvaluatorLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopEvaluatorLogger struct{}

func (noopEvaluatorLogger) LogEvaluation(EvaluatorLogEvent) {}
