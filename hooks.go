package component

import "fmt"

// Lifecycle hook names.
const (
	HookBeforeCreate   = "beforeCreate"
	HookCreated        = "created"
	HookBeforeMount    = "beforeMount"
	HookMounted        = "mounted"
	HookBeforeUpdate   = "beforeUpdate"
	HookUpdated        = "updated"
	HookBeforeDestroy  = "beforeDestroy"
	HookDestroyed      = "destroyed"
	HookActivated      = "activated"
	HookDeactivated    = "deactivated"
	HookErrorCaptured  = "errorCaptured"
	HookServerPrefetch = "serverPrefetch"
)

// LifecycleHooks lists every hook name merged with the hook strategy.
var LifecycleHooks = []string{
	HookBeforeCreate,
	HookCreated,
	HookBeforeMount,
	HookMounted,
	HookBeforeUpdate,
	HookUpdated,
	HookBeforeDestroy,
	HookDestroyed,
	HookActivated,
	HookDeactivated,
	HookErrorCaptured,
	HookServerPrefetch,
}

// HookFunc is a lifecycle callback.
type HookFunc func(inst *Instance) error

// Hook wraps a HookFunc so merged hook lists can be deduplicated by identity.
type Hook struct {
	fn HookFunc
}

// NewHook wraps fn.
func NewHook(fn HookFunc) *Hook {
	return &Hook{fn: fn}
}

// Call runs the hook. A nil hook is a no-op.
func (h *Hook) Call(inst *Instance) error {
	if h == nil || h.fn == nil {
		return nil
	}
	return h.fn(inst)
}

// Hooks normalizes the accepted hook shapes into a hook list. Raw funcs are
// wrapped, so callers that need stable identity should normalize once and
// keep the result.
func Hooks(value any) ([]*Hook, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case *Hook:
		return []*Hook{typed}, nil
	case []*Hook:
		return typed, nil
	case HookFunc:
		return []*Hook{NewHook(typed)}, nil
	case func(*Instance) error:
		return []*Hook{NewHook(typed)}, nil
	case []HookFunc:
		out := make([]*Hook, 0, len(typed))
		for _, fn := range typed {
			out = append(out, NewHook(fn))
		}
		return out, nil
	case []any:
		var out []*Hook
		for _, entry := range typed {
			hooks, err := Hooks(entry)
			if err != nil {
				return nil, err
			}
			out = append(out, hooks...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unsupported hook value %T", ErrInvalidOption, value)
	}
}

// HookDispatcher invokes the callbacks registered for a lifecycle hook.
type HookDispatcher interface {
	CallHook(inst *Instance, hook string) error
}

// HookDispatcherFunc adapts a function to HookDispatcher.
type HookDispatcherFunc func(inst *Instance, hook string) error

// CallHook implements HookDispatcher.
func (f HookDispatcherFunc) CallHook(inst *Instance, hook string) error {
	if f == nil {
		return nil
	}
	return f(inst, hook)
}

// optionsHookDispatcher runs the hooks stored in $options in registration
// order and stops at the first failure.
type optionsHookDispatcher struct{}

func (optionsHookDispatcher) CallHook(inst *Instance, hook string) error {
	hooks, err := Hooks(inst.Options.Value(hook))
	if err != nil {
		return err
	}
	for _, h := range hooks {
		if err := h.Call(inst); err != nil {
			return err
		}
	}
	return nil
}
