package component

import (
	"errors"
	"fmt"
)

// ErrInjectionNotFound is returned when no ancestor provides an injected key
// and the declaration has no default.
var ErrInjectionNotFound = errors.New("component: injection not found")

// defaultInjections resolves every declared injection against the provided
// values of the ancestor chain, nearest first.
type defaultInjections struct{}

func (defaultInjections) InitInjections(inst *Instance) error {
	declared := asMap(inst.Options.Value(KeyInject))
	if len(declared) == 0 {
		return nil
	}
	result := make(map[string]any, len(declared))
	for key, raw := range declared {
		decl := injectOptionsFor(key, raw)
		value, found := lookupProvided(inst, decl.From)
		if !found {
			if !decl.HasDefault {
				return fmt.Errorf("%w: %q in %s", ErrInjectionNotFound, key, inst.Name())
			}
			value = evaluateDefault(decl.Default)
		}
		result[key] = value
	}
	inst.Injected = result
	return nil
}

func lookupProvided(inst *Instance, key string) (any, bool) {
	for source := inst; source != nil; source = source.Parent {
		if value, ok := source.Provided[key]; ok {
			return value, true
		}
	}
	return nil, false
}

func injectOptionsFor(key string, raw any) InjectOptions {
	switch typed := raw.(type) {
	case InjectOptions:
		if typed.From == "" {
			typed.From = key
		}
		return typed
	case string:
		return InjectOptions{From: typed}
	case map[string]any:
		decl := InjectOptions{From: key}
		if from, ok := typed["from"].(string); ok && from != "" {
			decl.From = from
		}
		if def, ok := typed["default"]; ok {
			decl.Default = def
			decl.HasDefault = true
		}
		return decl
	default:
		return InjectOptions{From: key}
	}
}

func evaluateDefault(value any) any {
	if factory, ok := value.(func() any); ok {
		return factory()
	}
	return value
}

// defaultProvide evaluates the provide declaration for the instance.
type defaultProvide struct{}

func (defaultProvide) InitProvide(inst *Instance) error {
	value, ok := inst.Options.Get(KeyProvide)
	if !ok || value == nil {
		return nil
	}
	provided, err := ResolveData(value, inst)
	if err != nil {
		return err
	}
	inst.Provided = provided
	return nil
}
