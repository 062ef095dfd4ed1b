package state

import (
	"fmt"
	"sort"

	component "github.com/goliatone/go-component"
)

func (s *Initializer) initProps(inst *component.Instance) error {
	declared := propDeclarations(inst.Options.Value(component.KeyProps))
	if len(declared) == 0 {
		return nil
	}
	propsData, _ := inst.Options.Value(component.KeyPropsData).(map[string]any)

	names := make([]string, 0, len(declared))
	for name := range declared {
		names = append(names, name)
	}
	sort.Strings(names)

	props := make(map[string]any, len(declared))
	for _, name := range names {
		decl := declared[name]
		value, ok := propsData[name]
		if !ok {
			if decl.Required {
				return fmt.Errorf("%w: %q on %s", ErrMissingProp, name, inst.Name())
			}
			props[name] = propDefault(decl.Default, inst)
			continue
		}
		if err := validateProp(name, decl, value, inst); err != nil {
			return err
		}
		props[name] = value
	}
	inst.Props = props
	return nil
}

func propDeclarations(value any) map[string]component.PropOptions {
	raw, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]component.PropOptions, len(raw))
	for name, entry := range raw {
		switch typed := entry.(type) {
		case component.PropOptions:
			out[name] = typed
		case *component.PropOptions:
			if typed != nil {
				out[name] = *typed
			}
		case string:
			out[name] = component.PropOptions{Type: typed}
		case map[string]any:
			decl := component.PropOptions{Default: typed["default"]}
			decl.Type, _ = typed["type"].(string)
			decl.Required, _ = typed["required"].(bool)
			out[name] = decl
		default:
			out[name] = component.PropOptions{}
		}
	}
	return out
}

func propDefault(value any, inst *component.Instance) any {
	switch factory := value.(type) {
	case func() any:
		return factory()
	case func(*component.Instance) any:
		return factory(inst)
	default:
		return value
	}
}

func validateProp(name string, decl component.PropOptions, value any, inst *component.Instance) error {
	if value != nil && decl.Type != "" && !matchesType(decl.Type, value) {
		return fmt.Errorf("%w: %q on %s expected %s, got %T", ErrInvalidProp, name, inst.Name(), decl.Type, value)
	}
	if decl.Validator != nil && !decl.Validator(value) {
		return fmt.Errorf("%w: %q on %s failed validation", ErrInvalidProp, name, inst.Name())
	}
	return nil
}

// matchesType checks a value against a declared prop type name.
func matchesType(kind string, value any) bool {
	switch kind {
	case "string":
		_, ok := value.(string)
		return ok
	case "number":
		switch value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			return true
		}
		return false
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	case "object":
		_, ok := value.(map[string]any)
		return ok
	default:
		return true
	}
}
