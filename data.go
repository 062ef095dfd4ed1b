package component

import (
	"fmt"

	"github.com/goliatone/go-component/layering"
)

// DataProvider produces a fresh data map for an instance.
type DataProvider interface {
	Data(inst *Instance) (map[string]any, error)
}

// DataFunc adapts a function to DataProvider.
type DataFunc func(inst *Instance) (map[string]any, error)

// Data implements DataProvider.
func (f DataFunc) Data(inst *Instance) (map[string]any, error) {
	if f == nil {
		return nil, nil
	}
	return f(inst)
}

// MergedData is the deferred result of merging two data (or provide)
// declarations. Child keys win; nested maps are merged.
type MergedData struct {
	Parent any
	Child  any
}

// Data implements DataProvider.
func (m *MergedData) Data(inst *Instance) (map[string]any, error) {
	child, err := ResolveData(m.Child, inst)
	if err != nil {
		return nil, err
	}
	parent, err := ResolveData(m.Parent, inst)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return parent, nil
	}
	return layering.Merge(child, parent), nil
}

// ResolveData evaluates a data or provide declaration for inst. Plain maps
// are deep copied so instances never share them.
func ResolveData(value any, inst *Instance) (map[string]any, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return layering.Clone(typed), nil
	case DataProvider:
		return typed.Data(inst)
	case func(*Instance) (map[string]any, error):
		return typed(inst)
	case func(*Instance) map[string]any:
		return typed(inst), nil
	case func() map[string]any:
		return typed(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported data value %T", ErrInvalidOption, value)
	}
}

// PropOptions declares a prop.
type PropOptions struct {
	Type      string
	Default   any
	Required  bool
	Validator func(value any) bool
}

// InjectOptions declares an injected value.
type InjectOptions struct {
	From       string
	Default    any
	HasDefault bool
}
