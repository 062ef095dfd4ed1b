package layering

import "reflect"

// Merge deep merges two data maps. Values in strong win; where both sides hold
// a map under the same key the maps are merged recursively. The inputs are
// not modified.
func Merge(strong, weak map[string]any) map[string]any {
	if strong == nil && weak == nil {
		return nil
	}
	result := Clone(weak)
	if result == nil {
		result = make(map[string]any, len(strong))
	}
	for key, value := range strong {
		existing, ok := result[key]
		if !ok {
			result[key] = cloneAny(value)
			continue
		}
		strongMap, strongIsMap := value.(map[string]any)
		weakMap, weakIsMap := existing.(map[string]any)
		if strongIsMap && weakIsMap {
			result[key] = Merge(strongMap, weakMap)
			continue
		}
		result[key] = cloneAny(value)
	}
	return result
}

// MergeLayers merges layers ordered strongest to weakest.
func MergeLayers(layers ...map[string]any) map[string]any {
	if len(layers) == 0 {
		return nil
	}
	merged := Clone(layers[len(layers)-1])
	for i := len(layers) - 2; i >= 0; i-- {
		merged = Merge(layers[i], merged)
	}
	return merged
}

// Clone deep copies maps and slices reachable from src. Pointers, funcs and
// struct values are shared.
func Clone(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = cloneAny(value)
	}
	return out
}

func cloneAny(value any) any {
	if value == nil {
		return nil
	}
	if typed, ok := value.(map[string]any); ok {
		return Clone(typed)
	}
	cloned := cloneValue(reflect.ValueOf(value))
	if !cloned.IsValid() {
		return value
	}
	return cloned.Interface()
}

func cloneValue(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return v
	}
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		elem := cloneValue(v.Elem())
		if !elem.IsValid() {
			return reflect.Zero(v.Type())
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(elem)
		return out
	case reflect.Map:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			clone.SetMapIndex(iter.Key(), cloneValue(iter.Value()))
		}
		return clone
	case reflect.Slice:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			clone.Index(i).Set(cloneValue(v.Index(i)))
		}
		return clone
	default:
		return v
	}
}
