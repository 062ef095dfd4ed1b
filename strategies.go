package component

var assetKeys = []string{KeyComponents, KeyDirectives, KeyFilters}

func defaultStrategies() map[string]Strategy {
	strategies := map[string]Strategy{
		KeyData:     DataStrategy,
		KeyProvide:  DataStrategy,
		KeyWatch:    WatchStrategy,
		KeyProps:    ExtendStrategy,
		KeyMethods:  ExtendStrategy,
		KeyInject:   ExtendStrategy,
		KeyComputed: ExtendStrategy,
	}
	for _, hook := range LifecycleHooks {
		strategies[hook] = HookStrategy
	}
	for _, key := range assetKeys {
		strategies[key] = AssetStrategy
	}
	return strategies
}

// DefaultStrategy keeps the child value when present.
func DefaultStrategy(parent, child any, _ *Instance, _ string) any {
	if child == nil {
		return parent
	}
	return child
}

// HookStrategy runs parent hooks before child hooks. A hook present on both
// sides runs once.
func HookStrategy(parent, child any, _ *Instance, _ string) any {
	if child == nil {
		return parent
	}
	childHooks, err := Hooks(child)
	if err != nil {
		return child
	}
	parentHooks, err := Hooks(parent)
	if err != nil {
		return child
	}
	merged := make([]*Hook, 0, len(parentHooks)+len(childHooks))
	seen := make(map[*Hook]struct{}, len(parentHooks)+len(childHooks))
	for _, list := range [][]*Hook{parentHooks, childHooks} {
		for _, h := range list {
			if _, ok := seen[h]; ok {
				continue
			}
			seen[h] = struct{}{}
			merged = append(merged, h)
		}
	}
	return merged
}

// AssetStrategy returns a registry that falls back to the parent registry
// and holds the child's own entries.
func AssetStrategy(parent, child any, _ *Instance, _ string) any {
	res := NewRegistry(asRegistry(parent))
	switch typed := child.(type) {
	case *Registry:
		for _, name := range typed.OwnNames() {
			value, _ := typed.Get(name)
			res.Set(name, value)
		}
	default:
		if registry := asRegistry(child); registry != nil {
			for _, name := range registry.OwnNames() {
				value, _ := registry.Get(name)
				res.Set(name, value)
			}
		}
	}
	return res
}

// WatchStrategy concatenates the watchers of each key, parent first.
func WatchStrategy(parent, child any, _ *Instance, _ string) any {
	if child == nil {
		return parent
	}
	if parent == nil {
		return child
	}
	parentMap, childMap := asMap(parent), asMap(child)
	res := make(map[string]any, len(parentMap)+len(childMap))
	for key, value := range parentMap {
		res[key] = value
	}
	for key, value := range childMap {
		existing, ok := res[key]
		if !ok {
			res[key] = asList(value)
			continue
		}
		res[key] = append(append([]any{}, asList(existing)...), asList(value)...)
	}
	return res
}

// ExtendStrategy copies the parent map and lets child entries override it.
func ExtendStrategy(parent, child any, _ *Instance, _ string) any {
	if parent == nil {
		return child
	}
	res := map[string]any{}
	for key, value := range asMap(parent) {
		res[key] = value
	}
	for key, value := range asMap(child) {
		res[key] = value
	}
	return res
}

// DataStrategy defers the merge to instance creation, where both sides are
// evaluated and deep merged with the child winning.
func DataStrategy(parent, child any, _ *Instance, _ string) any {
	if child == nil {
		return parent
	}
	if parent == nil {
		return child
	}
	return &MergedData{Parent: parent, Child: child}
}

func asMap(value any) map[string]any {
	switch typed := value.(type) {
	case map[string]any:
		return typed
	case map[string]string:
		out := make(map[string]any, len(typed))
		for key, v := range typed {
			out[key] = v
		}
		return out
	default:
		return nil
	}
}

func asList(value any) []any {
	if list, ok := value.([]any); ok {
		return list
	}
	return []any{value}
}
