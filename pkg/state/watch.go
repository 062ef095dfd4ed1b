package state

import (
	"fmt"
	"reflect"
	"sort"

	component "github.com/goliatone/go-component"
)

// WatchHandler is called with the new and the previous value of a watched
// key.
type WatchHandler func(inst *component.Instance, newValue, oldValue any) error

func (s *Initializer) initWatch(inst *component.Instance) error {
	declared, _ := inst.Options.Value(component.KeyWatch).(map[string]any)
	if len(declared) == 0 {
		return nil
	}
	keys := make([]string, 0, len(declared))
	for key := range declared {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		for _, raw := range watchEntries(declared[key]) {
			handler, err := watchHandler(inst, key, raw)
			if err != nil {
				return err
			}
			inst.Watchers[key] = append(inst.Watchers[key], handler)
		}
	}
	return nil
}

func watchEntries(value any) []any {
	if list, ok := value.([]any); ok {
		return list
	}
	return []any{value}
}

func watchHandler(inst *component.Instance, key string, raw any) (WatchHandler, error) {
	switch typed := raw.(type) {
	case WatchHandler:
		return typed, nil
	case func(*component.Instance, any, any) error:
		return typed, nil
	case string:
		if _, ok := inst.Methods[typed]; !ok {
			return nil, fmt.Errorf("%w: watcher of %q refers to %q on %s", ErrUnknownMethod, key, typed, inst.Name())
		}
		return func(inst *component.Instance, newValue, oldValue any) error {
			_, err := inst.CallMethod(typed, newValue, oldValue)
			return err
		}, nil
	case map[string]any:
		return watchHandler(inst, key, typed["handler"])
	default:
		return nil, fmt.Errorf("%w: watcher of %q is %T", component.ErrInvalidOption, key, raw)
	}
}

// Set assigns a data or prop value and runs the key's watchers in
// registration order when the value changed. Watcher errors stop the run.
func Set(inst *component.Instance, key string, value any) error {
	var table map[string]any
	switch {
	case hasKey(inst.Data, key):
		table = inst.Data
	case hasKey(inst.Props, key):
		table = inst.Props
	default:
		return fmt.Errorf("%w: %q on %s", ErrUnknownKey, key, inst.Name())
	}
	old := table[key]
	table[key] = value
	if sameScalar(old, value) {
		return nil
	}
	for _, entry := range inst.Watchers[key] {
		handler, ok := entry.(WatchHandler)
		if !ok {
			continue
		}
		if err := handler(inst, value, old); err != nil {
			return err
		}
	}
	return nil
}

func hasKey(table map[string]any, key string) bool {
	_, ok := table[key]
	return ok
}

// sameScalar reports equality for comparable values; maps and slices always
// count as changed.
func sameScalar(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
