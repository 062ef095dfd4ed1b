package component

import (
	"fmt"
	"sort"
	"strings"
)

// FieldDescriptor describes an option path and the inferred type of its
// value.
type FieldDescriptor struct {
	Path  string `json:"path" yaml:"path"`
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
	Own   bool   `json:"own" yaml:"own"`
}

// Describe lists every key visible through o. Plain maps are expanded into
// dotted paths and registries into their entry names.
func Describe(o *Options) []FieldDescriptor {
	if o == nil {
		return []FieldDescriptor{}
	}
	fields := []FieldDescriptor{}
	for _, key := range o.Keys() {
		value, _ := o.Get(key)
		own := o.HasOwn(key)
		for _, field := range deriveFieldDescriptors(value, key) {
			field.Own = own
			fields = append(fields, field)
		}
	}
	return fields
}

func deriveFieldDescriptors(value any, prefix string) []FieldDescriptor {
	switch typed := value.(type) {
	case map[string]any:
		if len(typed) == 0 {
			return []FieldDescriptor{{Path: prefix, Type: "map[string]any"}}
		}
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var fields []FieldDescriptor
		for _, key := range keys {
			fields = append(fields, deriveFieldDescriptors(typed[key], joinPath(prefix, key))...)
		}
		return fields
	case *Registry:
		return []FieldDescriptor{{
			Path:  prefix,
			Type:  "registry",
			Value: strings.Join(typed.Names(), ","),
		}}
	default:
		return []FieldDescriptor{{
			Path:  prefix,
			Type:  typeName(value),
			Value: DescribeValue(value),
		}}
	}
}

// DescribeValue renders a short display form of an option value. Callables
// and instance references are reduced to their type.
func DescribeValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool, int, int64, float64, uint64:
		return fmt.Sprint(typed)
	case []string:
		return strings.Join(typed, ",")
	case *Definition:
		return FormatDefinitionName(typed)
	case *Instance:
		return typed.Name()
	case []*Hook:
		return fmt.Sprintf("%d hook(s)", len(typed))
	case *Registry:
		return strings.Join(typed.Names(), ",")
	case *MergedData:
		return "merged data"
	default:
		return typeName(value)
	}
}

func typeName(value any) string {
	if value == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", value)
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return strings.Join([]string{prefix, segment}, ".")
}
