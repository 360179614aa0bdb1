package plain

import (
	"fmt"
	"reflect"
)

// Adopt converts a natively decoded tree into plain nodes.
//
// Map and *List values are returned as they are, so adopting an already
// plain tree keeps its identity. map[string]any is converted in place
// without copying, its nested values are adopted and written back.
// map[any]any keys are stringified with fmt.Sprint. []any is wrapped in a
// new *List sharing the same backing array.
func Adopt(v any) any {
	switch t := v.(type) {
	case Map:
		adoptEntries(t)
		return t
	case map[string]any:
		m := Map(t)
		adoptEntries(m)

		return m
	case map[any]any:
		m := make(Map, len(t))
		for k, item := range t {
			m[fmt.Sprint(k)] = Adopt(item)
		}

		return m
	case *List:
		adoptItems(t.items)
		return t
	case []any:
		adoptItems(t)
		return &List{items: t}
	default:
		return v
	}
}

// AdoptMap adopts v and reports whether the result is a mapping.
func AdoptMap(v any) (Map, bool) {
	m, ok := Adopt(v).(Map)
	return m, ok
}

func adoptEntries(m Map) {
	for k, item := range m {
		if KindOf(item).IsContainer() {
			m[k] = Adopt(item)
		}
	}
}

func adoptItems(items []any) {
	for i, item := range items {
		if KindOf(item).IsContainer() {
			items[i] = Adopt(item)
		}
	}
}

// Export returns a deep copy of v made of native map[string]any and []any
// values, for consumers that do not know about Map and *List.
func Export(v any) any {
	switch t := v.(type) {
	case Map:
		return exportMap(t)
	case map[string]any:
		return exportMap(t)
	case *List:
		return exportList(t.Items())
	case []any:
		return exportList(t)
	default:
		return v
	}
}

func exportMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, item := range m {
		out[k] = Export(item)
	}

	return out
}

func exportList(items []any) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = Export(item)
	}

	return out
}

// Clone returns a deep copy of a plain tree. Scalars are shared. Native
// containers in the input come back in their plain form.
func Clone(v any) any {
	switch t := v.(type) {
	case Map:
		return cloneMap(t)
	case map[string]any:
		return cloneMap(t)
	case map[any]any:
		out := make(Map, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = Clone(item)
		}

		return out
	case *List:
		return cloneItems(t.Items())
	case []any:
		return cloneItems(t)
	default:
		return v
	}
}

func cloneMap(m map[string]any) Map {
	out := make(Map, len(m))
	for k, item := range m {
		out[k] = Clone(item)
	}

	return out
}

func cloneItems(items []any) *List {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = Clone(item)
	}

	return &List{items: out}
}

// Equal reports whether two trees hold the same data. Native and plain
// container forms compare equal when their contents do.
func Equal(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}

	switch ka {
	case KindNull:
		return true
	case KindMap:
		ma, mb := asMap(a), asMap(b)
		if len(ma) != len(mb) {
			return false
		}

		for k, va := range ma {
			vb, ok := mb[k]
			if !ok || !Equal(va, vb) {
				return false
			}
		}

		return true
	case KindList:
		la, lb := asItems(a), asItems(b)
		if len(la) != len(lb) {
			return false
		}

		for i := range la {
			if !Equal(la[i], lb[i]) {
				return false
			}
		}

		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

func asMap(v any) map[string]any {
	switch t := v.(type) {
	case Map:
		return t
	case map[string]any:
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, item := range t {
			m[fmt.Sprint(k)] = item
		}

		return m
	}

	return nil
}

func asItems(v any) []any {
	switch t := v.(type) {
	case *List:
		return t.Items()
	case []any:
		return t
	}

	return nil
}
