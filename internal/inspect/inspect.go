package inspect

import (
	"fmt"
	"reflect"

	"steward/internal/common"
	"steward/internal/diagnostic"
	"steward/internal/match"
	"steward/plain"
	"steward/record"
)

// Diagnostic codes reported by Tree.
const (
	CodeUndefinedType = "undefined_type"
	CodeUnknownKey    = "unknown_key"
	CodeMissingSlot   = "missing_slot"
	CodeWrongShape    = "wrong_shape"
	CodeNullNested    = "null_nested"
)

// Tree reports the problems a record of type t over tree would run into.
// Neither the tree nor any record is modified. Shared sub-trees are
// inspected once.
func Tree(t *record.Type, tree plain.Map) *diagnostic.Diagnostics {
	w := &walker{
		res:  &diagnostic.Diagnostics{},
		seen: make(map[uintptr]bool),
	}

	w.record(t, tree, "")

	return w.res
}

type walker struct {
	res  *diagnostic.Diagnostics
	seen map[uintptr]bool
}

func (w *walker) record(t *record.Type, tree map[string]any, path string) {
	if !t.Defined() {
		w.res.AddError(CodeUndefinedType, path, fmt.Sprintf("type '%s' is declared but not defined", t.Name()))
		return
	}

	if tree == nil {
		tree = map[string]any{}
	} else {
		ptr := reflect.ValueOf(tree).Pointer()
		if w.seen[ptr] {
			return
		}

		w.seen[ptr] = true
	}

	names := t.Names()

	for _, key := range common.SortedKeys(tree) {
		if !t.Has(key) {
			w.res.AddError(CodeUnknownKey, join(path, key),
				fmt.Sprintf("'%s' has no slot '%s'", t.Name(), key),
				match.Suggest(key, names, 3)...)
		}
	}

	for _, slot := range t.Slots() {
		raw, present := tree[slot.Name()]
		slotPath := join(path, slot.Name())

		if !present {
			if !slot.HasDefault() {
				w.res.AddError(CodeMissingSlot, slotPath, fmt.Sprintf("'%s' is not initialized", slot.Name()))
			}

			continue
		}

		w.slot(slot, raw, slotPath)
	}
}

func (w *walker) slot(slot record.Slot, raw any, path string) {
	switch slot.Kind() {
	case record.KindNested:
		if raw == nil {
			if n, ok := slot.(*record.Nested); ok && !n.Nullable() {
				w.res.AddWarning(CodeNullNested, path, fmt.Sprintf("'%s' is null but has no null default", slot.Name()))
			}

			return
		}

		w.element(slot.Elem(), raw, path)

	case record.KindDict:
		if raw == nil {
			return
		}

		m, ok := asMap(raw)
		if !ok {
			w.shape(path, plain.KindMap, raw)
			return
		}

		for _, key := range common.SortedKeys(m) {
			w.element(slot.Elem(), m[key], fmt.Sprintf("%s[%s]", path, key))
		}

	case record.KindList:
		if raw == nil {
			return
		}

		items, ok := asItems(raw)
		if !ok {
			w.shape(path, plain.KindList, raw)
			return
		}

		for i, item := range items {
			w.element(slot.Elem(), item, fmt.Sprintf("%s[%d]", path, i))
		}
	}
}

func (w *walker) element(t *record.Type, raw any, path string) {
	m, ok := asMap(raw)
	if !ok {
		w.shape(path, plain.KindMap, raw)
		return
	}

	w.record(t, m, path)
}

func (w *walker) shape(path string, want plain.KindEnum, raw any) {
	w.res.AddError(CodeWrongShape, path, fmt.Sprintf("expected a %s, got %s", want, plain.KindOf(raw)))
}

// asMap views a mapping node without converting it.
func asMap(raw any) (map[string]any, bool) {
	switch t := raw.(type) {
	case plain.Map:
		return t, true
	case map[string]any:
		return t, true
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, v := range t {
			m[fmt.Sprint(k)] = v
		}

		return m, true
	default:
		return nil, false
	}
}

func asItems(raw any) ([]any, bool) {
	switch t := raw.(type) {
	case *plain.List:
		return t.Items(), true
	case []any:
		return t, true
	default:
		return nil, false
	}
}

func join(path, name string) string {
	if path == "" {
		return name
	}

	return path + "." + name
}
