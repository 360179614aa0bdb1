package plain

import (
	"encoding/json"
	"slices"
)

// Map is a plain mapping node.
type Map map[string]any

// List is a plain sequence node. Always handled through a pointer so that
// every holder sees length changes.
type List struct {
	items []any
}

// NewList returns a list that takes ownership of items.
func NewList(items ...any) *List {
	return &List{items: items}
}

// Len returns the number of items. A nil list is empty.
func (l *List) Len() int {
	if l == nil {
		return 0
	}

	return len(l.items)
}

// At returns the item at index i. It panics when i is out of range.
func (l *List) At(i int) any {
	return l.items[i]
}

// Set replaces the item at index i.
func (l *List) Set(i int, v any) {
	l.items[i] = v
}

// Insert places v before index i; i == Len() appends.
func (l *List) Insert(i int, v any) {
	l.items = slices.Insert(l.items, i, v)
}

// Append adds v at the end.
func (l *List) Append(v any) {
	l.items = append(l.items, v)
}

// Delete removes the item at index i.
func (l *List) Delete(i int) {
	l.items = slices.Delete(l.items, i, i+1)
}

// Replace swaps items [i, j) for vs.
func (l *List) Replace(i, j int, vs ...any) {
	l.items = slices.Replace(l.items, i, j, vs...)
}

// Items returns the backing items. The slice must not be appended to by
// the caller; use the List methods to mutate.
func (l *List) Items() []any {
	if l == nil {
		return nil
	}

	return l.items
}

// MarshalJSON encodes the list as a JSON array.
func (l *List) MarshalJSON() ([]byte, error) {
	if l == nil || l.items == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(l.items)
}

// MarshalYAML encodes the list as a YAML sequence.
func (l *List) MarshalYAML() (any, error) {
	if l == nil || l.items == nil {
		return []any{}, nil
	}

	return l.items, nil
}
