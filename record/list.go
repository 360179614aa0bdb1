package record

import (
	"slices"
	"strconv"

	"steward/plain"
)

// List is a slot holding an ordered sequence of records of one type. The
// slot itself cannot be assigned; mutate the ListProxy it returns.
type List struct {
	slotBase
	elem *Type
}

// NewList declares an ordered collection of records of type t.
func NewList(t *Type) *List {
	return &List{elem: t}
}

func (l *List) Kind() SlotKind {
	return KindList
}

func (l *List) Elem() *Type {
	return l.elem
}

func (l *List) String() string {
	return l.describe(KindList, l.elem)
}

// HasDefault is true: an absent list resolves to an empty one.
func (l *List) HasDefault() bool {
	return true
}

func (l *List) check() error {
	if l.elem == nil {
		return &ConfigError{Slot: l.name, Reason: "list slot needs a record type"}
	}

	return nil
}

func (l *List) decode(raw any, present bool) (any, any, error) {
	if !present || raw == nil {
		seq := plain.NewList()
		return newListProxy(l.elem, seq), seq, nil
	}

	seq, ok := asList(raw)
	if !ok {
		return nil, nil, &TypeMismatchError{Slot: l.name, Want: "sequence", Got: typeName(raw)}
	}

	return newListProxy(l.elem, seq), seq, nil
}

func (l *List) encode(any) (any, any, error) {
	return nil, nil, &ImmutableError{Slot: l.name, Reason: "is a list slot and cannot be set"}
}

// ListProxy is the live view of a list slot. The first operation that
// needs decoded elements decodes the whole backing sequence; from then on
// the backing sequence and the decoded view change in lockstep.
type ListProxy struct {
	elem   *Type
	raw    *plain.List
	shadow []*Record
	loaded bool
}

func newListProxy(elem *Type, raw *plain.List) *ListProxy {
	return &ListProxy{elem: elem, raw: raw}
}

// Elem returns the element type.
func (l *ListProxy) Elem() *Type {
	return l.elem
}

// Plain returns the backing sequence by reference.
func (l *ListProxy) Plain() *plain.List {
	return l.raw
}

func (l *ListProxy) Len() int {
	return l.raw.Len()
}

// Loaded reports whether the elements have been decoded.
func (l *ListProxy) Loaded() bool {
	return l.loaded
}

// At returns the record at index i.
func (l *ListProxy) At(i int) (*Record, error) {
	if err := l.load(); err != nil {
		return nil, err
	}

	if i < 0 || i >= len(l.shadow) {
		return nil, indexOutOfRange(i, len(l.shadow))
	}

	return l.shadow[i], nil
}

// Set replaces the record at index i.
func (l *ListProxy) Set(i int, rec *Record) error {
	if err := l.accept(rec); err != nil {
		return err
	}

	if err := l.load(); err != nil {
		return err
	}

	if i < 0 || i >= len(l.shadow) {
		return indexOutOfRange(i, len(l.shadow))
	}

	l.shadow[i] = rec
	l.raw.Set(i, rec.tree)

	return nil
}

// SetSlice replaces the records in [i, j) with recs. The number of
// records may differ from j-i.
func (l *ListProxy) SetSlice(i, j int, recs ...*Record) error {
	for _, rec := range recs {
		if err := l.accept(rec); err != nil {
			return err
		}
	}

	if err := l.load(); err != nil {
		return err
	}

	if i < 0 || j < i || j > len(l.shadow) {
		return indexOutOfRange(j, len(l.shadow))
	}

	trees := make([]any, len(recs))
	for k, rec := range recs {
		trees[k] = rec.tree
	}

	l.shadow = slices.Replace(l.shadow, i, j, recs...)
	l.raw.Replace(i, j, trees...)

	return nil
}

// Delete removes the record at index i.
func (l *ListProxy) Delete(i int) error {
	if err := l.load(); err != nil {
		return err
	}

	if i < 0 || i >= len(l.shadow) {
		return indexOutOfRange(i, len(l.shadow))
	}

	l.shadow = slices.Delete(l.shadow, i, i+1)
	l.raw.Delete(i)

	return nil
}

// Insert places rec before index i; i == Len() appends.
func (l *ListProxy) Insert(i int, rec *Record) error {
	if err := l.accept(rec); err != nil {
		return err
	}

	if err := l.load(); err != nil {
		return err
	}

	if i < 0 || i > len(l.shadow) {
		return indexOutOfRange(i, len(l.shadow))
	}

	l.shadow = slices.Insert(l.shadow, i, rec)
	l.raw.Insert(i, rec.tree)

	return nil
}

// Append adds rec at the end.
func (l *ListProxy) Append(rec *Record) error {
	return l.Insert(l.raw.Len(), rec)
}

// Records returns the decoded elements. The returned slice is a copy.
func (l *ListProxy) Records() ([]*Record, error) {
	if err := l.load(); err != nil {
		return nil, err
	}

	return slices.Clone(l.shadow), nil
}

func (l *ListProxy) load() error {
	if l.loaded {
		return nil
	}

	items := l.raw.Items()
	shadow := make([]*Record, len(items))

	for i, item := range items {
		m, ok := asMap(item)
		if !ok {
			return &TypeMismatchError{Slot: "[" + strconv.Itoa(i) + "]", Want: "mapping", Got: typeName(item)}
		}

		items[i] = m
		shadow[i] = l.elem.FromPlain(m)
	}

	l.shadow = shadow
	l.loaded = true

	return nil
}

func (l *ListProxy) accept(rec *Record) error {
	if rec == nil || !rec.typ.IsA(l.elem) {
		return &TypeMismatchError{Want: l.elem.name, Got: typeName(rec)}
	}

	return nil
}

// clone copies the sequence shallowly: elements stay shared.
func (l *ListProxy) clone() *ListProxy {
	return &ListProxy{
		elem:   l.elem,
		raw:    plain.NewList(slices.Clone(l.raw.Items())...),
		shadow: slices.Clone(l.shadow),
		loaded: l.loaded,
	}
}
