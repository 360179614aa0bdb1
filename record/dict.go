package record

import (
	"maps"
	"slices"

	"steward/plain"
)

// Dict is a slot holding string-keyed records of one type. The slot
// itself cannot be assigned; mutate the DictProxy it returns.
type Dict struct {
	slotBase
	elem *Type
}

// NewDict declares a keyed collection of records of type t.
func NewDict(t *Type) *Dict {
	return &Dict{elem: t}
}

func (d *Dict) Kind() SlotKind {
	return KindDict
}

func (d *Dict) Elem() *Type {
	return d.elem
}

func (d *Dict) String() string {
	return d.describe(KindDict, d.elem)
}

// HasDefault is true: an absent dict resolves to an empty one.
func (d *Dict) HasDefault() bool {
	return true
}

func (d *Dict) check() error {
	if d.elem == nil {
		return &ConfigError{Slot: d.name, Reason: "dict slot needs a record type"}
	}

	return nil
}

func (d *Dict) decode(raw any, present bool) (any, any, error) {
	if !present || raw == nil {
		m := plain.Map{}
		return newDictProxy(d.elem, m), m, nil
	}

	m, ok := asMap(raw)
	if !ok {
		return nil, nil, &TypeMismatchError{Slot: d.name, Want: "mapping", Got: typeName(raw)}
	}

	return newDictProxy(d.elem, m), m, nil
}

func (d *Dict) encode(any) (any, any, error) {
	return nil, nil, &ImmutableError{Slot: d.name, Reason: "is a dict slot and cannot be set"}
}

// DictProxy is the live view of a dict slot. Elements are decoded on first
// access and the decoded record is returned on every later access until
// the key is replaced or deleted.
type DictProxy struct {
	elem   *Type
	raw    plain.Map
	shadow map[string]*Record
}

func newDictProxy(elem *Type, raw plain.Map) *DictProxy {
	return &DictProxy{elem: elem, raw: raw, shadow: make(map[string]*Record)}
}

// Elem returns the element type.
func (d *DictProxy) Elem() *Type {
	return d.elem
}

// Plain returns the backing mapping by reference.
func (d *DictProxy) Plain() plain.Map {
	return d.raw
}

func (d *DictProxy) Len() int {
	return len(d.raw)
}

// Keys returns the keys of the backing mapping in sorted order.
func (d *DictProxy) Keys() []string {
	return slices.Sorted(maps.Keys(d.raw))
}

func (d *DictProxy) Has(key string) bool {
	_, ok := d.raw[key]
	return ok
}

// Get returns the record stored under key.
func (d *DictProxy) Get(key string) (*Record, error) {
	if rec, ok := d.shadow[key]; ok {
		return rec, nil
	}

	raw, ok := d.raw[key]
	if !ok {
		return nil, keyNotFound(key)
	}

	m, ok := asMap(raw)
	if !ok {
		return nil, &TypeMismatchError{Slot: "[" + key + "]", Want: "mapping", Got: typeName(raw)}
	}

	d.raw[key] = m
	rec := d.elem.FromPlain(m)
	d.shadow[key] = rec

	return rec, nil
}

// Set stores rec under key; the backing mapping receives rec's tree.
func (d *DictProxy) Set(key string, rec *Record) error {
	if err := d.accept(key, rec); err != nil {
		return err
	}

	d.shadow[key] = rec
	d.raw[key] = rec.tree

	return nil
}

// Delete removes key from the backing mapping and the decoded view.
func (d *DictProxy) Delete(key string) error {
	if _, ok := d.raw[key]; !ok {
		return keyNotFound(key)
	}

	delete(d.raw, key)
	delete(d.shadow, key)

	return nil
}

// Values decodes every element and returns them in key order.
func (d *DictProxy) Values() ([]*Record, error) {
	keys := d.Keys()
	out := make([]*Record, 0, len(keys))

	for _, k := range keys {
		rec, err := d.Get(k)
		if err != nil {
			return nil, err
		}

		out = append(out, rec)
	}

	return out, nil
}

func (d *DictProxy) accept(key string, rec *Record) error {
	if rec == nil || !rec.typ.IsA(d.elem) {
		return &TypeMismatchError{Slot: "[" + key + "]", Want: d.elem.name, Got: typeName(rec)}
	}

	return nil
}

// clone copies the mapping shallowly: elements stay shared.
func (d *DictProxy) clone() *DictProxy {
	return &DictProxy{elem: d.elem, raw: maps.Clone(d.raw), shadow: maps.Clone(d.shadow)}
}
