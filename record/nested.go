package record

import "steward/plain"

// Nested is a slot holding a record of another type, or of the declaring
// type itself.
type Nested struct {
	slotBase
	target *Type
}

// NewNested declares a slot holding a record of type t. The type may still
// be incomplete when the slot is declared.
func NewNested(t *Type, opts ...Option) *Nested {
	return &Nested{slotBase: newBase(opts), target: t}
}

func (n *Nested) Kind() SlotKind {
	return KindNested
}

func (n *Nested) Elem() *Type {
	return n.target
}

func (n *Nested) String() string {
	return n.describe(KindNested, n.target)
}

// Nullable reports whether nil may be stored, which is the case when the
// declared default is nil.
func (n *Nested) Nullable() bool {
	return n.hasDefault && n.deflt == nil
}

func (n *Nested) check() error {
	if n.target == nil {
		return &ConfigError{Slot: n.name, Reason: "nested slot needs a record type"}
	}

	if err := n.checkOptions(); err != nil {
		return err
	}

	if n.hasDefault && n.deflt != nil {
		rec, ok := n.deflt.(*Record)
		if !ok || !rec.typ.IsA(n.target) {
			return &ConfigError{
				Slot: n.name,
				Err:  &TypeMismatchError{Slot: n.name, Want: n.target.name, Got: typeName(n.deflt)},
			}
		}
	}

	return nil
}

func (n *Nested) decode(raw any, present bool) (any, any, error) {
	if !present {
		return n.resolveDefault()
	}

	if raw == nil {
		return nil, nil, nil
	}

	m, ok := asMap(raw)
	if !ok {
		return nil, nil, &TypeMismatchError{Slot: n.name, Want: "mapping", Got: typeName(raw)}
	}

	return n.target.FromPlain(m), m, nil
}

func (n *Nested) resolveDefault() (any, any, error) {
	v, err := n.fallback()
	if err != nil {
		return nil, nil, err
	}

	if v == nil {
		return nil, nil, nil
	}

	rec, ok := v.(*Record)
	if !ok || !rec.typ.IsA(n.target) {
		return nil, nil, &TypeMismatchError{Slot: n.name, Want: n.target.name, Got: typeName(v)}
	}

	if n.factory == nil && n.policy == CopyDefault {
		tree, _ := plain.Clone(rec.tree).(plain.Map)
		rec = rec.typ.FromPlain(tree)
	}

	return rec, rec.tree, nil
}

func (n *Nested) encode(v any) (any, any, error) {
	rec, ok := v.(*Record)
	if v == nil || (ok && rec == nil) {
		if !n.Nullable() {
			return nil, nil, &TypeMismatchError{Slot: n.name, Want: n.target.name, Got: "nil"}
		}

		return nil, nil, nil
	}

	if !ok || !rec.typ.IsA(n.target) {
		return nil, nil, &TypeMismatchError{Slot: n.name, Want: n.target.name, Got: typeName(v)}
	}

	return rec, rec.tree, nil
}
