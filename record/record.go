package record

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"steward/internal/match"
	"steward/plain"
)

// Values holds explicit slot values for Type.New and Record.Clone.
type Values map[string]any

// Record is an instance of a Type. It owns a decode cache and shares its
// backing tree with whoever else references it: a parent record, a
// container proxy or a caller of Plain.
type Record struct {
	typ   *Type
	tree  plain.Map
	cache map[string]any
}

func newRecord(t *Type, tree plain.Map) *Record {
	if tree == nil {
		tree = plain.Map{}
	}

	return &Record{typ: t, tree: tree, cache: make(map[string]any)}
}

// New builds a record from explicit values. Unknown names fail with
// ErrExtraParameters. Every slot not given is resolved from its default or
// factory right away; slots that cannot be resolved fail together with
// ErrMissingParameters. On failure no record is returned.
func (t *Type) New(values Values) (*Record, error) {
	if err := t.ready(); err != nil {
		return nil, err
	}

	if err := t.checkNames(values); err != nil {
		return nil, err
	}

	r := newRecord(t, nil)

	for _, slot := range t.slots {
		v, ok := values[slot.Name()]
		if !ok {
			continue
		}

		if err := r.assign(slot, v, true); err != nil {
			return nil, err
		}
	}

	var missing []string

	for _, slot := range t.slots {
		if _, ok := values[slot.Name()]; ok {
			continue
		}

		if _, err := r.get(slot); err != nil {
			if errors.Is(err, ErrNotInitialized) {
				missing = append(missing, slot.Name())
				continue
			}

			return nil, err
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &ParamsError{Kind: ErrMissingParameters, Type: t.name, Names: missing}
	}

	return r, nil
}

// MustNew is like New but panics on error.
func (t *Type) MustNew(values Values) *Record {
	r, err := t.New(values)
	if err != nil {
		panic(err)
	}

	return r
}

// FromPlain wraps an existing tree without validation or copying. Slots
// are decoded on first access. A nil tree is replaced by an empty one.
func (t *Type) FromPlain(tree plain.Map) *Record {
	return newRecord(t, tree)
}

func (t *Type) checkNames(values Values) error {
	var extra []string

	for name := range values {
		if !t.Has(name) {
			extra = append(extra, name)
		}
	}

	if len(extra) == 0 {
		return nil
	}

	sort.Strings(extra)

	valid := t.Names()
	hints := make(map[string][]string)

	for _, name := range extra {
		if s := match.Suggest(name, valid, 3); len(s) > 0 {
			hints[name] = s
		}
	}

	return &ParamsError{Kind: ErrExtraParameters, Type: t.name, Names: extra, Suggestions: hints}
}

// Type returns the record's type.
func (r *Record) Type() *Type {
	return r.typ
}

// Plain returns the backing tree by reference.
func (r *Record) Plain() plain.Map {
	return r.tree
}

// Decoded reports whether the slot's value is in the decode cache.
func (r *Record) Decoded(name string) bool {
	_, ok := r.cache[name]
	return ok
}

func (r *Record) String() string {
	return fmt.Sprintf("<%s %v>", r.typ.name, plain.Export(r.tree))
}

// Get returns the value of a slot, decoding it from the tree or resolving
// its default on first access.
func (r *Record) Get(name string) (any, error) {
	slot, err := r.slot(name)
	if err != nil {
		return nil, err
	}

	return r.get(slot)
}

// Set writes a slot. Const slots that already hold a value and collection
// slots refuse writes with ErrImmutable.
func (r *Record) Set(name string, v any) error {
	slot, err := r.slot(name)
	if err != nil {
		return err
	}

	return r.assign(slot, v, false)
}

// Nested returns the record held by a nested slot. The result is nil when
// the slot holds nil.
func (r *Record) Nested(name string) (*Record, error) {
	v, err := r.getKind(name, KindNested)
	if err != nil {
		return nil, err
	}

	rec, _ := v.(*Record)

	return rec, nil
}

// Dict returns the proxy of a dict slot.
func (r *Record) Dict(name string) (*DictProxy, error) {
	v, err := r.getKind(name, KindDict)
	if err != nil {
		return nil, err
	}

	return v.(*DictProxy), nil
}

// List returns the proxy of a list slot.
func (r *Record) List(name string) (*ListProxy, error) {
	v, err := r.getKind(name, KindList)
	if err != nil {
		return nil, err
	}

	return v.(*ListProxy), nil
}

// Clone returns a new record of the same type with a new top-level tree.
// Slots without an override take the current value of r: nested records
// are shared by reference, collections get a shallow copy of their
// container whose elements are shared. Const slots may be overridden;
// collection slots may not. Slots r cannot resolve stay absent.
func (r *Record) Clone(overrides Values) (*Record, error) {
	t := r.typ
	if err := t.ready(); err != nil {
		return nil, err
	}

	if err := t.checkNames(overrides); err != nil {
		return nil, err
	}

	c := newRecord(t, nil)

	for _, slot := range t.slots {
		name := slot.Name()

		if v, ok := overrides[name]; ok {
			if err := c.assign(slot, v, true); err != nil {
				return nil, err
			}

			continue
		}

		v, err := r.get(slot)
		if errors.Is(err, ErrNotInitialized) {
			continue
		}

		if err != nil {
			return nil, err
		}

		switch p := v.(type) {
		case *DictProxy:
			cp := p.clone()
			c.cache[name], c.tree[name] = cp, cp.raw
		case *ListProxy:
			cp := p.clone()
			c.cache[name], c.tree[name] = cp, cp.raw
		default:
			c.cache[name], c.tree[name] = v, r.tree[name]
		}
	}

	return c, nil
}

func (r *Record) slot(name string) (Slot, error) {
	if err := r.typ.ready(); err != nil {
		return nil, err
	}

	slot, ok := r.typ.Slot(name)
	if !ok {
		return nil, unknownSlot(r.typ, name)
	}

	return slot, nil
}

func (r *Record) getKind(name string, kind SlotKind) (any, error) {
	slot, err := r.slot(name)
	if err != nil {
		return nil, err
	}

	if slot.Kind() != kind {
		return nil, &TypeMismatchError{Slot: name, Want: kind.String() + " slot", Got: slot.Kind().String() + " slot"}
	}

	return r.get(slot)
}

func (r *Record) get(slot Slot) (any, error) {
	name := slot.Name()
	if v, ok := r.cache[name]; ok {
		return v, nil
	}

	raw, present := r.tree[name]

	v, stored, err := slot.decode(raw, present)
	if err != nil {
		var ae *AttributeError
		if errors.As(err, &ae) {
			ae.Type = r.typ.name
		}

		return nil, err
	}

	r.cache[name] = v
	r.tree[name] = stored

	return v, nil
}

// assign writes both representations of a slot. fresh skips the const
// check, for records that are still being built.
func (r *Record) assign(slot Slot, v any, fresh bool) error {
	name := slot.Name()
	if slot.IsConst() && !fresh && r.initialized(name) {
		return &ImmutableError{Slot: name, Reason: "is const and already initialized"}
	}

	cached, stored, err := slot.encode(v)
	if err != nil {
		return err
	}

	r.cache[name] = cached
	r.tree[name] = stored

	return nil
}

func (r *Record) initialized(name string) bool {
	if _, ok := r.cache[name]; ok {
		return true
	}

	_, ok := r.tree[name]

	return ok
}

// Materialize resolves every slot of r and of every record reachable from
// it, so that defaults and empty collections are written into the trees.
// Slots that cannot be resolved are reported together, by path, after the
// walk completes.
func (r *Record) Materialize() error {
	var missing []string

	seen := make(map[*Record]bool)

	err := r.materialize("", seen, &missing)
	if err != nil {
		return err
	}

	if len(missing) > 0 {
		slices.Sort(missing)
		return &ParamsError{Kind: ErrMissingParameters, Type: r.typ.name, Names: missing}
	}

	return nil
}

func (r *Record) materialize(prefix string, seen map[*Record]bool, missing *[]string) error {
	if seen[r] {
		return nil
	}

	seen[r] = true

	if err := r.typ.ready(); err != nil {
		return err
	}

	for _, slot := range r.typ.slots {
		path := joinPath(prefix, slot.Name())

		v, err := r.get(slot)
		if errors.Is(err, ErrNotInitialized) {
			*missing = append(*missing, path)
			continue
		}

		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		switch t := v.(type) {
		case *Record:
			err = t.materialize(path, seen, missing)
		case *DictProxy:
			err = t.materialize(path, seen, missing)
		case *ListProxy:
			err = t.materialize(path, seen, missing)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (d *DictProxy) materialize(prefix string, seen map[*Record]bool, missing *[]string) error {
	for _, key := range d.Keys() {
		path := fmt.Sprintf("%s[%s]", prefix, key)

		rec, err := d.Get(key)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if err := rec.materialize(path, seen, missing); err != nil {
			return err
		}
	}

	return nil
}

func (l *ListProxy) materialize(prefix string, seen map[*Record]bool, missing *[]string) error {
	recs, err := l.Records()
	if err != nil {
		return fmt.Errorf("%s: %w", prefix, err)
	}

	for i, rec := range recs {
		if err := rec.materialize(fmt.Sprintf("%s[%d]", prefix, i), seen, missing); err != nil {
			return err
		}
	}

	return nil
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + "." + name
}
