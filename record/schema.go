package record

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// Type is a record type: the inheritance-resolved, ordered table of its
// slots. A Type is either declared (incomplete, usable as a slot target)
// or defined (built by a Schema, usable for instances). A defined Type is
// never modified again.
type Type struct {
	name    string
	parents []*Type
	slots   []Slot
	index   map[string]int
	defined bool
}

// Declare returns an incomplete type. Slots may reference it before it is
// defined with Define(t).Build().
func Declare(name string) *Type {
	return &Type{name: name}
}

func (t *Type) Name() string {
	return t.name
}

func (t *Type) String() string {
	return t.name
}

// Defined reports whether the type has been built.
func (t *Type) Defined() bool {
	return t.defined
}

// Parents returns the direct ancestors in declaration order.
func (t *Type) Parents() []*Type {
	return slices.Clone(t.parents)
}

// Slots returns every slot, inherited ones included, in table order.
func (t *Type) Slots() []Slot {
	return slices.Clone(t.slots)
}

// Slot returns the slot bound to name.
func (t *Type) Slot(name string) (Slot, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}

	return t.slots[i], true
}

// Has reports whether name is a valid slot name.
func (t *Type) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Names returns the valid slot names, sorted.
func (t *Type) Names() []string {
	names := make([]string, 0, len(t.index))
	for name := range t.index {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// IsA reports whether t is other or descends from it.
func (t *Type) IsA(other *Type) bool {
	if t == other {
		return true
	}

	for _, p := range t.parents {
		if p.IsA(other) {
			return true
		}
	}

	return false
}

func (t *Type) ready() error {
	if !t.defined {
		return &ConfigError{Type: t.name, Reason: "type is declared but not defined"}
	}

	return nil
}

// Schema builds a Type. Slots are layered in order: inherited slots first,
// then the type's own slots. A slot whose name is already taken replaces
// the earlier one and moves to the end of the table. There is no way to
// remove a slot.
type Schema struct {
	typ     *Type
	parents []*Type
	own     []Slot
	errs    []error
}

// NewSchema starts the definition of a new type.
func NewSchema(name string) *Schema {
	return Define(Declare(name))
}

// Define starts the definition of a previously declared type.
func Define(t *Type) *Schema {
	return &Schema{typ: t}
}

// Type returns the type being defined. It stays incomplete until Build.
func (s *Schema) Type() *Type {
	return s.typ
}

// Extends adds ancestors. Their slot tables are layered in the order given.
func (s *Schema) Extends(parents ...*Type) *Schema {
	s.parents = append(s.parents, parents...)
	return s
}

// Slot binds slot to name and layers it on top of the table.
func (s *Schema) Slot(name string, slot Slot) *Schema {
	if slot == nil {
		s.errs = append(s.errs, &ConfigError{Type: s.typ.name, Slot: name, Reason: "slot is nil"})
		return s
	}

	if err := slot.bind(name); err != nil {
		s.errs = append(s.errs, withType(err, s.typ.name))
		return s
	}

	s.own = append(s.own, slot)

	return s
}

// Build freezes the slot table and defines the type.
func (s *Schema) Build() (*Type, error) {
	t := s.typ
	errs := slices.Clone(s.errs)

	if t.defined {
		errs = append(errs, &ConfigError{Type: t.name, Reason: "type is already defined"})
	}

	for _, p := range s.parents {
		switch {
		case p == nil:
			errs = append(errs, &ConfigError{Type: t.name, Reason: "parent type is nil"})
		case p == t:
			errs = append(errs, &ConfigError{Type: t.name, Reason: "type cannot extend itself"})
		case !p.defined:
			errs = append(errs, &ConfigError{Type: t.name, Reason: fmt.Sprintf("parent '%s' is not defined", p.name)})
		}
	}

	for _, slot := range s.own {
		if err := slot.check(); err != nil {
			errs = append(errs, withType(err, t.name))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	var table []Slot

	index := make(map[string]int)
	layer := func(slot Slot) {
		if i, ok := index[slot.Name()]; ok {
			table = slices.Delete(table, i, i+1)
		}

		table = append(table, slot)

		clear(index)

		for i, sl := range table {
			index[sl.Name()] = i
		}
	}

	for _, p := range s.parents {
		for _, slot := range p.slots {
			layer(slot)
		}
	}

	for _, slot := range s.own {
		layer(slot)
	}

	t.parents = slices.Clone(s.parents)
	t.slots = table
	t.index = index
	t.defined = true

	return t, nil
}

// MustBuild is like Build but panics on error. It is meant for package
// level type declarations.
func (s *Schema) MustBuild() *Type {
	t, err := s.Build()
	if err != nil {
		panic(err)
	}

	return t
}

func withType(err error, name string) error {
	var ce *ConfigError
	if errors.As(err, &ce) && ce.Type == "" {
		ce.Type = name
	}

	return err
}
