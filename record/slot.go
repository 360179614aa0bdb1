package record

import (
	"fmt"
	"strings"

	"steward/plain"
)

// Slot is a named, schema-declared attribute. Slots are created with
// NewField, NewNested, NewDict or NewList and bound to a name when added
// to a Schema. A slot is bound exactly once; inherited slots are shared
// with the parent type.
type Slot interface {
	// Name returns the bound name, or "" before binding.
	Name() string
	Kind() SlotKind
	// Elem returns the record type of Nested, Dict and List slots.
	Elem() *Type
	// IsConst reports whether the slot refuses writes once initialized.
	IsConst() bool
	// HasDefault reports whether an absent value can be resolved from a
	// default or a factory.
	HasDefault() bool
	String() string

	bind(name string) error
	check() error
	decode(raw any, present bool) (value, stored any, err error)
	encode(value any) (cached, stored any, err error)
}

// DefaultPolicy selects how a Nested slot resolves a record default.
type DefaultPolicy int

const (
	// ShareDefault hands the declared default record to every instance
	// that falls back to it. All of them share one backing tree, so a
	// mutation through one instance shows up in the others.
	ShareDefault DefaultPolicy = iota
	// CopyDefault resolves the default to a fresh record over a deep copy
	// of the default's tree.
	CopyDefault
)

// Option configures a slot.
type Option func(*slotBase)

// WithDefault sets the value used when the tree has no entry for the slot.
// For Nested slots the default is either nil, which also makes the slot
// nullable, or a record of the slot's type.
func WithDefault(v any) Option {
	return func(b *slotBase) {
		b.deflt = v
		b.hasDefault = true
	}
}

// WithFactory sets a function called on every resolution of an absent
// value. It cannot be combined with WithDefault.
func WithFactory(fn func() any) Option {
	return func(b *slotBase) {
		b.factory = fn
	}
}

// Const makes the slot refuse writes once it holds a value.
func Const() Option {
	return func(b *slotBase) {
		b.constant = true
	}
}

// WithDefaultPolicy selects how a record default is resolved.
func WithDefaultPolicy(p DefaultPolicy) Option {
	return func(b *slotBase) {
		b.policy = p
	}
}

type slotBase struct {
	name       string
	deflt      any
	hasDefault bool
	factory    func() any
	constant   bool
	policy     DefaultPolicy
}

func newBase(opts []Option) slotBase {
	var b slotBase
	for _, opt := range opts {
		opt(&b)
	}

	return b
}

func (b *slotBase) Name() string {
	return b.name
}

func (b *slotBase) IsConst() bool {
	return b.constant
}

func (b *slotBase) HasDefault() bool {
	return b.hasDefault || b.factory != nil
}

func (b *slotBase) bind(name string) error {
	if name == "" {
		return &ConfigError{Reason: "slot name must not be empty"}
	}

	if b.name != "" {
		return &ConfigError{
			Slot:   b.name,
			Reason: fmt.Sprintf("slot is already bound, cannot bind it as '%s'", name),
		}
	}

	b.name = name

	return nil
}

func (b *slotBase) checkOptions() error {
	if b.hasDefault && b.factory != nil {
		return &ConfigError{Slot: b.name, Reason: "default and factory are mutually exclusive"}
	}

	return nil
}

// fallback resolves an absent value: factory, then static default.
func (b *slotBase) fallback() (any, error) {
	switch {
	case b.factory != nil:
		return b.factory(), nil
	case b.hasDefault:
		return b.deflt, nil
	default:
		return nil, &AttributeError{Slot: b.name}
	}
}

// describe renders "<Kind 'name'[Elem] default=... const>".
func (b *slotBase) describe(kind SlotKind, elem *Type) string {
	if b.name == "" {
		return "<Unbound>"
	}

	var s strings.Builder

	fmt.Fprintf(&s, "<%s '%s'", kind, b.name)

	if elem != nil {
		fmt.Fprintf(&s, "[%s]", elem.name)
	}

	switch {
	case b.factory != nil:
		s.WriteString(" factory")
	case b.hasDefault:
		s.WriteString(" default=" + repr(b.deflt))
	}

	if b.constant {
		s.WriteString(" const")
	}

	s.WriteString(">")

	return s.String()
}

func repr(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case string:
		return "'" + t + "'"
	case *Record:
		return t.String()
	default:
		return fmt.Sprint(plain.Export(v))
	}
}

// Field is an untyped slot. Values are stored in the tree as they are;
// native containers are adopted into plain nodes first.
type Field struct {
	slotBase
}

// NewField declares an untyped slot.
func NewField(opts ...Option) *Field {
	f := &Field{slotBase: newBase(opts)}
	if f.hasDefault {
		f.deflt = plain.Adopt(f.deflt)
	}

	return f
}

func (f *Field) Kind() SlotKind {
	return KindField
}

func (f *Field) Elem() *Type {
	return nil
}

func (f *Field) String() string {
	return f.describe(KindField, nil)
}

func (f *Field) check() error {
	if err := f.checkOptions(); err != nil {
		return err
	}

	if f.hasDefault && !isPlain(f.deflt) {
		return &ConfigError{
			Slot: f.name,
			Err:  &TypeMismatchError{Slot: f.name, Want: "plain value", Got: typeName(f.deflt)},
		}
	}

	return nil
}

func (f *Field) decode(raw any, present bool) (any, any, error) {
	if present {
		return raw, raw, nil
	}

	v, err := f.fallback()
	if err != nil {
		return nil, nil, err
	}

	return f.encode(v)
}

func (f *Field) encode(v any) (any, any, error) {
	if !isPlain(v) {
		return nil, nil, &TypeMismatchError{Slot: f.name, Want: "plain value", Got: typeName(v)}
	}

	v = plain.Adopt(v)

	return v, v, nil
}

func isPlain(v any) bool {
	switch v.(type) {
	case *Record, *DictProxy, *ListProxy:
		return false
	default:
		return true
	}
}

// asMap converts a raw mapping without walking it.
func asMap(raw any) (plain.Map, bool) {
	switch t := raw.(type) {
	case plain.Map:
		return t, true
	case map[string]any:
		return plain.Map(t), true
	case map[any]any:
		return plain.AdoptMap(t)
	default:
		return nil, false
	}
}

// asList converts a raw sequence without walking it.
func asList(raw any) (*plain.List, bool) {
	switch t := raw.(type) {
	case *plain.List:
		return t, true
	case []any:
		return plain.NewList(t...), true
	default:
		return nil, false
	}
}
