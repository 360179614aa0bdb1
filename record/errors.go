package record

import (
	"errors"
	"fmt"
	"strings"

	"steward/plain"
)

// Sentinel errors. Every error returned by this package matches one of
// them with errors.Is.
var (
	ErrExtraParameters   = errors.New("extra parameters")
	ErrMissingParameters = errors.New("missing parameters")
	ErrNotInitialized    = errors.New("attribute is not initialized")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrImmutable         = errors.New("slot is immutable")
	ErrConfiguration     = errors.New("schema configuration error")
	ErrUnknownSlot       = errors.New("unknown slot")
	ErrKeyNotFound       = errors.New("key not found")
	ErrIndexOutOfRange   = errors.New("index out of range")
)

// ParamsError reports every unknown or unresolved name of a construction
// at once. Names are sorted.
type ParamsError struct {
	// Kind is ErrExtraParameters or ErrMissingParameters.
	Kind  error
	Type  string
	Names []string
	// Suggestions maps an unknown name to the valid names it resembles.
	Suggestions map[string][]string
}

func (e *ParamsError) Error() string {
	label := "Missing"
	if e.Kind == ErrExtraParameters {
		label = "Extra"
	}

	return fmt.Sprintf("%s params: '%s'", label, strings.Join(e.Names, ", "))
}

func (e *ParamsError) Unwrap() error {
	return e.Kind
}

// AttributeError is returned when a slot has no cached value, no value in
// the tree, no default and no factory.
type AttributeError struct {
	Type string
	Slot string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("'%s' is not initialized", e.Slot)
}

func (e *AttributeError) Unwrap() error {
	return ErrNotInitialized
}

// TypeMismatchError is returned when a value is not of the declared type.
type TypeMismatchError struct {
	Slot string
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	msg := fmt.Sprintf("an %s is required, got %s", e.Want, e.Got)
	if e.Slot != "" {
		return fmt.Sprintf("'%s': %s", e.Slot, msg)
	}

	return msg
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// ImmutableError is returned on writes to a const slot that is already
// initialized and on any write to a collection slot.
type ImmutableError struct {
	Slot   string
	Reason string
}

func (e *ImmutableError) Error() string {
	return fmt.Sprintf("'%s' %s", e.Slot, e.Reason)
}

func (e *ImmutableError) Unwrap() error {
	return ErrImmutable
}

// ConfigError is a schema declaration mistake. It is raised when a schema
// is built or when an undefined type is used, never as a result of data.
type ConfigError struct {
	Type   string
	Slot   string
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

func (e *ConfigError) Error() string {
	var parts []string
	if e.Type != "" {
		parts = append(parts, fmt.Sprintf("type '%s'", e.Type))
	}

	if e.Slot != "" {
		parts = append(parts, fmt.Sprintf("slot '%s'", e.Slot))
	}

	reason := e.Reason
	if e.Err != nil {
		if reason != "" {
			reason += ": "
		}

		reason += e.Err.Error()
	}

	parts = append(parts, reason)

	return strings.Join(parts, ": ")
}

func (e *ConfigError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrConfiguration, e.Err}
	}

	return []error{ErrConfiguration}
}

func unknownSlot(t *Type, name string) error {
	return fmt.Errorf("%w: '%s' has no slot '%s'", ErrUnknownSlot, t.name, name)
}

func keyNotFound(key string) error {
	return fmt.Errorf("%w: '%s'", ErrKeyNotFound, key)
}

func indexOutOfRange(i, n int) error {
	return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, n)
}

// typeName describes a value in type mismatch messages.
func typeName(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case *Record:
		if t == nil {
			return "nil"
		}

		return t.typ.name
	case *DictProxy:
		return "Dict[" + t.elem.name + "]"
	case *ListProxy:
		return "List[" + t.elem.name + "]"
	case plain.Map, map[string]any, map[any]any, *plain.List, []any:
		return plain.KindOf(v).String()
	default:
		return fmt.Sprintf("%T", v)
	}
}
