package schemafile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"steward/internal/common"
	"steward/plain"
)

// File is the root of a schema file.
type File struct {
	Version string    `yaml:"version,omitempty"`
	Types   []TypeDef `yaml:"types"`
}

// TypeDef declares one record type.
type TypeDef struct {
	Name    string        `yaml:"name"`
	Extends StringOrArray `yaml:"extends,omitempty"`
	Slots   []SlotDef     `yaml:"slots,omitempty"`
}

// SlotDef declares one slot of a type.
type SlotDef struct {
	Name string `yaml:"name"`
	Kind Kind   `yaml:"kind,omitempty"`
	// Type is the element record type of nested, dict and list slots.
	Type string `yaml:"type,omitempty"`
	// Default keeps the raw node so that "default: null" can be told
	// apart from a missing default.
	Default yaml.Node `yaml:"default,omitempty"`
	Factory string    `yaml:"factory,omitempty"`
	Const   bool      `yaml:"const,omitempty"`
	Policy  Policy    `yaml:"policy,omitempty"`
}

// Kind is the slot kind as spelled in a schema file.
type Kind string

const (
	KindField  Kind = "field"
	KindNested Kind = "nested"
	KindDict   Kind = "dict"
	KindList   Kind = "list"
)

// Kinds lists the valid kinds.
var Kinds = []Kind{KindField, KindNested, KindDict, KindList}

// HasElem reports whether slots of this kind need a record type.
func (k Kind) HasElem() bool {
	return k == KindNested || k == KindDict || k == KindList
}

// Policy is the nested default policy as spelled in a schema file.
type Policy string

const (
	PolicyShare Policy = "share"
	PolicyCopy  Policy = "copy"
)

// HasDefault reports whether the slot declares a default, null included.
func (s *SlotDef) HasDefault() bool {
	return s.Default.Kind != 0
}

// DefaultValue decodes the declared default into a plain value.
func (s *SlotDef) DefaultValue() (any, error) {
	if !s.HasDefault() {
		return nil, nil
	}

	var v any
	if err := s.Default.Decode(&v); err != nil {
		return nil, fmt.Errorf("slot %q: invalid default: %w", s.Name, err)
	}

	return plain.Adopt(v), nil
}

// SetDefault replaces the declared default with v.
func (s *SlotDef) SetDefault(v any) error {
	var node yaml.Node
	if err := node.Encode(plain.Export(v)); err != nil {
		return fmt.Errorf("slot %q: invalid default: %w", s.Name, err)
	}

	s.Default = node

	return nil
}

// Type returns the type declaration with the given name.
func (f *File) Type(name string) (*TypeDef, bool) {
	for i := range f.Types {
		if f.Types[i].Name == name {
			return &f.Types[i], true
		}
	}

	return nil, false
}

// TypeNames returns the declared type names in file order.
func (f *File) TypeNames() []string {
	names := make([]string, 0, len(f.Types))
	for _, t := range f.Types {
		names = append(names, t.Name)
	}

	return names
}

// StringOrArray is a list of names written either as a single string or
// as a sequence.
type StringOrArray []string

// UnmarshalYAML accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		if err := node.Decode(&str); err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// First returns the first element or empty string if empty.
func (s StringOrArray) First() string {
	v, _ := common.First(s)
	return v
}
