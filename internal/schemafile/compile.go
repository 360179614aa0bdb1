package schemafile

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"steward/internal/match"
	"steward/plain"
	"steward/record"
)

var (
	// ErrInvalidSchema is returned by Compile when validation finds errors.
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrUnknownType is returned by Registry.Get for undeclared names.
	ErrUnknownType = errors.New("unknown type")
)

// Registry holds the record types compiled from one schema file.
type Registry struct {
	types map[string]*record.Type
	names []string
}

// Get returns the type with the given name.
func (r *Registry) Get(name string) (*record.Type, error) {
	if t, ok := r.types[name]; ok {
		return t, nil
	}

	err := fmt.Errorf("%w: %q", ErrUnknownType, name)
	if s := match.Suggest(name, r.names, 3); len(s) > 0 {
		err = fmt.Errorf("%w (did you mean %q?)", err, s[0])
	}

	return nil, err
}

// Names returns the type names in declaration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Load reads, validates and compiles the schema file at path.
func Load(path string, logger zerolog.Logger) (*Registry, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	return Compile(f, logger)
}

// Compile validates f and builds its types. Every type is declared before
// any is built, so slots may reference types declared later in the file
// or the declaring type itself. Parents are built before their children.
func Compile(f *File, logger zerolog.Logger) (*Registry, error) {
	diags := Validate(f)

	for _, w := range diags.Warnings {
		logger.Warn().Str("code", w.Code).Str("path", w.Path).Msg(w.Message)
	}

	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, diags.Err())
	}

	reg := &Registry{types: make(map[string]*record.Type, len(f.Types))}

	for _, td := range f.Types {
		reg.types[td.Name] = record.Declare(td.Name)
		reg.names = append(reg.names, td.Name)
	}

	order, _, err := buildOrder(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	for _, i := range order {
		td := &f.Types[i]

		if err := reg.build(td); err != nil {
			return nil, fmt.Errorf("type %q: %w", td.Name, err)
		}

		logger.Debug().
			Str("type", td.Name).
			Strs("extends", td.Extends).
			Int("slots", len(td.Slots)).
			Msg("type built")
	}

	logger.Info().Int("types", len(reg.names)).Str("version", f.Version).Msg("schema compiled")

	return reg, nil
}

func (r *Registry) build(td *TypeDef) error {
	s := record.Define(r.types[td.Name])

	for _, parent := range td.Extends {
		s.Extends(r.types[parent])
	}

	for i := range td.Slots {
		slot, err := r.slot(&td.Slots[i])
		if err != nil {
			return err
		}

		s.Slot(td.Slots[i].Name, slot)
	}

	_, err := s.Build()

	return err
}

func (r *Registry) slot(sd *SlotDef) (record.Slot, error) {
	var opts []record.Option

	if sd.Const {
		opts = append(opts, record.Const())
	}

	if sd.Factory != "" {
		opts = append(opts, record.WithFactory(Factories[sd.Factory]))
	}

	elem := r.types[sd.Type]

	switch sd.Kind {
	case KindField:
		if sd.HasDefault() {
			v, err := sd.DefaultValue()
			if err != nil {
				return nil, err
			}

			opts = append(opts, record.WithDefault(v))
		}

		return record.NewField(opts...), nil

	case KindNested:
		if sd.Policy == PolicyCopy {
			opts = append(opts, record.WithDefaultPolicy(record.CopyDefault))
		}

		if sd.HasDefault() {
			def, err := nestedDefault(sd, elem)
			if err != nil {
				return nil, err
			}

			opts = append(opts, record.WithDefault(def))
		}

		return record.NewNested(elem, opts...), nil

	case KindDict:
		return record.NewDict(elem), nil

	case KindList:
		return record.NewList(elem), nil

	default:
		return nil, fmt.Errorf("slot %q: unknown kind %q", sd.Name, sd.Kind)
	}
}

// nestedDefault turns a declared nested default into nil or a record
// wrapping the declared mapping. The record is decoded lazily, so the
// element type does not have to be built yet.
func nestedDefault(sd *SlotDef, elem *record.Type) (any, error) {
	v, err := sd.DefaultValue()
	if err != nil {
		return nil, err
	}

	if v == nil {
		return nil, nil
	}

	m, ok := v.(plain.Map)
	if !ok {
		return nil, fmt.Errorf("slot %q: nested default must be null or a mapping, got %s", sd.Name, plain.KindOf(v))
	}

	return elem.FromPlain(m), nil
}
