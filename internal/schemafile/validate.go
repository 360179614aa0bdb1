package schemafile

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"steward/internal/common"
	"steward/internal/diagnostic"
	"steward/internal/match"
)

// Validate checks a schema file for structural mistakes. It never stops
// at the first problem; every finding is recorded with the path of the
// type or slot it concerns.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("file_is_nil", "", "schema file is nil")
		return res
	}

	if len(f.Types) == 0 {
		res.AddWarning("no_types", "", "schema declares no types")
	}

	names := f.TypeNames()

	for _, dup := range common.Duplicates(names) {
		if dup != "" {
			res.AddError("duplicate_type", typePath(dup), fmt.Sprintf("type %q is declared more than once", dup))
		}
	}

	for i := range f.Types {
		validateType(res, f, &f.Types[i], names)
	}

	if _, stuck, err := buildOrder(f); err != nil {
		for _, i := range stuck {
			name := f.Types[i].Name
			res.AddError("inheritance_cycle", typePath(name), fmt.Sprintf("type %q is part of an %v", name, err))
		}
	}

	return res
}

func validateType(res *diagnostic.Diagnostics, f *File, t *TypeDef, names []string) {
	if t.Name == "" {
		res.AddError("empty_type_name", "types", "type has no name")
		return
	}

	path := typePath(t.Name)

	for _, parent := range t.Extends {
		switch {
		case parent == t.Name:
			res.AddError("self_extend", path, fmt.Sprintf("type %q extends itself", t.Name))
		case !slices.Contains(names, parent):
			res.AddError("unknown_parent", path, fmt.Sprintf("parent type %q is not declared", parent),
				match.Suggest(parent, names, 3)...)
		}
	}

	slotNames := make([]string, len(t.Slots))
	for i, s := range t.Slots {
		slotNames[i] = s.Name
	}

	for _, dup := range common.Duplicates(slotNames) {
		if dup != "" {
			res.AddError("duplicate_slot", slotPath(t.Name, dup), fmt.Sprintf("slot %q is declared more than once", dup))
		}
	}

	for i := range t.Slots {
		validateSlot(res, f, t, &t.Slots[i], names)
	}
}

func validateSlot(res *diagnostic.Diagnostics, f *File, t *TypeDef, s *SlotDef, names []string) {
	if s.Name == "" {
		res.AddError("empty_slot_name", typePath(t.Name)+".slots", "slot has no name")
		return
	}

	path := slotPath(t.Name, s.Name)

	if !slices.Contains(Kinds, s.Kind) {
		kinds := make([]string, len(Kinds))
		for i, k := range Kinds {
			kinds[i] = string(k)
		}

		res.AddError("unknown_kind", path, fmt.Sprintf("unknown slot kind %q", s.Kind),
			match.Suggest(string(s.Kind), kinds, 1)...)

		return
	}

	validateElem(res, f, s, path, names)
	validateDefaults(res, s, path)
}

func validateElem(res *diagnostic.Diagnostics, f *File, s *SlotDef, path string, names []string) {
	if !s.Kind.HasElem() {
		if s.Type != "" {
			res.AddWarning("type_ignored", path, fmt.Sprintf("field slots are untyped, type %q is ignored", s.Type))
		}

		return
	}

	if s.Type == "" {
		res.AddError("missing_type", path, fmt.Sprintf("%s slot needs a record type", s.Kind))
		return
	}

	if _, ok := f.Type(s.Type); !ok {
		res.AddError("unknown_type", path, fmt.Sprintf("type %q is not declared", s.Type),
			match.Suggest(s.Type, names, 3)...)
	}
}

func validateDefaults(res *diagnostic.Diagnostics, s *SlotDef, path string) {
	if s.HasDefault() && s.Factory != "" {
		res.AddError("default_and_factory", path, "default and factory are mutually exclusive")
	}

	if s.Factory != "" {
		if s.Kind != KindField {
			res.AddError("factory_on_record_slot", path, fmt.Sprintf("factories apply to field slots, not %s slots", s.Kind))
		} else if _, ok := Factories[s.Factory]; !ok {
			res.AddError("unknown_factory", path, fmt.Sprintf("unknown factory %q", s.Factory),
				match.Suggest(s.Factory, FactoryNames(), 2)...)
		}
	}

	switch s.Policy {
	case "", PolicyShare, PolicyCopy:
	default:
		res.AddError("unknown_policy", path, fmt.Sprintf("unknown default policy %q", s.Policy),
			match.Suggest(string(s.Policy), []string{string(PolicyShare), string(PolicyCopy)}, 1)...)
	}

	if s.Policy != "" && s.Kind != KindNested {
		res.AddWarning("policy_ignored", path, "default policy only applies to nested slots")
	}

	if !s.HasDefault() {
		return
	}

	switch s.Kind {
	case KindDict, KindList:
		res.AddError("default_on_collection", path, fmt.Sprintf("%s slots always default to an empty collection", s.Kind))
	case KindNested:
		if !isNull(&s.Default) && s.Default.Kind != yaml.MappingNode {
			res.AddError("invalid_nested_default", path, "nested default must be null or a mapping")
		}
	}
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func typePath(name string) string {
	return fmt.Sprintf("types[%s]", name)
}

func slotPath(typeName, slot string) string {
	return fmt.Sprintf("types[%s].slots[%s]", typeName, slot)
}
