package plain

type KindEnum int

const (
	_ KindEnum = iota // zero value is never returned by KindOf

	KindNull
	KindScalar
	KindMap
	KindList

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// String returns the name used for the kind in diagnostics.
func (k KindEnum) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindMap:
		return "mapping"
	case KindList:
		return "sequence"
	default:
		return "unknown"
	}
}

// IsContainer reports whether values of this kind hold other values.
func (k KindEnum) IsContainer() bool {
	return k == KindMap || k == KindList
}

// KindOf classifies a value. Native decoder output (map[string]any,
// map[any]any, []any) is classified like its adopted form.
func KindOf(v any) KindEnum {
	switch v.(type) {
	case nil:
		return KindNull
	case Map, map[string]any, map[any]any:
		return KindMap
	case *List, []any:
		return KindList
	default:
		return KindScalar
	}
}
