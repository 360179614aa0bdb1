package record

//go:generate go tool stringer -type=SlotKind -trimprefix=Kind -output=slotkind_string.go

// SlotKind tells which kind of value a slot holds.
type SlotKind int

const (
	_ SlotKind = iota // skip zero value, it is never a valid slot kind

	KindField
	KindNested
	KindDict
	KindList

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// IsCollection reports whether slots of this kind hold a container proxy.
func (k SlotKind) IsCollection() bool {
	return k == KindDict || k == KindList
}
