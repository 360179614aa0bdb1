// Package record maps plain data trees onto typed, slot-addressed records.
//
// A record type is declared once with a Schema builder: a set of named
// slots, each a Field (untyped), Nested (a record of another type), Dict
// (string-keyed records) or List (ordered records). Records are made
// either strictly from explicit values with Type.New, or lazily on top of
// an existing tree with Type.FromPlain.
//
// The backing tree is authoritative. Every decoded slot value is cached
// next to it, and the cache entry always references the exact sub-tree
// stored in the backing tree. Mutating a nested record therefore mutates
// the tree reachable from its parent, and Plain returns the tree by
// reference.
//
//	addr := record.NewSchema("Address").
//		Slot("street", record.NewField()).
//		Slot("zip", record.NewField(record.WithDefault("00000"))).
//		MustBuild()
//
//	person := record.NewSchema("Person").
//		Slot("name", record.NewField()).
//		Slot("home", record.NewNested(addr, record.WithDefault(nil))).
//		Slot("offices", record.NewDict(addr)).
//		MustBuild()
//
// Self-referencing types are declared before they are built: Schema.Type
// returns the incomplete type, which slots may reference right away.
//
// Records are not safe for concurrent mutation.
package record
