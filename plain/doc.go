// Package plain defines the untyped data tree that records are mapped onto.
//
// A plain tree is built from three shapes:
//   - scalars: strings, numbers, booleans and nil, opaque to this package
//   - mappings: Map, a map keyed by string
//   - sequences: *List, a pointer-owned slice
//
// Both container shapes have reference semantics. Holding the same Map or
// *List from two places means both observe every mutation, including
// inserts and appends on a list. Trees produced by generic decoders
// (map[string]any, []any) are converted with Adopt before use.
package plain
