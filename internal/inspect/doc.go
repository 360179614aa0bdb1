// Package inspect checks a plain tree against a record type without
// decoding it.
//
// Records built with FromPlain accept any tree and only fail when a slot
// is read. Tree reports every problem up front: keys no slot claims,
// required slots that are absent and sub-trees of the wrong shape.
package inspect
