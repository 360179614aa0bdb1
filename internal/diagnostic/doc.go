// Package diagnostic collects structured findings about schema files and
// plain trees.
//
// Each finding carries a stable code, a human-readable message, the path
// of the offending node (for example "friends[1].home.zip") and optional
// suggestions. Findings are grouped by severity; only errors make a
// report invalid.
package diagnostic
