// Package match ranks known names by similarity to an unknown one.
//
// It is used to attach "did you mean" hints to unknown parameter and key
// errors. Names are folded before comparison: case is ignored and the
// separators '_', '-' and ' ' are dropped, so "first_name", "firstName"
// and "FirstName" all compare equal.
package match
