package diagnostic

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Diagnostics holds every finding of one run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is a single finding.
type Diagnostic struct {
	Severity Severity
	// Code identifies the kind of finding, e.g. "missing_slot".
	Code    string
	Message string
	// Path locates the node the finding is about. Empty means the root.
	Path        string
	Suggestions []string
}

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Add records d under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError records an error finding.
func (d *Diagnostics) AddError(code, path, message string, suggestions ...string) {
	d.Add(Diagnostic{Severity: SeverityError, Code: code, Path: path, Message: message, Suggestions: suggestions})
}

// AddWarning records a warning finding.
func (d *Diagnostics) AddWarning(code, path, message string, suggestions ...string) {
	d.Add(Diagnostic{Severity: SeverityWarning, Code: code, Path: path, Message: message, Suggestions: suggestions})
}

// AddInfo records an informational finding.
func (d *Diagnostics) AddInfo(code, path, message string) {
	d.Add(Diagnostic{Severity: SeverityInfo, Code: code, Path: path, Message: message})
}

// Merge appends every finding of other.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}

	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// HasErrors reports whether any error was recorded.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// IsValid is the negation of HasErrors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Codes returns the codes of all errors, in order of recording.
func (d *Diagnostics) Codes() []string {
	out := make([]string, len(d.Errors))
	for i, e := range d.Errors {
		out[i] = e.Code
	}

	return out
}

// All returns errors, warnings and infos, each group sorted by path.
func (d *Diagnostics) All() []Diagnostic {
	var out []Diagnostic
	for _, group := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		sorted := slices.Clone(group)
		slices.SortStableFunc(sorted, func(a, b Diagnostic) int {
			return strings.Compare(a.Path, b.Path)
		})

		out = append(out, sorted...)
	}

	return out
}

// Err joins all errors into one error, or returns nil.
func (d *Diagnostics) Err() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, len(d.Errors))
	for i, e := range d.Errors {
		parts[i] = e.String()
	}

	return errors.New(strings.Join(parts, "; "))
}

// String formats the finding as "path: [code] message (did you mean ...?)".
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", quoteJoin(d.Suggestions))
	}

	if d.Path != "" {
		return d.Path + ": " + msg
	}

	return msg
}

func quoteJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}

	return strings.Join(quoted, " or ")
}
