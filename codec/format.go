package codec

import (
	"fmt"
	"path/filepath"
	"strings"
)

//go:generate go tool stringer -type=Format -trimprefix=Format -output=format_string.go

// Format is a document encoding.
type Format int

const (
	_ Format = iota // skip zero value, it means "not chosen yet"

	FormatYAML
	FormatJSON

	// FormatTotal is a constant that represents the total number of formats defined
	FormatTotal = int(iota)
)

// ParseFormat maps a format name to a Format. Names are case-insensitive;
// "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath guesses the format from a file extension. Unknown
// extensions fall back to YAML, which also reads JSON documents.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}

	return FormatYAML
}
