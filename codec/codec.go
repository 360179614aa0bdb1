package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"steward/plain"
)

var (
	// ErrUnknownFormat is returned for format names other than yaml and json.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrNotMapping is returned when a document's top level is not a mapping.
	ErrNotMapping = errors.New("document is not a mapping")
)

// Decode parses a document into a plain tree. An empty document decodes
// to an empty mapping.
func Decode(data []byte, format Format) (plain.Map, error) {
	switch format {
	case FormatYAML:
		return DecodeYAML(data)
	case FormatJSON:
		return DecodeJSON(data)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
}

// Encode serializes a plain tree.
func Encode(tree any, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return EncodeYAML(tree)
	case FormatJSON:
		return EncodeJSON(tree)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
}

// DecodeYAML parses a YAML document. Non-string mapping keys are
// stringified.
func DecodeYAML(data []byte) (plain.Map, error) {
	var doc any

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return toMap(doc)
}

// EncodeYAML serializes a tree as YAML with two-space indentation.
func EncodeYAML(tree any) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(plain.Export(tree)); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodeJSON parses a JSON document. Integral numbers decode to int64,
// the rest to float64.
func DecodeJSON(data []byte) (plain.Map, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return plain.Map{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("failed to parse JSON: trailing data after document")
	}

	return toMap(numbers(doc))
}

// EncodeJSON serializes a tree as indented JSON followed by a newline.
func EncodeJSON(tree any) ([]byte, error) {
	data, err := json.MarshalIndent(plain.Export(tree), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}

	return append(data, '\n'), nil
}

// ReadFile decodes the document at path. A zero format is guessed from
// the file extension.
func ReadFile(path string, format Format) (plain.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if format == 0 {
		format = FormatFromPath(path)
	}

	tree, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return tree, nil
}

// WriteFile encodes tree to path. A zero format is guessed from the file
// extension.
func WriteFile(path string, tree any, format Format) error {
	if format == 0 {
		format = FormatFromPath(path)
	}

	data, err := Encode(tree, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

func toMap(doc any) (plain.Map, error) {
	if doc == nil {
		return plain.Map{}, nil
	}

	m, ok := plain.AdoptMap(doc)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotMapping, plain.KindOf(doc))
	}

	return m, nil
}

// numbers replaces json.Number values in place.
func numbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}

		f, _ := t.Float64()

		return f
	case map[string]any:
		for k, item := range t {
			t[k] = numbers(item)
		}

		return t
	case []any:
		for i, item := range t {
			t[i] = numbers(item)
		}

		return t
	default:
		return v
	}
}
