package codec

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steward/plain"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		expected Format
		wantErr  bool
	}{
		{"yaml", FormatYAML, false},
		{"YML", FormatYAML, false},
		{" json ", FormatJSON, false},
		{"toml", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFormat(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("data/person.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("person.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("person"))
	assert.Equal(t, "YAML", FormatYAML.String())
	assert.Equal(t, "Format(0)", Format(0).String())
}

func TestDecodeYAML(t *testing.T) {
	doc := `
name: ann
tags: [a, b]
home:
  zip: 12345
1: one
`

	tree, err := DecodeYAML([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "ann", tree["name"])
	assert.Equal(t, "one", tree["1"])

	tags, ok := tree["tags"].(*plain.List)
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, tags.Items())

	home, ok := tree["home"].(plain.Map)
	require.True(t, ok)
	assert.Equal(t, 12345, home["zip"])
}

func TestDecodeEmptyAndNonMapping(t *testing.T) {
	tree, err := DecodeYAML(nil)
	require.NoError(t, err)
	assert.Equal(t, plain.Map{}, tree)

	tree, err = DecodeJSON([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, plain.Map{}, tree)

	_, err = DecodeYAML([]byte("- a\n- b\n"))
	assert.ErrorIs(t, err, ErrNotMapping)

	_, err = DecodeJSON([]byte("[1, 2]"))
	assert.ErrorIs(t, err, ErrNotMapping)

	_, err = DecodeYAML([]byte("a: [unclosed"))
	assert.Error(t, err)
}

func TestDecodeJSON(t *testing.T) {
	tree, err := DecodeJSON([]byte(`{"a": 1, "b": 1.5, "c": [2, {"d": null}]}`))
	require.NoError(t, err)

	assert.Equal(t, int64(1), tree["a"])
	assert.InDelta(t, 1.5, tree["b"], 1e-9)

	c, ok := tree["c"].(*plain.List)
	require.True(t, ok)
	require.Equal(t, 2, c.Len())
	assert.Equal(t, int64(2), c.At(0))
	assert.Equal(t, plain.Map{"d": nil}, c.At(1))

	_, err = DecodeJSON([]byte(`{} {}`))
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	tree := plain.Map{"a": 1, "b": "two"}

	data, err := EncodeYAML(tree)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\nb: two\n", string(data))

	data, err = EncodeJSON(tree)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": \"two\"\n}\n", string(data))

	_, err = Encode(tree, Format(0))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRoundTrip(t *testing.T) {
	tree := plain.Map{
		"name": "ann",
		"home": plain.Map{"street": "main"},
		"tags": plain.NewList("a", plain.Map{"x": true}),
	}

	for f := Format(1); int(f) < FormatTotal; f++ {
		t.Run(f.String(), func(t *testing.T) {
			data, err := Encode(tree, f)
			require.NoError(t, err)

			back, err := Decode(data, f)
			require.NoError(t, err)
			assert.True(t, plain.Equal(tree, back), "got %v", back)
		})
	}
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	tree := plain.Map{"name": "ann", "tags": plain.NewList("a")}

	for _, name := range []string{"doc.yaml", "doc.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)

			require.NoError(t, WriteFile(path, tree, 0))

			back, err := ReadFile(path, 0)
			require.NoError(t, err)
			assert.True(t, plain.Equal(tree, back))
		})
	}

	_, err := ReadFile(filepath.Join(dir, "missing.yaml"), 0)
	assert.Error(t, err)
}
