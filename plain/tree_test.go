package plain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want KindEnum
	}{
		{"nil", nil, KindNull},
		{"string", "x", KindScalar},
		{"int", 3, KindScalar},
		{"bool", true, KindScalar},
		{"plain map", Map{}, KindMap},
		{"native map", map[string]any{}, KindMap},
		{"any-keyed map", map[any]any{}, KindMap},
		{"plain list", NewList(), KindList},
		{"native list", []any{}, KindList},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.in))
		})
	}

	assert.Equal(t, "mapping", KindMap.String())
	assert.Equal(t, "sequence", KindList.String())
	assert.True(t, KindList.IsContainer())
	assert.False(t, KindScalar.IsContainer())
}

func TestAdoptKeepsIdentity(t *testing.T) {
	inner := Map{"a": "zzz"}
	list := NewList(inner)
	tree := Map{"inner": inner, "list": list}

	got := Adopt(tree)

	m, ok := got.(Map)
	require.True(t, ok)
	m["x"] = 1
	assert.Equal(t, 1, tree["x"], "adopting a Map must not copy it")
	assert.Same(t, list, m["list"])
}

func TestAdoptNative(t *testing.T) {
	native := map[string]any{
		"items": []any{
			map[string]any{"a": "a"},
			map[any]any{1: "one"},
		},
	}

	got, ok := AdoptMap(native)
	require.True(t, ok)

	items, ok := got["items"].(*List)
	require.True(t, ok)
	require.Equal(t, 2, items.Len())

	first, ok := items.At(0).(Map)
	require.True(t, ok)
	assert.Equal(t, "a", first["a"])

	second, ok := items.At(1).(Map)
	require.True(t, ok)
	assert.Equal(t, "one", second["1"])

	// the native map is converted in place
	_, ok = native["items"].(*List)
	assert.True(t, ok)
}

func TestListOperations(t *testing.T) {
	l := NewList("a", "c")
	alias := l

	l.Insert(1, "b")
	l.Append("d")
	assert.Equal(t, []any{"a", "b", "c", "d"}, alias.Items())

	l.Delete(0)
	l.Set(0, "B")
	assert.Equal(t, []any{"B", "c", "d"}, alias.Items())

	l.Replace(1, 3, "x", "y", "z")
	assert.Equal(t, []any{"B", "x", "y", "z"}, alias.Items())
	assert.Equal(t, 4, alias.Len())

	var empty *List
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, empty.Items())
}

func TestCloneIsDeep(t *testing.T) {
	tree := Map{"a": Map{"b": NewList(Map{"c": 1})}}

	cp, ok := Clone(tree).(Map)
	require.True(t, ok)
	assert.True(t, Equal(tree, cp))

	cp["a"].(Map)["b"].(*List).At(0).(Map)["c"] = 2
	assert.Equal(t, 1, tree["a"].(Map)["b"].(*List).At(0).(Map)["c"])
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Map{"a": NewList(1, 2)}, map[string]any{"a": []any{1, 2}}))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(Map{"a": 1}, Map{"a": 2}))
	assert.False(t, Equal(Map{"a": 1}, Map{"b": 1}))
	assert.False(t, Equal(NewList(1), NewList(1, 2)))
	assert.False(t, Equal(Map{}, NewList()))
}

func TestExport(t *testing.T) {
	tree := Map{"a": NewList(Map{"b": "c"})}

	native, ok := Export(tree).(map[string]any)
	require.True(t, ok)

	items, ok := native["a"].([]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"b": "c"}, items[0])
}

func TestListMarshal(t *testing.T) {
	tree := Map{"a": NewList(Map{"b": "c"}), "e": NewList()}

	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":[{"b":"c"}],"e":[]}`, string(data))

	out, err := yaml.Marshal(tree)
	require.NoError(t, err)
	assert.Equal(t, "a:\n    - b: c\ne: []\n", string(out))
}
