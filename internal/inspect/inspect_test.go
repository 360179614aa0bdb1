package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steward/plain"
	"steward/record"
)

func personType() *record.Type {
	addr := record.NewSchema("Address").
		Slot("street", record.NewField()).
		Slot("zip", record.NewField(record.WithDefault("00000"))).
		MustBuild()

	s := record.NewSchema("Person")
	person := s.Type()

	s.Slot("name", record.NewField()).
		Slot("home", record.NewNested(addr, record.WithDefault(nil))).
		Slot("work", record.NewNested(addr)).
		Slot("offices", record.NewDict(addr)).
		Slot("friends", record.NewList(person)).
		MustBuild()

	return person
}

func TestTreeValid(t *testing.T) {
	tree := plain.Map{
		"name":    "ann",
		"home":    nil,
		"work":    plain.Map{"street": "main"},
		"offices": map[string]any{"hq": map[string]any{"street": "first", "zip": "1"}},
		"friends": []any{
			plain.Map{"name": "bo", "work": plain.Map{"street": "x"}},
		},
	}

	res := Tree(personType(), tree)
	assert.True(t, res.IsValid(), "%v", res.Err())
	assert.Empty(t, res.Warnings)

	// Nothing was adopted or written back.
	assert.IsType(t, []any{}, tree["friends"])
	assert.IsType(t, map[string]any{}, tree["offices"])
	assert.NotContains(t, tree["work"], "zip")
}

func TestTreeFindings(t *testing.T) {
	tree := plain.Map{
		"nmae":    "ann",
		"work":    "downtown",
		"offices": plain.Map{"hq": 3},
		"friends": []any{
			plain.Map{"name": "bo", "work": plain.Map{"stret": "x"}},
			"carl",
		},
	}

	res := Tree(personType(), tree)
	require.False(t, res.IsValid())

	type finding struct{ path, code string }

	var got []finding
	for _, d := range res.All() {
		got = append(got, finding{d.Path, d.Code})
	}

	assert.ElementsMatch(t, []finding{
		{"nmae", CodeUnknownKey},
		{"name", CodeMissingSlot},
		{"work", CodeWrongShape},
		{"offices[hq]", CodeWrongShape},
		{"friends[0].work.stret", CodeUnknownKey},
		{"friends[0].work.street", CodeMissingSlot},
		{"friends[1]", CodeWrongShape},
	}, got)

	for _, d := range res.Errors {
		if d.Path == "nmae" {
			assert.Equal(t, []string{"name"}, d.Suggestions)
		}
	}
}

func TestTreeNullNested(t *testing.T) {
	res := Tree(personType(), plain.Map{"name": "ann", "work": nil})

	assert.True(t, res.IsValid())
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, CodeNullNested, res.Warnings[0].Code)
	assert.Equal(t, "work", res.Warnings[0].Path)
}

func TestTreeUndefinedType(t *testing.T) {
	res := Tree(record.Declare("Ghost"), plain.Map{})
	assert.Equal(t, []string{CodeUndefinedType}, res.Codes())
}

func TestTreeSharedSubtree(t *testing.T) {
	shared := plain.Map{"name": "bo", "work": plain.Map{"street": "x"}}
	tree := plain.Map{
		"name":    "ann",
		"work":    plain.Map{"street": "main"},
		"friends": []any{shared, shared},
	}

	res := Tree(personType(), tree)
	assert.True(t, res.IsValid())
}
