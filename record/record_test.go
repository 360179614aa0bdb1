package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steward/plain"
)

func newA(t *testing.T) *Type {
	t.Helper()

	return NewSchema("A").
		Slot("a", NewField()).
		Slot("b", NewField()).
		Slot("c", NewField(WithDefault("zzz"))).
		MustBuild()
}

func newLeaf() *Type {
	return NewSchema("Leaf").Slot("a", NewField()).MustBuild()
}

func TestNewExtraParams(t *testing.T) {
	a := newA(t)

	r, err := a.New(Values{"a": 1, "z": 2, "x": 3})
	require.Error(t, err)
	assert.Nil(t, r)
	assert.Equal(t, "Extra params: 'x, z'", err.Error())
	assert.ErrorIs(t, err, ErrExtraParameters)

	var pe *ParamsError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "A", pe.Type)
	assert.Equal(t, []string{"x", "z"}, pe.Names)
}

func TestNewExtraParamsSuggestions(t *testing.T) {
	person := NewSchema("Person").
		Slot("name", NewField()).
		Slot("email", NewField()).
		MustBuild()

	_, err := person.New(Values{"nam": "x", "email": "e"})
	require.Error(t, err)

	var pe *ParamsError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, []string{"name"}, pe.Suggestions["nam"])
}

func TestNewMissingParams(t *testing.T) {
	a := newA(t)

	_, err := a.New(Values{"a": 1})
	require.Error(t, err)
	assert.Equal(t, "Missing params: 'b'", err.Error())
	assert.ErrorIs(t, err, ErrMissingParameters)

	_, err = a.New(nil)
	require.Error(t, err)
	assert.Equal(t, "Missing params: 'a, b'", err.Error())
}

func TestNewPersistsDefaults(t *testing.T) {
	a := newA(t)

	r := a.MustNew(Values{"a": 1, "b": 2})
	assert.Equal(t, plain.Map{"a": 1, "b": 2, "c": "zzz"}, r.Plain())

	v, err := r.Get("c")
	require.NoError(t, err)
	assert.Equal(t, "zzz", v)
	assert.True(t, r.Decoded("c"))
}

func TestNewAdoptsNativeContainers(t *testing.T) {
	f := NewSchema("F").Slot("data", NewField()).MustBuild()

	r := f.MustNew(Values{"data": map[string]any{"tags": []any{"x", "y"}}})

	data, err := r.Get("data")
	require.NoError(t, err)

	m, ok := data.(plain.Map)
	require.True(t, ok)
	assert.IsType(t, &plain.List{}, m["tags"])

	// Cache and tree hold the same node.
	m["extra"] = true
	assert.Equal(t, true, r.Plain()["data"].(plain.Map)["extra"])
}

func TestFieldRejectsRecords(t *testing.T) {
	leaf := newLeaf()
	f := NewSchema("F").Slot("data", NewField()).MustBuild()

	_, err := f.New(Values{"data": leaf.MustNew(Values{"a": 1})})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestFactoryIsCalledPerResolution(t *testing.T) {
	n := 0
	counter := NewSchema("Counter").
		Slot("id", NewField(WithFactory(func() any {
			n++
			return n
		}))).
		MustBuild()

	r1 := counter.MustNew(nil)
	r2 := counter.MustNew(nil)
	r3 := counter.MustNew(Values{"id": 100})

	v1, _ := r1.Get("id")
	v2, _ := r2.Get("id")
	v3, _ := r3.Get("id")
	assert.Equal(t, 1, v1)
	assert.Equal(t, 2, v2)
	assert.Equal(t, 100, v3)

	// Memoized after the first resolution.
	v1, _ = r1.Get("id")
	assert.Equal(t, 1, v1)
	assert.Equal(t, 2, n)
}

func TestFromPlainIsLazy(t *testing.T) {
	a := newA(t)

	tree := plain.Map{"a": 1}
	r := a.FromPlain(tree)

	assert.False(t, r.Decoded("a"))

	v, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.True(t, r.Decoded("a"))

	_, err = r.Get("b")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Equal(t, "'b' is not initialized", err.Error())

	var ae *AttributeError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "A", ae.Type)

	// Default resolved on access lands in the caller's tree.
	_, err = r.Get("c")
	require.NoError(t, err)
	assert.Equal(t, "zzz", tree["c"])
}

func TestFromPlainNil(t *testing.T) {
	a := newA(t)

	r := a.FromPlain(nil)
	require.NotNil(t, r.Plain())
	assert.Empty(t, r.Plain())
}

func TestGetSetUnknownSlot(t *testing.T) {
	r := newA(t).MustNew(Values{"a": 1, "b": 2})

	_, err := r.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownSlot)

	err = r.Set("nope", 1)
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestSetWritesBothViews(t *testing.T) {
	r := newA(t).MustNew(Values{"a": 1, "b": 2})

	require.NoError(t, r.Set("a", "new"))

	v, _ := r.Get("a")
	assert.Equal(t, "new", v)
	assert.Equal(t, "new", r.Plain()["a"])
}

func TestConst(t *testing.T) {
	k := NewSchema("K").
		Slot("id", NewField(Const())).
		Slot("v", NewField(WithDefault(0))).
		MustBuild()

	r := k.MustNew(Values{"id": 1})

	err := r.Set("id", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrImmutable)

	v, _ := r.Get("id")
	assert.Equal(t, 1, v)

	// A const slot absent from the tree may be set once.
	lazy := k.FromPlain(plain.Map{})
	require.NoError(t, lazy.Set("id", 7))
	assert.ErrorIs(t, lazy.Set("id", 8), ErrImmutable)

	// Present in the tree counts as initialized even before decoding.
	loaded := k.FromPlain(plain.Map{"id": 3})
	assert.ErrorIs(t, loaded.Set("id", 4), ErrImmutable)
}

func TestRecordString(t *testing.T) {
	r := newA(t).MustNew(Values{"a": 1, "b": 2})

	assert.Equal(t, "<A map[a:1 b:2 c:zzz]>", r.String())
}

func TestClone(t *testing.T) {
	a := newA(t)
	r := a.MustNew(Values{"a": 1, "b": 2})

	c, err := r.Clone(Values{"b": 3})
	require.NoError(t, err)

	vb, _ := c.Get("b")
	assert.Equal(t, 3, vb)

	vb, _ = r.Get("b")
	assert.Equal(t, 2, vb)

	require.NoError(t, c.Set("a", 9))

	va, _ := r.Get("a")
	assert.Equal(t, 1, va)
	assert.Equal(t, plain.Map{"a": 9, "b": 3, "c": "zzz"}, c.Plain())
}

func TestCloneErrors(t *testing.T) {
	a := newA(t)
	r := a.MustNew(Values{"a": 1, "b": 2})

	_, err := r.Clone(Values{"bb": 1})
	assert.ErrorIs(t, err, ErrExtraParameters)

	lst := NewSchema("L").Slot("items", NewList(a)).MustBuild()
	_, err = lst.MustNew(nil).Clone(Values{"items": nil})
	assert.ErrorIs(t, err, ErrImmutable)
}

func TestCloneOverridesConst(t *testing.T) {
	k := NewSchema("K").Slot("id", NewField(Const())).MustBuild()

	c, err := k.MustNew(Values{"id": 1}).Clone(Values{"id": 2})
	require.NoError(t, err)

	v, _ := c.Get("id")
	assert.Equal(t, 2, v)
}

func TestCloneLeavesUnresolvedAbsent(t *testing.T) {
	a := newA(t)

	c, err := a.FromPlain(plain.Map{"a": 1}).Clone(nil)
	require.NoError(t, err)

	_, err = c.Get("b")
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, present := c.Plain()["b"]
	assert.False(t, present)
}

func TestTypedAccessorKindMismatch(t *testing.T) {
	r := newA(t).MustNew(Values{"a": 1, "b": 2})

	_, err := r.Nested("a")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = r.Dict("a")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = r.List("a")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestMaterialize(t *testing.T) {
	addr := NewSchema("Address").
		Slot("street", NewField()).
		Slot("zip", NewField(WithDefault("00000"))).
		MustBuild()

	person := NewSchema("Person").
		Slot("name", NewField()).
		Slot("home", NewNested(addr, WithDefault(nil))).
		Slot("offices", NewDict(addr)).
		Slot("history", NewList(addr)).
		MustBuild()

	tree := plain.Map{
		"name":    "ann",
		"home":    plain.Map{"street": "main"},
		"offices": plain.Map{"hq": plain.Map{"street": "first"}},
		"history": []any{plain.Map{"street": "old", "zip": "123"}},
	}

	p := person.FromPlain(tree)
	require.NoError(t, p.Materialize())

	assert.Equal(t, "00000", tree["home"].(plain.Map)["zip"])
	assert.Equal(t, "00000", tree["offices"].(plain.Map)["hq"].(plain.Map)["zip"])
	assert.Equal(t, "123", tree["history"].(*plain.List).At(0).(plain.Map)["zip"])
}

func TestMaterializeReportsAllMissing(t *testing.T) {
	addr := NewSchema("Address").Slot("street", NewField()).MustBuild()
	person := NewSchema("Person").
		Slot("name", NewField()).
		Slot("home", NewNested(addr)).
		Slot("history", NewList(addr)).
		MustBuild()

	p := person.FromPlain(plain.Map{
		"home":    plain.Map{},
		"history": []any{plain.Map{"street": "a"}, plain.Map{}},
	})

	err := p.Materialize()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingParameters)
	assert.Equal(t, "Missing params: 'history[1].street, home.street, name'", err.Error())
}

func TestMaterializeWrongShape(t *testing.T) {
	addr := NewSchema("Address").Slot("street", NewField()).MustBuild()
	person := NewSchema("Person").Slot("home", NewNested(addr)).MustBuild()

	err := person.FromPlain(plain.Map{"home": "nowhere"}).Materialize()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.Contains(t, err.Error(), "home: ")
}

func TestUndefinedTypeIsConfigError(t *testing.T) {
	z := Declare("Z")

	_, err := z.New(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = z.FromPlain(nil).Get("x")
	assert.ErrorIs(t, err, ErrConfiguration)

	assert.True(t, errors.Is(z.FromPlain(nil).Materialize(), ErrConfiguration))
}
