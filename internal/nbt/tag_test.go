package nbt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagSealed(t *testing.T) {
	// Compile-time check that every variant implements Tag
	var _ Tag = Byte(1)
	var _ Tag = Short(1)
	var _ Tag = Int(1)
	var _ Tag = Long(1)
	var _ Tag = Float(1)
	var _ Tag = Double(1)
	var _ Tag = String("x")
	var _ Tag = ByteArray{1}
	var _ Tag = IntArray{1}
	var _ Tag = LongArray{1}
	var _ Tag = List{Int(1)}
	var _ Tag = Compound{"k": Int(1)}
}

func TestTypeIDs(t *testing.T) {
	tests := []struct {
		tag  Tag
		want Type
		name string
	}{
		{Byte(1), TypeByte, "byte"},
		{Short(1), TypeShort, "short"},
		{Int(1), TypeInt, "int"},
		{Long(1), TypeLong, "long"},
		{Float(1), TypeFloat, "float"},
		{Double(1), TypeDouble, "double"},
		{ByteArray{}, TypeByteArray, "byte_array"},
		{String(""), TypeString, "string"},
		{List{}, TypeList, "list"},
		{Compound{}, TypeCompound, "compound"},
		{IntArray{}, TypeIntArray, "int_array"},
		{LongArray{}, TypeLongArray, "long_array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tag.Type())
			assert.Equal(t, tt.name, tt.tag.Type().String())

			parsed, err := ParseType(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, parsed)
		})
	}

	_, err := ParseType("quaternion")
	assert.Error(t, err)
}

func TestBool(t *testing.T) {
	assert.Equal(t, Byte(1), Bool(true))
	assert.Equal(t, Byte(0), Bool(false))
}

func TestNewListHomogeneous(t *testing.T) {
	list := NewList(Int(1), Int(2), Int(3))
	assert.Len(t, list, 3)
	assert.Equal(t, TypeInt, list.ElemType())

	assert.Equal(t, Type(0), NewList().ElemType())
}

func TestNewListPanicsOnMixedTypes(t *testing.T) {
	assert.Panics(t, func() {
		NewList(Int(1), Long(2))
	})
	assert.Panics(t, func() {
		NewList(Int(1), nil)
	})
}

func TestNewCompoundSkipsNilValues(t *testing.T) {
	var omitted Tag
	c := NewCompound(
		P("Health", Float(20)),
		P("CustomName", omitted),
	)

	assert.Len(t, c, 1)
	assert.Contains(t, c, "Health")
	assert.NotContains(t, c, "CustomName")
}

func TestCompoundSortedKeys(t *testing.T) {
	c := Compound{
		"zebra":  Int(1),
		"Apple":  Int(2),
		"banana": Int(3),
	}
	assert.Equal(t, []string{"Apple", "banana", "zebra"}, c.SortedKeys())
	assert.Empty(t, Compound{}.SortedKeys())
}

func TestCompoundCloneIsDeep(t *testing.T) {
	orig := Compound{
		"Tags":  Strings("a", "b"),
		"UUID":  IntArray{1, 2, 3, 4},
		"inner": Compound{"x": Double(1)},
	}

	clone := orig.Clone()
	require.True(t, Equal(orig, clone))

	clone["inner"].(Compound)["x"] = Double(2)
	clone["UUID"].(IntArray)[0] = 99
	clone["Tags"].(List)[0] = String("z")

	assert.Equal(t, Double(1), orig["inner"].(Compound)["x"])
	assert.Equal(t, int32(1), orig["UUID"].(IntArray)[0])
	assert.Equal(t, String("a"), orig["Tags"].(List)[0])

	var nilCompound Compound
	assert.Nil(t, nilCompound.Clone())
}

func TestListConstructors(t *testing.T) {
	assert.Equal(t, List{Double(1), Double(2)}, Doubles(1, 2))
	assert.Equal(t, List{Float(1.5)}, Floats(1.5))
	assert.Equal(t, List{String("a")}, Strings("a"))
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		tag  Tag
		want string
	}{
		{"byte", Byte(1), "1b"},
		{"short", Short(-3), "-3s"},
		{"int", Int(42), "42"},
		{"long", Long(7), "7L"},
		{"float whole", Float(20), "20.0f"},
		{"float fraction", Float(0.5), "0.5f"},
		{"double", Double(1.25), "1.25d"},
		{"string", String(`say "hi"`), `"say \"hi\""`},
		{"byte array", ByteArray{1, -1}, "[B;1b,-1b]"},
		{"int array", IntArray{1, 2}, "[I;1,2]"},
		{"long array", LongArray{3}, "[L;3L]"},
		{"list", Strings("a", "b"), `["a","b"]`},
		{"empty compound", Compound{}, "{}"},
		{
			"compound sorted and quoted",
			Compound{"b": Int(1), "a key": Byte(0), "neoforge:attachments": Compound{}},
			`{"a key":0b,b:1,"neoforge:attachments":{}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tag.String())
		})
	}
}
