package nbt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseYAML_PlainScalars(t *testing.T) {
	got, err := ParseYAML([]byte(`{a: 5, b: 1.5, c: true, d: hello, e: "5"}`))
	require.NoError(t, err)

	assert.Equal(t, Compound{
		"a": Int(5),
		"b": Double(1.5),
		"c": Byte(1),
		"d": String("hello"),
		"e": String("5"),
	}, got)
}

func TestParseYAML_ExplicitTags(t *testing.T) {
	doc := `
Health: !f 20
Fire: !s -1
OnGround: !b 1
Glowing: !b true
XpSeed: !l 123456789012
Rate: !d 2
Count: !i 3
Name: !str 42
UUID: !ints [1, 2, 3, 4]
Bytes: !bytes [1, -1]
Longs: !longs [9]
`
	got, err := ParseCompoundYAML([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, Float(20), got["Health"])
	assert.Equal(t, Short(-1), got["Fire"])
	assert.Equal(t, Byte(1), got["OnGround"])
	assert.Equal(t, Byte(1), got["Glowing"])
	assert.Equal(t, Long(123456789012), got["XpSeed"])
	assert.Equal(t, Double(2), got["Rate"])
	assert.Equal(t, Int(3), got["Count"])
	assert.Equal(t, String("42"), got["Name"])
	assert.Equal(t, IntArray{1, 2, 3, 4}, got["UUID"])
	assert.Equal(t, ByteArray{1, -1}, got["Bytes"])
	assert.Equal(t, LongArray{9}, got["Longs"])
}

func TestParseYAML_NestedStructures(t *testing.T) {
	doc := `{active_effects: [{id: "minecraft:speed", amplifier: !b 1}], Pos: [!d 1, !d 2, !d 3]}`
	got, err := ParseCompoundYAML([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, List{Compound{"id": String("minecraft:speed"), "amplifier": Byte(1)}}, got["active_effects"])
	assert.Equal(t, Doubles(1, 2, 3), got["Pos"])
}

func TestParseYAML_SpecialFloats(t *testing.T) {
	got, err := ParseCompoundYAML([]byte(`{a: !f .inf, b: !d -.inf, c: .nan}`))
	require.NoError(t, err)

	assert.True(t, math.IsInf(float64(got["a"].(Float)), 1))
	assert.True(t, math.IsInf(float64(got["b"].(Double)), -1))
	assert.True(t, math.IsNaN(float64(got["c"].(Double))))
}

func TestParseYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"mixed list", `[1, a]`},
		{"byte overflow", `!b 300`},
		{"int overflow", `99999999999`},
		{"null", `{a: null}`},
		{"unknown tag", `!q 1`},
		{"empty", ``},
		{"bad int array", `!ints [a]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.doc))
			assert.Error(t, err)
		})
	}

	_, err := ParseCompoundYAML([]byte(`[1, 2]`))
	assert.Error(t, err, "compound required")
}

func TestCompoundUnmarshalYAML(t *testing.T) {
	var fixture struct {
		Data Compound `yaml:"data"`
	}
	err := yaml.Unmarshal([]byte("data:\n  Score: !i 7\n  Tags: [a, b]\n"), &fixture)
	require.NoError(t, err)
	assert.Equal(t, Compound{"Score": Int(7), "Tags": Strings("a", "b")}, fixture.Data)

	err = yaml.Unmarshal([]byte("data: [1]\n"), &fixture)
	assert.Error(t, err)
}

func TestEncodeYAML_RoundTrip(t *testing.T) {
	orig := Compound{
		"Health":   Float(19.5),
		"Fire":     Short(-20),
		"OnGround": Byte(1),
		"XpSeed":   Long(-42),
		"Score":    Int(3),
		"Pos":      Doubles(0.5, 64, -3),
		"UUID":     IntArray{1, -2, 3, 4},
		"Bytes":    ByteArray{7},
		"Longs":    LongArray{8},
		"Name":     String("12"),
		"Effects":  List{Compound{"id": String("minecraft:speed")}},
	}

	data, err := yaml.Marshal(orig)
	require.NoError(t, err)

	decoded, err := ParseCompoundYAML(data)
	require.NoError(t, err)
	assert.True(t, Equal(orig, decoded), "round trip mismatch:\n%s", data)
}
