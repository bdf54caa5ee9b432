package nbt

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Type identifies a tag variant. Values follow the NBT tag id numbering.
type Type byte

const (
	TypeByte      Type = 1
	TypeShort     Type = 2
	TypeInt       Type = 3
	TypeLong      Type = 4
	TypeFloat     Type = 5
	TypeDouble    Type = 6
	TypeByteArray Type = 7
	TypeString    Type = 8
	TypeList      Type = 9
	TypeCompound  Type = 10
	TypeIntArray  Type = 11
	TypeLongArray Type = 12
)

var typeNames = map[Type]string{
	TypeByte:      "byte",
	TypeShort:     "short",
	TypeInt:       "int",
	TypeLong:      "long",
	TypeFloat:     "float",
	TypeDouble:    "double",
	TypeByteArray: "byte_array",
	TypeString:    "string",
	TypeList:      "list",
	TypeCompound:  "compound",
	TypeIntArray:  "int_array",
	TypeLongArray: "long_array",
}

// String returns the lower-case name of the tag type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", byte(t))
}

// Tag is a sealed interface over the tagged value variants.
// Only Byte, Short, Int, Long, Float, Double, String, ByteArray, IntArray,
// LongArray, List and Compound implement it.
type Tag interface {
	Type() Type
	String() string
	tag() // Sealed - only these types implement it
}

// Byte is a signed 8-bit integer tag. Booleans are stored as Byte(0)/Byte(1).
type Byte int8

func (Byte) tag() {}
func (Byte) Type() Type { return TypeByte }
func (b Byte) String() string { return render(b) }

// Short is a signed 16-bit integer tag.
type Short int16

func (Short) tag() {}
func (Short) Type() Type { return TypeShort }
func (s Short) String() string { return render(s) }

// Int is a signed 32-bit integer tag.
type Int int32

func (Int) tag() {}
func (Int) Type() Type { return TypeInt }
func (i Int) String() string { return render(i) }

// Long is a signed 64-bit integer tag.
type Long int64

func (Long) tag() {}
func (Long) Type() Type { return TypeLong }
func (l Long) String() string { return render(l) }

// Float is a 32-bit floating point tag.
type Float float32

func (Float) tag() {}
func (Float) Type() Type { return TypeFloat }
func (f Float) String() string { return render(f) }

// Double is a 64-bit floating point tag.
type Double float64

func (Double) tag() {}
func (Double) Type() Type { return TypeDouble }
func (d Double) String() string { return render(d) }

// String is a text tag.
type String string

func (String) tag() {}
func (String) Type() Type { return TypeString }
func (s String) String() string { return render(s) }

// ByteArray is a packed array of signed bytes.
type ByteArray []int8

func (ByteArray) tag() {}
func (ByteArray) Type() Type { return TypeByteArray }
func (a ByteArray) String() string { return render(a) }

// IntArray is a packed array of 32-bit integers.
type IntArray []int32

func (IntArray) tag() {}
func (IntArray) Type() Type { return TypeIntArray }
func (a IntArray) String() string { return render(a) }

// LongArray is a packed array of 64-bit integers.
type LongArray []int64

func (LongArray) tag() {}
func (LongArray) Type() Type { return TypeLongArray }
func (a LongArray) String() string { return render(a) }

// List is an ordered sequence of tags sharing one element type.
// Construct with NewList to have homogeneity checked.
type List []Tag

func (List) tag() {}
func (List) Type() Type { return TypeList }
func (l List) String() string { return render(l) }

// ElemType returns the element type of the list, or 0 for an empty list.
func (l List) ElemType() Type {
	if len(l) == 0 {
		return 0
	}
	return l[0].Type()
}

// Compound maps unique string keys to tags. Key order carries no meaning.
// Use SortedKeys for deterministic iteration.
type Compound map[string]Tag

func (Compound) tag() {}
func (Compound) Type() Type { return TypeCompound }
func (c Compound) String() string { return render(c) }

// Bool returns Byte(1) for true and Byte(0) for false.
func Bool(b bool) Byte {
	if b {
		return 1
	}
	return 0
}

// NewList creates a List from items.
// Panics if the items do not share a single tag type or if any item is nil;
// a mixed list is a construction bug, not a runtime condition.
func NewList(items ...Tag) List {
	if len(items) == 0 {
		return List{}
	}
	want := items[0]
	for i, item := range items {
		if item == nil {
			panic(fmt.Sprintf("nbt: nil element at index %d", i))
		}
		if item.Type() != want.Type() {
			panic(fmt.Sprintf("nbt: mixed list element types: %s at index 0, %s at index %d",
				want.Type(), item.Type(), i))
		}
	}
	return List(slices.Clone(items))
}

// Doubles creates a List of Double tags.
func Doubles(values ...float64) List {
	list := make(List, len(values))
	for i, v := range values {
		list[i] = Double(v)
	}
	return list
}

// Floats creates a List of Float tags.
func Floats(values ...float32) List {
	list := make(List, len(values))
	for i, v := range values {
		list[i] = Float(v)
	}
	return list
}

// Strings creates a List of String tags.
func Strings(values ...string) List {
	list := make(List, len(values))
	for i, v := range values {
		list[i] = String(v)
	}
	return list
}

// Pair is a key-value pair for Compound construction.
type Pair struct {
	Key   string
	Value Tag
}

// P is a shorthand for Pair.
// Example: NewCompound(P("Health", Float(20)), P("OnGround", Bool(true)))
func P(key string, value Tag) Pair {
	return Pair{Key: key, Value: value}
}

// NewCompound creates a Compound from pairs. Nil values are skipped so that
// optional fields can be passed through without a branch at the call site.
func NewCompound(pairs ...Pair) Compound {
	c := make(Compound, len(pairs))
	for _, p := range pairs {
		if p.Value == nil {
			continue
		}
		c[p.Key] = p.Value
	}
	return c
}

// SortedKeys returns the compound's keys in byte-wise order.
func (c Compound) SortedKeys() []string {
	return slices.Sorted(maps.Keys(c))
}

// Clone returns a deep copy of the compound.
func (c Compound) Clone() Compound {
	if c == nil {
		return nil
	}
	return Clone(c).(Compound)
}

// Clone returns a deep copy of any tag. Leaves are returned as-is.
func Clone(t Tag) Tag {
	switch v := t.(type) {
	case Compound:
		out := make(Compound, len(v))
		for k, child := range v {
			out[k] = Clone(child)
		}
		return out
	case List:
		out := make(List, len(v))
		for i, child := range v {
			out[i] = Clone(child)
		}
		return out
	case ByteArray:
		return slices.Clone(v)
	case IntArray:
		return slices.Clone(v)
	case LongArray:
		return slices.Clone(v)
	default:
		return t
	}
}

// ParseType resolves a type name as printed by Type.String.
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == strings.ToLower(name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tag type %q", name)
}
