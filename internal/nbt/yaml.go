package nbt

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAML fixture tags. Plain YAML scalars resolve to Int (integers), Double
// (floats), Byte (booleans) and String; everything else needs an explicit tag.
//
// Example:
//
//	Health: !f 20
//	Fire: !s -1
//	Tags: [boss, arena]
//	UUID: !ints [1, 2, 3, 4]
const (
	yamlByte      = "!b"
	yamlShort     = "!s"
	yamlInt       = "!i"
	yamlLong      = "!l"
	yamlFloat     = "!f"
	yamlDouble    = "!d"
	yamlString    = "!str"
	yamlByteArray = "!bytes"
	yamlIntArray  = "!ints"
	yamlLongArray = "!longs"
)

// ParseYAML decodes a YAML document into a tag.
// Typically used for inline flow maps such as `{Health: !f 20, Tags: [a]}`.
func ParseYAML(data []byte) (Tag, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if node.Kind == 0 {
		return nil, fmt.Errorf("parse yaml: empty document")
	}
	return DecodeYAML(&node)
}

// ParseCompoundYAML decodes a YAML document that must be a mapping.
func ParseCompoundYAML(data []byte) (Compound, error) {
	t, err := ParseYAML(data)
	if err != nil {
		return nil, err
	}
	c, ok := t.(Compound)
	if !ok {
		return nil, fmt.Errorf("expected a mapping, got %s", t.Type())
	}
	return c, nil
}

// UnmarshalYAML implements yaml.Unmarshaler so Compound fields can appear
// directly in fixture structs.
func (c *Compound) UnmarshalYAML(node *yaml.Node) error {
	t, err := DecodeYAML(node)
	if err != nil {
		return err
	}
	compound, ok := t.(Compound)
	if !ok {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, t.Type())
	}
	*c = compound
	return nil
}

// MarshalYAML implements yaml.Marshaler using the fixture tags.
func (c Compound) MarshalYAML() (interface{}, error) {
	return EncodeYAML(c), nil
}

// DecodeYAML converts a YAML node into a tag.
func DecodeYAML(node *yaml.Node) (Tag, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, fmt.Errorf("empty document")
		}
		return DecodeYAML(node.Content[0])
	case yaml.AliasNode:
		return DecodeYAML(node.Alias)
	case yaml.MappingNode:
		return decodeMapping(node)
	case yaml.SequenceNode:
		return decodeSequence(node)
	case yaml.ScalarNode:
		return decodeScalar(node)
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", node.Line, node.Kind)
	}
}

func decodeMapping(node *yaml.Node) (Tag, error) {
	c := make(Compound, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if _, dup := c[key]; dup {
			return nil, fmt.Errorf("line %d: duplicate key %q", node.Content[i].Line, key)
		}
		val, err := DecodeYAML(node.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		c[key] = val
	}
	return c, nil
}

func decodeSequence(node *yaml.Node) (Tag, error) {
	switch node.ShortTag() {
	case yamlByteArray:
		arr := make(ByteArray, len(node.Content))
		for i, n := range node.Content {
			v, err := strconv.ParseInt(n.Value, 0, 8)
			if err != nil {
				return nil, fmt.Errorf("line %d: byte array[%d]: %w", n.Line, i, err)
			}
			arr[i] = int8(v)
		}
		return arr, nil
	case yamlIntArray:
		arr := make(IntArray, len(node.Content))
		for i, n := range node.Content {
			v, err := strconv.ParseInt(n.Value, 0, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: int array[%d]: %w", n.Line, i, err)
			}
			arr[i] = int32(v)
		}
		return arr, nil
	case yamlLongArray:
		arr := make(LongArray, len(node.Content))
		for i, n := range node.Content {
			v, err := strconv.ParseInt(n.Value, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: long array[%d]: %w", n.Line, i, err)
			}
			arr[i] = v
		}
		return arr, nil
	}

	list := make(List, 0, len(node.Content))
	for i, n := range node.Content {
		elem, err := DecodeYAML(n)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		if len(list) > 0 && elem.Type() != list.ElemType() {
			return nil, fmt.Errorf("line %d: list mixes %s and %s", n.Line, list.ElemType(), elem.Type())
		}
		list = append(list, elem)
	}
	return list, nil
}

func decodeScalar(node *yaml.Node) (Tag, error) {
	v := node.Value
	switch tag := node.ShortTag(); tag {
	case yamlByte:
		n, err := strconv.ParseInt(v, 0, 8)
		if err != nil {
			if b, berr := strconv.ParseBool(v); berr == nil {
				return Bool(b), nil
			}
			return nil, scalarError(node, err)
		}
		return Byte(n), nil
	case yamlShort:
		n, err := strconv.ParseInt(v, 0, 16)
		if err != nil {
			return nil, scalarError(node, err)
		}
		return Short(n), nil
	case yamlInt, "!!int":
		n, err := strconv.ParseInt(strings.ReplaceAll(v, "_", ""), 0, 32)
		if err != nil {
			return nil, scalarError(node, err)
		}
		return Int(n), nil
	case yamlLong:
		n, err := strconv.ParseInt(v, 0, 64)
		if err != nil {
			return nil, scalarError(node, err)
		}
		return Long(n), nil
	case yamlFloat:
		f, err := parseYAMLFloat(v, 32)
		if err != nil {
			return nil, scalarError(node, err)
		}
		return Float(f), nil
	case yamlDouble, "!!float":
		f, err := parseYAMLFloat(v, 64)
		if err != nil {
			return nil, scalarError(node, err)
		}
		return Double(f), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, scalarError(node, err)
		}
		return Bool(b), nil
	case yamlString, "!!str":
		return String(v), nil
	case "!!null":
		return nil, fmt.Errorf("line %d: null has no tag representation", node.Line)
	default:
		return nil, fmt.Errorf("line %d: unknown tag %q", node.Line, tag)
	}
}

func parseYAMLFloat(v string, bits int) (float64, error) {
	switch strings.ToLower(v) {
	case ".inf", "+.inf":
		return math.Inf(1), nil
	case "-.inf":
		return math.Inf(-1), nil
	case ".nan":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(v, bits)
}

func scalarError(node *yaml.Node, err error) error {
	return fmt.Errorf("line %d: %s %q: %w", node.Line, node.ShortTag(), node.Value, err)
}

// EncodeYAML converts a tag into a YAML node using the fixture tags.
// Compound keys are emitted in sorted order.
func EncodeYAML(t Tag) *yaml.Node {
	switch v := t.(type) {
	case Compound:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range v.SortedKeys() {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				EncodeYAML(v[k]))
		}
		return node
	case List:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if v.ElemType() != TypeCompound && v.ElemType() != TypeList {
			node.Style = yaml.FlowStyle
		}
		for _, elem := range v {
			node.Content = append(node.Content, EncodeYAML(elem))
		}
		return node
	case ByteArray:
		return arrayNode(yamlByteArray, len(v), func(i int) string { return strconv.FormatInt(int64(v[i]), 10) })
	case IntArray:
		return arrayNode(yamlIntArray, len(v), func(i int) string { return strconv.FormatInt(int64(v[i]), 10) })
	case LongArray:
		return arrayNode(yamlLongArray, len(v), func(i int) string { return strconv.FormatInt(v[i], 10) })
	case Byte:
		return scalarNode(yamlByte, strconv.FormatInt(int64(v), 10))
	case Short:
		return scalarNode(yamlShort, strconv.FormatInt(int64(v), 10))
	case Int:
		return scalarNode("!!int", strconv.FormatInt(int64(v), 10))
	case Long:
		return scalarNode(yamlLong, strconv.FormatInt(int64(v), 10))
	case Float:
		return scalarNode(yamlFloat, yamlFloatString(float64(v), 32))
	case Double:
		return scalarNode("!!float", yamlFloatString(float64(v), 64))
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(v)}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func arrayNode(tag string, n int, elem func(int) string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: tag, Style: yaml.FlowStyle}
	for i := 0; i < n; i++ {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: elem(i)})
	}
	return node
}

func yamlFloatString(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return formatFloat(f, bits)
}
