package nbt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// UnmarshalCanonical parses the output of MarshalCanonical back into a tag.
// Numbers are read through json.Number so longs keep full precision.
func UnmarshalCanonical(data []byte) (Tag, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("unmarshal canonical: %w", err)
	}
	return fromCanonical(raw)
}

func fromCanonical(raw any) (Tag, error) {
	switch v := raw.(type) {
	case json.Number:
		n, err := strconv.ParseInt(string(v), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bare number %s is not an int: %w", v, err)
		}
		return Int(n), nil
	case string:
		return String(v), nil
	case []any:
		list := make(List, 0, len(v))
		for i, elem := range v {
			t, err := fromCanonical(elem)
			if err != nil {
				return nil, fmt.Errorf("list[%d]: %w", i, err)
			}
			if len(list) > 0 && t.Type() != list.ElemType() {
				return nil, fmt.Errorf("list[%d]: mixes %s and %s", i, list.ElemType(), t.Type())
			}
			list = append(list, t)
		}
		return list, nil
	case map[string]any:
		if len(v) == 1 {
			for k, inner := range v {
				if strings.HasPrefix(k, "@") {
					return fromWrapped(k, inner)
				}
			}
		}
		return compoundFromCanonical(v)
	default:
		return nil, fmt.Errorf("unexpected json value %T", raw)
	}
}

func compoundFromCanonical(m map[string]any) (Compound, error) {
	c := make(Compound, len(m))
	for k, elem := range m {
		t, err := fromCanonical(elem)
		if err != nil {
			return nil, fmt.Errorf("compound[%q]: %w", k, err)
		}
		c[k] = t
	}
	return c, nil
}

func fromWrapped(key string, inner any) (Tag, error) {
	switch key {
	case wrapCompound:
		m, ok := inner.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: expected object, got %T", key, inner)
		}
		return compoundFromCanonical(m)
	case wrapByte:
		n, err := canonicalInt(inner, 8)
		return Byte(n), err
	case wrapShort:
		n, err := canonicalInt(inner, 16)
		return Short(n), err
	case wrapLong:
		n, err := canonicalInt(inner, 64)
		return Long(n), err
	case wrapFloat:
		f, err := canonicalFloatValue(inner, 32)
		return Float(f), err
	case wrapDouble:
		f, err := canonicalFloatValue(inner, 64)
		return Double(f), err
	case wrapByteArray, wrapIntArray, wrapLongArray:
		elems, ok := inner.([]any)
		if !ok {
			return nil, fmt.Errorf("%s: expected array, got %T", key, inner)
		}
		return arrayFromCanonical(key, elems)
	default:
		return nil, fmt.Errorf("unknown wrapper key %q", key)
	}
}

func arrayFromCanonical(key string, elems []any) (Tag, error) {
	bits := map[string]int{wrapByteArray: 8, wrapIntArray: 32, wrapLongArray: 64}[key]
	values := make([]int64, len(elems))
	for i, e := range elems {
		n, err := canonicalInt(e, bits)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		values[i] = n
	}
	switch key {
	case wrapByteArray:
		arr := make(ByteArray, len(values))
		for i, n := range values {
			arr[i] = int8(n)
		}
		return arr, nil
	case wrapIntArray:
		arr := make(IntArray, len(values))
		for i, n := range values {
			arr[i] = int32(n)
		}
		return arr, nil
	default:
		return LongArray(values), nil
	}
}

func canonicalInt(raw any, bits int) (int64, error) {
	num, ok := raw.(json.Number)
	if !ok {
		return 0, fmt.Errorf("expected number, got %T", raw)
	}
	return strconv.ParseInt(string(num), 10, bits)
}

func canonicalFloatValue(raw any, bits int) (float64, error) {
	switch v := raw.(type) {
	case json.Number:
		return strconv.ParseFloat(string(v), bits)
	case string:
		switch v {
		case "NaN":
			return math.NaN(), nil
		case "+Inf":
			return math.Inf(1), nil
		case "-Inf":
			return math.Inf(-1), nil
		}
		return 0, fmt.Errorf("invalid non-finite float %q", v)
	default:
		return 0, fmt.Errorf("expected number, got %T", raw)
	}
}
