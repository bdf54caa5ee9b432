package nbt

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Domain prefixes for content-addressed hashes.
// Version suffix enables future algorithm migration.
const (
	DomainSnapshot = "fastnbt/snapshot/v1"
	DomainPattern  = "fastnbt/pattern/v1"
)

// Wrapper keys for typed leaves in canonical JSON. Int and String are written
// bare; every other leaf is a single-key object so the encoding is injective.
const (
	wrapByte      = "@b"
	wrapShort     = "@s"
	wrapLong      = "@l"
	wrapFloat     = "@f"
	wrapDouble    = "@d"
	wrapByteArray = "@B"
	wrapIntArray  = "@I"
	wrapLongArray = "@L"
	wrapCompound  = "@c"
)

// MarshalCanonical produces typed canonical JSON for a tag.
//
// Rules:
//  1. Compound keys sorted byte-wise; no HTML escaping
//  2. Strings and keys are written as is, never normalized, since tags
//     compare strings byte for byte
//  3. Int and String leaves are bare JSON numbers/strings
//  4. Other leaves are {"@x": value} with x naming the type
//  5. A Compound whose only key starts with '@' is wrapped as {"@c": {...}}
//
// Used for content hashes and golden trace files.
func MarshalCanonical(t Tag) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Hash computes SHA-256 over the canonical form with domain separation.
// Format: SHA256(domain + 0x00 + canonical(tag))
func Hash(domain string, t Tag) (string, error) {
	data, err := MarshalCanonical(t)
	if err != nil {
		return "", fmt.Errorf("hash: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

func writeCanonical(buf *bytes.Buffer, t Tag) error {
	switch v := t.(type) {
	case nil:
		return fmt.Errorf("nil tag has no canonical form")
	case Int:
		buf.WriteString(strconv.FormatInt(int64(v), 10))
	case String:
		return writeCanonicalString(buf, string(v))
	case Byte:
		writeWrapped(buf, wrapByte, strconv.FormatInt(int64(v), 10))
	case Short:
		writeWrapped(buf, wrapShort, strconv.FormatInt(int64(v), 10))
	case Long:
		writeWrapped(buf, wrapLong, strconv.FormatInt(int64(v), 10))
	case Float:
		writeWrapped(buf, wrapFloat, canonicalFloat(float64(v), 32))
	case Double:
		writeWrapped(buf, wrapDouble, canonicalFloat(float64(v), 64))
	case ByteArray:
		parts := make([]string, len(v))
		for i, b := range v {
			parts[i] = strconv.FormatInt(int64(b), 10)
		}
		writeWrapped(buf, wrapByteArray, "["+strings.Join(parts, ",")+"]")
	case IntArray:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = strconv.FormatInt(int64(n), 10)
		}
		writeWrapped(buf, wrapIntArray, "["+strings.Join(parts, ",")+"]")
	case LongArray:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = strconv.FormatInt(n, 10)
		}
		writeWrapped(buf, wrapLongArray, "["+strings.Join(parts, ",")+"]")
	case List:
		buf.WriteByte('[')
		for i, elem := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, elem); err != nil {
				return fmt.Errorf("list[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case Compound:
		wrap := len(v) == 1 && strings.HasPrefix(v.SortedKeys()[0], "@")
		if wrap {
			buf.WriteString(`{"` + wrapCompound + `":`)
		}
		buf.WriteByte('{')
		for i, k := range v.SortedKeys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonicalString(buf, k); err != nil {
				return fmt.Errorf("key %q: %w", k, err)
			}
			buf.WriteByte(':')
			if err := writeCanonical(buf, v[k]); err != nil {
				return fmt.Errorf("compound[%q]: %w", k, err)
			}
		}
		buf.WriteByte('}')
		if wrap {
			buf.WriteByte('}')
		}
	default:
		return fmt.Errorf("unknown tag type: %T", t)
	}
	return nil
}

func writeWrapped(buf *bytes.Buffer, key, raw string) {
	buf.WriteString(`{"`)
	buf.WriteString(key)
	buf.WriteString(`":`)
	buf.WriteString(raw)
	buf.WriteByte('}')
}

// canonicalFloat renders finite floats as JSON numbers and non-finite ones
// as JSON strings, since JSON has no literal for them.
func canonicalFloat(f float64, bits int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.Quote(strconv.FormatFloat(f, 'g', -1, bits))
	}
	return formatFloat(f, bits)
}

// writeCanonicalString writes a JSON string without HTML escaping.
func writeCanonicalString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false) // <, >, & must NOT be escaped
	if err := enc.Encode(s); err != nil {
		return err
	}
	// json.Encoder adds a trailing newline
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'}))
	return nil
}
