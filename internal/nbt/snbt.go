package nbt

import (
	"regexp"
	"strconv"
	"strings"
)

// bareKey matches compound keys that can be rendered without quotes.
var bareKey = regexp.MustCompile(`^[A-Za-z0-9._+\-]+$`)

// render produces the SNBT-style text form of a tag.
// Compound keys are emitted in sorted order so output is stable.
func render(t Tag) string {
	var sb strings.Builder
	writeTag(&sb, t)
	return sb.String()
}

func writeTag(sb *strings.Builder, t Tag) {
	switch v := t.(type) {
	case nil:
		sb.WriteString("null")
	case Byte:
		sb.WriteString(strconv.FormatInt(int64(v), 10))
		sb.WriteByte('b')
	case Short:
		sb.WriteString(strconv.FormatInt(int64(v), 10))
		sb.WriteByte('s')
	case Int:
		sb.WriteString(strconv.FormatInt(int64(v), 10))
	case Long:
		sb.WriteString(strconv.FormatInt(int64(v), 10))
		sb.WriteByte('L')
	case Float:
		sb.WriteString(formatFloat(float64(v), 32))
		sb.WriteByte('f')
	case Double:
		sb.WriteString(formatFloat(float64(v), 64))
		sb.WriteByte('d')
	case String:
		sb.WriteString(strconv.Quote(string(v)))
	case ByteArray:
		sb.WriteString("[B;")
		for i, b := range v {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.FormatInt(int64(b), 10))
			sb.WriteByte('b')
		}
		sb.WriteByte(']')
	case IntArray:
		sb.WriteString("[I;")
		for i, n := range v {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.FormatInt(int64(n), 10))
		}
		sb.WriteByte(']')
	case LongArray:
		sb.WriteString("[L;")
		for i, n := range v {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.FormatInt(n, 10))
			sb.WriteByte('L')
		}
		sb.WriteByte(']')
	case List:
		sb.WriteByte('[')
		for i, elem := range v {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeTag(sb, elem)
		}
		sb.WriteByte(']')
	case Compound:
		sb.WriteByte('{')
		for i, k := range v.SortedKeys() {
			if i > 0 {
				sb.WriteByte(',')
			}
			if bareKey.MatchString(k) {
				sb.WriteString(k)
			} else {
				sb.WriteString(strconv.Quote(k))
			}
			sb.WriteByte(':')
			writeTag(sb, v[k])
		}
		sb.WriteByte('}')
	}
}

// formatFloat prints the shortest representation that round-trips at the
// given precision, always keeping a decimal point for finite values.
func formatFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'f', -1, bits)
	if strings.ContainsAny(s, ".NI") {
		return s
	}
	return s + ".0"
}
