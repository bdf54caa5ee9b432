package nbt

import "slices"

// SubsetMatch reports whether actual contains expected as a pattern.
//
// The match is determined by:
//  1. nil expected matches anything; nil actual matches nothing else
//  2. Tag types must be identical when strictTypes is set (Int(5) != Long(5))
//  3. Compound: every expected key must exist in actual and sub-match;
//     keys present only in actual are ignored
//  4. List of Compounds: every expected element must sub-match at least one
//     actual element (order-free, one actual element may satisfy several);
//     an empty expected list only matches an empty actual list
//  5. Any other List or leaf: exact equality, element types included
//
// With strictTypes unset, numeric leaves of different types compare by value.
// Callers that must agree with full-state comparison always pass true.
func SubsetMatch(expected, actual Tag, strictTypes bool) bool {
	if expected == nil {
		return true
	}
	if actual == nil {
		return false
	}

	if expected.Type() != actual.Type() {
		if strictTypes {
			return false
		}
		return numericEqual(expected, actual)
	}

	switch exp := expected.(type) {
	case Compound:
		act := actual.(Compound)
		for key, sub := range exp {
			if !SubsetMatch(sub, act[key], strictTypes) {
				return false
			}
		}
		return true

	case List:
		act := actual.(List)
		if exp.ElemType() != TypeCompound {
			return listEqual(exp, act, strictTypes)
		}
		if len(exp) == 0 {
			return len(act) == 0
		}
		for _, want := range exp {
			if !slices.ContainsFunc(act, func(got Tag) bool {
				return SubsetMatch(want, got, strictTypes)
			}) {
				return false
			}
		}
		return true

	default:
		return Equal(expected, actual)
	}
}

// listEqual compares two lists element by element.
func listEqual(exp, act List, strictTypes bool) bool {
	if len(exp) != len(act) {
		return false
	}
	for i := range exp {
		if strictTypes {
			if !Equal(exp[i], act[i]) {
				return false
			}
			continue
		}
		if !SubsetMatch(exp[i], act[i], false) {
			return false
		}
	}
	return true
}

// Equal reports whether two tags are identical in type and value.
// Compounds compare by key set, Lists by position.
func Equal(a, b Tag) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}

	switch x := a.(type) {
	case Byte, Short, Int, Long, Float, Double, String:
		return a == b
	case ByteArray:
		return slices.Equal(x, b.(ByteArray))
	case IntArray:
		return slices.Equal(x, b.(IntArray))
	case LongArray:
		return slices.Equal(x, b.(LongArray))
	case List:
		y := b.(List)
		return slices.EqualFunc(x, y, Equal)
	case Compound:
		y := b.(Compound)
		if len(x) != len(y) {
			return false
		}
		for k, v := range x {
			w, ok := y[k]
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// numericEqual compares two numeric leaves by value regardless of tag type.
func numericEqual(a, b Tag) bool {
	x, ok := numericValue(a)
	if !ok {
		return false
	}
	y, ok := numericValue(b)
	if !ok {
		return false
	}
	return x == y
}

func numericValue(t Tag) (float64, bool) {
	switch v := t.(type) {
	case Byte:
		return float64(v), true
	case Short:
		return float64(v), true
	case Int:
		return float64(v), true
	case Long:
		return float64(v), true
	case Float:
		return float64(v), true
	case Double:
		return float64(v), true
	default:
		return 0, false
	}
}
