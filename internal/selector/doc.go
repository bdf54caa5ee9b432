// Package selector builds entity match predicates for selector-style
// queries such as @e[nbt={Health:20f}].
//
// A predicate compares a pattern against an entity's saved state. When
// every top-level key of the pattern has a registered extractor, only
// those fields are computed (the fast path). Otherwise the predicate is
// the caller's fallback, which compares against the full saved state.
//
// Both paths give the same answer for every entity: the extractors are
// required to agree with the full save field by field, and the comparison
// is the same strict-type subset match.
package selector
