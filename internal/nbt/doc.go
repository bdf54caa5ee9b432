// Package nbt provides the tagged value tree that entity state is expressed in.
//
// This package contains value types and pure functions only. It imports
// nothing internal, so every other package can depend on it without cycles.
//
// Key design constraints:
//   - Tag is a sealed interface; only the types in this package implement it
//   - Tags are never mutated after construction (use Compound.Clone to derive)
//   - A List is homogeneous in element type; NewList enforces it
//   - Numeric tag types are distinct: Int(5) and Long(5) are different values
//
// Comparison:
//
// SubsetMatch is the one comparison the rest of the system relies on. The
// expected side is a pattern: a Compound only needs to name the keys it cares
// about, and a List of Compounds only needs each pattern element to be found
// somewhere in the actual list. Everything else is exact equality.
//
// Encodings:
//
// Tags have three textual forms, none of which is the binary NBT format:
//   - String(): SNBT-style rendering for logs and CLI output (never parsed)
//   - MarshalCanonical: typed canonical JSON used for hashing and golden files
//   - YAML: fixture codec for world files and scenarios (explicit !i, !f, ... tags)
package nbt
