// Package harness runs conformance scenarios for entity selector matching.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	platform: vanilla            # or neoforge
//	entities:                    # same shape as a world file
//	  - name: bessie
//	    kind: living
//	    type: minecraft:cow
//	queries:
//	  - pattern: {Health: !f 20}
//	    invert: false
//	    expect: [bessie]
//	    degraded: false          # optional
//
// # Checks
//
// For every query the harness evaluates both the field-extractor predicate
// and the full-save predicate against every entity. A query fails when:
//
//   - the two predicates disagree on any entity
//   - the selected entities differ from expect
//   - degraded is given and differs from whether the pattern fell back
//
// # Deterministic Testing
//
// Each scenario runs against a fresh in-memory store. Entity UUIDs derive
// from names and seqs come from the store, so traces are reproducible and
// can be compared against golden files with RunWithGolden.
package harness
