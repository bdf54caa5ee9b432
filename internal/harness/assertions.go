package harness

import (
	"fmt"
	"slices"
	"strings"
)

// Assertion types.
const (
	AssertAgreement = "agreement"
	AssertSelection = "selection"
	AssertDegraded  = "degraded"
)

// AssertionError is returned when a query check fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Query    int    // Index of the query in the scenario
	Pattern  string // SNBT of the pattern
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Query: [%d] %s\n", e.Query, e.Pattern)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	return buf.String()
}

// assertAgreement checks that the extractor predicate gave the same answer
// as the full save for an entity.
func assertAgreement(index int, pattern, entity string, fast, full bool) error {
	if fast == full {
		return nil
	}
	return &AssertionError{
		Type:     AssertAgreement,
		Query:    index,
		Pattern:  pattern,
		Expected: fmt.Sprintf("%s: full save says %v", entity, full),
		Actual:   fmt.Sprintf("%s: field extractors say %v", entity, fast),
	}
}

// assertSelection checks the selected entities against expect, ignoring order.
func assertSelection(index int, pattern string, expect, matched []string) error {
	want := slices.Sorted(slices.Values(expect))
	got := slices.Sorted(slices.Values(matched))
	if slices.Equal(want, got) {
		return nil
	}
	return &AssertionError{
		Type:     AssertSelection,
		Query:    index,
		Pattern:  pattern,
		Expected: fmt.Sprintf("%v", want),
		Actual:   fmt.Sprintf("%v", got),
	}
}

// assertDegraded checks whether the pattern fell back to a full save.
func assertDegraded(index int, pattern string, want *bool, degraded bool, unknown string) error {
	if want == nil || *want == degraded {
		return nil
	}
	actual := "every field has an extractor"
	if degraded {
		actual = fmt.Sprintf("field %q has no extractor", unknown)
	}
	return &AssertionError{
		Type:     AssertDegraded,
		Query:    index,
		Pattern:  pattern,
		Expected: fmt.Sprintf("degraded=%v", *want),
		Actual:   actual,
	}
}
