package harness

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssertAgreement(t *testing.T) {
	assert.NoError(t, assertAgreement(0, "{}", "boat", true, true))
	assert.NoError(t, assertAgreement(0, "{}", "boat", false, false))

	err := assertAgreement(2, "{Health:20.0f}", "boat", true, false)
	var ae *AssertionError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, AssertAgreement, ae.Type)
	assert.Equal(t, 2, ae.Query)
	assert.Contains(t, err.Error(), "full save says false")
	assert.Contains(t, err.Error(), "field extractors say true")
}

func TestAssertSelection(t *testing.T) {
	tests := []struct {
		name    string
		expect  []string
		matched []string
		wantErr bool
	}{
		{"same order", []string{"a", "b"}, []string{"a", "b"}, false},
		{"any order", []string{"b", "a"}, []string{"a", "b"}, false},
		{"both empty", []string{}, nil, false},
		{"missing", []string{"a", "b"}, []string{"a"}, true},
		{"extra", []string{"a"}, []string{"a", "b"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := assertSelection(0, "{}", tt.expect, tt.matched)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAssertDegraded(t *testing.T) {
	yes, no := true, false

	assert.NoError(t, assertDegraded(0, "{}", nil, true, "X"))
	assert.NoError(t, assertDegraded(0, "{}", &yes, true, "X"))
	assert.NoError(t, assertDegraded(0, "{}", &no, false, ""))

	err := assertDegraded(0, "{}", &yes, false, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "every field has an extractor")
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{
		Type:     AssertSelection,
		Query:    1,
		Pattern:  "{Tags:[\"a\"]}",
		Expected: "[a]",
		Actual:   "[]",
	}
	want := "Assertion failed: selection\n" +
		"  Query: [1] {Tags:[\"a\"]}\n" +
		"  Expected: [a]\n" +
		"  Actual: []\n"
	assert.Equal(t, want, err.Error())
}
