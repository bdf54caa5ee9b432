package harness

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Scenarios(t *testing.T) {
	paths, err := FindScenarios("testdata/scenarios", "")
	require.NoError(t, err)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Len(t, result.Trace, len(scenario.Queries))
		})
	}
}

func TestRun_ReportsWrongExpectation(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: wrong
description: "expects the wrong entity"
entities:
  - name: boat
    type: minecraft:boat
  - name: cart
    type: minecraft:minecart
queries:
  - pattern: {}
    expect: [boat]
`))
	require.NoError(t, err)

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Assertion failed: selection")
	assert.Contains(t, result.Errors[0], "[boat cart]")
}

func TestRun_ReportsUnexpectedDegradation(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: degraded
description: "asserts the fast path for an unknown field"
entities:
  - name: boat
    type: minecraft:boat
queries:
  - pattern: {NoSuchField: 1}
    expect: []
    degraded: false
`))
	require.NoError(t, err)

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Assertion failed: degraded")
	assert.Contains(t, result.Errors[0], `field "NoSuchField" has no extractor`)

	require.Len(t, result.Trace, 1)
	assert.Equal(t, "fallback", result.Trace[0].Path)
	assert.Equal(t, "NoSuchField", result.Trace[0].Unknown)
}

func TestRun_NeoForgeFieldsNeedNeoForgePlatform(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: vanilla_canupdate
description: "vanilla saves have no CanUpdate"
platform: vanilla
entities:
  - name: boat
    type: minecraft:boat
queries:
  - pattern: {CanUpdate: !b 1}
    expect: []
    degraded: true
`))
	require.NoError(t, err)

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_BadWorld(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: bad
description: "rides an unknown vehicle"
entities:
  - name: pig
    kind: living
    type: minecraft:pig
    vehicle: ghost
queries:
  - pattern: {}
    expect: [pig]
`))
	require.NoError(t, err)

	_, err = Run(context.Background(), scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown vehicle "ghost"`)
}

func TestRun_Deterministic(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/neoforge_riders.yaml")
	require.NoError(t, err)

	first, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	second, err := Run(context.Background(), scenario)
	require.NoError(t, err)

	a, err := MarshalTrace(scenario, first)
	require.NoError(t, err)
	b, err := MarshalTrace(scenario, second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}
