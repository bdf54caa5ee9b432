package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `
name: herd
description: "cows and pigs"
entities:
  - name: bessie
    kind: living
    type: minecraft:cow
  - name: porky
    kind: living
    type: minecraft:pig
    living:
      health: 10
queries:
  - pattern: {Health: !f 10}
    expect: [porky]
`

const failingScenario = `
name: wrong
description: "expects the wrong entity"
entities:
  - name: bessie
    kind: living
    type: minecraft:cow
queries:
  - pattern: {Health: !f 10}
    expect: [bessie]
`

func TestTestCommandMissingArgs(t *testing.T) {
	_, _, err := execute(t, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, errOut, err := execute(t, "test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "scenarios directory not found")
}

func TestTestCommandEmptyDir(t *testing.T) {
	out, _, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTestCommandPassAndFail(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "herd.yaml", passingScenario)
	writeFile(t, dir, "wrong.yaml", failingScenario)

	out, _, err := execute(t, "test", dir, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var result TestResult
	decodeData(t, out, &result)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "herd", result.Scenarios[0].Name)
	assert.Equal(t, "missing", result.Scenarios[0].Golden)
	assert.False(t, result.Scenarios[1].Pass)
	require.NotEmpty(t, result.Scenarios[1].Errors)
	assert.Contains(t, result.Scenarios[1].Errors[0], "Assertion failed: selection")
}

func TestTestCommandFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "herd.yaml", passingScenario)
	writeFile(t, dir, "wrong.yaml", failingScenario)

	out, _, err := execute(t, "test", dir, "--filter", "herd*")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ herd")
	assert.NotContains(t, out, "wrong")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommandGoldenLifecycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "herd.yaml", passingScenario)

	out, _, err := execute(t, "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ herd (golden updated)")

	golden := filepath.Join(dir, "golden", "herd.golden")
	data, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario_name":"herd"`)

	out, _, err = execute(t, "test", dir, "--format", "json")
	require.NoError(t, err)
	var result TestResult
	decodeData(t, out, &result)
	assert.Equal(t, "match", result.Scenarios[0].Golden)

	require.NoError(t, os.WriteFile(golden, []byte("{}\n"), 0o644))
	_, _, err = execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestTestCommandHarnessScenarios(t *testing.T) {
	out, _, err := execute(t, "test", "../harness/testdata/scenarios")
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ All scenarios passed")
}
