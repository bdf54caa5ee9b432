package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fastnbt/internal/nbt"
)

const minimalScenario = `
name: minimal
description: "one entity, one query"
entities:
  - name: boat
    type: minecraft:boat
queries:
  - pattern: {}
    expect: [boat]
`

func TestParseScenario_Minimal(t *testing.T) {
	s, err := ParseScenario([]byte(minimalScenario))
	require.NoError(t, err)

	assert.Equal(t, "minimal", s.Name)
	assert.Empty(t, s.Platform)
	assert.False(t, s.Saver().NeoForge)
	require.Len(t, s.Queries, 1)
	assert.Equal(t, nbt.Compound{}, s.Queries[0].Pattern)
	assert.Nil(t, s.Queries[0].Degraded)
}

func TestParseScenario_TypedPattern(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: typed
description: "tags select tag types"
platform: neoforge
entities:
  - name: boat
    type: minecraft:boat
queries:
  - pattern: {Health: !f 20, Fire: !s -1, Tags: [a]}
    invert: true
    expect: []
    degraded: false
`))
	require.NoError(t, err)

	q := s.Queries[0]
	assert.True(t, s.Saver().NeoForge)
	assert.True(t, q.Invert)
	assert.Equal(t, nbt.Compound{
		"Health": nbt.Float(20),
		"Fire":   nbt.Short(-1),
		"Tags":   nbt.Strings("a"),
	}, q.Pattern)
	require.NotNil(t, q.Degraded)
	assert.False(t, *q.Degraded)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing name",
			yaml:    "description: d\nentities: [{name: a, type: x}]\nqueries: [{pattern: {}, expect: []}]",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: n\nentities: [{name: a, type: x}]\nqueries: [{pattern: {}, expect: []}]",
			wantErr: "description is required",
		},
		{
			name:    "unknown platform",
			yaml:    "name: n\ndescription: d\nplatform: forge\nentities: [{name: a, type: x}]\nqueries: [{pattern: {}, expect: []}]",
			wantErr: `unknown platform "forge"`,
		},
		{
			name:    "no entities",
			yaml:    "name: n\ndescription: d\nqueries: [{pattern: {}, expect: []}]",
			wantErr: "entities list is required",
		},
		{
			name:    "no queries",
			yaml:    "name: n\ndescription: d\nentities: [{name: a, type: x}]",
			wantErr: "queries list is required",
		},
		{
			name:    "missing pattern",
			yaml:    "name: n\ndescription: d\nentities: [{name: a, type: x}]\nqueries: [{expect: []}]",
			wantErr: "queries[0]: pattern is required",
		},
		{
			name:    "missing expect",
			yaml:    "name: n\ndescription: d\nentities: [{name: a, type: x}]\nqueries: [{pattern: {}}]",
			wantErr: "queries[0]: expect is required",
		},
		{
			name:    "expect names unknown entity",
			yaml:    "name: n\ndescription: d\nentities: [{name: a, type: x}]\nqueries: [{pattern: {}, expect: [b]}]",
			wantErr: `unknown entity "b"`,
		},
		{
			name:    "unknown field",
			yaml:    "name: n\ndescription: d\nentites: []\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "pattern is not a mapping",
			yaml:    "name: n\ndescription: d\nentities: [{name: a, type: x}]\nqueries: [{pattern: [1], expect: []}]",
			wantErr: "expected a mapping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestFindScenarios(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yml", "c.txt", "ab.yaml"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(minimalScenario), 0o644))
	}

	all, err := FindScenarios(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.yml"),
		filepath.Join(dir, "ab.yaml"),
		filepath.Join(dir, "b.yaml"),
	}, all)

	some, err := FindScenarios(dir, "a*")
	require.NoError(t, err)
	assert.Len(t, some, 2)

	_, err = FindScenarios(dir, "[")
	assert.Error(t, err)
}

func TestLoadScenario_Testdata(t *testing.T) {
	paths, err := FindScenarios("testdata/scenarios", "")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			_, err := LoadScenario(path)
			assert.NoError(t, err)
		})
	}
}
