package harness

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/fastnbt/internal/nbt"
)

// TraceSnapshot captures the complete trace for a scenario execution.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Platform     string       `json:"platform"`
	Trace        []QueryTrace `json:"trace"`
}

// toTag converts the snapshot to a compound so it serializes through the
// canonical tag encoding.
func (s *TraceSnapshot) toTag() nbt.Compound {
	queries := make(nbt.List, len(s.Trace))
	for i, q := range s.Trace {
		queries[i] = q.toTag()
	}
	platform := s.Platform
	if platform == "" {
		platform = PlatformVanilla
	}
	return nbt.Compound{
		"scenario_name": nbt.String(s.ScenarioName),
		"platform":      nbt.String(platform),
		"trace":         queries,
	}
}

// MarshalTrace renders a result's trace as canonical JSON with a trailing
// newline.
func MarshalTrace(scenario *Scenario, result *Result) ([]byte, error) {
	snapshot := TraceSnapshot{
		ScenarioName: scenario.Name,
		Platform:     scenario.Platform,
		Trace:        result.Trace,
	}
	data, err := nbt.MarshalCanonical(snapshot.toTag())
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result's trace against its golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	traceJSON, err := MarshalTrace(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, traceJSON)
	return nil
}
