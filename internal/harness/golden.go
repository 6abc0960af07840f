package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/lockstep/internal/testutil"
)

// TraceSnapshot captures the complete trace of a scenario execution for
// golden comparison. JSON map keys marshal in sorted order, so a snapshot is
// byte-stable for a fixed run token.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	RunToken     string       `json:"run_token,omitempty"`
	Trace        []TraceEvent `json:"trace"`
}

// RunWithGolden executes a scenario and compares the trace against a golden
// file stored in testdata/golden/{scenario.Name}.golden.
//
// The scenario runs with a fixed run token (its own run_token, or
// "run-token-default") so repeated runs produce identical snapshots.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if scenario execution fails; trace mismatches fail the
// test through goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	h := New(WithTokenGenerator(testutil.NewFixedTokenGenerator(scenario.RunToken)))
	result, err := h.Run(scenario)
	if err != nil {
		return err
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an already-obtained result's trace against the
// golden file named after scenarioName.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := TraceSnapshot{
		ScenarioName: result.ScenarioName,
		RunToken:     result.RunToken,
		Trace:        result.Trace,
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
