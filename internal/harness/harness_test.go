package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lockstep/internal/engine"
	"github.com/roach88/lockstep/internal/testutil"
)

func TestRun_CheckoutArithmetic(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/checkout_arithmetic.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "checkout_arithmetic", result.ScenarioName)
	assert.Equal(t, "run-token-checkout", result.RunToken)
	require.Len(t, result.Trace, 7)

	for i, ev := range result.Trace {
		assert.Equal(t, i, ev.Index)
		assert.Equal(t, StatusSuccess, ev.Status, "step %d", i)
	}
	assert.Equal(t, "Add two numbers.", result.Trace[0].Title)
	assert.Equal(t, 51, result.Trace[6].Data["result"])
}

func TestRun_FailureCascade(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/failure_cascade.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	// The scenario expects the failure, so it passes overall.
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 3)

	assert.Equal(t, StatusSuccess, result.Trace[0].Status)
	assert.Equal(t, StatusFailure, result.Trace[1].Status)
	assert.Equal(t, "Given result 2 is not equal to 999.", result.Trace[1].Msg)
	assert.Equal(t, StatusSkipped, result.Trace[2].Status)
	assert.Equal(t, "Step skipped.", result.Trace[2].Msg)
	assert.Nil(t, result.Trace[1].Data)
	assert.Nil(t, result.Trace[2].Data)
}

func TestRun_FaultBarrier(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/fault_barrier.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "Exception string occurred.", result.Trace[1].Msg)
}

func TestRun_ExpectationMismatch(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: mismatch
description: "Expectation disagrees with the outcome"
initial:
  a: 1
  b: 1
steps:
  - op: add_two_numbers
expect:
  - status: success
    data: { result: 3 }
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], `data key "result"`)
}

func TestRun_StatusMismatch(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: status_mismatch
description: "Step fails where success was expected"
initial:
  a: 1
  b: 1
steps:
  - op: add_two_numbers
  - op: result_is
    args: { value: 999 }
expect:
  - status: success
  - status: success
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected status success, got failure")
}

func TestRun_MissingExpectedDataKey(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: missing_key
description: "Expected key never produced"
initial:
  a: 1
  b: 1
steps:
  - op: add_two_numbers
expect:
  - status: success
    data: { total: 2 }
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], `data key "total" is absent`)
}

func TestRun_MoreExpectClausesThanSteps(t *testing.T) {
	// Built in code, so load-time validation never saw it; Run must reject
	// it instead of indexing past the trace.
	scenario := &Scenario{
		Name:        "lopsided",
		Description: "More expect clauses than steps",
		Initial:     map[string]any{"a": 1, "b": 1},
		Steps:       []StepDecl{{Op: "add_two_numbers"}},
		Expect: []ExpectClause{
			{Status: StatusFailure},
			{Status: StatusSkipped},
		},
	}

	_, err := New().Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expect has 2 clauses but there are only 1 steps")
}

func TestRun_TraceDataDoesNotAliasState(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: aliasing
description: "Mutating a reported trace must not leak into later events"
initial:
  a: 2
  b: 3
steps:
  - op: add_two_numbers
  - op: result_is
    args: { value: 5 }
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	require.Len(t, result.Trace, 2)

	result.Trace[0].Data["result"] = -1
	assert.Equal(t, 5, result.Trace[1].Data["result"])
}

func TestRun_UnknownOp(t *testing.T) {
	scenario := &Scenario{
		Name:        "unknown_op",
		Description: "References an unregistered builder",
		Steps:       []StepDecl{{Op: "teleport"}},
	}

	_, err := New().Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps[0]")
	assert.Contains(t, err.Error(), `unknown op "teleport"`)
}

func TestRun_EmptyStepsIsStructuralError(t *testing.T) {
	scenario := &Scenario{
		Name:        "empty",
		Description: "No steps to run",
	}

	_, err := New().Run(scenario)
	require.ErrorIs(t, err, engine.ErrEmptySteps)
}

func TestRun_GeneratesUUIDTokenWhenUnset(t *testing.T) {
	scenario := &Scenario{
		Name:        "token",
		Description: "Fresh token per run",
		Initial:     map[string]any{"a": 1, "b": 1},
		Steps:       []StepDecl{{Op: "add_two_numbers"}},
	}

	h := New()
	first, err := h.Run(scenario)
	require.NoError(t, err)
	second, err := h.Run(scenario)
	require.NoError(t, err)

	assert.NotEmpty(t, first.RunToken)
	assert.NotEmpty(t, second.RunToken)
	assert.NotEqual(t, first.RunToken, second.RunToken)
}

func TestRun_FixedTokenGenerator(t *testing.T) {
	scenario := &Scenario{
		Name:        "fixed_token",
		Description: "Deterministic token for golden runs",
		Initial:     map[string]any{"a": 1, "b": 1},
		Steps:       []StepDecl{{Op: "add_two_numbers"}},
	}

	h := New(WithTokenGenerator(testutil.NewFixedTokenGenerator("")))
	result, err := h.Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, "run-token-default", result.RunToken)
}

func TestRun_CustomRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("greet", func(engine.Data) (engine.Step, error) {
		return engine.TitledStep("Greet.")(func(d engine.Data) (engine.State, error) {
			return engine.Success(d.With("greeting", "hello")), nil
		}), nil
	}))

	scenario := &Scenario{
		Name:        "custom",
		Description: "Caller-registered builder",
		Steps:       []StepDecl{{Op: "greet"}},
		Expect: []ExpectClause{
			{Status: StatusSuccess, Data: map[string]any{"greeting": "hello"}},
		},
	}

	result, err := New(WithRegistry(r)).Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_InitialDataIsNotMutated(t *testing.T) {
	initial := map[string]any{"key": "before", "value": "after"}
	scenario := &Scenario{
		Name:        "immutability",
		Description: "Scenario initial data survives the run",
		Initial:     initial,
		Steps: []StepDecl{
			{Op: "set", Args: map[string]any{"key": "key", "value": "after"}},
		},
	}

	_, err := New().Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, "before", initial["key"])
}
