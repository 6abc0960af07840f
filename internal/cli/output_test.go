package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lockstep/internal/harness"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad path")))
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "scenario failed")))
}

func TestExitError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := WrapExitError(ExitCommandError, "outer", inner)

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "outer")
	assert.Contains(t, err.Error(), "inner")
}

func TestOutputFormatter_SuccessJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	require.NoError(t, f.Success("done"))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "done", resp.Data)
}

func TestOutputFormatter_ErrorText(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}

	require.NoError(t, f.Error("something broke"))
	assert.Equal(t, "error: something broke\n", buf.String())
}

func passingResult() *harness.Result {
	return &harness.Result{
		ScenarioName: "demo",
		RunToken:     "run-token-demo",
		Pass:         true,
		Trace: []harness.TraceEvent{
			{Index: 0, Title: "Add two numbers.", Description: "Sums inputs a and b into result.", Status: harness.StatusSuccess},
			{Index: 1, Title: "Given result is 999.", Status: harness.StatusFailure, Msg: "Given result 2 is not equal to 999."},
			{Index: 2, Title: "Add 10.", Status: harness.StatusSkipped, Msg: "Step skipped."},
		},
	}
}

func TestRenderResult_Text(t *testing.T) {
	out := renderResult(passingResult(), false)

	assert.Contains(t, out, "scenario demo (run run-token-demo)")
	assert.Contains(t, out, "ok  ")
	assert.Contains(t, out, "Add two numbers.")
	assert.Contains(t, out, "FAIL   1  Given result is 999. - Given result 2 is not equal to 999.")
	assert.Contains(t, out, "skip   2  Add 10. - Step skipped.")
	assert.Contains(t, out, "PASS\n")
}

func TestRenderResult_VerboseIncludesDescriptions(t *testing.T) {
	out := renderResult(passingResult(), true)

	assert.Contains(t, out, "Sums inputs a and b into result.")
}

func TestRenderResult_FailListsErrors(t *testing.T) {
	result := passingResult()
	result.Pass = false
	result.Errors = []string{"step 1 (Given result is 999.): expected status success, got failure"}

	out := renderResult(result, false)

	assert.Contains(t, out, "FAIL\n")
	assert.Contains(t, out, "expected status success, got failure")
	assert.NotContains(t, out, "PASS\n")
}

func TestOutputFormatter_ResultJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	require.NoError(t, f.Result(passingResult()))

	var resp struct {
		Status string         `json:"status"`
		Data   harness.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "demo", resp.Data.ScenarioName)
	assert.Len(t, resp.Data.Trace, 3)
}
