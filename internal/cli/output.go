package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/lockstep/internal/harness"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Scenario failure (expectation mismatch, invalid scenario)
	ExitCommandError = 2 // Command error (missing files, bad flags, etc.)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess (0) for nil and ExitFailure (1) if the error is not an
// ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string `json:"status"`          // "ok" or "error"
	Data   any    `json:"data,omitempty"`  // success payload
	Error  string `json:"error,omitempty"` // error message
}

// Success outputs a successful payload in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "error", Error: message})
	}
	_, err := fmt.Fprintf(f.Writer, "error: %s\n", message)
	return err
}

// Result outputs a scenario result: the full JSON result in json mode, a
// rendered trace in text mode.
func (f *OutputFormatter) Result(result *harness.Result) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: result})
	}
	_, err := fmt.Fprint(f.Writer, renderResult(result, f.Verbose))
	return err
}

// statusMark maps a trace status to its text-mode marker.
func statusMark(status string) string {
	switch status {
	case harness.StatusSuccess:
		return "ok  "
	case harness.StatusFailure:
		return "FAIL"
	default:
		return "skip"
	}
}

// renderResult renders a human-readable report of one scenario run.
// Every declared step appears exactly once, executed or skipped.
func renderResult(result *harness.Result, verbose bool) string {
	out := fmt.Sprintf("scenario %s (run %s)\n", result.ScenarioName, result.RunToken)
	for _, ev := range result.Trace {
		line := fmt.Sprintf("  %s  %2d  %s", statusMark(ev.Status), ev.Index, ev.Title)
		if ev.Msg != "" {
			line += " - " + ev.Msg
		}
		out += line + "\n"
		if verbose && ev.Description != "" {
			out += fmt.Sprintf("            %s\n", ev.Description)
		}
	}
	if result.Pass {
		out += "PASS\n"
		return out
	}
	out += "FAIL\n"
	for _, msg := range result.Errors {
		out += fmt.Sprintf("  %s\n", msg)
	}
	return out
}
