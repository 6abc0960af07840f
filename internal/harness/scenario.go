package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a declarative test scenario for the step engine.
// A scenario names a chain of steps, the initial data fed to the first step,
// and optional per-step expectations on the resulting trace.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// RunToken is an optional fixed run token for deterministic tests.
	// If empty, each run gets a fresh UUID token. Pin a token when the trace
	// is compared against a golden file.
	RunToken string `yaml:"run_token,omitempty"`

	// Initial contains the data handed to the first step.
	Initial map[string]any `yaml:"initial,omitempty"`

	// Steps declares the ordered step chain. Each entry names a registered
	// step builder.
	Steps []StepDecl `yaml:"steps"`

	// Expect contains per-step expectations, aligned by position with Steps.
	// It may be shorter than Steps; missing positions are not validated.
	Expect []ExpectClause `yaml:"expect,omitempty"`
}

// StepDecl declares a single step of the chain.
type StepDecl struct {
	// Op names the step builder in the registry (e.g. "add", "result_is").
	Op string `yaml:"op"`

	// Title optionally overrides the builder's title.
	Title string `yaml:"title,omitempty"`

	// Description optionally overrides the builder's description.
	Description string `yaml:"description,omitempty"`

	// Args contains the builder arguments as a map.
	Args map[string]any `yaml:"args,omitempty"`
}

// ExpectClause specifies the expected outcome of one step.
type ExpectClause struct {
	// Status is the expected outcome: "success", "failure" or "skipped".
	Status string `yaml:"status"`

	// Msg is the expected failure or skip explanation.
	// If empty, the message is not validated.
	Msg string `yaml:"msg,omitempty"`

	// Data contains expected output data values.
	// This is a subset match - only specified keys are validated.
	Data map[string]any `yaml:"data,omitempty"`
}

// Status constants for ExpectClause and TraceEvent.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusSkipped = "skipped"
)

// LoadScenario reads and parses a scenario YAML file.
// The document is validated against the embedded CUE schema and then decoded
// with strict field checking, so typos in field names are rejected rather
// than silently ignored.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates a scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	// Structural validation first, for position-aware schema errors.
	if err := ValidateSchema(data); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Cross-field checks the schema cannot express.
	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks required fields and cross-field constraints.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Op == "" {
			return fmt.Errorf("steps[%d]: op is required", i)
		}
	}

	if len(s.Expect) > len(s.Steps) {
		return fmt.Errorf("expect has %d clauses but there are only %d steps", len(s.Expect), len(s.Steps))
	}

	for i, clause := range s.Expect {
		switch clause.Status {
		case StatusSuccess, StatusFailure, StatusSkipped:
		case "":
			return fmt.Errorf("expect[%d]: status is required", i)
		default:
			return fmt.Errorf("expect[%d]: unknown status %q", i, clause.Status)
		}
	}

	return nil
}
