package harness

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sort"

	"github.com/google/uuid"

	"github.com/roach88/lockstep/internal/engine"
)

// TraceEvent is one entry of the reported execution trace, derived from an
// engine Result.
type TraceEvent struct {
	// Index is the zero-based position of the step in the chain.
	Index int `json:"index"`

	// Title is the step's human label.
	Title string `json:"title"`

	// Description is the step's free text, omitted when empty.
	Description string `json:"description,omitempty"`

	// Status is "success", "failure" or "skipped".
	Status string `json:"status"`

	// Msg carries the failure or skip explanation.
	Msg string `json:"msg,omitempty"`

	// Data is the output data of a successful step.
	Data map[string]any `json:"data,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// ScenarioName echoes the executed scenario's name.
	ScenarioName string `json:"scenario_name"`

	// RunToken identifies this run. Fixed by the scenario for deterministic
	// traces, otherwise a fresh UUID.
	RunToken string `json:"run_token"`

	// Pass indicates overall success: every step succeeded and every expect
	// clause matched.
	Pass bool `json:"pass"`

	// Trace contains one event per declared step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation mismatches. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// addError records an expectation mismatch and marks the result failed.
func (r *Result) addError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// TokenGenerator produces run tokens.
type TokenGenerator interface {
	Generate() string
}

// uuidTokenGenerator is the production token source.
type uuidTokenGenerator struct{}

func (uuidTokenGenerator) Generate() string {
	return uuid.NewString()
}

// Harness executes scenarios against the step engine.
type Harness struct {
	registry *Registry
	logger   *slog.Logger
	tokens   TokenGenerator
}

// Option configures a Harness.
type Option func(*Harness)

// WithRegistry replaces the default step builder registry.
func WithRegistry(r *Registry) Option {
	return func(h *Harness) { h.registry = r }
}

// WithLogger sets the harness logger. The default discards everything, which
// keeps test output quiet.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// WithTokenGenerator replaces the UUID run token source, e.g. with
// testutil.FixedTokenGenerator for golden tests.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(h *Harness) { h.tokens = g }
}

// New creates a Harness with the default registry, a discarding logger and
// UUID run tokens.
func New(opts ...Option) *Harness {
	h := &Harness{
		registry: DefaultRegistry(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tokens:   uuidTokenGenerator{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default Harness.
func Run(scenario *Scenario) (*Result, error) {
	return New().Run(scenario)
}

// Run builds the scenario's step chain, executes it and evaluates the expect
// clauses.
//
// Execution flow:
// 1. Build every declared step through the registry
// 2. Run the chain against the scenario's initial data
// 3. Convert the engine trace into TraceEvents
// 4. Match expect clauses against the trace
//
// The returned error covers build and structural problems only; step-level
// failures land in the Result.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	// LoadScenario enforces this too, but a Scenario built in code bypasses
	// it, and evaluateExpectations indexes the trace by clause position.
	if len(scenario.Expect) > len(scenario.Steps) {
		return nil, fmt.Errorf("expect has %d clauses but there are only %d steps", len(scenario.Expect), len(scenario.Steps))
	}

	steps := make([]engine.Step, 0, len(scenario.Steps))
	for i, decl := range scenario.Steps {
		step, err := h.registry.Build(decl)
		if err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
		steps = append(steps, step)
	}

	token := scenario.RunToken
	if token == "" {
		token = h.tokens.Generate()
	}
	h.logger.Info("running scenario", "name", scenario.Name, "run_token", token, "steps", len(steps))

	results, err := engine.Run(steps, engine.Data(scenario.Initial).Clone())
	if err != nil {
		return nil, fmt.Errorf("failed to run steps: %w", err)
	}

	out := &Result{
		ScenarioName: scenario.Name,
		RunToken:     token,
		Pass:         true,
		Trace:        make([]TraceEvent, 0, len(results)),
	}
	for i, r := range results {
		out.Trace = append(out.Trace, traceEvent(i, r))
		if !r.State.IsSuccess() {
			h.logger.Debug("step did not succeed", "index", i, "title", r.Step.Title(), "msg", r.State.Msg())
		}
	}

	evaluateExpectations(out, scenario.Expect)
	return out, nil
}

// traceEvent converts an engine Result into its trace entry.
func traceEvent(index int, r engine.Result) TraceEvent {
	ev := TraceEvent{
		Index:       index,
		Title:       r.Step.Title(),
		Description: r.Step.Description(),
		Status:      statusOf(r.State),
		Msg:         r.State.Msg(),
	}
	if r.State.IsSuccess() && len(r.State.Data()) > 0 {
		// Cloned so trace consumers cannot alias the state handed to the
		// next step.
		ev.Data = r.State.Data().Clone()
	}
	return ev
}

// statusOf maps state predicates to the trace status string.
func statusOf(s engine.State) string {
	switch {
	case s.IsSkipped():
		return StatusSkipped
	case s.IsFailure():
		return StatusFailure
	default:
		return StatusSuccess
	}
}

// evaluateExpectations matches expect clauses against the trace, collecting
// mismatches into the result's errors.
func evaluateExpectations(result *Result, expect []ExpectClause) {
	for i, clause := range expect {
		ev := result.Trace[i]

		if ev.Status != clause.Status {
			result.addError(fmt.Sprintf("step %d (%s): expected status %s, got %s", i, ev.Title, clause.Status, ev.Status))
			continue
		}
		if clause.Msg != "" && ev.Msg != clause.Msg {
			result.addError(fmt.Sprintf("step %d (%s): expected msg %q, got %q", i, ev.Title, clause.Msg, ev.Msg))
		}
		for _, key := range sortedKeys(clause.Data) {
			want := clause.Data[key]
			got, ok := ev.Data[key]
			if !ok {
				result.addError(fmt.Sprintf("step %d (%s): expected data key %q is absent", i, ev.Title, key))
				continue
			}
			if !looseEqual(want, got) {
				result.addError(fmt.Sprintf("step %d (%s): data key %q: expected %v, got %v", i, ev.Title, key, want, got))
			}
		}
	}
}

// sortedKeys returns map keys in sorted order so expectation errors are
// reported deterministically.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// looseEqual compares expected and actual data values, treating all integer
// widths as equivalent. YAML decoding and step arithmetic disagree on int
// vs int64, and the distinction carries no meaning for expectations.
func looseEqual(want, got any) bool {
	if wi, ok := asInt64(want); ok {
		gi, ok := asInt64(got)
		return ok && wi == gi
	}
	return reflect.DeepEqual(want, got)
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}
