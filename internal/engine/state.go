package engine

// skippedMsg is the default explanation for a skipped step.
const skippedMsg = "Step skipped."

// State is the immutable outcome of executing (or skipping) a Step.
//
// Exactly one of success, failure and skip holds. States are produced only by
// the Success, Failure and Skip constructors and never mutated.
type State struct {
	data           Data
	breakExecution bool
	skipped        bool
	msg            string
}

// Success builds the outcome of a step that finished successfully.
// The given Data is carried forward as the next step's input.
func Success(data Data) State {
	if data == nil {
		data = Data{}
	}
	return State{data: data}
}

// Failure builds the outcome of a step that finished with a declared
// failure. Pass a custom failure explanation as msg. A failure carries no
// data; every subsequent step in the run is skipped.
func Failure(msg string) State {
	return State{breakExecution: true, msg: msg}
}

// Skip marks the given step as skipped with the given reason.
//
// Skip is pure: it returns a copy of the step whose callable ignores its
// input and manufactures a skipped State carrying only the reason (or
// "Step skipped." when reason is empty). The runner uses it to convert
// not-yet-run steps after a failure; step authors should not need it.
func Skip(step Step, reason string) Step {
	if reason == "" {
		reason = skippedMsg
	}
	step.fn = func(Data) (State, error) {
		return State{skipped: true, msg: reason}, nil
	}
	return step
}

// Data returns the values carried to the next step.
// Only success states carry data; failure and skip states return an empty
// Data.
func (s State) Data() Data {
	if s.data == nil {
		return Data{}
	}
	return s.data
}

// Msg returns the failure or skip explanation, "" for success states.
func (s State) Msg() string { return s.msg }

// IsFailure returns true if the step executed and failed.
func (s State) IsFailure() bool {
	return s.breakExecution && !s.skipped
}

// IsSuccess returns true if the step executed successfully.
func (s State) IsSuccess() bool {
	return !s.breakExecution && !s.skipped
}

// IsSkipped returns true if the step wasn't executed. This mostly relates to
// steps converted to skips after a previous step failed.
func (s State) IsSkipped() bool {
	return s.skipped
}
