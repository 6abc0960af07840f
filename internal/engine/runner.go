package engine

import "fmt"

// Result pairs a Step with the State it produced. One Result is recorded per
// declared step, executed or skipped.
type Result struct {
	Step  Step
	State State
}

// Run drives a linear sequence of steps, feeding each one the previous
// state's data, and returns the ordered trace of Results.
//
// The trace length always equals len(steps): after the first failure (or
// skip), every remaining step is recorded as skipped instead of executed, so
// a report can always cover the whole declared sequence. Faults inside step
// callables are absorbed by the fault barrier and recorded as failures -
// including a fault in the very first step.
//
// The only error Run returns is ErrEmptySteps, reported before anything
// executes.
func Run(steps []Step, initial Data) ([]Result, error) {
	if len(steps) == 0 {
		return nil, ErrEmptySteps
	}
	head, tail := steps[0], steps[1:]

	results := make([]Result, 0, len(steps))
	state := invoke(head, initial)
	results = append(results, Result{Step: head, State: state})

	for _, step := range tail {
		if state.IsFailure() || state.IsSkipped() {
			state = invoke(Skip(step, ""), nil)
		} else {
			state = invoke(step, state.Data())
		}
		results = append(results, Result{Step: step, State: state})
	}
	return results, nil
}

// invoke runs a single step callable behind the fault barrier.
//
// A returned error or a panic becomes a failure State naming the fault's
// type; nothing a callable does can escape past this function.
func invoke(step Step, data Data) (state State) {
	defer func() {
		if r := recover(); r != nil {
			state = Failure(faultMsg(r))
		}
	}()

	state, err := step.fn(data)
	if err != nil {
		return Failure(faultMsg(err))
	}
	return state
}

// faultMsg names the dynamic type of a fault for the failure message.
func faultMsg(fault any) string {
	return fmt.Sprintf("Exception %T occurred.", fault)
}
