package engine

// Spec bundles a fixed, ordered sequence of steps into one named test
// scenario.
//
// The sequence is copied at construction and immutable afterwards; a Spec
// must contain at least one step.
type Spec struct {
	title       string
	description string
	steps       []Step
}

// NewSpec builds a Spec with the given title, description and steps.
// Returns ErrEmptySteps if no steps are given.
func NewSpec(title, description string, steps ...Step) (Spec, error) {
	if len(steps) == 0 {
		return Spec{}, ErrEmptySteps
	}
	owned := make([]Step, len(steps))
	copy(owned, steps)
	return Spec{title: title, description: description, steps: owned}, nil
}

// Title returns the spec's name.
func (s Spec) Title() string { return s.title }

// Description returns the spec's free-text description.
func (s Spec) Description() string { return s.description }

// Steps returns a copy of the spec's step sequence.
func (s Spec) Steps() []Step {
	out := make([]Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// Len returns the number of steps in the spec.
func (s Spec) Len() int { return len(s.steps) }

// RunAll runs every step with the given initial data and returns the ordered
// trace of Results, with the semantics of Run.
func (s Spec) RunAll(initial Data) ([]Result, error) {
	return Run(s.steps, initial)
}
