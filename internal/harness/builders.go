package harness

import (
	"fmt"
	"sort"

	"github.com/roach88/lockstep/internal/engine"
)

// Builder constructs a Step from the arguments of a scenario step
// declaration. Builders validate their arguments eagerly, so a bad
// declaration fails at build time rather than mid-run.
type Builder func(args engine.Data) (engine.Step, error)

// Registry maps op names to step builders.
//
// Registration is explicit: the harness never discovers builders on its own.
// The zero value is not usable; create registries with NewRegistry or
// DefaultRegistry.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Register adds a builder under the given op name.
// Returns an error if the op is already registered.
func (r *Registry) Register(op string, b Builder) error {
	if op == "" {
		return fmt.Errorf("op name must not be empty")
	}
	if b == nil {
		return fmt.Errorf("builder for op %q must not be nil", op)
	}
	if _, exists := r.builders[op]; exists {
		return fmt.Errorf("op %q is already registered", op)
	}
	r.builders[op] = b
	return nil
}

// Lookup returns the builder registered under op.
func (r *Registry) Lookup(op string) (Builder, error) {
	b, ok := r.builders[op]
	if !ok {
		return nil, fmt.Errorf("unknown op %q (registered: %v)", op, r.Ops())
	}
	return b, nil
}

// Ops returns the registered op names in sorted order.
func (r *Registry) Ops() []string {
	ops := make([]string, 0, len(r.builders))
	for op := range r.builders {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// Build constructs the Step declared by decl, applying title and description
// overrides from the declaration.
func (r *Registry) Build(decl StepDecl) (engine.Step, error) {
	builder, err := r.Lookup(decl.Op)
	if err != nil {
		return engine.Step{}, err
	}

	args := engine.Data(decl.Args)
	step, err := builder(args.Clone())
	switch {
	case err == nil:
	case engine.IsMissingKey(err):
		return engine.Step{}, fmt.Errorf("op %q: missing required arg: %w", decl.Op, err)
	case engine.IsWrongType(err):
		return engine.Step{}, fmt.Errorf("op %q: bad arg type: %w", decl.Op, err)
	default:
		return engine.Step{}, fmt.Errorf("op %q: %w", decl.Op, err)
	}

	if decl.Title != "" {
		step = step.WithTitle(decl.Title)
	}
	if decl.Description != "" {
		step = step.WithDescription(decl.Description)
	}
	return step, nil
}

// DefaultRegistry creates a registry with the built-in step builders.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for op, b := range map[string]Builder{
		"add_two_numbers": buildAddTwoNumbers,
		"add":             buildAdd,
		"subtract":        buildSubtract,
		"result_is":       buildResultIs,
		"set":             buildSet,
		"fail":            buildFail,
		"panic":           buildPanic,
	} {
		// Registration over a fresh registry cannot collide.
		if err := r.Register(op, b); err != nil {
			panic(err)
		}
	}
	return r
}

// addTwoNumbers sums the "a" and "b" inputs into "result".
func addTwoNumbers(d engine.Data) (engine.State, error) {
	a, err := d.Int("a")
	if err != nil {
		return engine.State{}, err
	}
	b, err := d.Int("b")
	if err != nil {
		return engine.State{}, err
	}
	return engine.Success(engine.Data{"result": a + b}), nil
}

func buildAddTwoNumbers(engine.Data) (engine.Step, error) {
	return engine.NewStep(addTwoNumbers).
		WithDescription("Sums inputs a and b into result."), nil
}

func buildAdd(args engine.Data) (engine.Step, error) {
	n, err := args.Int("value")
	if err != nil {
		return engine.Step{}, err
	}
	step := engine.TitledStep(fmt.Sprintf("Add %d.", n))(func(d engine.Data) (engine.State, error) {
		result, err := d.Int("result")
		if err != nil {
			return engine.State{}, err
		}
		return engine.Success(d.With("result", result+n)), nil
	})
	return step.WithDescription(fmt.Sprintf("Adds %d to the running result.", n)), nil
}

func buildSubtract(args engine.Data) (engine.Step, error) {
	n, err := args.Int("value")
	if err != nil {
		return engine.Step{}, err
	}
	step := engine.TitledStep(fmt.Sprintf("Subtract %d.", n))(func(d engine.Data) (engine.State, error) {
		result, err := d.Int("result")
		if err != nil {
			return engine.State{}, err
		}
		return engine.Success(d.With("result", result-n)), nil
	})
	return step.WithDescription(fmt.Sprintf("Subtracts %d from the running result.", n)), nil
}

func buildResultIs(args engine.Data) (engine.Step, error) {
	n, err := args.Int("value")
	if err != nil {
		return engine.Step{}, err
	}
	step := engine.TitledStep(fmt.Sprintf("Given result is %d.", n))(func(d engine.Data) (engine.State, error) {
		result, err := d.Int("result")
		if err != nil {
			return engine.State{}, err
		}
		if result != n {
			return engine.Failure(fmt.Sprintf("Given result %d is not equal to %d.", result, n)), nil
		}
		return engine.Success(d), nil
	})
	return step.WithDescription(fmt.Sprintf("Checks whether the running result equals %d.", n)), nil
}

func buildSet(args engine.Data) (engine.Step, error) {
	key, err := args.String("key")
	if err != nil {
		return engine.Step{}, err
	}
	value, err := args.Get("value")
	if err != nil {
		return engine.Step{}, err
	}
	step := engine.TitledStep(fmt.Sprintf("Set %s.", key))(func(d engine.Data) (engine.State, error) {
		return engine.Success(d.With(key, value)), nil
	})
	return step.WithDescription(fmt.Sprintf("Stores a fixed value under %q.", key)), nil
}

func buildFail(args engine.Data) (engine.Step, error) {
	msg, err := args.String("msg")
	if err != nil {
		return engine.Step{}, err
	}
	step := engine.TitledStep("Fail.")(func(engine.Data) (engine.State, error) {
		return engine.Failure(msg), nil
	})
	return step.WithDescription("Declares a failure with a fixed message."), nil
}

func buildPanic(args engine.Data) (engine.Step, error) {
	msg, err := args.String("msg")
	if err != nil {
		return engine.Step{}, err
	}
	step := engine.TitledStep("Panic.")(func(engine.Data) (engine.State, error) {
		panic(msg)
	})
	return step.WithDescription("Panics to exercise the fault barrier."), nil
}
