package engine

import (
	"errors"
	"fmt"
)

// ErrEmptySteps is returned when a step sequence is empty.
//
// This is a structural precondition violation, not a runtime outcome: it is
// reported before any step executes and never appears inside a trace.
var ErrEmptySteps = errors.New("steps sequence must contain at least one step")

// MissingKeyError indicates a step required a key absent from its input Data.
//
// Step callables surface this as a returned error; the runner's fault barrier
// converts it into a failure State, so a missing key fails the step rather
// than the run.
type MissingKeyError struct {
	// Key is the required key that was absent.
	Key string
}

// Error implements the error interface.
func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("data is missing required key %q", e.Key)
}

// WrongTypeError indicates a key was present but held a value of an
// unexpected dynamic type.
type WrongTypeError struct {
	// Key is the key that was read.
	Key string

	// Want names the expected type.
	Want string

	// Got is the value actually stored under Key.
	Got any
}

// Error implements the error interface.
func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("data key %q holds %T, want %s", e.Key, e.Got, e.Want)
}

// IsMissingKey returns true if the error is a missing-key error.
// Uses errors.As to handle wrapped errors.
func IsMissingKey(err error) bool {
	var mk *MissingKeyError
	return errors.As(err, &mk)
}

// IsWrongType returns true if the error is a wrong-type error.
// Uses errors.As to handle wrapped errors.
func IsWrongType(err error) bool {
	var wt *WrongTypeError
	return errors.As(err, &wt)
}
