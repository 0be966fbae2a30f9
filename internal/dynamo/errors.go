package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrEmptySystem indicates a system with no bodies.
	ErrEmptySystem = errors.New("dynamo: system has no bodies")

	// ErrInvalidMass indicates a body with zero, negative or non-finite mass.
	ErrInvalidMass = errors.New("dynamo: body mass must be positive and finite")

	// ErrInvalidState indicates a position or velocity went NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidConfig indicates run parameters outside their valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid run configuration")

	// ErrUnknownLaw indicates a force law name that is not registered.
	ErrUnknownLaw = errors.New("dynamo: unknown force law")
)

// SimulationError wraps an error with the cycle at which it occurred.
type SimulationError struct {
	Cycle   int
	Time    float64
	State   System
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("cycle %d (t=%.4f): %v", e.Cycle, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
