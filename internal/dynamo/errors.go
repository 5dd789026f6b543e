package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrNoBodies indicates an empty body set.
	ErrNoBodies = errors.New("dynamo: system has no bodies")

	// ErrReferenceOutOfRange indicates a reference index that names no body.
	ErrReferenceOutOfRange = errors.New("dynamo: reference body index out of range")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrDegenerateSeparation indicates two bodies at (or nearer than) the
	// minimum separation, where the inverse-square force is undefined.
	ErrDegenerateSeparation = errors.New("dynamo: degenerate separation between bodies")

	// ErrInvalidState indicates a body with NaN or Inf position or velocity.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrContextCanceled indicates the simulation was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")

	// ErrUnknownIntegrator indicates an integrator name with no registration.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Body    string
	Wrapped error
}

func (e *SimulationError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("step %d (t=%.0fs): %v", e.Step, e.Time, e.Wrapped)
	}
	return fmt.Sprintf("step %d (t=%.0fs) body %s: %v", e.Step, e.Time, e.Body, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
