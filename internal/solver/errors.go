package solver

import (
	"errors"
	"fmt"
)

// Failure reasons. Match them with errors.Is against a *StaticError or
// *DynamicError.
var (
	ErrSingularStiffness         = errors.New("singular stiffness matrix: structure is unstable or under-constrained")
	ErrMissingBoundaryConditions = errors.New("missing boundary conditions")
	ErrNoFreeDofs                = errors.New("no free degrees of freedom")
	ErrNoValidModes              = errors.New("no valid vibration modes")
	ErrLinearAlgebraFailure      = errors.New("eigenvalue computation failed")
	ErrNoElements                = errors.New("model has no elements")
)

// StaticError is returned by SolveStatic
type StaticError struct {
	Reason error
	Detail string
}

func (e *StaticError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("static analysis: %v", e.Reason)
	}
	return fmt.Sprintf("static analysis: %v: %s", e.Reason, e.Detail)
}

func (e *StaticError) Unwrap() error { return e.Reason }

// DynamicError is returned by SolveDynamic
type DynamicError struct {
	Reason error
	Detail string
}

func (e *DynamicError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("modal analysis: %v", e.Reason)
	}
	return fmt.Sprintf("modal analysis: %v: %s", e.Reason, e.Detail)
}

func (e *DynamicError) Unwrap() error { return e.Reason }
