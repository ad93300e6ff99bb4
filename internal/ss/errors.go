package ss

import (
	"errors"
	"fmt"
)

var (
	// ErrNonCausal rejects improper transfer functions at realization time
	ErrNonCausal = errors.New("ss: improper transfer function has no causal realization")

	// ErrNumericalInstability reports a NaN or Inf sample during simulation
	ErrNumericalInstability = errors.New("ss: simulation produced a non-finite value")

	// ErrInvalidGrid rejects empty, mismatched or non-increasing grids
	ErrInvalidGrid = errors.New("ss: invalid time grid or input")
)

// SimError pinpoints the sample at which a simulation failed
type SimError struct {
	Step int
	Time float64
	Err  error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("ss: step %d (t=%.4f): %v", e.Step, e.Time, e.Err)
}

func (e *SimError) Unwrap() error { return e.Err }
