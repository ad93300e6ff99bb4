// Package ss realizes transfer functions in controllable canonical form
// and simulates their forced response.
//
// [Realize] converts an lti.TransferFunction into (A, B, C, D) matrices
// with one state per denominator degree. [Simulate] then advances the
// state across the caller's time grid using the exact discretization of
// the dynamics under a piecewise-linear input, computed from a block
// matrix exponential. There is no solver tolerance to tune: accuracy at
// the grid points is limited only by rounding.
//
// Unbounded responses are not faults. A pure integrator ramps without
// limit under a step input and an unstable pole grows exponentially;
// both simulate normally. Only a non-finite sample aborts the run with
// ErrNumericalInstability.
//
// [Stepper] provides a fixed-step RK4 integrator over the same
// realization for callers that inject inputs sample by sample, such as
// the sampled PID loop.
package ss
