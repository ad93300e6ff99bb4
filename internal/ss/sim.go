package ss

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Response holds one simulated output trajectory over its time grid.
// Both slices have equal length and the result is never mutated after
// a simulation returns it.
type Response struct {
	Time   []float64
	Output []float64
}

// dtReuseTol is the relative step-size change below which the cached
// discretization is reused
const dtReuseTol = 1e-12

// Simulate computes the forced response of the realization to the given
// input samples over a strictly increasing time grid, starting from a
// zero initial state. Each step applies the exact discretization of the
// continuous dynamics under a linearly interpolated input, so outputs
// match the analytic forced response at the grid points up to rounding.
// Two calls with identical arguments produce identical results.
func Simulate(r *Realization, time, input []float64) (*Response, error) {
	if err := validateGrid(time, input); err != nil {
		return nil, err
	}
	out := make([]float64, len(time))

	if r.order == 0 {
		for k, u := range input {
			y := r.D * u
			if !isFinite(y) {
				return nil, &SimError{Step: k, Time: time[k], Err: ErrNumericalInstability}
			}
			out[k] = y
		}
		return &Response{Time: cloneSamples(time), Output: out}, nil
	}

	disc := newDiscretizer(r)
	x := mat.NewVecDense(r.order, nil)
	next := mat.NewVecDense(r.order, nil)
	for k := range time {
		y := mat.Dot(r.C, x) + r.D*input[k]
		if !isFinite(y) {
			return nil, &SimError{Step: k, Time: time[k], Err: ErrNumericalInstability}
		}
		out[k] = y
		if k == len(time)-1 {
			break
		}
		disc.refresh(time[k+1] - time[k])
		next.MulVec(disc.ad, x)
		next.AddScaledVec(next, input[k], disc.bd0)
		next.AddScaledVec(next, input[k+1], disc.bd1)
		x, next = next, x
	}
	return &Response{Time: cloneSamples(time), Output: out}, nil
}

func validateGrid(time, input []float64) error {
	if len(time) == 0 {
		return fmt.Errorf("ss: empty time grid: %w", ErrInvalidGrid)
	}
	if len(input) != len(time) {
		return fmt.Errorf("ss: %d time samples but %d input samples: %w",
			len(time), len(input), ErrInvalidGrid)
	}
	if time[0] < 0 {
		return fmt.Errorf("ss: time grid starts at %.4g: %w", time[0], ErrInvalidGrid)
	}
	for i := 1; i < len(time); i++ {
		if time[i] <= time[i-1] {
			return fmt.Errorf("ss: time grid not strictly increasing at index %d: %w",
				i, ErrInvalidGrid)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func cloneSamples(s []float64) []float64 {
	c := make([]float64, len(s))
	copy(c, s)
	return c
}

// discretizer caches the first-order-hold discretization of the
// realization for the current step size
type discretizer struct {
	r   *Realization
	dt  float64
	m   *mat.Dense
	em  *mat.Dense
	ad  *mat.Dense
	bd0 *mat.VecDense
	bd1 *mat.VecDense
}

func newDiscretizer(r *Realization) *discretizer {
	n := r.order
	return &discretizer{
		r:   r,
		dt:  math.NaN(),
		m:   mat.NewDense(n+2, n+2, nil),
		em:  mat.NewDense(n+2, n+2, nil),
		ad:  mat.NewDense(n, n, nil),
		bd0: mat.NewVecDense(n, nil),
		bd1: mat.NewVecDense(n, nil),
	}
}

// refresh recomputes Ad, Bd0 and Bd1 when the step size changes. The
// block matrix [[A·dt, B·dt, 0], [0, 0, 1], [0, 0, 0]] exponentiates to
// the exact transition under a linearly interpolated input: the state
// update is x' = Ad·x + Bd0·u(k) + Bd1·u(k+1).
func (d *discretizer) refresh(dt float64) {
	if !math.IsNaN(d.dt) && math.Abs(dt-d.dt) <= dtReuseTol*d.dt {
		return
	}
	n := d.r.order
	d.m.Zero()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d.m.Set(i, j, d.r.A.At(i, j)*dt)
		}
		d.m.Set(i, n, d.r.B.AtVec(i)*dt)
	}
	d.m.Set(n, n+1, 1)
	d.em.Exp(d.m)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d.ad.Set(i, j, d.em.At(i, j))
		}
		b1 := d.em.At(i, n+1)
		d.bd1.SetVec(i, b1)
		d.bd0.SetVec(i, d.em.At(i, n)-b1)
	}
	d.dt = dt
}
