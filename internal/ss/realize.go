package ss

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"pidlab/internal/lti"
)

// Realization is a controllable-canonical-form state-space model
// (A, B, C, D) of a SISO transfer function. The state dimension equals
// the denominator degree; an order-zero realization is a pure gain.
type Realization struct {
	A *mat.Dense
	B *mat.VecDense
	C *mat.VecDense
	D float64

	order int
}

// Realize builds the canonical realization of tf. Construction is a
// pure function of the transfer function and caches nothing; improper
// transfer functions fail with ErrNonCausal.
func Realize(tf lti.TransferFunction) (*Realization, error) {
	num := tf.Num.Trim()
	den := tf.Den.Trim()
	if den.IsZero() {
		return nil, fmt.Errorf("ss: realize: %w", lti.ErrZeroDenominator)
	}
	n := len(den) - 1
	m := len(num) - 1
	if m > n {
		return nil, fmt.Errorf("ss: numerator degree %d exceeds denominator degree %d: %w",
			m, n, ErrNonCausal)
	}

	// monic denominator, numerator padded to degree n
	lead := den[0]
	a := make([]float64, n+1)
	for i, c := range den {
		a[i] = c / lead
	}
	b := make([]float64, n+1)
	for i, c := range num {
		b[n-m+i] = c / lead
	}

	d := b[0]
	if n == 0 {
		return &Realization{D: d}, nil
	}

	A := mat.NewDense(n, n, nil)
	for i := 0; i < n-1; i++ {
		A.Set(i, i+1, 1)
	}
	for j := 0; j < n; j++ {
		A.Set(n-1, j, -a[n-j])
	}
	B := mat.NewVecDense(n, nil)
	B.SetVec(n-1, 1)
	C := mat.NewVecDense(n, nil)
	for j := 0; j < n; j++ {
		C.SetVec(j, b[n-j]-a[n-j]*d)
	}
	return &Realization{A: A, B: B, C: C, D: d, order: n}, nil
}

// Order returns the state dimension
func (r *Realization) Order() int { return r.order }

// Output computes y = Cx + Du
func (r *Realization) Output(x []float64, u float64) float64 {
	y := r.D * u
	for j := 0; j < r.order; j++ {
		y += r.C.AtVec(j) * x[j]
	}
	return y
}

// derivative writes x' = Ax + Bu into dst
func (r *Realization) derivative(x []float64, u float64, dst []float64) {
	for i := 0; i < r.order; i++ {
		s := r.B.AtVec(i) * u
		for j := 0; j < r.order; j++ {
			s += r.A.At(i, j) * x[j]
		}
		dst[i] = s
	}
}
