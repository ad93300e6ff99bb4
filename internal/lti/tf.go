package lti

import (
	"fmt"
	"math/cmplx"
)

// TransferFunction is a ratio of real polynomials in the Laplace
// variable. Values are immutable once built; every operation returns a
// new instance and leaves its operands untouched.
type TransferFunction struct {
	Num Polynomial
	Den Polynomial
}

// NewTransferFunction validates and canonicalizes a numerator/denominator pair
func NewTransferFunction(num, den Polynomial) (TransferFunction, error) {
	d := NewPolynomial(den...)
	if d.IsZero() {
		return TransferFunction{}, ErrZeroDenominator
	}
	return TransferFunction{Num: NewPolynomial(num...), Den: d}, nil
}

// Unity returns the unit transfer function 1/1
func Unity() TransferFunction {
	return TransferFunction{Num: Polynomial{1}, Den: Polynomial{1}}
}

// Series cascades two blocks. Numerators and denominators multiply by
// convolution; common roots are NOT cancelled.
func Series(a, b TransferFunction) TransferFunction {
	return TransferFunction{Num: a.Num.Mul(b.Num), Den: a.Den.Mul(b.Den)}
}

// Feedback closes a negative-feedback loop around forward path g with
// feedback path h, returning g / (1 + g·h)
func Feedback(g, h TransferFunction) (TransferFunction, error) {
	return FeedbackSign(g, h, 1)
}

// FeedbackSign closes the loop g / (1 + sign·g·h) by cross-multiplication.
// sign +1 selects negative feedback, -1 positive feedback.
func FeedbackSign(g, h TransferFunction, sign float64) (TransferFunction, error) {
	num := g.Num.Mul(h.Den)
	den := g.Den.Mul(h.Den).Add(g.Num.Mul(h.Num).Scale(sign))
	if den.IsZero() {
		return TransferFunction{}, ErrDegenerateFeedback
	}
	return TransferFunction{Num: num, Den: den}, nil
}

// FromPolesZeros expands explicit root sets into a transfer function
// with the numerator scaled by gain. Both sets must be closed under
// conjugation.
func FromPolesZeros(poles, zeros []complex128, gain float64) (TransferFunction, error) {
	den, err := FromRoots(poles)
	if err != nil {
		return TransferFunction{}, err
	}
	num, err := FromRoots(zeros)
	if err != nil {
		return TransferFunction{}, err
	}
	return TransferFunction{Num: num.Scale(gain), Den: den}, nil
}

// PadeDelay approximates the dead time e^{-sL} by the first-order Padé
// quotient (1 - Ls/2) / (1 + Ls/2). A zero delay collapses to unity.
func PadeDelay(delay float64) (TransferFunction, error) {
	if delay < 0 {
		return TransferFunction{}, fmt.Errorf("lti: delay %.4g: %w", delay, ErrNegativeDelay)
	}
	if delay == 0 {
		return Unity(), nil
	}
	return TransferFunction{
		Num: Polynomial{-delay / 2, 1},
		Den: Polynomial{delay / 2, 1},
	}, nil
}

// Eval evaluates the rational function at a complex point
func (t TransferFunction) Eval(s complex128) complex128 {
	return t.Num.Eval(s) / t.Den.Eval(s)
}

// DCGain returns the zero-frequency gain. Integrating systems yield
// ±Inf, and a 0/0 denominator-numerator pair yields NaN.
func (t TransferFunction) DCGain() float64 {
	n := t.Num.Trim()
	d := t.Den.Trim()
	return n[len(n)-1] / d[len(d)-1]
}

// Poles returns the roots of the denominator
func (t TransferFunction) Poles() ([]complex128, error) {
	return t.Den.Roots()
}

// Zeros returns the roots of the numerator
func (t TransferFunction) Zeros() ([]complex128, error) {
	return t.Num.Roots()
}

// Reduce cancels zero/pole pairs that coincide within tol and rebuilds
// the transfer function from the surviving roots, preserving leading
// coefficients. Series and Feedback never call this; reduction is an
// explicit caller decision.
func (t TransferFunction) Reduce(tol float64) (TransferFunction, error) {
	zeros, err := t.Num.Roots()
	if err != nil {
		return TransferFunction{}, err
	}
	poles, err := t.Den.Roots()
	if err != nil {
		return TransferFunction{}, err
	}
	cancelled := make([]bool, len(poles))
	var keptZeros []complex128
	for _, z := range zeros {
		match := -1
		best := tol
		for j, p := range poles {
			if cancelled[j] {
				continue
			}
			if d := cmplx.Abs(z - p); d <= best {
				match, best = j, d
			}
		}
		if match >= 0 {
			cancelled[match] = true
		} else {
			keptZeros = append(keptZeros, z)
		}
	}
	var keptPoles []complex128
	for j, p := range poles {
		if !cancelled[j] {
			keptPoles = append(keptPoles, p)
		}
	}
	num, err := FromRoots(keptZeros)
	if err != nil {
		return TransferFunction{}, err
	}
	den, err := FromRoots(keptPoles)
	if err != nil {
		return TransferFunction{}, err
	}
	nt := t.Num.Trim()
	dt := t.Den.Trim()
	return TransferFunction{Num: num.Scale(nt[0]), Den: den.Scale(dt[0])}, nil
}

// String renders the transfer function as "(num) / (den)"
func (t TransferFunction) String() string {
	return fmt.Sprintf("(%s) / (%s)", t.Num, t.Den)
}
