// Package analysis inspects closed-loop transfer functions after
// composition: pole locations, a stability verdict and the per-pole
// damping breakdown the tuning commands print. It works on the full,
// unreduced pole set; near-cancelling pole/zero pairs stay visible.
package analysis

import (
	"math"
	"math/cmplx"
	"sort"

	"pidlab/internal/lti"
)

// PoleInfo describes one closed-loop pole
type PoleInfo struct {
	Pole      complex128
	Frequency float64 // natural frequency |p| in rad/s
	Damping   float64 // damping ratio -Re(p)/|p|, 0 for a pole at the origin
	Stable    bool    // strictly negative real part
}

// Report is the stability summary of one closed-loop transfer function
type Report struct {
	Poles    []PoleInfo
	Stable   bool       // every pole strictly in the left half plane
	Dominant complex128 // pole with the largest real part
}

// stabilityTol guards against calling a pole on the axis stable due to
// eigenvalue rounding
const stabilityTol = 1e-9

// ClosedLoop computes the pole report for a composed transfer function.
// Poles are sorted by descending real part, so the dominant (slowest or
// unstable) dynamics come first.
func ClosedLoop(tf lti.TransferFunction) (*Report, error) {
	poles, err := tf.Poles()
	if err != nil {
		return nil, err
	}
	sort.Slice(poles, func(i, j int) bool {
		if real(poles[i]) != real(poles[j]) {
			return real(poles[i]) > real(poles[j])
		}
		return imag(poles[i]) > imag(poles[j])
	})

	rep := &Report{Stable: len(poles) > 0}
	for i, p := range poles {
		wn := cmplx.Abs(p)
		var zeta float64
		if wn > 0 {
			zeta = -real(p) / wn
		}
		stable := real(p) < -stabilityTol
		if !stable {
			rep.Stable = false
		}
		rep.Poles = append(rep.Poles, PoleInfo{Pole: p, Frequency: wn, Damping: zeta, Stable: stable})
		if i == 0 {
			rep.Dominant = p
		}
	}
	return rep, nil
}

// SettlingEstimate predicts the 2% settling time from the dominant
// pole, 4/|Re(dominant)|. Infinite for marginal or unstable loops.
func (r *Report) SettlingEstimate() float64 {
	sigma := -real(r.Dominant)
	if sigma <= 0 {
		return math.Inf(1)
	}
	return 4 / sigma
}
