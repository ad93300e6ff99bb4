package plant

import (
	"errors"
	"fmt"

	"pidlab/internal/lti"
)

// ErrInvalidParam rejects plant parameters outside their physical range
var ErrInvalidParam = errors.New("plant: invalid parameter")

// FirstOrder builds the first-order lag k/(τs + 1)
func FirstOrder(k, tau float64) (lti.TransferFunction, error) {
	if tau <= 0 {
		return lti.TransferFunction{}, fmt.Errorf("%w: time constant %.4g must be positive", ErrInvalidParam, tau)
	}
	return lti.TransferFunction{
		Num: lti.Polynomial{k},
		Den: lti.Polynomial{tau, 1},
	}, nil
}

// SecondOrder builds the standard second-order plant
// k·ωn² / (s² + 2ζωns + ωn²)
func SecondOrder(k, wn, zeta float64) (lti.TransferFunction, error) {
	if wn <= 0 {
		return lti.TransferFunction{}, fmt.Errorf("%w: natural frequency %.4g must be positive", ErrInvalidParam, wn)
	}
	if zeta < 0 {
		return lti.TransferFunction{}, fmt.Errorf("%w: damping ratio %.4g must be non-negative", ErrInvalidParam, zeta)
	}
	return lti.TransferFunction{
		Num: lti.Polynomial{k * wn * wn},
		Den: lti.Polynomial{1, 2 * zeta * wn, wn * wn},
	}, nil
}

// Integrator builds the pure integrator k/s
func Integrator(k float64) lti.TransferFunction {
	return lti.TransferFunction{
		Num: lti.Polynomial{k},
		Den: lti.Polynomial{1, 0},
	}
}

// Delayed builds a first-order lag k/(τs+1) cascaded with a first-order
// Padé approximation of a dead time. An exact delay has no finite-order
// transfer function, so the Padé quotient stands in for it.
func Delayed(k, tau, delay float64) (lti.TransferFunction, error) {
	base, err := FirstOrder(k, tau)
	if err != nil {
		return lti.TransferFunction{}, err
	}
	pade, err := lti.PadeDelay(delay)
	if err != nil {
		return lti.TransferFunction{}, err
	}
	return lti.Series(base, pade), nil
}
