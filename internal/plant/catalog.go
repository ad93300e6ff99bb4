package plant

import (
	"errors"
	"fmt"

	"pidlab/internal/lti"
	"pidlab/internal/pid"
)

// ErrUnknownSystem reports a catalog name that does not resolve
var ErrUnknownSystem = errors.New("plant: unknown system")

// System enumerates the built-in example plants. The set is fixed at
// compile time; ParseSystem adapts CLI names at the boundary.
type System int

const (
	FirstOrderFast System = iota
	FirstOrderSlow
	Underdamped
	CriticallyDamped
	Overdamped
	PureIntegrator
	DelayDominant
	HighOrder
)

// Systems returns every catalog entry in declaration order
func Systems() []System {
	return []System{
		FirstOrderFast, FirstOrderSlow, Underdamped, CriticallyDamped,
		Overdamped, PureIntegrator, DelayDominant, HighOrder,
	}
}

// String returns the catalog name used on the command line
func (s System) String() string {
	switch s {
	case FirstOrderFast:
		return "first_order_fast"
	case FirstOrderSlow:
		return "first_order_slow"
	case Underdamped:
		return "underdamped"
	case CriticallyDamped:
		return "critically_damped"
	case Overdamped:
		return "overdamped"
	case PureIntegrator:
		return "integrator"
	case DelayDominant:
		return "delay"
	case HighOrder:
		return "high_order"
	}
	return fmt.Sprintf("System(%d)", int(s))
}

// Description returns a one-line summary for listings
func (s System) Description() string {
	switch s {
	case FirstOrderFast:
		return "fast first-order lag, tau=0.5s"
	case FirstOrderSlow:
		return "slow first-order lag, tau=3.0s"
	case Underdamped:
		return "second order, wn=1.0 rad/s, zeta=0.3"
	case CriticallyDamped:
		return "second order, wn=1.0 rad/s, zeta=1.0"
	case Overdamped:
		return "second order, wn=1.0 rad/s, zeta=2.0"
	case PureIntegrator:
		return "pure integrator 1/s, needs no extra integral action"
	case DelayDominant:
		return "first-order lag with 0.5s dead time (first-order Pade)"
	case HighOrder:
		return "5th order, poles -1, -2, -3, -0.5±1i"
	}
	return "unknown"
}

// Build constructs the catalog plant's transfer function
func (s System) Build() (lti.TransferFunction, error) {
	switch s {
	case FirstOrderFast:
		return FirstOrder(1, 0.5)
	case FirstOrderSlow:
		return FirstOrder(1, 3)
	case Underdamped:
		return SecondOrder(1, 1, 0.3)
	case CriticallyDamped:
		return SecondOrder(1, 1, 1)
	case Overdamped:
		return SecondOrder(1, 1, 2)
	case PureIntegrator:
		return Integrator(1), nil
	case DelayDominant:
		return Delayed(1, 1, 0.5)
	case HighOrder:
		poles := []complex128{-1, -2, -3, complex(-0.5, 1), complex(-0.5, -1)}
		return lti.FromPolesZeros(poles, nil, 1)
	}
	return lti.TransferFunction{}, fmt.Errorf("%w: %d", ErrUnknownSystem, int(s))
}

// Model returns the tuning-heuristic family tag for the catalog plant
func (s System) Model() pid.PlantModel {
	switch s {
	case FirstOrderFast:
		return pid.FirstOrderModel{Tau: 0.5}
	case FirstOrderSlow:
		return pid.FirstOrderModel{Tau: 3}
	case Underdamped:
		return pid.SecondOrderModel{Wn: 1, Zeta: 0.3}
	case CriticallyDamped:
		return pid.SecondOrderModel{Wn: 1, Zeta: 1}
	case Overdamped:
		return pid.SecondOrderModel{Wn: 1, Zeta: 2}
	case PureIntegrator:
		return pid.IntegratorModel{K: 1}
	default:
		return pid.UnknownModel{}
	}
}

// ParseSystem resolves a catalog name from the command line
func ParseSystem(name string) (System, error) {
	for _, s := range Systems() {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSystem, name)
}
