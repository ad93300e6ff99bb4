package pid

import (
	"errors"
	"fmt"

	"pidlab/internal/lti"
)

var (
	// ErrInvalidUltimate rejects non-positive ultimate gain or period
	ErrInvalidUltimate = errors.New("pid: ultimate gain and period must be positive")

	// ErrPolePlacement reports a desired pole set that does not expand
	// to a real characteristic polynomial
	ErrPolePlacement = errors.New("pid: desired poles must be real or conjugate pairs")
)

// PlantModel tags the plant family a tuning heuristic starts from.
// The set is sealed; heuristics switch over the concrete variants.
type PlantModel interface {
	plantModel()
}

// FirstOrderModel is a first-order lag with time constant Tau
type FirstOrderModel struct {
	Tau float64
}

// SecondOrderModel is a second-order plant with natural frequency Wn
// and damping ratio Zeta
type SecondOrderModel struct {
	Wn   float64
	Zeta float64
}

// IntegratorModel is a pure integrator with gain K
type IntegratorModel struct {
	K float64
}

// UnknownModel stands in when the plant family is not identified
type UnknownModel struct{}

func (FirstOrderModel) plantModel()  {}
func (SecondOrderModel) plantModel() {}
func (IntegratorModel) plantModel()  {}
func (UnknownModel) plantModel()     {}

// Suggest returns heuristic starting gains for the given plant family.
// First-order lags get kp=1/τ, ki=1/(2τ²), kd=τ/4. Underdamped
// second-order plants (ζ<0.7) get kp=2ζωn, ki=ωn², kd=1; critically and
// overdamped ones get kp=ωn, ki=ωn²/2, kd=2ζ/ωn. Integrators avoid
// extra integral action entirely. Unknown plants get conservative
// defaults.
func Suggest(m PlantModel) Gains {
	switch m := m.(type) {
	case FirstOrderModel:
		return Gains{Kp: 1 / m.Tau, Ki: 1 / (2 * m.Tau * m.Tau), Kd: m.Tau / 4}
	case SecondOrderModel:
		if m.Zeta < 0.7 {
			return Gains{Kp: 2 * m.Zeta * m.Wn, Ki: m.Wn * m.Wn, Kd: 1}
		}
		return Gains{Kp: m.Wn, Ki: m.Wn * m.Wn / 2, Kd: 2 * m.Zeta / m.Wn}
	case IntegratorModel:
		return Gains{Kp: 1, Ki: 0, Kd: 0.5}
	default:
		return Gains{Kp: 1, Ki: 0.1, Kd: 0.1}
	}
}

// ZieglerNichols applies the classic closed-loop rule to an ultimate
// gain ku and ultimate period tu: kp=0.6·ku, ki=2·kp/tu, kd=kp·tu/8
func ZieglerNichols(ku, tu float64) (Gains, error) {
	if ku <= 0 || tu <= 0 {
		return Gains{}, fmt.Errorf("pid: ku=%.4g tu=%.4g: %w", ku, tu, ErrInvalidUltimate)
	}
	kp := 0.6 * ku
	return Gains{Kp: kp, Ki: 2 * kp / tu, Kd: kp * tu / 8}, nil
}

// PolePlacement assigns the three closed-loop poles of a second-order
// plant ωn²/(s²+2ζωns+ωn²) under ideal PID control. The desired poles
// expand to s³+c1·s²+c2·s+c3, from which kd=c1−2ζωn, kp=c2−ωn²,
// ki=c3. The pole set must be closed under conjugation.
func PolePlacement(wn, zeta float64, desired [3]complex128) (Gains, error) {
	p, err := lti.FromRoots(desired[:])
	if err != nil {
		return Gains{}, fmt.Errorf("%w: %v", ErrPolePlacement, err)
	}
	// p = [1, c1, c2, c3]
	return Gains{
		Kd: p[1] - 2*zeta*wn,
		Kp: p[2] - wn*wn,
		Ki: p[3],
	}, nil
}
