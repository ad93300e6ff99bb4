package loop

import (
	"math"

	"pidlab/internal/lti"
	"pidlab/internal/pid"
	"pidlab/internal/ss"
)

// DiscreteStepResponse tracks a unit step with the sampled PID
// recurrence running at the grid rate. The plant state advances between
// samples with fixed-step RK4 under the held control output, so the
// trajectory reflects the discrete control law rather than its
// continuous idealization. The plant output feeding each update uses
// the control value held from the previous sample, which breaks the
// algebraic loop a direct-feedthrough plant would otherwise close.
func DiscreteStepResponse(g pid.Gains, tf lti.TransferFunction, h Horizon) (*ss.Response, error) {
	grid, err := h.Grid()
	if err != nil {
		return nil, err
	}
	r, err := ss.Realize(tf)
	if err != nil {
		return nil, err
	}

	ctrl := pid.New(g)
	stepper := ss.NewStepper(r)
	x := make([]float64, r.Order())
	out := make([]float64, len(grid))
	var u float64
	for k := range grid {
		y := r.Output(x, u)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return nil, &ss.SimError{Step: k, Time: grid[k], Err: ss.ErrNumericalInstability}
		}
		out[k] = y
		if k == len(grid)-1 {
			break
		}
		dt := grid[k+1] - grid[k]
		u = ctrl.Update(DefaultReference-y, dt)
		x = stepper.Step(x, u, dt)
	}
	return &ss.Response{Time: append([]float64(nil), grid...), Output: out}, nil
}
