// Package optim sweeps PID gain grids against a plant and keeps the
// candidate minimizing a chosen step metric.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"pidlab/internal/loop"
	"pidlab/internal/lti"
	"pidlab/internal/metrics"
	"pidlab/internal/pid"
)

var (
	// ErrNoFeasible reports that every grid point failed or diverged
	ErrNoFeasible = errors.New("optim: no gain combination produced a finite objective")

	// ErrUnknownObjective rejects an unrecognized objective name
	ErrUnknownObjective = errors.New("optim: unknown objective")
)

// Objective selects which step metric the search minimizes
type Objective string

const (
	MinimizeIAE      Objective = "iae"
	MinimizeISE      Objective = "ise"
	MinimizeITAE     Objective = "itae"
	MinimizeSettling Objective = "settling"
)

func (o Objective) score(m metrics.StepMetrics) (float64, error) {
	switch o {
	case MinimizeIAE:
		return m.IAE, nil
	case MinimizeISE:
		return m.ISE, nil
	case MinimizeITAE:
		return m.ITAE, nil
	case MinimizeSettling:
		return m.SettlingTime, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownObjective, string(o))
}

// Span expands an inclusive [min, max] range into n evenly spaced values
func Span(min, max float64, n int) []float64 {
	if n < 2 {
		return []float64{min}
	}
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = min + (max-min)*float64(i)/float64(n-1)
	}
	return vals
}

// GridSearch enumerates every combination of the three gain axes
type GridSearch struct {
	Kp []float64
	Ki []float64
	Kd []float64
}

// Search simulates the servo step response at every grid point and
// returns the gains with the lowest objective. Grid points whose loop
// fails to realize or diverges are skipped, not fatal; the search only
// errors when nothing at all was feasible or the context is cancelled.
func (g *GridSearch) Search(ctx context.Context, tf lti.TransferFunction, h loop.Horizon, obj Objective) (pid.Gains, float64, error) {
	if _, err := obj.score(metrics.StepMetrics{}); err != nil {
		return pid.Gains{}, 0, err
	}

	best := math.Inf(1)
	var bestGains pid.Gains
	found := false

	for _, kp := range g.Kp {
		for _, ki := range g.Ki {
			for _, kd := range g.Kd {
				if err := ctx.Err(); err != nil {
					return pid.Gains{}, 0, err
				}
				gains := pid.Gains{Kp: kp, Ki: ki, Kd: kd}
				resp, err := loop.StepResponse(gains, tf, h)
				if err != nil {
					continue
				}
				m, err := metrics.Step(resp.Time, resp.Output, loop.DefaultReference, metrics.DefaultSettlingTolerance)
				if err != nil {
					continue
				}
				val, _ := obj.score(m)
				if math.IsNaN(val) || math.IsInf(val, 0) {
					continue
				}
				if val < best {
					best = val
					bestGains = gains
					found = true
				}
			}
		}
	}

	if !found {
		return pid.Gains{}, 0, ErrNoFeasible
	}
	return bestGains, best, nil
}
