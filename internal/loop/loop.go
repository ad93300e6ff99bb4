package loop

import (
	"errors"
	"fmt"

	"pidlab/internal/lti"
	"pidlab/internal/pid"
	"pidlab/internal/ss"
)

// Defaults for the standard evaluation scenario
const (
	DefaultTEnd      = 10.0
	DefaultSamples   = 500
	DefaultReference = 1.0
)

// ErrInvalidHorizon rejects horizons that span no time or fewer than
// two samples
var ErrInvalidHorizon = errors.New("loop: horizon must span positive time over at least two samples")

// Horizon fixes the simulation window and its uniform sampling
type Horizon struct {
	TEnd    float64 `yaml:"t_end" json:"t_end"`
	Samples int     `yaml:"samples" json:"samples"`
}

// DefaultHorizon returns the standard 10 s, 500 sample window
func DefaultHorizon() Horizon {
	return Horizon{TEnd: DefaultTEnd, Samples: DefaultSamples}
}

// Grid expands the horizon into a uniform time grid over [0, TEnd]
func (h Horizon) Grid() ([]float64, error) {
	if h.TEnd <= 0 || h.Samples < 2 {
		return nil, fmt.Errorf("loop: t_end=%.4g samples=%d: %w", h.TEnd, h.Samples, ErrInvalidHorizon)
	}
	grid := make([]float64, h.Samples)
	for i := range grid {
		grid[i] = h.TEnd * float64(i) / float64(h.Samples-1)
	}
	return grid, nil
}

// ServoTransferFunction closes the reference-tracking loop
// C·G / (1 + C·G) around controller gains g and plant tf
func ServoTransferFunction(g pid.Gains, tf lti.TransferFunction) (lti.TransferFunction, error) {
	return lti.Feedback(lti.Series(g.TransferFunction(), tf), lti.Unity())
}

// RegulatoryTransferFunction closes the load-disturbance loop
// G / (1 + G·C), with the disturbance entering at the plant input
func RegulatoryTransferFunction(g pid.Gains, tf lti.TransferFunction) (lti.TransferFunction, error) {
	return lti.Feedback(tf, g.TransferFunction())
}

// StepResponse simulates the servo loop against a unit step
func StepResponse(g pid.Gains, tf lti.TransferFunction, h Horizon) (*ss.Response, error) {
	cl, err := ServoTransferFunction(g, tf)
	if err != nil {
		return nil, err
	}
	return simulateStep(cl, h)
}

// DisturbanceResponse simulates the regulatory loop against a unit
// step of load disturbance
func DisturbanceResponse(g pid.Gains, tf lti.TransferFunction, h Horizon) (*ss.Response, error) {
	cl, err := RegulatoryTransferFunction(g, tf)
	if err != nil {
		return nil, err
	}
	return simulateStep(cl, h)
}

func simulateStep(cl lti.TransferFunction, h Horizon) (*ss.Response, error) {
	grid, err := h.Grid()
	if err != nil {
		return nil, err
	}
	r, err := ss.Realize(cl)
	if err != nil {
		return nil, err
	}
	input := make([]float64, len(grid))
	for i := range input {
		input[i] = 1
	}
	return ss.Simulate(r, grid, input)
}
