package metrics

import (
	"errors"
	"fmt"
	"math"
)

// Defaults for a unit-step tracking run
const (
	DefaultReference         = 1.0
	DefaultSettlingTolerance = 0.02
)

// ErrInvalidTrace rejects empty or mismatched time/output arrays
var ErrInvalidTrace = errors.New("metrics: trace must have matching time and output arrays of length >= 2")

// StepMetrics scores a reference-tracking step response
type StepMetrics struct {
	OvershootPercent float64 `json:"overshoot_percent"`
	SettlingTime     float64 `json:"settling_time"`
	RiseTime         float64 `json:"rise_time"`
	PeakTime         float64 `json:"peak_time"`
	SteadyStateValue float64 `json:"steady_state_value"`
	SteadyStateError float64 `json:"steady_state_error"`
	IAE              float64 `json:"iae"`
	ISE              float64 `json:"ise"`
	ITAE             float64 `json:"itae"`
}

// Step computes tracking metrics for a step response against the given
// reference. tol is the settling band half-width as a fraction of the
// reference. The steady-state value is the mean of the final 10% of
// samples; the settling time is the time of the last sample outside
// steadyState ± tol·reference, zero if the trace never leaves the band.
func Step(time, output []float64, reference, tol float64) (StepMetrics, error) {
	if err := validateTrace(time, output); err != nil {
		return StepMetrics{}, err
	}
	n := len(output)

	tail := int(math.Ceil(0.1 * float64(n)))
	var sum float64
	for _, y := range output[n-tail:] {
		sum += y
	}
	steady := sum / float64(tail)

	peak := output[0]
	peakIdx := 0
	for i, y := range output {
		if y > peak {
			peak, peakIdx = y, i
		}
	}
	var overshoot float64
	if reference != 0 {
		overshoot = math.Max(0, (peak-reference)/reference*100)
	}

	var riseTime float64
	lo, hi := firstAtOrAbove(output, 0.1*reference), firstAtOrAbove(output, 0.9*reference)
	if lo >= 0 && hi >= 0 {
		riseTime = time[hi] - time[lo]
	}

	var settling float64
	upper := steady + tol*reference
	lower := steady - tol*reference
	for i := n - 1; i >= 0; i-- {
		if output[i] > upper || output[i] < lower {
			settling = time[i]
			break
		}
	}

	var iae, ise, itae float64
	for i := 0; i < n-1; i++ {
		dt := time[i+1] - time[i]
		e0 := reference - output[i]
		e1 := reference - output[i+1]
		iae += 0.5 * (math.Abs(e0) + math.Abs(e1)) * dt
		ise += 0.5 * (e0*e0 + e1*e1) * dt
		itae += 0.5 * (time[i]*math.Abs(e0) + time[i+1]*math.Abs(e1)) * dt
	}

	return StepMetrics{
		OvershootPercent: overshoot,
		SettlingTime:     settling,
		RiseTime:         riseTime,
		PeakTime:         time[peakIdx],
		SteadyStateValue: steady,
		SteadyStateError: math.Abs(reference - steady),
		IAE:              iae,
		ISE:              ise,
		ITAE:             itae,
	}, nil
}

func firstAtOrAbove(output []float64, threshold float64) int {
	for i, y := range output {
		if y >= threshold {
			return i
		}
	}
	return -1
}

func validateTrace(time, output []float64) error {
	if len(time) < 2 || len(time) != len(output) {
		return fmt.Errorf("metrics: %d time and %d output samples: %w",
			len(time), len(output), ErrInvalidTrace)
	}
	return nil
}
