package metrics

import "math"

// DisturbanceMetrics scores a load-disturbance rejection response. The
// implicit reference is zero: the plant output should return there.
type DisturbanceMetrics struct {
	MaxDeviation      float64 `json:"max_deviation"`
	RecoveryTime      float64 `json:"recovery_time"`
	DisturbanceEnergy float64 `json:"disturbance_energy"`
}

// Disturbance computes rejection metrics over a trace. The recovery
// time is the first sample at which |output| has fallen to 5% of the
// maximum deviation, or the final time when that never happens.
func Disturbance(time, output []float64) (DisturbanceMetrics, error) {
	if err := validateTrace(time, output); err != nil {
		return DisturbanceMetrics{}, err
	}

	var maxDev float64
	for _, y := range output {
		if a := math.Abs(y); a > maxDev {
			maxDev = a
		}
	}

	recovery := time[len(time)-1]
	for i, y := range output {
		if math.Abs(y) <= 0.05*maxDev {
			recovery = time[i]
			break
		}
	}

	var energy float64
	for i := 0; i < len(output)-1; i++ {
		dt := time[i+1] - time[i]
		energy += 0.5 * (output[i]*output[i] + output[i+1]*output[i+1]) * dt
	}

	return DisturbanceMetrics{
		MaxDeviation:      maxDev,
		RecoveryTime:      recovery,
		DisturbanceEnergy: energy,
	}, nil
}
