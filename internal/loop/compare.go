package loop

import (
	"sync"

	"pidlab/internal/lti"
	"pidlab/internal/metrics"
	"pidlab/internal/pid"
)

// Candidate names a gain set entered into a comparison
type Candidate struct {
	Name  string    `yaml:"name" json:"name"`
	Gains pid.Gains `yaml:"gains" json:"gains"`
}

// ComparisonResult pairs a candidate with its simulated servo response
// and step metrics
type ComparisonResult struct {
	Candidate Candidate
	Response  *Result
}

// Result bundles one servo run with its metrics
type Result struct {
	Time    []float64
	Output  []float64
	Metrics metrics.StepMetrics
}

// Compare runs every candidate's servo step response concurrently over
// the same plant and horizon. Runs are independent pure computations,
// so they fan out one goroutine per candidate with no shared state;
// the first failure aborts the comparison.
func Compare(candidates []Candidate, tf lti.TransferFunction, h Horizon) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, len(candidates))
	errs := make([]error, len(candidates))

	var wg sync.WaitGroup
	for i, c := range candidates {
		wg.Add(1)
		go func(idx int, cand Candidate) {
			defer wg.Done()
			resp, err := StepResponse(cand.Gains, tf, h)
			if err != nil {
				errs[idx] = err
				return
			}
			m, err := metrics.Step(resp.Time, resp.Output, DefaultReference, metrics.DefaultSettlingTolerance)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx] = ComparisonResult{
				Candidate: cand,
				Response:  &Result{Time: resp.Time, Output: resp.Output, Metrics: m},
			}
		}(i, c)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
