package metrics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"pidlab/internal/metrics"
)

var _ = Describe("Step", func() {
	Context("on a synthetic ramp that levels off at the reference", func() {
		time := []float64{0, 1, 2, 3, 4}
		output := []float64{0, 0.5, 0.9, 1.0, 1.0}

		It("measures rise time between the 10% and 90% crossings", func() {
			m, err := metrics.Step(time, output, 1.0, 0.02)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.RiseTime).To(BeNumerically("~", 2.0, 1e-12))
		})

		It("reports no overshoot when the peak stays at the reference", func() {
			m, err := metrics.Step(time, output, 1.0, 0.02)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.OvershootPercent).To(BeZero())
		})

		It("reports near-zero steady-state error", func() {
			m, err := metrics.Step(time, output, 1.0, 0.02)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.SteadyStateError).To(BeNumerically("<", 1e-9))
		})
	})

	Context("overshoot", func() {
		It("measures the peak excess over the reference", func() {
			time := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
			output := []float64{0, 0.7, 1.2, 1.05, 0.95, 1.0, 1.0, 1.0, 1.0, 1.0}
			m, err := metrics.Step(time, output, 1.0, 0.02)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.OvershootPercent).To(BeNumerically("~", 20.0, 1e-9))
			Expect(m.PeakTime).To(Equal(2.0))
		})

		It("is zero for a zero reference regardless of output", func() {
			time := []float64{0, 1, 2, 3}
			output := []float64{0, 5, 3, 4}
			m, err := metrics.Step(time, output, 0, 0.02)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.OvershootPercent).To(BeZero())
		})
	})

	Context("settling time", func() {
		It("is the time of the last sample outside the band", func() {
			time := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
			output := []float64{0, 0.5, 1.3, 0.9, 1.05, 1.0, 1.0, 1.0, 1.0, 1.0}
			m, err := metrics.Step(time, output, 1.0, 0.02)
			Expect(err).NotTo(HaveOccurred())
			// steady state = mean of last sample = 1.0; last excursion
			// beyond 1.0±0.02 is at t=4
			Expect(m.SettlingTime).To(Equal(4.0))
		})

		It("is zero when the trace never leaves the band", func() {
			time := []float64{0, 1, 2, 3}
			output := []float64{1.0, 1.0, 1.0, 1.0}
			m, err := metrics.Step(time, output, 1.0, 0.02)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.SettlingTime).To(BeZero())
		})
	})

	Context("rise time", func() {
		It("is zero when the 90% threshold is never reached", func() {
			time := []float64{0, 1, 2, 3}
			output := []float64{0, 0.2, 0.4, 0.5}
			m, err := metrics.Step(time, output, 1.0, 0.02)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.RiseTime).To(BeZero())
		})
	})

	Context("integral error indices", func() {
		It("integrates |e|, e² and t·|e| trapezoidally", func() {
			// constant error of 0.5 over [0, 2]
			time := []float64{0, 1, 2}
			output := []float64{0.5, 0.5, 0.5}
			m, err := metrics.Step(time, output, 1.0, 0.02)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.IAE).To(BeNumerically("~", 1.0, 1e-12))
			Expect(m.ISE).To(BeNumerically("~", 0.5, 1e-12))
			Expect(m.ITAE).To(BeNumerically("~", 1.0, 1e-12))
		})
	})

	Context("invalid traces", func() {
		It("rejects mismatched array lengths", func() {
			_, err := metrics.Step([]float64{0, 1, 2}, []float64{0, 1}, 1.0, 0.02)
			Expect(err).To(MatchError(metrics.ErrInvalidTrace))
		})

		It("rejects traces shorter than two samples", func() {
			_, err := metrics.Step([]float64{0}, []float64{0}, 1.0, 0.02)
			Expect(err).To(MatchError(metrics.ErrInvalidTrace))
		})
	})
})

var _ = Describe("Disturbance", func() {
	It("measures peak deviation, recovery and energy", func() {
		time := []float64{0, 1, 2, 3, 4}
		output := []float64{0, 2, 1, 0.05, 0.01}
		m, err := metrics.Disturbance(time, output)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.MaxDeviation).To(Equal(2.0))
		// first |y| <= 0.05*2 = 0.1 is y[0]=0 at t=0
		Expect(m.RecoveryTime).To(Equal(0.0))
	})

	It("recovers at the first sample back inside 5% of the peak", func() {
		time := []float64{0, 1, 2, 3, 4}
		output := []float64{1, 2, 1, 0.05, 0.01}
		m, err := metrics.Disturbance(time, output)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.RecoveryTime).To(Equal(3.0))
	})

	It("uses the final time when the trace never recovers", func() {
		time := []float64{0, 1, 2, 3}
		output := []float64{1, 1, 1, 1}
		m, err := metrics.Disturbance(time, output)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.RecoveryTime).To(Equal(3.0))
		Expect(m.DisturbanceEnergy).To(BeNumerically("~", 3.0, 1e-12))
	})

	It("treats an all-zero trace as instantly recovered", func() {
		time := []float64{0, 1, 2}
		output := []float64{0, 0, 0}
		m, err := metrics.Disturbance(time, output)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.MaxDeviation).To(BeZero())
		Expect(m.RecoveryTime).To(BeZero())
		Expect(m.DisturbanceEnergy).To(BeZero())
	})
})
