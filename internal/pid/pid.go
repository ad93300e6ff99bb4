package pid

import "pidlab/internal/lti"

// Gains bundles the proportional, integral and derivative coefficients
// of a parallel-form PID controller
type Gains struct {
	Kp float64 `yaml:"kp" json:"kp"`
	Ki float64 `yaml:"ki" json:"ki"`
	Kd float64 `yaml:"kd" json:"kd"`
}

// TransferFunction returns the ideal continuous controller
// (kd·s² + kp·s + ki) / s used for closed-loop synthesis
func (g Gains) TransferFunction() lti.TransferFunction {
	return lti.TransferFunction{
		Num: lti.NewPolynomial(g.Kd, g.Kp, g.Ki),
		Den: lti.Polynomial{1, 0},
	}
}

// Controller carries the mutable state of the discrete PID recurrence.
// Concurrent Update calls on one instance must be externally
// serialized; each control session owns its own controller.
type Controller struct {
	gains    Gains
	integral float64
	prevErr  float64
}

// New returns a controller with zeroed accumulator state
func New(g Gains) *Controller {
	return &Controller{gains: g}
}

// Update advances the recurrence by one sample and returns the control
// output kp·e + ki·∫e + kd·de/dt. A non-positive dt contributes no
// derivative term.
func (c *Controller) Update(err, dt float64) float64 {
	c.integral += err * dt
	var deriv float64
	if dt > 0 {
		deriv = (err - c.prevErr) / dt
	}
	c.prevErr = err
	return c.gains.Kp*err + c.gains.Ki*c.integral + c.gains.Kd*deriv
}

// Reset zeroes the integral accumulator and the remembered error, so a
// replayed error sequence reproduces the same outputs exactly
func (c *Controller) Reset() {
	c.integral = 0
	c.prevErr = 0
}

// Gains returns the configured coefficients
func (c *Controller) Gains() Gains { return c.gains }
