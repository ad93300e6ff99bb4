package ss

// Stepper advances a realization's state with the classic fourth-order
// Runge-Kutta scheme, holding the input constant across each step. The
// sampled-control loop runner uses it to integrate the plant between
// controller updates.
type Stepper struct {
	r              *Realization
	k1, k2, k3, k4 []float64
	tmp            []float64
}

// NewStepper allocates scratch space sized to the realization order
func NewStepper(r *Realization) *Stepper {
	n := r.order
	return &Stepper{
		r:   r,
		k1:  make([]float64, n),
		k2:  make([]float64, n),
		k3:  make([]float64, n),
		k4:  make([]float64, n),
		tmp: make([]float64, n),
	}
}

// Step returns the state advanced by dt under constant input u
func (s *Stepper) Step(x []float64, u, dt float64) []float64 {
	n := s.r.order
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	s.r.derivative(x, u, s.k1)
	for i := 0; i < n; i++ {
		s.tmp[i] = x[i] + 0.5*dt*s.k1[i]
	}
	s.r.derivative(s.tmp, u, s.k2)
	for i := 0; i < n; i++ {
		s.tmp[i] = x[i] + 0.5*dt*s.k2[i]
	}
	s.r.derivative(s.tmp, u, s.k3)
	for i := 0; i < n; i++ {
		s.tmp[i] = x[i] + dt*s.k3[i]
	}
	s.r.derivative(s.tmp, u, s.k4)
	for i := 0; i < n; i++ {
		out[i] = x[i] + dt/6*(s.k1[i]+2*s.k2[i]+2*s.k3[i]+s.k4[i])
	}
	return out
}
