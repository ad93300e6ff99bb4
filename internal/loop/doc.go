// Package loop composes PID controllers with plants into closed loops
// and runs the standard evaluation scenarios against them.
//
// [StepResponse] simulates reference tracking through the continuous
// closed loop C·G/(1+C·G); [DisturbanceResponse] simulates a load
// disturbance entering at the plant input through G/(1+G·C).
// [DiscreteStepResponse] instead samples the PID recurrence at the grid
// rate and integrates the plant between samples, exercising the
// discrete control law end to end. [Compare] fans several named gain
// sets out across goroutines and scores each response.
//
// All functions take an explicit [Horizon]; nothing here reads or
// writes ambient state.
package loop
