// Package metrics extracts standardized performance figures from
// simulated trajectories.
//
// [Step] scores a reference-tracking response: rise time, settling
// time, peak time, overshoot, steady-state error and the IAE/ISE/ITAE
// integral error indices. [Disturbance] scores a load-disturbance
// response against an implicit zero reference.
//
// Both are pure functions over (time, output) sample arrays. Degenerate
// trajectories are meaningful analysis outcomes, not faults: a trace
// that never crosses the rise thresholds reports a rise time of zero,
// and one that never leaves the settling band reports a settling time
// of zero, read as "settled at or before t=0". Only structurally
// invalid input (empty or mismatched arrays) returns an error.
package metrics
