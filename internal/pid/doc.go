// Package pid implements the parallel-form PID control law and the
// tuning rules used to pick its gains.
//
// A controller is used two ways. [Gains.TransferFunction] gives the
// ideal continuous form (kd·s² + kp·s + ki)/s for closed-loop
// synthesis, and [Controller.Update] runs the discrete recurrence
// sample by sample in a sampled loop.
//
// The integral accumulator is deliberately unguarded: no anti-windup,
// no derivative filtering, no output clamping. This is a known
// limitation of the textbook law, kept because the simulated
// trajectories and the metric values derived from them assume it.
//
// Tuning:
//   - [Suggest]: heuristic gains from a plant family tag
//   - [ZieglerNichols]: classic ultimate-gain rule
//   - [PolePlacement]: exact closed-loop pole assignment for
//     second-order plants
package pid
