// Package dynamo holds the primitives shared by every layer of orbitsim:
// run configuration and the error taxonomy.
//
//   - [Config]: time step, duration and sampling for a batch run
//   - [SimulationError]: fatal error with step, time and body context
//   - [SimError]: non-fatal record collected into a run result
//
// The only failure mode of the physics itself is numerical degeneracy
// (two bodies at zero separation). Integrators either report it as
// [ErrDegenerateSeparation] in strict mode, or let the resulting Inf/NaN
// propagate, in which case the simulator reports [ErrInvalidState].
//
//	if errors.Is(err, dynamo.ErrDegenerateSeparation) {
//	    // bodies coincided
//	}
package dynamo
