// Package dynamo provides the core value types for gravitational simulation.
//
// The package defines the data model shared by every other package:
//
//   - [Body]: a point mass with position and velocity
//   - [System]: an ordered collection of bodies evolving together
//   - [ForceModel]: computes per-body accelerations from a snapshot
//   - [Integrator]: advances a whole System by one update cycle
//   - [Metric] and [Observer]: hooks driven by the simulator
//
// # Immutability
//
// Bodies and Systems are values. Every update produces a new System; no
// body is modified in place. Integrators read a single pre-step snapshot so
// the per-body work inside one cycle may run in any order, or in parallel,
// without changing the result.
//
// # Example
//
//	sys := dynamo.NewSystem(
//	    dynamo.NewBody(2, dynamo.Vec{X: 0}, dynamo.Vec{}),
//	    dynamo.NewBody(1, dynamo.Vec{X: 1}, dynamo.Vec{}),
//	)
//	next := sim.Simulate(sys, 0.01, 100)
package dynamo
