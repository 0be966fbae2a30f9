// Package physics implements Newtonian gravity between point masses.
//
// [Gravity] is the force model used by the integrators:
//
//   - [Gravity.PairwiseForce]: force on one body exerted by another
//   - [Gravity.NetForce]: sum of pairwise forces on body i, excluding i by index
//   - [Gravity.Acceleration]: net force divided by mass
//
// Two force laws are available. [LawVector] is the inverse-square law along
// the line joining the bodies. [LawPerAxis] reproduces an older per-axis
// formula in which each component is G·m1·m2/Δ² over that axis alone; it is
// kept for comparison with existing results and is not physically correct
// off the coordinate axes.
//
// Both laws define a component as zero when the separation along its axis is
// zero, so coincident bodies exert no force on each other.
//
// # Energy Conservation
//
// [Gravity] implements [dynamo.Hamiltonian]:
//
//	g := physics.NewGravity()
//	e0 := g.Energy(sys)
package physics
