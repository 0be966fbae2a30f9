// Package analysis provides diagnostics computed from simulated trajectories.
//
//   - [PowerSpectrum] and [DominantPeriod]: orbital period from a sampled series
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//
// # Chaos Detection
//
// A clearly positive exponent indicates sensitive dependence on initial
// conditions, as in most three-body configurations:
//
//	lambda := analysis.LyapunovExponent(s, sys, dt, cycles, 1e-8, 10)
package analysis
