// Package analysis extracts orbital quantities from simulated series.
//
//   - [EstimatePeriod]: dominant period of a series from its power spectrum
//   - [Orbit]: periapsis, apoapsis, eccentricity and period of a distance series
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.LyapunovExponent(sys, newIntegrator, 2, dt, steps, 1e3)
//	if err == nil && lambda > 0 {
//	    // System is chaotic
//	}
package analysis
