package physics

const (
	// G is the universal gravitational constant in N·m²/kg².
	G = 6.67408e-11

	// AU is one astronomical unit in meters. Only used for initial
	// conditions and display; the force law works in meters.
	AU = 1.49597e11

	// Day is one simulated day in seconds, the default time step.
	Day = 3600 * 24

	// TrailLength bounds the number of past positions kept per body.
	TrailLength = 25

	// NoReference marks a system with no reference body.
	NoReference = -1
)
