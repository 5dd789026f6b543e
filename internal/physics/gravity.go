package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Force returns the Newtonian force exerted on a body of mass m at p by a
// body of mass mq at q, together with their separation.
//
// The magnitude G·m·mq/d² is resolved along atan2 of the separation. At
// d == 0 the result is non-finite; callers decide whether to guard.
func Force(p r2.Vec, m float64, q r2.Vec, mq float64) (r2.Vec, float64) {
	dx := q.X - p.X
	dy := q.Y - p.Y
	d := math.Sqrt(dx*dx + dy*dy)

	mag := G * m * mq / (d * d)
	theta := math.Atan2(dy, dx)
	return r2.Vec{X: math.Cos(theta) * mag, Y: math.Sin(theta) * mag}, d
}

// Attraction is Force between two bodies at their current positions.
func Attraction(b, other *Body) (r2.Vec, float64) {
	return Force(b.Pos, b.Mass, other.Pos, other.Mass)
}
