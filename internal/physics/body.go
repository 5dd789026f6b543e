package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Body is one celestial object. It has no identity beyond its pointer.
// Position is in meters, velocity in m/s, mass in kg.
type Body struct {
	Name string
	Pos  r2.Vec
	Vel  r2.Vec
	Mass float64

	Radius         float64 // schematic display radius
	PhysicalRadius float64 // km
	ScaledRadius   float64 // display radius proportional to PhysicalRadius
	Color          string

	// DistanceToReference is only meaningful after one force evaluation
	// against the system's reference body.
	DistanceToReference float64

	Trail *Trail
}

func NewBody(name string, pos, vel r2.Vec, mass float64) *Body {
	return &Body{
		Name:  name,
		Pos:   pos,
		Vel:   vel,
		Mass:  mass,
		Trail: NewTrail(TrailLength),
	}
}

// RecordPosition appends the current position to the trail.
func (b *Body) RecordPosition() {
	if b.Trail == nil {
		b.Trail = NewTrail(TrailLength)
	}
	b.Trail.Push(b.Pos)
}

// DisplayRadius picks the proportional or schematic radius.
func (b *Body) DisplayRadius(trueScale bool) float64 {
	if trueScale {
		return b.ScaledRadius
	}
	return b.Radius
}

func (b *Body) Speed() float64 { return r2.Norm(b.Vel) }

func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * r2.Norm2(b.Vel)
}

// Finite reports whether position and velocity are free of NaN and Inf.
func (b *Body) Finite() bool {
	for _, v := range [...]float64{b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy, trail included.
func (b *Body) Clone() *Body {
	c := *b
	if b.Trail != nil {
		c.Trail = b.Trail.clone()
	}
	return &c
}

// ApplyScaledRadii sets ScaledRadius so that the largest body by
// PhysicalRadius gets maxRadius and the rest scale linearly. Display only.
func ApplyScaledRadii(bodies []*Body, maxRadius float64) {
	largest := 0.0
	for _, b := range bodies {
		largest = math.Max(largest, b.PhysicalRadius)
	}
	if largest == 0 {
		return
	}
	for _, b := range bodies {
		b.ScaledRadius = maxRadius * b.PhysicalRadius / largest
	}
}
