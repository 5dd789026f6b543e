package sim

import (
	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Integrator advances every body of sys by dt, in place.
type Integrator interface {
	Name() string
	Step(sys *physics.System, dt float64) error
}

type Metric interface {
	Name() string
	Observe(sys *physics.System, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(sys *physics.System, step int, t float64)
}

type BodyState struct {
	Name                string
	Pos                 r2.Vec
	Vel                 r2.Vec
	DistanceToReference float64
}

// Sample is a copy of the kinematic state of every body at one instant.
type Sample struct {
	Time   float64
	Bodies []BodyState
}

func Capture(sys *physics.System, t float64) Sample {
	s := Sample{Time: t, Bodies: make([]BodyState, len(sys.Bodies))}
	for i, b := range sys.Bodies {
		s.Bodies[i] = BodyState{
			Name:                b.Name,
			Pos:                 b.Pos,
			Vel:                 b.Vel,
			DistanceToReference: b.DistanceToReference,
		}
	}
	return s
}

type Result struct {
	Integrator           string
	Samples              []Sample
	Metrics              map[string]float64
	EnergyDrift          float64
	AngularMomentumDrift float64
	StepsTaken           int
	Errors               []error
}

// Series extracts one value per sample for the body at index i.
func (r *Result) Series(i int, fn func(BodyState) float64) []float64 {
	out := make([]float64, 0, len(r.Samples))
	for _, s := range r.Samples {
		if i < len(s.Bodies) {
			out = append(out, fn(s.Bodies[i]))
		}
	}
	return out
}

func (r *Result) Times() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Time
	}
	return out
}
