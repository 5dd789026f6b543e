package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// System is the ordered body set stepped by an integrator. Reference is the
// index of the body others measure their distance against, or NoReference.
// Order matters: sequential integration visits bodies in slice order.
type System struct {
	Bodies    []*Body
	Reference int
}

func NewSystem(bodies []*Body, reference int) (*System, error) {
	if len(bodies) == 0 {
		return nil, dynamo.ErrNoBodies
	}
	if reference != NoReference && (reference < 0 || reference >= len(bodies)) {
		return nil, fmt.Errorf("%w: %d with %d bodies", dynamo.ErrReferenceOutOfRange, reference, len(bodies))
	}
	for _, b := range bodies {
		if !(b.Mass > 0) {
			return nil, fmt.Errorf("%w: body %q has mass %g", dynamo.ErrParameterBounds, b.Name, b.Mass)
		}
		if b.Trail == nil {
			b.Trail = NewTrail(TrailLength)
		}
	}
	return &System{Bodies: bodies, Reference: reference}, nil
}

func (s *System) Len() int { return len(s.Bodies) }

func (s *System) IsReference(i int) bool {
	return s.Reference != NoReference && i == s.Reference
}

// ReferenceBody returns nil when the system has no reference.
func (s *System) ReferenceBody() *Body {
	if s.Reference == NoReference {
		return nil
	}
	return s.Bodies[s.Reference]
}

// Find returns the index of the named body, or -1.
func (s *System) Find(name string) int {
	for i, b := range s.Bodies {
		if b.Name == name {
			return i
		}
	}
	return -1
}

func (s *System) Positions() []r2.Vec {
	ps := make([]r2.Vec, len(s.Bodies))
	for i, b := range s.Bodies {
		ps[i] = b.Pos
	}
	return ps
}

func (s *System) Clone() *System {
	c := &System{Bodies: make([]*Body, len(s.Bodies)), Reference: s.Reference}
	for i, b := range s.Bodies {
		c.Bodies[i] = b.Clone()
	}
	return c
}

// FirstInvalid returns the index of the first body with a non-finite
// position or velocity, or -1.
func (s *System) FirstInvalid() int {
	for i, b := range s.Bodies {
		if !b.Finite() {
			return i
		}
	}
	return -1
}

func (s *System) KineticEnergy() float64 {
	ke := 0.0
	for _, b := range s.Bodies {
		ke += b.KineticEnergy()
	}
	return ke
}

func (s *System) PotentialEnergy() float64 {
	pe := 0.0
	n := len(s.Bodies)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := r2.Norm(r2.Sub(s.Bodies[j].Pos, s.Bodies[i].Pos))
			pe -= G * s.Bodies[i].Mass * s.Bodies[j].Mass / r
		}
	}
	return pe
}

// Energy is total mechanical energy in joules.
func (s *System) Energy() float64 {
	return s.KineticEnergy() + s.PotentialEnergy()
}

// AngularMomentum is the z component of total angular momentum about the
// origin.
func (s *System) AngularMomentum() float64 {
	l := 0.0
	for _, b := range s.Bodies {
		l += b.Mass * r2.Cross(b.Pos, b.Vel)
	}
	return l
}

func (s *System) Momentum() r2.Vec {
	var p r2.Vec
	for _, b := range s.Bodies {
		p = r2.Add(p, r2.Scale(b.Mass, b.Vel))
	}
	return p
}

func (s *System) CenterOfMass() r2.Vec {
	var c r2.Vec
	total := 0.0
	for _, b := range s.Bodies {
		c = r2.Add(c, r2.Scale(b.Mass, b.Pos))
		total += b.Mass
	}
	if total == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/total, c)
}

// MinSeparation is the smallest pairwise distance, +Inf for a single body.
func (s *System) MinSeparation() float64 {
	m := math.Inf(1)
	n := len(s.Bodies)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m = math.Min(m, r2.Norm(r2.Sub(s.Bodies[j].Pos, s.Bodies[i].Pos)))
		}
	}
	return m
}
