package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestNewSystem(t *testing.T) {
	sun := func() *Body { return NewBody("sun", r2.Vec{}, r2.Vec{}, 1e30) }

	tests := []struct {
		name   string
		bodies []*Body
		ref    int
		want   error
	}{
		{"valid", []*Body{sun()}, 0, nil},
		{"no reference", []*Body{sun()}, NoReference, nil},
		{"empty", nil, NoReference, dynamo.ErrNoBodies},
		{"reference out of range", []*Body{sun()}, 1, dynamo.ErrReferenceOutOfRange},
		{"negative reference", []*Body{sun()}, -2, dynamo.ErrReferenceOutOfRange},
		{"zero mass", []*Body{NewBody("dust", r2.Vec{}, r2.Vec{}, 0)}, NoReference, dynamo.ErrParameterBounds},
		{"nan mass", []*Body{NewBody("dust", r2.Vec{}, r2.Vec{}, math.NaN())}, NoReference, dynamo.ErrParameterBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSystem(tt.bodies, tt.ref)
			if tt.want == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNewSystem_AllocatesTrails(t *testing.T) {
	b := &Body{Name: "bare", Mass: 1}
	if _, err := NewSystem([]*Body{b}, NoReference); err != nil {
		t.Fatal(err)
	}
	if b.Trail == nil || b.Trail.Cap() != TrailLength {
		t.Error("expected a trail of default capacity")
	}
}

func TestSystemEnergy(t *testing.T) {
	a := NewBody("a", r2.Vec{}, r2.Vec{}, 2)
	b := NewBody("b", r2.Vec{X: 4}, r2.Vec{Y: 3}, 1)
	sys, _ := NewSystem([]*Body{a, b}, 0)

	wantKE := 0.5 * 1 * 9
	if got := sys.KineticEnergy(); got != wantKE {
		t.Errorf("kinetic: expected %g, got %g", wantKE, got)
	}
	wantPE := -G * 2 * 1 / 4
	if got := sys.PotentialEnergy(); math.Abs(got-wantPE) > 1e-12*math.Abs(wantPE) {
		t.Errorf("potential: expected %g, got %g", wantPE, got)
	}
	if got := sys.AngularMomentum(); got != 12 {
		t.Errorf("angular momentum: expected 12, got %g", got)
	}
	if got := sys.Momentum(); got != (r2.Vec{Y: 3}) {
		t.Errorf("momentum: expected (0,3), got %v", got)
	}
	if got := sys.CenterOfMass(); math.Abs(got.X-4.0/3) > 1e-15 {
		t.Errorf("centre of mass: expected 4/3, got %v", got)
	}
	if got := sys.MinSeparation(); got != 4 {
		t.Errorf("min separation: expected 4, got %g", got)
	}
}

func TestSystemFirstInvalid(t *testing.T) {
	sys := EarthSun()
	if sys.FirstInvalid() != -1 {
		t.Fatal("expected a finite system")
	}
	sys.Bodies[1].Vel.Y = math.Inf(1)
	if got := sys.FirstInvalid(); got != 1 {
		t.Errorf("expected body 1, got %d", got)
	}
}

func TestSystemFind(t *testing.T) {
	sys := InnerSolarSystem()
	if got := sys.Find("mars"); got != 2 {
		t.Errorf("expected mars at 2, got %d", got)
	}
	if got := sys.Find("pluto"); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
}

func TestApplyScaledRadii(t *testing.T) {
	sys := InnerSolarSystem()
	sun, earth := sys.Bodies[0], sys.Bodies[1]
	if sun.ScaledRadius != Sun.Radius {
		t.Errorf("largest body should get the max radius, got %g", sun.ScaledRadius)
	}
	want := Sun.Radius * 6371 / 695700
	if math.Abs(earth.ScaledRadius-want) > 1e-12 {
		t.Errorf("expected earth %g, got %g", want, earth.ScaledRadius)
	}
	if earth.DisplayRadius(false) != Earth.Radius || earth.DisplayRadius(true) != earth.ScaledRadius {
		t.Error("DisplayRadius should pick schematic by default and scaled for true scale")
	}
}
