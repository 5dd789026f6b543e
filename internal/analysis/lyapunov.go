package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

// LyapunovExponent estimates the largest Lyapunov exponent, in 1/s, by
// following sys and a copy whose body is displaced by perturbation meters
// along x. The separation is measured over all body positions and the
// copy is pulled back to the initial separation after every step.
// A positive value indicates chaos. sys is not modified.
func LyapunovExponent(sys *physics.System, newIntegrator func() sim.Integrator, body int, dt float64, steps int, perturbation float64) (float64, error) {
	if body < 0 || body >= sys.Len() {
		return 0, fmt.Errorf("%w: body %d with %d bodies", dynamo.ErrParameterBounds, body, sys.Len())
	}
	if dt <= 0 || steps <= 0 || perturbation <= 0 {
		return 0, fmt.Errorf("%w: dt, steps and perturbation must be positive", dynamo.ErrParameterBounds)
	}

	a := sys.Clone()
	b := sys.Clone()
	b.Bodies[body].Pos.X += perturbation
	d0 := separation(a, b)

	ia, ib := newIntegrator(), newIntegrator()
	sumLog := 0.0

	for i := 0; i < steps; i++ {
		if err := ia.Step(a, dt); err != nil {
			return 0, err
		}
		if err := ib.Step(b, dt); err != nil {
			return 0, err
		}

		sep := separation(a, b)
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			return 0, fmt.Errorf("%w: separation %g at step %d", dynamo.ErrInvalidState, sep, i+1)
		}
		sumLog += math.Log(sep / d0)

		// Renormalize
		scale := d0 / sep
		for j, pb := range b.Bodies {
			pa := a.Bodies[j]
			pb.Pos = r2.Add(pa.Pos, r2.Scale(scale, r2.Sub(pb.Pos, pa.Pos)))
			pb.Vel = r2.Add(pa.Vel, r2.Scale(scale, r2.Sub(pb.Vel, pa.Vel)))
		}
	}

	return sumLog / (float64(steps) * dt), nil
}

func separation(a, b *physics.System) float64 {
	sum := 0.0
	for i := range a.Bodies {
		sum += r2.Norm2(r2.Sub(b.Bodies[i].Pos, a.Bodies[i].Pos))
	}
	return math.Sqrt(sum)
}
