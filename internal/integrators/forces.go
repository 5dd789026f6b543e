package integrators

import (
	"fmt"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Options apply to every integrator in this package.
type Options struct {
	// Strict turns a separation at or below MinSeparation into an error
	// instead of letting Inf/NaN propagate.
	Strict        bool
	MinSeparation float64
}

// netForce sums the force on body i from every other body, reading
// positions from pos. It records the distance to the reference body as a
// side effect.
func netForce(sys *physics.System, pos []r2.Vec, i int, opts Options) (r2.Vec, error) {
	b := sys.Bodies[i]
	var total r2.Vec
	for j, o := range sys.Bodies {
		if o == b {
			continue
		}
		f, d := physics.Force(pos[i], b.Mass, pos[j], o.Mass)
		if opts.Strict && !(d > opts.MinSeparation) {
			return r2.Vec{}, &dynamo.SimulationError{
				Body:    b.Name,
				Wrapped: fmt.Errorf("%w: %s and %s are %g m apart", dynamo.ErrDegenerateSeparation, b.Name, o.Name, d),
			}
		}
		if sys.IsReference(j) {
			b.DistanceToReference = d
		}
		total.X += f.X
		total.Y += f.Y
	}
	return total, nil
}

// snapshot copies current positions into buf, growing it if needed.
func snapshot(sys *physics.System, buf []r2.Vec) []r2.Vec {
	if cap(buf) < len(sys.Bodies) {
		buf = make([]r2.Vec, len(sys.Bodies))
	}
	buf = buf[:len(sys.Bodies)]
	for i, b := range sys.Bodies {
		buf[i] = b.Pos
	}
	return buf
}
