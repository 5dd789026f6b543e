package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"gonum.org/v1/gonum/stat"
)

// ClosestApproach is the smallest pairwise separation seen, in meters.
type ClosestApproach struct {
	name string
	min  float64
}

func NewClosestApproach() *ClosestApproach {
	return &ClosestApproach{name: "closest_approach", min: math.Inf(1)}
}

func (c *ClosestApproach) Name() string { return c.name }

func (c *ClosestApproach) Observe(sys *physics.System, t float64) {
	c.min = math.Min(c.min, sys.MinSeparation())
}

func (c *ClosestApproach) Value() float64 {
	if math.IsInf(c.min, 1) {
		return 0
	}
	return c.min
}

func (c *ClosestApproach) Reset() { c.min = math.Inf(1) }

// DistanceSpread is the mean coefficient of variation of each body's
// distance to the reference body. Zero for perfectly circular orbits.
type DistanceSpread struct {
	name      string
	distances map[int][]float64
}

func NewDistanceSpread() *DistanceSpread {
	return &DistanceSpread{name: "distance_spread", distances: make(map[int][]float64)}
}

func (d *DistanceSpread) Name() string { return d.name }

func (d *DistanceSpread) Observe(sys *physics.System, t float64) {
	ref := sys.ReferenceBody()
	if ref == nil {
		return
	}
	for i, b := range sys.Bodies {
		if b == ref || b.DistanceToReference == 0 {
			continue
		}
		d.distances[i] = append(d.distances[i], b.DistanceToReference)
	}
}

func (d *DistanceSpread) Value() float64 {
	cvs := make([]float64, 0, len(d.distances))
	for _, xs := range d.distances {
		if len(xs) < 2 {
			continue
		}
		mean, std := stat.MeanStdDev(xs, nil)
		if mean == 0 {
			continue
		}
		cvs = append(cvs, std/mean)
	}
	if len(cvs) == 0 {
		return 0
	}
	return stat.Mean(cvs, nil)
}

func (d *DistanceSpread) Reset() {
	d.distances = make(map[int][]float64)
}

// Defaults is the metric set attached to every run.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewEnergyDrift(),
		NewAngularMomentumDrift(),
		NewClosestApproach(),
		NewDistanceSpread(),
	}
}
