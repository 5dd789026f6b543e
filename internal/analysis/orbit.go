package analysis

import (
	"errors"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// OrbitStats summarises one body's distance-to-reference series.
type OrbitStats struct {
	Periapsis    float64
	Apoapsis     float64
	MeanDistance float64
	Eccentricity float64
	// Period is zero when no dominant period could be found.
	Period float64
}

// Orbit computes OrbitStats from distances sampled every dt. Eccentricity
// is estimated from the distance extremes.
func Orbit(distances []float64, dt float64) (OrbitStats, error) {
	if len(distances) == 0 {
		return OrbitStats{}, errors.New("analysis: empty distance series")
	}

	st := OrbitStats{
		Periapsis:    floats.Min(distances),
		Apoapsis:     floats.Max(distances),
		MeanDistance: stat.Mean(distances, nil),
	}
	if sum := st.Apoapsis + st.Periapsis; sum > 0 {
		st.Eccentricity = (st.Apoapsis - st.Periapsis) / sum
	}

	period, err := EstimatePeriod(distances, dt)
	switch {
	case err == nil:
		st.Period = period
	case errors.Is(err, ErrNoPeriod):
	default:
		return st, err
	}
	return st, nil
}
