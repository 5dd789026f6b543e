package analysis

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"gonum.org/v1/gonum/stat"
)

// ErrNoPeriod is returned when a series has no dominant frequency.
var ErrNoPeriod = errors.New("analysis: no dominant period")

const minPeriodSamples = 8

// PowerSpectrum is the magnitude of the first half of the DFT of data,
// mean removed. Bin k has frequency k/(len(data)*dt).
func PowerSpectrum(data []float64) []float64 {
	mean := stat.Mean(data, nil)
	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	bins := fft.FFTReal(centred)
	ps := make([]float64, len(bins)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(bins[i])
	}
	return ps
}

// EstimatePeriod returns the period, in the units of dt, of the strongest
// oscillation in series. The peak bin is refined by parabolic
// interpolation, so the estimate is not limited to n*dt/k.
func EstimatePeriod(series []float64, dt float64) (float64, error) {
	if dt <= 0 {
		return 0, fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrParameterBounds, dt)
	}
	if len(series) < minPeriodSamples {
		return 0, fmt.Errorf("%w: need at least %d samples, got %d", ErrNoPeriod, minPeriodSamples, len(series))
	}

	ps := PowerSpectrum(series)
	peak := 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > ps[peak] || peak == 0 {
			peak = k
		}
	}
	if peak == 0 || ps[peak] == 0 {
		return 0, ErrNoPeriod
	}

	bin := float64(peak)
	if peak+1 < len(ps) {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if den := a - 2*b + c; den != 0 {
			bin += 0.5 * (a - c) / den
		}
	}
	return float64(len(series)) * dt / bin, nil
}
