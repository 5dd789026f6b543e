package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
)

func buildEarthSun(params map[string]float64) (Run, error) {
	dt := params["dt"]
	if dt <= 0 {
		return Run{}, dynamo.ErrParameterBounds
	}
	integ := integrators.NewSymplecticEuler(integrators.Sequential, integrators.Options{})
	return Run{
		Simulator: sim.New(integ, sim.WithMetrics(metrics.NewEnergyDrift())),
		System:    physics.EarthSun(),
		Config:    dynamo.Config{Dt: dt, Duration: 30 * physics.Day},
	}, nil
}

func TestGridSearch(t *testing.T) {
	g := NewGridSearch([]string{"dt"}, [][]float64{{physics.Day, 3600, 0}})

	best, val, trials, err := g.Search(context.Background(), buildEarthSun, "energy_drift")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if best["dt"] != 3600 {
		t.Errorf("expected the smaller timestep to win, got %v", best)
	}
	if len(trials) != 3 {
		t.Fatalf("expected 3 trials, got %d", len(trials))
	}
	if !errors.Is(trials[2].Err, dynamo.ErrParameterBounds) {
		t.Errorf("expected failed build to be recorded, got %v", trials[2].Err)
	}
	if val != trials[1].Value || val >= trials[0].Value {
		t.Errorf("unexpected best value %g for trials %+v", val, trials)
	}
}

func TestGridSearch_Combinations(t *testing.T) {
	g := NewGridSearch([]string{"dt", "days"}, [][]float64{{3600, 7200}, {1, 2, 3}})

	build := func(params map[string]float64) (Run, error) {
		integ := integrators.NewLeapfrog(integrators.Options{})
		return Run{
			Simulator: sim.New(integ, sim.WithMetrics(metrics.NewClosestApproach())),
			System:    physics.EarthSun(),
			Config:    dynamo.Config{Dt: params["dt"], Duration: params["days"] * physics.Day},
		}, nil
	}

	_, _, trials, err := g.Search(context.Background(), build, "closest_approach")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(trials) != 6 {
		t.Errorf("expected 6 trials, got %d", len(trials))
	}
}

func TestGridSearch_Errors(t *testing.T) {
	g := NewGridSearch([]string{"dt"}, [][]float64{{0}})
	if _, _, _, err := g.Search(context.Background(), buildEarthSun, "energy_drift"); !errors.Is(err, ErrNoTrials) {
		t.Errorf("expected ErrNoTrials, got %v", err)
	}

	g = NewGridSearch([]string{"dt"}, [][]float64{{physics.Day}})
	if _, _, trials, _ := g.Search(context.Background(), buildEarthSun, "missing"); trials[0].Err == nil {
		t.Error("expected an error for an unrecorded metric")
	}

	g = NewGridSearch([]string{"dt", "days"}, [][]float64{{1}})
	if _, _, _, err := g.Search(context.Background(), buildEarthSun, "energy_drift"); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected mismatched ranges to fail, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g = NewGridSearch([]string{"dt"}, [][]float64{{physics.Day}})
	if _, _, _, err := g.Search(ctx, buildEarthSun, "energy_drift"); !errors.Is(err, dynamo.ErrContextCanceled) {
		t.Errorf("expected cancellation, got %v", err)
	}
}
