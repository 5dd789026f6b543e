package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
)

// ErrNoTrials is returned when no parameter combination produced a result.
var ErrNoTrials = errors.New("optim: no successful trials")

// Run is one simulation ready to go: a simulator, the bodies it steps and
// the run configuration.
type Run struct {
	Simulator *sim.Simulator
	System    *physics.System
	Config    dynamo.Config
}

// BuildFunc turns one parameter combination into a run.
type BuildFunc func(params map[string]float64) (Run, error)

// Trial is the outcome of one parameter combination. Err is set when the
// build or the run failed; such trials never win.
type Trial struct {
	Params map[string]float64
	Value  float64
	Err    error
}

// GridSearch runs every combination of the parameter ranges and keeps the
// one that minimises a result metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search returns the best parameters, their metric value and every trial
// in visiting order. Cancellation stops the search between trials.
func (g *GridSearch) Search(ctx context.Context, build BuildFunc, metricName string) (map[string]float64, float64, []Trial, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, nil, fmt.Errorf("%w: %d parameters with %d ranges", dynamo.ErrParameterBounds, len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	var trials []Trial

	if err := g.searchRecursive(ctx, 0, make(map[string]float64), build, metricName, &trials); err != nil {
		return nil, 0, trials, err
	}

	for _, tr := range trials {
		if tr.Err == nil && tr.Value < best {
			best = tr.Value
			bestParams = tr.Params
		}
	}
	if bestParams == nil {
		return nil, 0, trials, ErrNoTrials
	}
	return bestParams, best, trials, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build BuildFunc,
	metricName string,
	trials *[]Trial,
) error {
	if depth == len(g.paramNames) {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, err)
		}
		*trials = append(*trials, runTrial(ctx, current, build, metricName))
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, build, metricName, trials); err != nil {
			return err
		}
	}
	return nil
}

func runTrial(ctx context.Context, params map[string]float64, build BuildFunc, metricName string) Trial {
	tr := Trial{Params: params}

	run, err := build(params)
	if err != nil {
		tr.Err = err
		return tr
	}

	result, err := run.Simulator.Run(ctx, run.System, run.Config)
	if err != nil {
		tr.Err = err
		return tr
	}
	if len(result.Errors) > 0 {
		tr.Err = result.Errors[0]
		return tr
	}

	val, ok := result.Metrics[metricName]
	if !ok {
		tr.Err = fmt.Errorf("metric %q not recorded", metricName)
		return tr
	}
	tr.Value = val
	return tr
}
