package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"golang.org/x/sync/errgroup"
)

// Comparison is the outcome of one integrator in Compare.
type Comparison struct {
	Integrator string
	Result     *Result
	Final      *physics.System
	Elapsed    time.Duration
}

// Compare runs the same initial conditions under each integrator
// concurrently. Every run gets its own clone of sys and its own metrics
// from newMetrics (which may be nil); sys itself is not touched.
func Compare(ctx context.Context, sys *physics.System, cfg dynamo.Config, integrators []Integrator, newMetrics func() []Metric, opts ...Option) ([]Comparison, error) {
	out := make([]Comparison, len(integrators))
	g, ctx := errgroup.WithContext(ctx)

	for i, integ := range integrators {
		g.Go(func() error {
			local := sys.Clone()
			s := New(integ, opts...)
			if newMetrics != nil {
				for _, m := range newMetrics() {
					s.AddMetric(m)
				}
			}

			start := time.Now()
			res, err := s.Run(ctx, local, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", integ.Name(), err)
			}
			out[i] = Comparison{
				Integrator: integ.Name(),
				Result:     res,
				Final:      local,
				Elapsed:    time.Since(start),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
