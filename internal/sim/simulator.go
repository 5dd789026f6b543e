package sim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

// Simulator is the host loop for batch runs. It is not safe for concurrent
// use; one simulator drives one system.
type Simulator struct {
	integrator Integrator
	metrics    []Metric
	observers  []Observer
	logger     log.Logger
}

type Option func(*Simulator)

func WithLogger(l log.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

func WithMetrics(ms ...Metric) Option {
	return func(s *Simulator) { s.metrics = append(s.metrics, ms...) }
}

func New(integrator Integrator, opts ...Option) *Simulator {
	s := &Simulator{
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		logger:     log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = log.With(s.logger, "integrator", integrator.Name())
	return s
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run steps sys in place for cfg.Duration. Steps are strictly sequential
// and ctx is only checked between them. A non-finite state with
// cfg.ValidateState stops the run early and is reported in Result.Errors;
// integrator errors and cancellation are returned.
func (s *Simulator) Run(ctx context.Context, sys *physics.System, cfg dynamo.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sys == nil || sys.Len() == 0 {
		return nil, dynamo.ErrNoBodies
	}

	steps := cfg.Steps()
	every := cfg.SampleEvery
	if every <= 0 {
		every = 1
	}

	result := &Result{
		Integrator: s.integrator.Name(),
		Samples:    make([]Sample, 0, steps/every+2),
		Metrics:    make(map[string]float64),
		Errors:     make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	initialEnergy := sys.Energy()
	initialL := sys.AngularMomentum()

	result.Samples = append(result.Samples, Capture(sys, t))
	s.observe(sys, 0, t)

	level.Info(s.logger).Log("msg", "run started", "bodies", sys.Len(), "steps", steps, "dt", cfg.Dt)

	lastSampled := 0
	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			level.Warn(s.logger).Log("msg", "run canceled", "step", i)
			s.finish(result, sys, initialEnergy, initialL)
			return result, fmt.Errorf("%w at step %d: %w", dynamo.ErrContextCanceled, i, ctx.Err())
		default:
		}

		if err := s.integrator.Step(sys, cfg.Dt); err != nil {
			var simErr *dynamo.SimulationError
			if errors.As(err, &simErr) {
				simErr.Step = i
				simErr.Time = t
			}
			level.Error(s.logger).Log("msg", "step failed", "step", i, "err", err)
			s.finish(result, sys, initialEnergy, initialL)
			return result, err
		}

		t += cfg.Dt
		result.StepsTaken++

		if cfg.ValidateState {
			if idx := sys.FirstInvalid(); idx >= 0 {
				err := &dynamo.SimulationError{Step: i, Time: t, Body: sys.Bodies[idx].Name, Wrapped: dynamo.ErrInvalidState}
				result.Errors = append(result.Errors, dynamo.SimError{
					Time:    t,
					Step:    i,
					Message: fmt.Sprintf("body %s: %v", err.Body, err.Wrapped),
					Err:     err,
				})
				level.Error(s.logger).Log("msg", "invalid state, stopping", "step", i, "body", sys.Bodies[idx].Name)
				result.Samples = append(result.Samples, Capture(sys, t))
				lastSampled = i
				break
			}
		}

		s.observe(sys, i, t)

		if i%every == 0 {
			result.Samples = append(result.Samples, Capture(sys, t))
			lastSampled = i
		}
	}

	if lastSampled != result.StepsTaken {
		result.Samples = append(result.Samples, Capture(sys, t))
	}

	s.finish(result, sys, initialEnergy, initialL)
	level.Info(s.logger).Log("msg", "run finished", "steps", result.StepsTaken, "energy_drift", result.EnergyDrift)
	return result, nil
}

func (s *Simulator) observe(sys *physics.System, step int, t float64) {
	for _, m := range s.metrics {
		m.Observe(sys, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(sys, step, t)
	}
}

func (s *Simulator) finish(result *Result, sys *physics.System, e0, l0 float64) {
	result.EnergyDrift = relativeDrift(e0, sys.Energy())
	result.AngularMomentumDrift = relativeDrift(l0, sys.AngularMomentum())
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func relativeDrift(initial, final float64) float64 {
	if initial == 0 {
		return 0
	}
	return math.Abs(final-initial) / math.Abs(initial)
}
