package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/sim"
)

var registry = map[string]func(Options) sim.Integrator{
	"euler":        func(o Options) sim.Integrator { return NewSymplecticEuler(Sequential, o) },
	"euler-jacobi": func(o Options) sim.Integrator { return NewSymplecticEuler(Jacobi, o) },
	"leapfrog":     func(o Options) sim.Integrator { return NewLeapfrog(o) },
}

// Lookup returns a fresh integrator by name. Integrators keep scratch
// buffers, so each simulation needs its own.
func Lookup(name string, opts Options) (sim.Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownIntegrator, name, Names())
	}
	return fn(opts), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
