package integrators_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

func relDrift(initial, current float64) float64 {
	return math.Abs(current-initial) / math.Abs(initial)
}

func threeBodies() *physics.System {
	bodies := []*physics.Body{
		physics.NewBody("a", r2.Vec{}, r2.Vec{}, 2e30),
		physics.NewBody("b", r2.Vec{X: physics.AU}, r2.Vec{Y: 3e4}, 6e24),
		physics.NewBody("c", r2.Vec{Y: -1.5 * physics.AU}, r2.Vec{X: 2.4e4}, 6e26),
	}
	sys, err := physics.NewSystem(bodies, 0)
	Expect(err).NotTo(HaveOccurred())
	return sys
}

func coincident() *physics.System {
	bodies := []*physics.Body{
		physics.NewBody("a", r2.Vec{X: 1e9}, r2.Vec{}, 1e30),
		physics.NewBody("b", r2.Vec{X: 1e9}, r2.Vec{}, 1e30),
	}
	sys, err := physics.NewSystem(bodies, physics.NoReference)
	Expect(err).NotTo(HaveOccurred())
	return sys
}

var _ = Describe("SymplecticEuler", func() {
	var (
		sys   *physics.System
		euler *integrators.SymplecticEuler
	)

	BeforeEach(func() {
		sys = physics.EarthSun()
		euler = integrators.NewSymplecticEuler(integrators.Sequential, integrators.Options{})
	})

	Describe("one day of Earth around the Sun", func() {
		BeforeEach(func() {
			Expect(euler.Step(sys, physics.Day)).To(Succeed())
		})

		It("pulls Earth's velocity toward the Sun along +x", func() {
			Expect(sys.Bodies[1].Vel.X).To(BeNumerically(">", 0))
			Expect(sys.Bodies[1].Vel.X).To(BeNumerically("~", 512.4796014100161, 1e-9))
			Expect(sys.Bodies[1].Vel.Y).To(BeNumerically("~", 29783.0, 1e-9))
		})

		It("keeps Earth within 0.1% of 1 AU", func() {
			d := r2.Norm(r2.Sub(sys.Bodies[1].Pos, sys.Bodies[0].Pos))
			Expect(d).To(BeNumerically("~", physics.AU, 1e-3*physics.AU))
			Expect(sys.Bodies[1].DistanceToReference).To(BeNumerically("~", physics.AU, 1e-3*physics.AU))
		})

		It("appends the new position to every trail", func() {
			for _, b := range sys.Bodies {
				last, ok := b.Trail.Last()
				Expect(ok).To(BeTrue())
				Expect(last).To(Equal(b.Pos))
			}
		})
	})

	It("keeps energy and angular momentum bounded over 10,000 steps", func() {
		e0 := sys.Energy()
		l0 := sys.AngularMomentum()
		maxE, maxL := 0.0, 0.0
		for i := 0; i < 10000; i++ {
			Expect(euler.Step(sys, physics.Day)).To(Succeed())
			maxE = math.Max(maxE, relDrift(e0, sys.Energy()))
			maxL = math.Max(maxL, relDrift(l0, sys.AngularMomentum()))
		}
		Expect(maxE).To(BeNumerically("<", 1e-3))
		Expect(maxL).To(BeNumerically("<", 1e-3))
	})

	It("bounds every trail to the last 25 positions in order", func() {
		var history []r2.Vec
		for i := 0; i < 30; i++ {
			Expect(euler.Step(sys, physics.Day)).To(Succeed())
			history = append(history, sys.Bodies[1].Pos)
		}
		trail := sys.Bodies[1].Trail
		Expect(trail.Len()).To(Equal(physics.TrailLength))
		Expect(trail.Points()).To(Equal(history[len(history)-physics.TrailLength:]))
	})

	Describe("distance to the reference body", func() {
		It("uses the reference position already advanced this step in sequential mode", func() {
			sunBefore, earthBefore := sys.Bodies[0].Pos, sys.Bodies[1].Pos
			Expect(euler.Step(sys, physics.Day)).To(Succeed())
			want := r2.Norm(r2.Sub(sys.Bodies[0].Pos, earthBefore))
			Expect(sys.Bodies[1].DistanceToReference).To(BeNumerically("~", want, 1e-3))
			stale := r2.Norm(r2.Sub(sunBefore, earthBefore))
			Expect(math.Abs(sys.Bodies[1].DistanceToReference - stale)).To(BeNumerically(">", 1))
		})

		It("uses start-of-step positions in jacobi mode", func() {
			jacobi := integrators.NewSymplecticEuler(integrators.Jacobi, integrators.Options{})
			sunBefore, earthBefore := sys.Bodies[0].Pos, sys.Bodies[1].Pos
			Expect(jacobi.Step(sys, physics.Day)).To(Succeed())
			want := r2.Norm(r2.Sub(sunBefore, earthBefore))
			Expect(sys.Bodies[1].DistanceToReference).To(BeNumerically("~", want, 1e-3))
		})

		It("is never set on the reference body itself", func() {
			Expect(euler.Step(sys, physics.Day)).To(Succeed())
			Expect(sys.Bodies[0].DistanceToReference).To(BeZero())
		})
	})

	Describe("coupling", func() {
		It("gives different trajectories for sequential and jacobi", func() {
			a, b := threeBodies(), threeBodies()
			seq := integrators.NewSymplecticEuler(integrators.Sequential, integrators.Options{})
			jac := integrators.NewSymplecticEuler(integrators.Jacobi, integrators.Options{})
			for i := 0; i < 10; i++ {
				Expect(seq.Step(a, physics.Day)).To(Succeed())
				Expect(jac.Step(b, physics.Day)).To(Succeed())
			}
			Expect(a.Bodies[2].Pos).NotTo(Equal(b.Bodies[2].Pos))
		})

		It("makes jacobi independent of body order", func() {
			a, b := threeBodies(), threeBodies()
			b.Bodies[0], b.Bodies[2] = b.Bodies[2], b.Bodies[0]
			b.Reference = 2
			ja := integrators.NewSymplecticEuler(integrators.Jacobi, integrators.Options{})
			jb := integrators.NewSymplecticEuler(integrators.Jacobi, integrators.Options{})
			for i := 0; i < 10; i++ {
				Expect(ja.Step(a, physics.Day)).To(Succeed())
				Expect(jb.Step(b, physics.Day)).To(Succeed())
			}
			for i, name := range []string{"a", "b", "c"} {
				j := b.Find(name)
				Expect(b.Bodies[j].Pos.X).To(BeNumerically("~", a.Bodies[i].Pos.X, 1e-9*physics.AU), name)
				Expect(b.Bodies[j].Pos.Y).To(BeNumerically("~", a.Bodies[i].Pos.Y, 1e-9*physics.AU), name)
			}
		})

		It("applies equal and opposite impulses to two bodies in one jacobi step", func() {
			jac := integrators.NewSymplecticEuler(integrators.Jacobi, integrators.Options{})
			sys = physics.EarthSun()
			sun, earth := sys.Bodies[0], sys.Bodies[1]
			sunV0, earthV0 := sun.Vel, earth.Vel
			Expect(jac.Step(sys, physics.Day)).To(Succeed())

			sunImpulse := r2.Scale(sun.Mass, r2.Sub(sun.Vel, sunV0))
			earthImpulse := r2.Scale(earth.Mass, r2.Sub(earth.Vel, earthV0))
			Expect(r2.Norm(sunImpulse)).To(BeNumerically(">", 0))
			tol := 1e-9 * r2.Norm(earthImpulse)
			Expect(sunImpulse.X).To(BeNumerically("~", -earthImpulse.X, tol))
			Expect(sunImpulse.Y).To(BeNumerically("~", -earthImpulse.Y, tol))
		})

		It("conserves momentum with jacobi coupling", func() {
			jac := integrators.NewSymplecticEuler(integrators.Jacobi, integrators.Options{})
			sys = threeBodies()
			p0 := sys.Momentum()
			Expect(jac.Step(sys, physics.Day)).To(Succeed())
			p1 := sys.Momentum()
			scale := sys.Bodies[2].Mass * 2.4e4
			Expect(p1.X).To(BeNumerically("~", p0.X, 1e-9*scale))
			Expect(p1.Y).To(BeNumerically("~", p0.Y, 1e-9*scale))
		})
	})

	Describe("coincident bodies", func() {
		It("fails in strict mode", func() {
			strict := integrators.NewSymplecticEuler(integrators.Sequential, integrators.Options{Strict: true})
			err := strict.Step(coincident(), physics.Day)
			Expect(errors.Is(err, dynamo.ErrDegenerateSeparation)).To(BeTrue())

			var simErr *dynamo.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Body).To(Equal("a"))
		})

		It("fails when closer than the minimum separation", func() {
			strict := integrators.NewSymplecticEuler(integrators.Jacobi, integrators.Options{Strict: true, MinSeparation: 1e6})
			s := coincident()
			s.Bodies[1].Pos.X += 5e5
			Expect(errors.Is(strict.Step(s, physics.Day), dynamo.ErrDegenerateSeparation)).To(BeTrue())
		})

		It("propagates non-finite values without the guard", func() {
			s := coincident()
			Expect(euler.Step(s, physics.Day)).To(Succeed())
			Expect(s.FirstInvalid()).To(BeNumerically(">=", 0))
		})
	})

	It("rejects an empty system", func() {
		Expect(errors.Is(euler.Step(&physics.System{}, 1), dynamo.ErrNoBodies)).To(BeTrue())
	})
})

var _ = Describe("Leapfrog", func() {
	It("keeps energy bounded over ten years", func() {
		sys := physics.EarthSun()
		leap := integrators.NewLeapfrog(integrators.Options{})
		e0 := sys.Energy()
		maxDrift := 0.0
		for i := 0; i < 3650; i++ {
			Expect(leap.Step(sys, physics.Day)).To(Succeed())
			maxDrift = math.Max(maxDrift, relDrift(e0, sys.Energy()))
		}
		Expect(maxDrift).To(BeNumerically("<", 1e-3))
	})

	It("records trails and reference distances", func() {
		sys := physics.EarthSun()
		leap := integrators.NewLeapfrog(integrators.Options{})
		Expect(leap.Step(sys, physics.Day)).To(Succeed())
		Expect(sys.Bodies[1].Trail.Len()).To(Equal(1))
		Expect(sys.Bodies[1].DistanceToReference).To(BeNumerically("~", physics.AU, 1e-6*physics.AU))
	})

	It("fails on coincident bodies in strict mode", func() {
		leap := integrators.NewLeapfrog(integrators.Options{Strict: true})
		Expect(errors.Is(leap.Step(coincident(), physics.Day), dynamo.ErrDegenerateSeparation)).To(BeTrue())
	})
})

var _ = Describe("Lookup", func() {
	DescribeTable("known integrators",
		func(name string) {
			integ, err := integrators.Lookup(name, integrators.Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(integ.Name()).To(Equal(name))
		},
		Entry("euler", "euler"),
		Entry("euler-jacobi", "euler-jacobi"),
		Entry("leapfrog", "leapfrog"),
	)

	It("rejects unknown names", func() {
		_, err := integrators.Lookup("rk4", integrators.Options{})
		Expect(errors.Is(err, dynamo.ErrUnknownIntegrator)).To(BeTrue())
	})

	It("lists names sorted", func() {
		Expect(integrators.Names()).To(Equal([]string{"euler", "euler-jacobi", "leapfrog"}))
	})

	DescribeTable("ParseCoupling",
		func(in string, want integrators.Coupling, ok bool) {
			got, err := integrators.ParseCoupling(in)
			if !ok {
				Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
				return
			}
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
			Expect(got.String()).NotTo(BeEmpty())
		},
		Entry("empty", "", integrators.Sequential, true),
		Entry("gauss-seidel", "Gauss-Seidel", integrators.Sequential, true),
		Entry("jacobi", "jacobi", integrators.Jacobi, true),
		Entry("bogus", "bogus", integrators.Sequential, false),
	)
})
