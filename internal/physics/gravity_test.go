package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

var _ = Describe("Force", func() {
	It("matches G·m1·m2/d² along the separation", func() {
		f, d := physics.Force(r2.Vec{}, 2, r2.Vec{X: 3, Y: 4}, 5)
		Expect(d).To(Equal(5.0))
		mag := physics.G * 2 * 5 / 25
		Expect(f.X).To(BeNumerically("~", mag*0.6, 1e-12*mag))
		Expect(f.Y).To(BeNumerically("~", mag*0.8, 1e-12*mag))
	})

	DescribeTable("is equal and opposite between two bodies",
		func(p, q r2.Vec, mp, mq float64) {
			fpq, dpq := physics.Force(p, mp, q, mq)
			fqp, dqp := physics.Force(q, mq, p, mp)
			Expect(dpq).To(Equal(dqp))
			tol := 1e-12 * r2.Norm(fpq)
			Expect(fpq.X).To(BeNumerically("~", -fqp.X, tol))
			Expect(fpq.Y).To(BeNumerically("~", -fqp.Y, tol))
		},
		Entry("sun and earth", r2.Vec{}, r2.Vec{X: -physics.AU}, 1.98892e30, 5.9742e24),
		Entry("diagonal", r2.Vec{X: 1e10, Y: -3e10}, r2.Vec{X: -2e11, Y: 7e10}, 6.39e23, 4.8685e24),
		Entry("vertical", r2.Vec{Y: 1e9}, r2.Vec{Y: -1e9}, 1e30, 1e30),
	)

	It("points from the body toward its attractor", func() {
		sun := physics.NewBody("sun", r2.Vec{}, r2.Vec{}, 1.98892e30)
		earth := physics.NewBody("earth", r2.Vec{X: -physics.AU}, r2.Vec{}, 5.9742e24)
		f, d := physics.Attraction(earth, sun)
		Expect(d).To(Equal(physics.AU))
		Expect(f.X).To(BeNumerically(">", 0))
		Expect(math.Abs(f.Y)).To(BeNumerically("<", 1e-9*f.X))
	})

	It("is non-finite for coincident bodies", func() {
		f, d := physics.Force(r2.Vec{X: 1}, 1, r2.Vec{X: 1}, 1)
		Expect(d).To(BeZero())
		Expect(math.IsInf(f.X, 0) || math.IsNaN(f.X)).To(BeTrue())
		Expect(math.IsNaN(f.Y)).To(BeTrue())
	})
})

var _ = Describe("System", func() {
	It("builds the inner solar system in order with the sun as reference", func() {
		sys := physics.InnerSolarSystem()
		names := make([]string, sys.Len())
		for i, b := range sys.Bodies {
			names[i] = b.Name
		}
		Expect(names).To(Equal([]string{"sun", "earth", "mars", "mercury", "venus"}))
		Expect(sys.ReferenceBody().Name).To(Equal("sun"))
	})

	It("has negative total energy for bound orbits", func() {
		Expect(physics.EarthSun().Energy()).To(BeNumerically("<", 0))
	})

	It("is deep-copied by Clone", func() {
		sys := physics.EarthSun()
		sys.Bodies[1].RecordPosition()
		c := sys.Clone()
		c.Bodies[1].Pos.X = 0
		c.Bodies[1].RecordPosition()
		Expect(sys.Bodies[1].Pos.X).To(Equal(-physics.AU))
		Expect(sys.Bodies[1].Trail.Len()).To(Equal(1))
		Expect(c.Bodies[1].Trail.Len()).To(Equal(2))
	})
})
