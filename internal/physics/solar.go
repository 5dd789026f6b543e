package physics

import "gonum.org/v1/gonum/spatial/r2"

// Planet describes initial conditions in the units they are usually quoted
// in: distance along x in AU, tangential velocity along y in m/s.
type Planet struct {
	Name           string
	DistanceAU     float64
	VelocityY      float64
	Mass           float64
	Radius         float64
	PhysicalRadius float64
	Color          string
}

func (p Planet) Body() *Body {
	b := NewBody(p.Name, r2.Vec{X: p.DistanceAU * AU}, r2.Vec{Y: p.VelocityY}, p.Mass)
	b.Radius = p.Radius
	b.PhysicalRadius = p.PhysicalRadius
	b.Color = p.Color
	return b
}

var (
	Sun     = Planet{Name: "sun", Mass: 1.98892e30, Radius: 30, PhysicalRadius: 695700, Color: "#ffff00"}
	Mercury = Planet{Name: "mercury", DistanceAU: 0.387, VelocityY: -57.4e3, Mass: 3.30e23, Radius: 8, PhysicalRadius: 2440, Color: "#504e51"}
	Venus   = Planet{Name: "venus", DistanceAU: 0.723, VelocityY: -35.02e3, Mass: 4.8685e24, Radius: 14, PhysicalRadius: 6052, Color: "#ffffff"}
	Earth   = Planet{Name: "earth", DistanceAU: -1, VelocityY: 29.783e3, Mass: 5.9742e24, Radius: 16, PhysicalRadius: 6371, Color: "#0000ff"}
	Mars    = Planet{Name: "mars", DistanceAU: -1.524, VelocityY: 24.077e3, Mass: 6.39e23, Radius: 12, PhysicalRadius: 3390, Color: "#bc2732"}
)

// InnerSolarSystem is the sun and the four inner planets, sun first and as
// the reference body. The body order is the one the trajectories were
// originally produced with.
func InnerSolarSystem() *System {
	return mustSystem(Sun, Earth, Mars, Mercury, Venus)
}

// EarthSun is the closed two-body case.
func EarthSun() *System {
	return mustSystem(Sun, Earth)
}

func mustSystem(planets ...Planet) *System {
	bodies := make([]*Body, len(planets))
	for i, p := range planets {
		bodies[i] = p.Body()
	}
	ApplyScaledRadii(bodies, Sun.Radius)
	s, err := NewSystem(bodies, 0)
	if err != nil {
		panic(err)
	}
	return s
}
