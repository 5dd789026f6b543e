package config

import (
	"sort"

	"github.com/san-kum/orbitsim/internal/physics"
)

var Presets = map[string]*Config{
	"inner": {
		Name: "inner", Integrator: DefaultIntegrator, Dt: DefaultDt, DurationDays: DefaultDurationDays,
		SampleEvery: 1, ValidateState: true, Reference: physics.Sun.Name,
		Bodies: []BodyConfig{
			FromPlanet(physics.Sun),
			FromPlanet(physics.Earth),
			FromPlanet(physics.Mars),
			FromPlanet(physics.Mercury),
			FromPlanet(physics.Venus),
		},
		Render: DefaultRender(),
	},
	"earth-sun": {
		Name: "earth-sun", Integrator: DefaultIntegrator, Dt: DefaultDt, DurationDays: DefaultDurationDays,
		SampleEvery: 1, ValidateState: true, Reference: physics.Sun.Name,
		Bodies: []BodyConfig{
			FromPlanet(physics.Sun),
			FromPlanet(physics.Earth),
		},
		Render: DefaultRender(),
	},
	// two equal stars 1 AU apart on circular orbits about their barycentre,
	// with a circumbinary planet; no reference body
	"binary": {
		Name: "binary", Integrator: "leapfrog", Dt: DefaultDt / 4, DurationDays: 2 * DefaultDurationDays,
		SampleEvery: 4, ValidateState: true,
		Bodies: []BodyConfig{
			{Name: "alpha", XAU: -0.5, VY: -14937, Mass: 1e30, Radius: 20, PhysicalRadiusKm: 500000, Color: "#ffcc66"},
			{Name: "beta", XAU: 0.5, VY: 14937, Mass: 1e30, Radius: 20, PhysicalRadiusKm: 500000, Color: "#ff7744"},
			{Name: "wanderer", XAU: 3, VY: 17246, Mass: 5.9742e24, Radius: 10, PhysicalRadiusKm: 6371, Color: "#66ccff"},
		},
		Render: RenderConfig{Width: DefaultWidth, Height: DefaultHeight, PixelsPerAU: DefaultPixelsPerAU / 2, FPS: DefaultFPS, ShowLabels: true, Theme: DefaultTheme},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
