package config

import (
	"fmt"
	"os"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt           = physics.Day
	DefaultDurationDays = 365.0
	DefaultIntegrator   = "euler"
	DefaultWidth        = 80
	DefaultHeight       = 32
	DefaultPixelsPerAU  = 40.0
	DefaultFPS          = 60
	DefaultTheme        = "space"
)

// Config is a scenario: initial conditions, run parameters and how to draw
// it. Positions are given in AU and velocities in m/s.
type Config struct {
	Name          string       `yaml:"name"`
	Integrator    string       `yaml:"integrator"`
	Dt            float64      `yaml:"dt"`
	DurationDays  float64      `yaml:"duration_days"`
	SampleEvery   int          `yaml:"sample_every"`
	Strict        bool         `yaml:"strict"`
	MinSeparation float64      `yaml:"min_separation"`
	ValidateState bool         `yaml:"validate_state"`
	Reference     string       `yaml:"reference"`
	Bodies        []BodyConfig `yaml:"bodies"`
	Render        RenderConfig `yaml:"render"`
}

type BodyConfig struct {
	Name             string  `yaml:"name"`
	XAU              float64 `yaml:"x_au"`
	YAU              float64 `yaml:"y_au"`
	VX               float64 `yaml:"vx"`
	VY               float64 `yaml:"vy"`
	Mass             float64 `yaml:"mass"`
	Radius           float64 `yaml:"radius"`
	PhysicalRadiusKm float64 `yaml:"physical_radius_km"`
	Color            string  `yaml:"color"`
}

// RenderConfig is fixed at startup and handed to the renderer as a value.
// Width and Height are terminal cells; the braille canvas has 2x4
// sub-pixels per cell, and PixelsPerAU is in sub-pixels.
type RenderConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	PixelsPerAU float64 `yaml:"pixels_per_au"`
	FPS         int     `yaml:"fps"`
	ShowLabels  bool    `yaml:"show_labels"`
	TrueScale   bool    `yaml:"true_scale"`
	Theme       string  `yaml:"theme"`
}

func DefaultRender() RenderConfig {
	return RenderConfig{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		PixelsPerAU: DefaultPixelsPerAU,
		FPS:         DefaultFPS,
		ShowLabels:  true,
		Theme:       DefaultTheme,
	}
}

func DefaultConfig() *Config {
	cfg := GetPreset("inner")
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var keys map[string]yaml.Node
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	// a file with its own bodies does not inherit the preset's reference
	if _, ok := keys["bodies"]; ok {
		cfg.Reference = ""
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrParameterBounds, c.Dt)
	}
	if c.DurationDays <= 0 {
		return fmt.Errorf("%w: duration_days must be positive, got %g", dynamo.ErrParameterBounds, c.DurationDays)
	}
	if len(c.Bodies) == 0 {
		return dynamo.ErrNoBodies
	}
	seen := make(map[string]bool, len(c.Bodies))
	for _, b := range c.Bodies {
		if b.Name == "" {
			return fmt.Errorf("%w: body without a name", dynamo.ErrParameterBounds)
		}
		if seen[b.Name] {
			return fmt.Errorf("%w: duplicate body %q", dynamo.ErrParameterBounds, b.Name)
		}
		seen[b.Name] = true
		if !(b.Mass > 0) {
			return fmt.Errorf("%w: body %q has mass %g", dynamo.ErrParameterBounds, b.Name, b.Mass)
		}
	}
	if c.Reference != "" && !seen[c.Reference] {
		return fmt.Errorf("%w: %q is not a body", dynamo.ErrReferenceOutOfRange, c.Reference)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 || c.Render.PixelsPerAU <= 0 {
		return fmt.Errorf("%w: render size and scale must be positive", dynamo.ErrParameterBounds)
	}
	return nil
}

// Build creates the body set. Bodies keep the order they are listed in.
func (c *Config) Build() (*physics.System, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	bodies := make([]*physics.Body, len(c.Bodies))
	ref := physics.NoReference
	maxRadius := 0.0
	for i, bc := range c.Bodies {
		b := physics.NewBody(bc.Name,
			r2.Vec{X: bc.XAU * physics.AU, Y: bc.YAU * physics.AU},
			r2.Vec{X: bc.VX, Y: bc.VY},
			bc.Mass)
		b.Radius = bc.Radius
		b.PhysicalRadius = bc.PhysicalRadiusKm
		b.Color = bc.Color
		bodies[i] = b
		if bc.Name == c.Reference {
			ref = i
		}
		if bc.Radius > maxRadius {
			maxRadius = bc.Radius
		}
	}
	physics.ApplyScaledRadii(bodies, maxRadius)
	return physics.NewSystem(bodies, ref)
}

func (c *Config) SimConfig() dynamo.Config {
	return dynamo.Config{
		Dt:            c.Dt,
		Duration:      c.DurationDays * physics.Day,
		SampleEvery:   c.SampleEvery,
		ValidateState: c.ValidateState,
	}
}

// Clone is a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Bodies = append([]BodyConfig(nil), c.Bodies...)
	return &cp
}

func FromPlanet(p physics.Planet) BodyConfig {
	return BodyConfig{
		Name:             p.Name,
		XAU:              p.DistanceAU,
		VY:               p.VelocityY,
		Mass:             p.Mass,
		Radius:           p.Radius,
		PhysicalRadiusKm: p.PhysicalRadius,
		Color:            p.Color,
	}
}
