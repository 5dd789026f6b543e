package viz

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// SchematicPixelsPerAU is the scale the schematic body radii were
	// chosen for; radii are rescaled by PixelsPerAU against it.
	SchematicPixelsPerAU = 200.0

	minZoom   = 0.05
	maxZoom   = 50.0
	trailFade = 0.75
)

// Scene projects a body set onto a braille canvas: origin at the centre,
// x to the right and y downward, PixelsPerAU*zoom sub-pixels per AU.
type Scene struct {
	cfg    config.RenderConfig
	theme  Theme
	zoom   float64
	canvas *Canvas
}

func NewScene(cfg config.RenderConfig) *Scene {
	return &Scene{
		cfg:    cfg,
		theme:  GetTheme(cfg.Theme),
		zoom:   1,
		canvas: NewCanvas(cfg.Width, cfg.Height),
	}
}

func (s *Scene) Canvas() *Canvas { return s.canvas }
func (s *Scene) Zoom() float64   { return s.zoom }

func (s *Scene) SetZoom(z float64) {
	s.zoom = math.Max(minZoom, math.Min(maxZoom, z))
}

func (s *Scene) ZoomBy(factor float64) { s.SetZoom(s.zoom * factor) }

// maxOffscreen bounds projected coordinates so the int conversion stays
// defined; anything beyond it is off the canvas either way.
const maxOffscreen = 1 << 20

// ProjectF maps a position in meters to canvas sub-pixels without
// rounding or bounds.
func (s *Scene) ProjectF(p r2.Vec) (float64, float64) {
	scale := s.cfg.PixelsPerAU * s.zoom / physics.AU
	return float64(s.canvas.SubWidth()/2) + p.X*scale, float64(s.canvas.SubHeight()/2) + p.Y*scale
}

// Project maps a position in meters to canvas sub-pixels. Coordinates far
// off the canvas are clamped.
func (s *Scene) Project(p r2.Vec) (int, int) {
	x, y := s.ProjectF(p)
	return clampPixel(x), clampPixel(y)
}

func clampPixel(v float64) int {
	if math.IsNaN(v) {
		return -maxOffscreen
	}
	return int(math.Round(math.Max(-maxOffscreen, math.Min(maxOffscreen, v))))
}

// Radius is the display radius of b in sub-pixels. It follows PixelsPerAU
// but not the zoom.
func (s *Scene) Radius(b *physics.Body, trueScale bool) float64 {
	return b.DisplayRadius(trueScale) * s.cfg.PixelsPerAU / SchematicPixelsPerAU
}

// Draw clears the canvas and draws trails, then bodies, then distance
// labels. Bodies with a non-finite position are skipped.
func (s *Scene) Draw(sys *physics.System, trueScale bool) {
	s.canvas.Clear()
	bg := s.background()

	for i, b := range sys.Bodies {
		if b.Finite() {
			s.drawTrail(b, bodyColor(b, i), bg)
		}
	}

	for i, b := range sys.Bodies {
		if !b.Finite() {
			continue
		}
		x, y := s.Project(b.Pos)
		s.canvas.FillCircle(x, y, s.Radius(b, trueScale), bodyColor(b, i).Hex())
	}

	if !s.cfg.ShowLabels || sys.Reference == physics.NoReference {
		return
	}
	for i, b := range sys.Bodies {
		if sys.IsReference(i) || !b.Finite() {
			continue
		}
		x, y := s.Project(b.Pos)
		label := FormatAU(b.DistanceToReference)
		row := (y-int(math.Ceil(s.Radius(b, trueScale))))/4 - 1
		s.canvas.Text(x/2-len(label)/2, row, label, string(s.theme.Text))
	}
}

// drawTrail joins consecutive trail points, fading older segments toward
// the background. Two points or fewer are not drawn.
func (s *Scene) drawTrail(b *physics.Body, base, bg colorful.Color) {
	if b.Trail == nil || b.Trail.Len() <= 2 {
		return
	}
	pts := b.Trail.Points()
	n := len(pts)
	px, py := s.ProjectF(pts[0])
	for k := 1; k < n; k++ {
		x, y := s.ProjectF(pts[k])
		t := trailFade * (1 - float64(k)/float64(n-1))
		s.canvas.DrawLineF(px, py, x, y, base.BlendLab(bg, t).Clamped().Hex())
		px, py = x, y
	}
}

func (s *Scene) background() colorful.Color {
	c, err := colorful.Hex(string(s.theme.Background))
	if err != nil {
		return colorful.Color{}
	}
	return c
}

// bodyColor parses the body's colour; bodies without one get a hue derived
// from their index.
func bodyColor(b *physics.Body, i int) colorful.Color {
	if c, err := colorful.Hex(b.Color); err == nil {
		return c
	}
	return colorful.Hcl(math.Mod(float64(i)*137.5, 360), 0.9, 0.9).Clamped()
}

// FormatAU renders a distance in meters as AU, rounded to 3 decimals.
func FormatAU(meters float64) string {
	return fmt.Sprintf("%.3f AU", meters/physics.AU)
}
