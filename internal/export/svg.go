package export

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/viz"
)

const (
	background   = "#0a0a0a"
	defaultColor = "#00ff00"
)

// CanvasToSVG converts a Braille canvas to SVG format, one dot per lit
// sub-pixel, coloured like its cell.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	dotRadius := scale * 0.4

	for y := 0; y < canvas.SubHeight(); y++ {
		for x := 0; x < canvas.SubWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fill := canvas.Colors[y/4][x/2]
			if fill == "" {
				fill = defaultColor
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoriesSVG draws one polyline per body with a shared, equal-aspect
// scale so orbits keep their shape. colors maps body name to a hex colour;
// bodies without one get a generated hue.
func TrajectoriesSVG(traj *storage.Trajectory, colors map[string]string, width, height int) string {
	if traj == nil || len(traj.Order) == 0 {
		return ""
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, name := range traj.Order {
		for _, p := range traj.Bodies[name] {
			if !finite(p.Pos.X) || !finite(p.Pos.Y) {
				continue
			}
			minX, maxX = math.Min(minX, p.Pos.X), math.Max(maxX, p.Pos.X)
			minY, maxY = math.Min(minY, p.Pos.Y), math.Max(maxY, p.Pos.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return ""
	}

	// Add padding
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	span *= 1.2
	midX, midY := (minX+maxX)/2, (minY+maxY)/2
	scale := math.Min(float64(width), float64(height)) / span

	project := func(x, y float64) (float64, float64) {
		return float64(width)/2 + (x-midX)*scale, float64(height)/2 - (y-midY)*scale
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	for i, name := range traj.Order {
		stroke := bodyColor(colors[name], i)
		pts := traj.Bodies[name]

		var path strings.Builder
		var lastX, lastY float64
		n := 0
		for _, p := range pts {
			if !finite(p.Pos.X) || !finite(p.Pos.Y) {
				continue
			}
			lastX, lastY = project(p.Pos.X, p.Pos.Y)
			if n == 0 {
				path.WriteString(fmt.Sprintf("M%.1f,%.1f", lastX, lastY))
			} else {
				path.WriteString(fmt.Sprintf(" L%.1f,%.1f", lastX, lastY))
			}
			n++
		}
		if n == 0 {
			continue
		}

		label := html.EscapeString(name)
		sb.WriteString(fmt.Sprintf(`<g id="%s">
`, label))
		if n > 1 {
			sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="%s"/>
`, stroke, path.String()))
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="10">%s</text>
</g>
`, lastX, lastY, stroke, lastX+5, lastY-5, stroke, label))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func bodyColor(hex string, i int) string {
	if c, err := colorful.Hex(hex); err == nil {
		return c.Hex()
	}
	return colorful.Hcl(math.Mod(float64(i)*137.5, 360), 0.9, 0.9).Clamped().Hex()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
