package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a grid of braille cells. Drawing happens in sub-pixel
// coordinates, (Width*2) x (Height*4); colour is tracked per cell and the
// last write to a cell wins.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]string
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]string, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]string, w)
	}
	c.Clear()
	return c
}

// SubWidth and SubHeight are the canvas size in sub-pixels.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Set lights the sub-pixel (x, y). Out of range points are ignored.
func (c *Canvas) Set(x, y int, color string) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	if c.Grid[row][col] < brailleBlank || c.Grid[row][col] > brailleBlank+0xff {
		c.Grid[row][col] = brailleBlank
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if color != "" {
		c.Colors[row][col] = color
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return false
	}
	r := c.Grid[row][col]
	if r < brailleBlank || r > brailleBlank+0xff {
		return false
	}
	return r&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Colors[i][j] = ""
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm, clipped to the canvas
// first.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, color string) {
	c.DrawLineF(float64(x0), float64(y0), float64(x1), float64(y1), color)
}

// DrawLineF is DrawLine for sub-pixel coordinates that may lie far outside
// the canvas or be non-finite. Segments with a non-finite endpoint are
// dropped.
func (c *Canvas) DrawLineF(x0, y0, x1, y1 float64, color string) {
	x0, y0, x1, y1, ok := clipLine(x0, y0, x1, y1, 0, 0, float64(c.SubWidth()-1), float64(c.SubHeight()-1))
	if !ok {
		return
	}
	c.bresenham(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)), color)
}

func (c *Canvas) bresenham(x0, y0, x1, y1 int, color string) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

const (
	outLeft = 1 << iota
	outRight
	outTop
	outBottom
)

// clipLine clips a segment to the rectangle [xmin, xmax] x [ymin, ymax]
// (Cohen-Sutherland). Clipped endpoints land exactly on the boundary, so
// huge coordinates do not swamp the visible part. ok is false when no part
// of the segment is inside.
func clipLine(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (float64, float64, float64, float64, bool) {
	for _, v := range [...]float64{x0, y0, x1, y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}

	outcode := func(x, y float64) int {
		code := 0
		if x < xmin {
			code |= outLeft
		} else if x > xmax {
			code |= outRight
		}
		if y < ymin {
			code |= outTop
		} else if y > ymax {
			code |= outBottom
		}
		return code
	}

	c0, c1 := outcode(x0, y0), outcode(x1, y1)
	for range 8 {
		if c0|c1 == 0 {
			return x0, y0, x1, y1, true
		}
		if c0&c1 != 0 {
			return 0, 0, 0, 0, false
		}

		c := c0
		if c == 0 {
			c = c1
		}
		var x, y float64
		switch {
		case c&outBottom != 0:
			x, y = x0+(x1-x0)*((ymax-y0)/(y1-y0)), ymax
		case c&outTop != 0:
			x, y = x0+(x1-x0)*((ymin-y0)/(y1-y0)), ymin
		case c&outRight != 0:
			x, y = xmax, y0+(y1-y0)*((xmax-x0)/(x1-x0))
		default:
			x, y = xmin, y0+(y1-y0)*((xmin-x0)/(x1-x0))
		}
		if math.IsNaN(x) || math.IsNaN(y) {
			return 0, 0, 0, 0, false
		}

		if c == c0 {
			x0, y0, c0 = x, y, outcode(x, y)
		} else {
			x1, y1, c1 = x, y, outcode(x, y)
		}
	}
	return 0, 0, 0, 0, false
}

// FillCircle draws a filled disc. A radius below one sub-pixel still
// lights the centre.
func (c *Canvas) FillCircle(cx, cy int, r float64, color string) {
	c.Set(cx, cy, color)
	if r < 1 {
		return
	}
	ri := int(math.Ceil(r))
	r2 := r * r
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if float64(dx*dx+dy*dy) <= r2 {
				c.Set(cx+dx, cy+dy, color)
			}
		}
	}
}

// Text writes s into whole cells starting at (col, row), replacing any
// braille there. Characters that fall off the canvas are dropped.
func (c *Canvas) Text(col, row int, s string, color string) {
	if row < 0 || row >= c.Height {
		return
	}
	for _, r := range s {
		if col >= 0 && col < c.Width {
			c.Grid[row][col] = r
			c.Colors[row][col] = color
		}
		col++
	}
}

// String renders the canvas without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render renders the canvas with per-cell foreground colours. Runs of cells
// with the same colour share one style.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j] == c.Colors[i][start] {
				continue
			}
			run := string(row[start:j])
			if color := c.Colors[i][start]; color != "" {
				run = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(run)
			}
			b.WriteString(run)
			start = j
		}
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
