// Package termsurface rasterizes draw commands onto terminal cells
// Each cell carries two vertically stacked pixels drawn with an upper half block
package termsurface

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/scotomap/render"
)

// HalfBlock paints the top pixel as foreground and the bottom pixel as background
const HalfBlock = '▀'

// CellSetter is the subset of tcell.Screen the surface writes to
type CellSetter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Surface is a pixel buffer of cols x 2*rows half-block pixels with dirty tracking
type Surface struct {
	pix    []render.RGB
	shown  []render.RGB // Pixels as of the last flush
	stale  bool         // Forces a full flush
	cols   int
	rows   int
	width  int
	height int
}

// New creates a surface covering cols x rows terminal cells
func New(cols, rows int) *Surface {
	s := &Surface{}
	s.Resize(cols, rows)
	return s
}

// Resize adjusts the cell dimensions, reallocates only if capacity insufficient
func (s *Surface) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	size := cols * rows * 2
	if cap(s.pix) < size {
		s.pix = make([]render.RGB, size)
		s.shown = make([]render.RGB, size)
	} else {
		s.pix = s.pix[:size]
		s.shown = s.shown[:size]
	}
	s.cols, s.rows = cols, rows
	s.width, s.height = cols, rows*2
	s.stale = true
}

// Cells returns the terminal cell dimensions
func (s *Surface) Cells() (int, int) {
	return s.cols, s.rows
}

// Size returns the pixel dimensions
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// Invalidate forces the next flush to rewrite every cell
func (s *Surface) Invalidate() {
	s.stale = true
}

// Pixel returns the color at (x, y), black outside the surface
func (s *Surface) Pixel(x, y int) render.RGB {
	if !s.inBounds(x, y) {
		return render.RGB{}
	}
	return s.pix[y*s.width+x]
}

func (s *Surface) inBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

func (s *Surface) set(x, y int, c render.RGB) {
	if !s.inBounds(x, y) {
		return
	}
	s.pix[y*s.width+x] = c
}

// Clear fills every pixel using exponential copy
func (s *Surface) Clear(c render.RGB) {
	if len(s.pix) == 0 {
		return
	}
	s.pix[0] = c
	for filled := 1; filled < len(s.pix); filled *= 2 {
		copy(s.pix[filled:], s.pix[:filled])
	}
}

// FillCircle paints every pixel whose center lies within r of (cx, cy)
// The pixel containing the center is always painted
func (s *Surface) FillCircle(cx, cy, r float64, c render.RGB) {
	s.set(int(math.Floor(cx)), int(math.Floor(cy)), c)
	if r <= 0 {
		return
	}
	r2 := r * r
	x0, x1 := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	y0, y1 := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				s.set(x, y, c)
			}
		}
	}
}

// StrokeLine plots a one-pixel line with Bresenham's algorithm
func (s *Surface) StrokeLine(x1, y1, x2, y2 float64, c render.RGB) {
	ax, ay := int(math.Floor(x1)), int(math.Floor(y1))
	bx, by := int(math.Floor(x2)), int(math.Floor(y2))

	dx := abs(bx - ax)
	dy := -abs(by - ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}
	err := dx + dy
	for {
		s.set(ax, ay, c)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ax += sx
		}
		if e2 <= dx {
			err += dx
			ay += sy
		}
	}
}

// StrokeCircle plots the circle outline by angular sampling at sub-pixel steps
func (s *Surface) StrokeCircle(cx, cy, r float64, c render.RGB) {
	if r <= 0 {
		s.set(int(math.Floor(cx)), int(math.Floor(cy)), c)
		return
	}
	steps := max(int(math.Ceil(2*math.Pi*r*2)), 8)
	for k := 0; k < steps; k++ {
		a := 2 * math.Pi * float64(k) / float64(steps)
		s.set(int(math.Floor(cx+r*math.Cos(a))), int(math.Floor(cy+r*math.Sin(a))), c)
	}
}

// Flush writes changed cells to the screen and returns how many were written
func (s *Surface) Flush(dst CellSetter) int {
	written := 0
	for row := 0; row < s.rows; row++ {
		top := row * 2 * s.width
		bottom := top + s.width
		for col := 0; col < s.cols; col++ {
			t, b := s.pix[top+col], s.pix[bottom+col]
			if !s.stale && t == s.shown[top+col] && b == s.shown[bottom+col] {
				continue
			}
			style := tcell.StyleDefault.Foreground(toColor(t)).Background(toColor(b))
			dst.SetContent(col, row, HalfBlock, nil, style)
			s.shown[top+col], s.shown[bottom+col] = t, b
			written++
		}
	}
	s.stale = false
	return written
}

func toColor(c render.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var _ render.Surface = (*Surface)(nil)
