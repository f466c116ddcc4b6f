// Package imagesurface rasterizes draw commands into an anti-aliased raster with gg
package imagesurface

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"

	"github.com/lixenwraith/scotomap/render"
	"github.com/lixenwraith/scotomap/sweep"
)

// ErrRaster wraps the first gg fill or stroke failure seen by a surface
var ErrRaster = errors.New("raster failed")

// Surface wraps a gg drawing context
type Surface struct {
	dc        *gg.Context
	lineWidth float64
	err       error
}

// New creates a raster surface of the given pixel size
func New(width, height int, lineWidth float64) *Surface {
	if lineWidth <= 0 {
		lineWidth = 1
	}
	return &Surface{
		dc:        gg.NewContext(width, height),
		lineWidth: lineWidth,
	}
}

// Size returns the pixel dimensions
func (s *Surface) Size() (int, int) {
	return s.dc.Width(), s.dc.Height()
}

func (s *Surface) Clear(c render.RGB) {
	s.dc.ClearWithColor(toRGBA(c))
}

func (s *Surface) FillCircle(x, y, r float64, c render.RGB) {
	s.dc.SetColor(toRGBA(c).Color())
	s.dc.DrawCircle(x, y, r)
	s.keep(s.dc.Fill())
}

func (s *Surface) StrokeLine(x1, y1, x2, y2 float64, c render.RGB) {
	s.dc.SetColor(toRGBA(c).Color())
	s.dc.SetLineWidth(s.lineWidth)
	s.dc.DrawLine(x1, y1, x2, y2)
	s.keep(s.dc.Stroke())
}

func (s *Surface) StrokeCircle(x, y, r float64, c render.RGB) {
	s.dc.SetColor(toRGBA(c).Color())
	s.dc.SetLineWidth(s.lineWidth)
	s.dc.DrawCircle(x, y, r)
	s.keep(s.dc.Stroke())
}

// keep records the first draw error, later ones are dropped
func (s *Surface) keep(err error) {
	if err != nil && s.err == nil {
		s.err = fmt.Errorf("%w: %w", ErrRaster, err)
	}
}

// Err returns the first fill or stroke error since the surface was created
func (s *Surface) Err() error {
	return s.err
}

// Render draws a session and reports any raster failure
func (s *Surface) Render(r *render.Renderer, session *sweep.Session) error {
	r.Draw(s, session)
	return s.err
}

// Image returns the rendered raster
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// EncodePNG writes the raster as PNG
func (s *Surface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

// SavePNG writes the raster to a PNG file, creating parent directories
func (s *Surface) SavePNG(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	return s.dc.SavePNG(path)
}

// Close releases the drawing context
func (s *Surface) Close() error {
	return s.dc.Close()
}

// Export renders a session on a fresh raster and saves it as PNG
func Export(path string, r *render.Renderer, session *sweep.Session, width, height int, lineWidth float64) error {
	s := New(width, height, lineWidth)
	defer s.Close()

	if err := s.Render(r, session); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := s.SavePNG(path); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}

// Encode renders a session on a fresh raster and writes it as PNG
func Encode(w io.Writer, r *render.Renderer, session *sweep.Session, width, height int, lineWidth float64) error {
	s := New(width, height, lineWidth)
	defer s.Close()

	if err := s.Render(r, session); err != nil {
		return err
	}
	return s.EncodePNG(w)
}

func toRGBA(c render.RGB) gg.RGBA {
	return gg.RGB(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}

var _ render.Surface = (*Surface)(nil)
