package render

import (
	"slices"

	"github.com/lixenwraith/scotomap/grid"
	"github.com/lixenwraith/scotomap/parameter"
	"github.com/lixenwraith/scotomap/parameter/visual"
	"github.com/lixenwraith/scotomap/projection"
	"github.com/lixenwraith/scotomap/sweep"
)

// Geometry holds the physical model shared by every surface
type Geometry struct {
	EyeDistance    float64
	PixelsPerUnit  float64 // Effective density, pixel ratio already applied
	TabulateScale  float64
	MajorPhi       []float64
	MajorTheta     []float64
	RadialOverhang float64
}

// DefaultGeometry returns the model for a surface of the given density
func DefaultGeometry(pixelsPerUnit float64) Geometry {
	return Geometry{
		EyeDistance:    parameter.EyeScreenDistance,
		PixelsPerUnit:  projection.EffectivePPU(pixelsPerUnit, parameter.PixelRatio),
		TabulateScale:  parameter.TabulateScale,
		MajorPhi:       slices.Clone(parameter.MajorAnglesPhi),
		MajorTheta:     slices.Clone(parameter.MajorAnglesTheta),
		RadialOverhang: parameter.TabulateRadialOverhang,
	}
}

// TerminalStyle is the default look of the half-block canvas
func TerminalStyle() Style {
	return Style{
		Palette: Palette{
			Background: visual.TerminalBackground,
			Stroke:     visual.TerminalStroke,
			Probe:      visual.TerminalProbe,
			Seen:       visual.TerminalSeen,
			NotSeen:    visual.TerminalNotSeen,
		},
		MarkerSize:  parameter.TerminalMarkerSize,
		ProbeRadius: parameter.TerminalProbeRadius,
	}
}

// ImageStyle is the default look of exported images
func ImageStyle() Style {
	return Style{
		Palette: Palette{
			Background: visual.ImageBackground,
			Stroke:     visual.ImageStroke,
			Probe:      visual.ImageProbe,
			Seen:       visual.ImageSeen,
			NotSeen:    visual.ImageNotSeen,
		},
		MarkerSize:  parameter.ImageMarkerSize,
		ProbeRadius: parameter.ImageProbeRadius,
	}
}

// Renderer draws a session onto a surface
// It holds no per-frame state: equal sessions produce equal command streams
type Renderer struct {
	geom  Geometry
	style Style
}

// NewRenderer creates a renderer for one surface kind
func NewRenderer(geom Geometry, style Style) *Renderer {
	return &Renderer{geom: geom, style: style}
}

// Geometry returns the renderer's physical model
func (r *Renderer) Geometry() Geometry {
	return r.geom
}

// Style returns the renderer's look
func (r *Renderer) Style() Style {
	return r.style
}

// Draw clears dst and paints the view for the session's current mode
func (r *Renderer) Draw(dst Surface, s *sweep.Session) {
	w, h := dst.Size()
	proj := projection.NewProjector(w, h, r.geom.EyeDistance, r.geom.PixelsPerUnit)

	dst.Clear(r.style.Palette.Background)

	switch s.Mode {
	case sweep.Measuring:
		r.drawMeasuring(dst, proj, s)
	case sweep.Tabulating:
		r.drawTabulation(dst, proj, s)
	}
}

func (r *Renderer) drawMeasuring(dst Surface, proj projection.Projector, s *sweep.Session) {
	pal := r.style.Palette
	probe := proj.Visual(s.Coordinate.Phi, s.Coordinate.Theta)
	dst.FillCircle(probe.X, probe.Y, r.style.ProbeRadius, pal.Probe)

	fixation := proj.Visual(0, 0)
	r.drawX(dst, fixation, pal.Stroke)
}

func (r *Renderer) drawTabulation(dst Surface, proj projection.Projector, s *sweep.Session) {
	pal := r.style.Palette
	scale := r.geom.TabulateScale

	r.drawX(dst, proj.Polar(0, 0), pal.Stroke)

	// Reference rings
	for _, m := range r.geom.MajorPhi {
		c := proj.Polar(0, 0)
		dst.StrokeCircle(c.X, c.Y, proj.PolarRadius(m*scale), pal.Stroke)
	}

	// Radial lines
	if len(r.geom.MajorPhi) > 0 {
		reach := (slices.Max(r.geom.MajorPhi) + r.geom.RadialOverhang) * scale
		origin := proj.Polar(0, 0)
		for _, t := range r.geom.MajorTheta {
			end := proj.Polar(reach, t)
			dst.StrokeLine(origin.X, origin.Y, end.X, end.Y, pal.Stroke)
		}
	}

	phiInc, thetaInc := s.Params.PhiInc, s.Params.ThetaInc
	s.Grid.Each(func(i, j int, resp grid.Response) {
		p := proj.Polar(float64(i)*phiInc*scale, float64(j)*thetaInc)
		switch resp {
		case grid.Unmeasured:
			r.drawX(dst, p, pal.Stroke)
		case grid.NotSeen:
			dst.FillCircle(p.X, p.Y, r.style.MarkerSize, pal.NotSeen)
		case grid.Seen:
			dst.FillCircle(p.X, p.Y, r.style.MarkerSize, pal.Seen)
		}
	})
}

// drawX strokes two diagonals of half-width MarkerSize centered at p
func (r *Renderer) drawX(dst Surface, p projection.Point, c RGB) {
	d := r.style.MarkerSize
	dst.StrokeLine(p.X-d, p.Y-d, p.X+d, p.Y+d, c)
	dst.StrokeLine(p.X+d, p.Y-d, p.X-d, p.Y+d, c)
}
