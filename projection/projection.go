// Package projection maps angular test coordinates to surface pixels
//
// Two models are provided. Visual places a probe on a flat screen at a fixed
// eye distance; Polar is a plain scaled polar plot used for the tabulated map.
// Both are pure and return positions relative to a supplied center.
package projection

import "math"

// Point is a pixel position on a drawing surface
type Point struct {
	X, Y float64
}

// Add returns the component-wise sum
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Radians converts degrees to radians
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// VisualRadius returns the on-screen radius in pixels for visual angle phi
// NOTE: atan of the angle in radians, not tan; changing it moves every probe
func VisualRadius(phi, eyeDistance, pixelsPerUnit float64) float64 {
	return math.Atan(Radians(phi)) * eyeDistance * pixelsPerUnit
}

// VisualOffset returns the pixel offset from center of a probe at visual angle phi and azimuth theta
func VisualOffset(phi, theta, eyeDistance, pixelsPerUnit float64) Point {
	r := VisualRadius(phi, eyeDistance, pixelsPerUnit)
	t := Radians(theta)
	return Point{r * math.Cos(t), r * math.Sin(t)}
}

// PolarOffset returns the pixel offset from center of radius r (length units) at azimuth theta
func PolarOffset(r, theta, pixelsPerUnit float64) Point {
	rpx := r * pixelsPerUnit
	t := Radians(theta)
	return Point{rpx * math.Cos(t), rpx * math.Sin(t)}
}

// EffectivePPU folds the device pixel ratio into a pixels-per-unit density
// Non-positive ratios are treated as 1
func EffectivePPU(pixelsPerUnit, ratio float64) float64 {
	if ratio <= 0 {
		ratio = 1
	}
	return pixelsPerUnit * ratio
}

// Projector binds both models to a surface center and density
type Projector struct {
	Center        Point
	EyeDistance   float64
	PixelsPerUnit float64
}

// NewProjector centers a projector on a surface of the given pixel size
func NewProjector(width, height int, eyeDistance, pixelsPerUnit float64) Projector {
	return Projector{
		Center:        Point{float64(width) / 2, float64(height) / 2},
		EyeDistance:   eyeDistance,
		PixelsPerUnit: pixelsPerUnit,
	}
}

// Visual returns the absolute pixel position of a probe at (phi, theta)
func (p Projector) Visual(phi, theta float64) Point {
	return p.Center.Add(VisualOffset(phi, theta, p.EyeDistance, p.PixelsPerUnit))
}

// Polar returns the absolute pixel position of (r, theta) in the scaled polar model
func (p Projector) Polar(r, theta float64) Point {
	return p.Center.Add(PolarOffset(r, theta, p.PixelsPerUnit))
}

// PolarRadius returns the pixel length of r length units
func (p Projector) PolarRadius(r float64) float64 {
	return r * p.PixelsPerUnit
}
