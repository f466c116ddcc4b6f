package render

import (
	"github.com/lixenwraith/scotomap/parameter/visual"
)

// RGB is an alias to visual.RGB so surfaces and palettes share one color type
type RGB = visual.RGB

// Palette assigns colors to every mark the renderer emits
type Palette struct {
	Background RGB
	Stroke     RGB // Fixation marker, reference rings and radial lines, unmeasured X
	Probe      RGB
	Seen       RGB
	NotSeen    RGB
}

// Style sizes marks in surface pixels
type Style struct {
	Palette Palette
	// MarkerSize is the half-width of X marks and the radius of response discs
	MarkerSize  float64
	ProbeRadius float64
}
