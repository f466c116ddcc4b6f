package parameter

// Pixel density
const (
	// ImagePixelsPerUnit is the raster density of exported images (CSS reference 96 px/in)
	ImagePixelsPerUnit = 96.0

	// TerminalPixelsPerUnit is half-block pixels per length unit on a terminal
	// A half-block pixel is roughly square, one cell wide and half a cell tall
	TerminalPixelsPerUnit = 16.0

	// PixelRatio is the default device pixel multiplier
	PixelRatio = 1.0
)

// Image export
const (
	ImageWidth  = 800
	ImageHeight = 800

	// ImageMarkerSize is the half-width of X markers and the radius of response discs in image pixels
	ImageMarkerSize  = 5.0
	ImageProbeRadius = 5.0
	ImageLineWidth   = 1.0
)

// Terminal rendering
const (
	TerminalMarkerSize  = 1.0
	TerminalProbeRadius = 1.0

	// StatusRows are terminal rows reserved below the canvas
	StatusRows = 1
)

// SnapshotDir receives PNG snapshots taken during a session
const SnapshotDir = "snapshots"
