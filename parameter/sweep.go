package parameter

import "time"

// Sweep geometry defaults, all angles in degrees
const (
	// MaxPhi is the outermost visual angle tested
	MaxPhi = 35.0
	// PhiInc is the radial step between test rings
	PhiInc = 5.0

	// MaxTheta is one full revolution around the fixation point
	MaxTheta = 360.0
	// ThetaInc is the azimuth step between probes on a ring
	ThetaInc = 10.0

	// StartPhi is the first ring presented; the inner rings around fixation are skipped
	StartPhi = 10.0
)

// Sweep timing
const (
	// FrameRate is the timer-driven advance rate in probes per second
	FrameRate = 4.0

	// MinFrameInterval guards against runaway configs
	MinFrameInterval = 10 * time.Millisecond
)

// Viewing geometry
const (
	// EyeScreenDistance is the eye to screen distance in length units (inches)
	EyeScreenDistance = 2.0

	// TabulateScale converts degrees to length units in the tabulated map
	TabulateScale = 0.03

	// TabulateRadialOverhang extends radial reference lines past the outermost reference ring, degrees
	TabulateRadialOverhang = 5.0
)

// MajorAnglesPhi are the reference rings drawn on the tabulated map
var MajorAnglesPhi = []float64{10, 20, 30}

// MajorAnglesTheta are the radial reference lines drawn on the tabulated map
var MajorAnglesTheta = []float64{0, 45, 90, 135, 180, 225, 270, 315}
