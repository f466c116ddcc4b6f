// Package grid stores subject responses indexed by discretised (phi, theta)
package grid

import (
	"fmt"
	"math"
)

// Response is the tri-state outcome of one probe
type Response int8

const (
	Unmeasured Response = -1
	NotSeen    Response = 0
	Seen       Response = 1
)

// String returns the response label
func (r Response) String() string {
	switch r {
	case Unmeasured:
		return "unmeasured"
	case NotSeen:
		return "not-seen"
	case Seen:
		return "seen"
	default:
		return fmt.Sprintf("response(%d)", int8(r))
	}
}

// Valid reports whether r is one of the three defined responses
func (r Response) Valid() bool {
	return r == Unmeasured || r == NotSeen || r == Seen
}

// Grid is a fixed-size phi-by-theta response store, row-major by phi
// Single writer; readers must not mutate
type Grid struct {
	phiRes   int
	thetaRes int
	cells    []Response
}

// New creates a grid with every cell Unmeasured
// Non-positive dimensions yield an empty grid that rejects every write
func New(phiRes, thetaRes int) *Grid {
	if phiRes < 0 {
		phiRes = 0
	}
	if thetaRes < 0 {
		thetaRes = 0
	}
	g := &Grid{
		phiRes:   phiRes,
		thetaRes: thetaRes,
		cells:    make([]Response, phiRes*thetaRes),
	}
	g.Reset()
	return g
}

// Resolution returns the cell count for a maximum angle and increment, truncating like integer division
func Resolution(max, inc float64) int {
	if inc <= 0 || max <= 0 {
		return 0
	}
	return int(max / inc)
}

// IndexOf discretises a coordinate into grid indices by flooring
func IndexOf(phi, theta, phiInc, thetaInc float64) (int, int) {
	return int(math.Floor(phi / phiInc)), int(math.Floor(theta / thetaInc))
}

// Dims returns the (phi, theta) dimensions
func (g *Grid) Dims() (int, int) {
	return g.phiRes, g.thetaRes
}

// InBounds reports whether (i, j) addresses a cell
func (g *Grid) InBounds(i, j int) bool {
	return i >= 0 && i < g.phiRes && j >= 0 && j < g.thetaRes
}

// Record overwrites cell (i, j) with r
// Out-of-range indices and undefined responses are rejected: nothing is written and false is returned
func (g *Grid) Record(i, j int, r Response) bool {
	if !g.InBounds(i, j) || !r.Valid() {
		return false
	}
	g.cells[i*g.thetaRes+j] = r
	return true
}

// Get returns cell (i, j); out-of-range reads return Unmeasured
func (g *Grid) Get(i, j int) Response {
	if !g.InBounds(i, j) {
		return Unmeasured
	}
	return g.cells[i*g.thetaRes+j]
}

// Reset marks every cell Unmeasured using exponential copy
func (g *Grid) Reset() {
	if len(g.cells) == 0 {
		return
	}
	g.cells[0] = Unmeasured
	for filled := 1; filled < len(g.cells); filled *= 2 {
		copy(g.cells[filled:], g.cells[:filled])
	}
}

// Each visits every cell in row-major order
func (g *Grid) Each(fn func(i, j int, r Response)) {
	for i := 0; i < g.phiRes; i++ {
		row := g.cells[i*g.thetaRes : (i+1)*g.thetaRes]
		for j, r := range row {
			fn(i, j, r)
		}
	}
}
