package sweep

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lixenwraith/scotomap/grid"
)

// Mode is the sweep phase
type Mode uint8

const (
	Measuring Mode = iota
	Tabulating
)

// String returns the state name used in the state graph
func (m Mode) String() string {
	switch m {
	case Measuring:
		return "Measuring"
	case Tabulating:
		return "Tabulating"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Coordinate is a probe position in degrees
type Coordinate struct {
	Phi   float64
	Theta float64
}

// Session is the complete mutable state of one test run
// Only the Controller writes it; renderers read it between ticks
type Session struct {
	ID         string
	Params     Params
	Mode       Mode
	Pending    grid.Response
	Coordinate Coordinate
	Grid       *grid.Grid

	// Ticks counts advances taken while measuring
	Ticks int
}

// NewSession creates a measuring session at the first test angle
func NewSession(p Params) (*Session, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	phiRes, thetaRes := p.Resolution()
	return &Session{
		ID:         uuid.NewString(),
		Params:     p,
		Mode:       Measuring,
		Pending:    grid.Seen,
		Coordinate: Coordinate{Phi: p.StartPhi, Theta: 0},
		Grid:       grid.New(phiRes, thetaRes),
	}, nil
}

// Indices returns the grid cell addressed by the current coordinate
func (s *Session) Indices() (int, int) {
	return grid.IndexOf(s.Coordinate.Phi, s.Coordinate.Theta, s.Params.PhiInc, s.Params.ThetaInc)
}
