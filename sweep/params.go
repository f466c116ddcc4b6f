package sweep

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/scotomap/grid"
)

// Threshold selects how a boundary comparison treats equality
type Threshold uint8

const (
	// Inclusive triggers at value >= limit
	Inclusive Threshold = iota
	// Exclusive triggers at value > limit
	Exclusive
)

// Reached reports whether value has passed limit under t
func (t Threshold) Reached(value, limit float64) bool {
	if t == Exclusive {
		return value > limit
	}
	return value >= limit
}

// String returns the config spelling
func (t Threshold) String() string {
	if t == Exclusive {
		return "exclusive"
	}
	return "inclusive"
}

// ParseThreshold accepts "inclusive"/">=" and "exclusive"/">"
func ParseThreshold(s string) (Threshold, error) {
	switch s {
	case "inclusive", ">=", "":
		return Inclusive, nil
	case "exclusive", ">":
		return Exclusive, nil
	}
	return Inclusive, fmt.Errorf("unknown threshold %q", s)
}

// UndoPolicy selects how Undo rewinds the coordinate
type UndoPolicy uint8

const (
	// UndoStep reverses exactly one advance
	UndoStep UndoPolicy = iota
	// UndoRawDegree decrements phi and theta by one degree each (legacy)
	UndoRawDegree
)

// String returns the config spelling
func (u UndoPolicy) String() string {
	if u == UndoRawDegree {
		return "raw-degree"
	}
	return "step"
}

// ParseUndoPolicy accepts "step" and "raw-degree"
func ParseUndoPolicy(s string) (UndoPolicy, error) {
	switch s {
	case "step", "":
		return UndoStep, nil
	case "raw-degree", "legacy":
		return UndoRawDegree, nil
	}
	return UndoStep, fmt.Errorf("unknown undo policy %q", s)
}

// ErrInvalidParams is wrapped by Params.Validate failures
var ErrInvalidParams = errors.New("invalid sweep parameters")

// Params is the fixed geometry and policy set of one session, degrees throughout
type Params struct {
	MaxPhi   float64
	PhiInc   float64
	MaxTheta float64
	ThetaInc float64
	StartPhi float64

	// Wrap governs theta wraparound against MaxTheta
	Wrap Threshold
	// Terminate governs the phi comparison that ends measuring
	Terminate Threshold
	Undo      UndoPolicy
}

// Validate checks the geometry is usable
func (p Params) Validate() error {
	switch {
	case p.PhiInc <= 0:
		return fmt.Errorf("%w: phi increment must be positive, got %v", ErrInvalidParams, p.PhiInc)
	case p.ThetaInc <= 0:
		return fmt.Errorf("%w: theta increment must be positive, got %v", ErrInvalidParams, p.ThetaInc)
	case p.MaxPhi < p.PhiInc:
		return fmt.Errorf("%w: max phi %v below increment %v", ErrInvalidParams, p.MaxPhi, p.PhiInc)
	case p.MaxTheta < p.ThetaInc:
		return fmt.Errorf("%w: max theta %v below increment %v", ErrInvalidParams, p.MaxTheta, p.ThetaInc)
	case p.StartPhi < 0 || p.StartPhi >= p.MaxPhi:
		return fmt.Errorf("%w: start phi %v outside [0, %v)", ErrInvalidParams, p.StartPhi, p.MaxPhi)
	}
	return nil
}

// Resolution returns the grid dimensions as (phi rings, theta columns)
func (p Params) Resolution() (int, int) {
	return grid.Resolution(p.MaxPhi, p.PhiInc), grid.Resolution(p.MaxTheta, p.ThetaInc)
}

// TotalSteps returns the number of advances from the start coordinate to Tabulating
func (p Params) TotalSteps() int {
	steps := 0
	phi, theta := p.StartPhi, 0.0
	for !p.Terminate.Reached(phi, p.MaxPhi) {
		steps++
		theta += p.ThetaInc
		if p.Wrap.Reached(theta, p.MaxTheta) {
			theta = mod(theta, p.MaxTheta)
			phi += p.PhiInc
		}
	}
	return steps
}

// mod is a floored modulo, non-negative for positive m
func mod(v, m float64) float64 {
	r := math.Mod(v, m)
	if r < 0 {
		r += m
	}
	return r
}
