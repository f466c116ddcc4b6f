package grid

import (
	"gonum.org/v1/gonum/stat"
)

// RingSummary counts responses on one phi ring
type RingSummary struct {
	PhiIndex int
	Measured int
	Seen     int
	NotSeen  int
	// BlindFraction is NotSeen/Measured, 0 for an unmeasured ring
	BlindFraction float64
}

// Summary aggregates a grid for the tabulation status line and logs
type Summary struct {
	Rings      []RingSummary
	Measured   int
	Seen       int
	NotSeen    int
	Unmeasured int
	// BlindFraction is the measurement-weighted mean of ring blind fractions
	BlindFraction float64
}

// Summarize computes per-ring and overall response counts
func (g *Grid) Summarize() Summary {
	s := Summary{Rings: make([]RingSummary, g.phiRes)}
	for i := range s.Rings {
		s.Rings[i].PhiIndex = i
	}

	g.Each(func(i, j int, r Response) {
		ring := &s.Rings[i]
		switch r {
		case Seen:
			ring.Measured++
			ring.Seen++
		case NotSeen:
			ring.Measured++
			ring.NotSeen++
		default:
			s.Unmeasured++
		}
	})

	fractions := make([]float64, 0, len(s.Rings))
	weights := make([]float64, 0, len(s.Rings))
	for i := range s.Rings {
		ring := &s.Rings[i]
		s.Measured += ring.Measured
		s.Seen += ring.Seen
		s.NotSeen += ring.NotSeen
		if ring.Measured == 0 {
			continue
		}
		ring.BlindFraction = float64(ring.NotSeen) / float64(ring.Measured)
		fractions = append(fractions, ring.BlindFraction)
		weights = append(weights, float64(ring.Measured))
	}

	if len(fractions) > 0 {
		s.BlindFraction = stat.Mean(fractions, weights)
	}
	return s
}
