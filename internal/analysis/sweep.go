package analysis

import (
	"github.com/san-kum/torus/internal/sim"
)

// SweepPoint is the state of one run after a fixed number of generations.
type SweepPoint struct {
	Colors        int
	Population    float64
	TraceCoverage float64
}

// ModulusSweep runs base once per palette size and records the non-zero
// fraction of the state and trace grids after the given generations.
func ModulusSweep(base sim.Config, colors []int, generations int) ([]SweepPoint, error) {
	points := make([]SweepPoint, 0, len(colors))
	for _, c := range colors {
		cfg := base
		cfg.Colors = c
		s, err := sim.New(cfg)
		if err != nil {
			return nil, err
		}
		if err := s.Advance(generations); err != nil {
			return nil, err
		}
		points = append(points, SweepPoint{
			Colors:        c,
			Population:    nonZeroFraction(s.StateColors()),
			TraceCoverage: nonZeroFraction(s.TraceColors()),
		})
	}
	return points, nil
}

func nonZeroFraction(colors []uint32) float64 {
	if len(colors) == 0 {
		return 0
	}
	n := 0
	for _, c := range colors {
		if c != 0 {
			n++
		}
	}
	return float64(n) / float64(len(colors))
}
