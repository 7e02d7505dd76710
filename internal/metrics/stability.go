package metrics

import "github.com/san-kum/torus/internal/automaton"

// Stability is the fraction of generations in which at most threshold of the
// cells changed color.
type Stability struct {
	name      string
	threshold float64
	quiet     int
	samples   int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(generation int, state, trace *automaton.Grid, stats automaton.StepStats) {
	s.samples++
	if float64(stats.Changed)/float64(state.Len()) <= s.threshold {
		s.quiet++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return float64(s.quiet) / float64(s.samples)
}

func (s *Stability) Reset() {
	s.quiet = 0
	s.samples = 0
}
