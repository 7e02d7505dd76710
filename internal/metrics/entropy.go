package metrics

import (
	"math"

	"github.com/san-kum/torus/internal/automaton"
)

// ColorEntropy is the mean Shannon entropy, in bits, of the state color
// histogram. A uniform spread over 16 colors scores 4.
type ColorEntropy struct {
	name    string
	modulus uint32
	total   float64
	samples int
}

func NewColorEntropy(modulus uint32) *ColorEntropy {
	return &ColorEntropy{name: "color_entropy", modulus: modulus}
}

func (c *ColorEntropy) Name() string { return c.name }

func (c *ColorEntropy) Observe(generation int, state, trace *automaton.Grid, stats automaton.StepStats) {
	c.total += Entropy(state.Histogram(c.modulus))
	c.samples++
}

func (c *ColorEntropy) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.total / float64(c.samples)
}

func (c *ColorEntropy) Reset() {
	c.total = 0
	c.samples = 0
}

// Entropy returns the Shannon entropy in bits of a histogram.
func Entropy(counts []int) float64 {
	n := 0
	for _, c := range counts {
		n += c
	}
	if n == 0 {
		return 0
	}
	h := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(n)
		h -= p * math.Log2(p)
	}
	return h
}
