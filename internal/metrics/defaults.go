package metrics

import "github.com/san-kum/torus/internal/sim"

// Default returns a fresh set of the standard run metrics.
func Default(modulus uint32) []sim.Metric {
	return []sim.Metric{
		NewPopulation(),
		NewTraceCoverage(),
		NewZeroReturns(),
		NewColorEntropy(modulus),
		NewStability(0.01),
	}
}
