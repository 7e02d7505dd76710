// Package analysis characterizes automaton runs after the fact.
//
// The package includes:
//
//   - [DetectCycle]: first repeated state and its period
//   - [Divergence]: how a single-cell perturbation spreads
//   - [ModulusSweep]: final population across palette sizes
//   - [PowerSpectrum], [DominantPeriod]: frequency content of a sample series
//   - [NewPortrait]: two series plotted against each other
//
// # Cycles
//
// The state grid is finite, so every run eventually revisits a state:
//
//	c, err := analysis.DetectCycle(s, 1024)
//	if c.Found {
//	    fmt.Println("period", c.Period)
//	}
package analysis
