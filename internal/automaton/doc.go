// Package automaton provides the toroidal grid and the update rule of the
// colored cellular automaton.
//
// The package defines the data model and the two algorithms that touch it:
//
//   - [Address]: wrap-around (row, column) coordinate
//   - [Cell]: color value plus its precomputed cardinal neighbors
//   - [Grid]: dense height×width array of cells
//   - [Seed]: 4-fold mirror-symmetric random initialization
//   - [Step]: one synchronous generation of the modular sum rule
//
// # Example
//
//	front, _ := automaton.NewGrid(64, 128)
//	back, _ := automaton.NewGrid(64, 128)
//	trace, _ := automaton.NewGrid(64, 128)
//	automaton.Seed(front, rng, 16)
//	stats, _ := automaton.Step(front, back, trace, 16)
//
// # Determinism
//
// Every function that consumes randomness takes an explicit [Rand]. The order
// of draws is part of the contract: one index draw followed by one color draw
// per seeding round, with no draws anywhere else in this package.
//
// # Thread Safety
//
// Grids are NOT thread-safe. A generation step reads only the snapshot grid
// and writes only the front and trace grids.
package automaton
