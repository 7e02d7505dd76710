package automaton

import "errors"

// Domain errors for grid operations.
var (
	// ErrInvalidDimensions indicates a grid with a non-positive height or width.
	ErrInvalidDimensions = errors.New("automaton: grid dimensions must be positive")

	// ErrDimensionMismatch indicates two grids that must share dimensions do not.
	ErrDimensionMismatch = errors.New("automaton: dimension mismatch between grids")

	// ErrInvalidModulus indicates a color modulus of zero.
	ErrInvalidModulus = errors.New("automaton: color modulus must be positive")
)
