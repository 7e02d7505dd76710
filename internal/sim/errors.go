package sim

import "errors"

var (
	// ErrAlreadyRendered indicates Render was called on a simulation that has
	// already started or finished rendering.
	ErrAlreadyRendered = errors.New("sim: simulation already rendered")

	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("sim: invalid configuration")

	// ErrUnknownLayer indicates a layer name other than trace or state.
	ErrUnknownLayer = errors.New("sim: unknown layer")
)
