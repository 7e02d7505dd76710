package export

import "fmt"

// FrameError reports a frame that could not be encoded or written.
type FrameError struct {
	Frame int
	Path  string
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (%s): %v", e.Frame, e.Path, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}
