package export

import (
	"context"
	"errors"
	"io"

	"github.com/san-kum/torus/internal/sim"
)

// Multi fans each frame out to several sinks in order and stops at the
// first failure.
type Multi struct {
	sinks []sim.FrameSink
}

func NewMulti(sinks ...sim.FrameSink) *Multi {
	return &Multi{sinks: sinks}
}

func (m *Multi) Add(s sim.FrameSink) { m.sinks = append(m.sinks, s) }
func (m *Multi) Len() int            { return len(m.sinks) }

func (m *Multi) WriteFrame(ctx context.Context, f sim.Frame) error {
	for _, s := range m.sinks {
		if err := s.WriteFrame(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink that implements io.Closer and joins their errors.
func (m *Multi) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
