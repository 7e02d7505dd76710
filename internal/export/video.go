package export

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"

	"github.com/icza/mjpeg"
	"github.com/san-kum/torus/internal/sim"
)

// VideoSink appends every frame to a Motion-JPEG AVI file.
type VideoSink struct {
	path   string
	writer mjpeg.AviWriter
	scale  int
	buf    bytes.Buffer
}

// NewVideoSink opens an AVI writer sized for frames of the given grid
// dimensions after scaling.
func NewVideoSink(path string, width, height, scale, fps int) (*VideoSink, error) {
	if scale < 1 {
		scale = 1
	}
	if fps <= 0 {
		fps = 10
	}
	w, err := mjpeg.New(path, int32(width*scale), int32(height*scale), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}
	return &VideoSink{path: path, writer: w, scale: scale}, nil
}

func (v *VideoSink) WriteFrame(ctx context.Context, f sim.Frame) error {
	v.buf.Reset()
	if err := jpeg.Encode(&v.buf, f.Scaled(v.scale), &jpeg.Options{Quality: 100}); err != nil {
		return &FrameError{Frame: f.Index, Path: v.path, Err: err}
	}
	if err := v.writer.AddFrame(v.buf.Bytes()); err != nil {
		return &FrameError{Frame: f.Index, Path: v.path, Err: err}
	}
	return nil
}

func (v *VideoSink) Close() error {
	return v.writer.Close()
}
