package export

import (
	"context"
	"fmt"
	"image"
	"image/gif"
	"os"

	"github.com/san-kum/torus/internal/sim"
)

// GIFSink collects frames and writes them as one looping animation on Close.
type GIFSink struct {
	path   string
	delay  int
	frames []*image.Paletted
}

// NewGIFSink creates a sink playing at fps frames per second.
func NewGIFSink(path string, fps int) *GIFSink {
	if fps <= 0 {
		fps = 10
	}
	return &GIFSink{path: path, delay: max(100/fps, 1)}
}

func (g *GIFSink) WriteFrame(ctx context.Context, f sim.Frame) error {
	g.frames = append(g.frames, f.Paletted())
	return nil
}

func (g *GIFSink) Close() error {
	if len(g.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range g.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, g.delay)
	}

	f, err := os.Create(g.path)
	if err != nil {
		return fmt.Errorf("create gif: %w", err)
	}
	if err := gif.EncodeAll(f, &anim); err != nil {
		f.Close()
		return fmt.Errorf("encode gif: %w", err)
	}
	return f.Close()
}
