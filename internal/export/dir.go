package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/torus/internal/sim"
)

const DefaultPrefix = "picture"

// PrepareDir removes dir if it exists and creates it again. Removal errors
// are ignored; a creation failure is returned.
func PrepareDir(dir string) error {
	_ = os.RemoveAll(dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

// DirSink writes each frame to <dir>/<prefix>_<index>.<ext>.
type DirSink struct {
	dir     string
	prefix  string
	encoder Encoder
	scale   int
}

// NewDirSink prepares dir and returns a sink writing into it.
func NewDirSink(dir string, enc Encoder, scale int) (*DirSink, error) {
	if err := PrepareDir(dir); err != nil {
		return nil, err
	}
	return &DirSink{dir: dir, prefix: DefaultPrefix, encoder: enc, scale: scale}, nil
}

// FramePath returns the file a frame index is written to.
func (d *DirSink) FramePath(index int) string {
	return filepath.Join(d.dir, fmt.Sprintf("%s_%d.%s", d.prefix, index, d.encoder.Ext()))
}

func (d *DirSink) WriteFrame(ctx context.Context, f sim.Frame) error {
	path := d.FramePath(f.Index)
	file, err := os.Create(path)
	if err != nil {
		return &FrameError{Frame: f.Index, Path: path, Err: err}
	}

	if err := d.encoder.Encode(file, f, d.scale); err != nil {
		file.Close()
		return &FrameError{Frame: f.Index, Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return &FrameError{Frame: f.Index, Path: path, Err: err}
	}
	return nil
}

func (d *DirSink) Dir() string { return d.dir }
