package sim

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/san-kum/torus/internal/automaton"
	"github.com/san-kum/torus/internal/palette"
)

const (
	DefaultHeight = 64
	DefaultFrames = 64
	DefaultSeed   = 0
)

// Layer selects which grid a frame shows.
type Layer string

const (
	LayerTrace Layer = "trace"
	LayerState Layer = "state"
)

// ParseLayer accepts "trace" or "state"; the empty string means trace.
func ParseLayer(s string) (Layer, error) {
	switch Layer(s) {
	case "", LayerTrace:
		return LayerTrace, nil
	case LayerState:
		return LayerState, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLayer, s)
	}
}

type Config struct {
	Height     int
	Seed       uint64
	Colors     int
	Saturation float64
	Value      float64
	Layer      Layer
}

func DefaultConfig() Config {
	return Config{
		Height:     DefaultHeight,
		Seed:       DefaultSeed,
		Colors:     palette.DefaultCount,
		Saturation: palette.DefaultSaturation,
		Value:      palette.DefaultValue,
		Layer:      LayerTrace,
	}
}

// Phase is the lifecycle position of a Simulation.
type Phase int

const (
	PhaseConstructed Phase = iota
	PhaseRendering
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseConstructed:
		return "constructed"
	case PhaseRendering:
		return "rendering"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Frame is one rendered picture: a row-major copy of grid colors plus the
// palette that maps them to RGB.
type Frame struct {
	Index      int
	Generation int
	Width      int
	Height     int
	Layer      Layer
	Cells      []uint32
	Palette    palette.Palette
}

// RGB returns the 8-bit color of the cell at (row, column).
func (f Frame) RGB(row, column int) [3]uint8 {
	return f.Palette.At(f.Cells[row*f.Width+column]).RGB
}

// Image converts the frame to an opaque RGBA image, one pixel per cell.
func (f Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i, c := range f.Cells {
		rgb := f.Palette.At(c).RGB
		img.Pix[i*4+0] = rgb[0]
		img.Pix[i*4+1] = rgb[1]
		img.Pix[i*4+2] = rgb[2]
		img.Pix[i*4+3] = 0xff
	}
	return img
}

// Paletted converts the frame to an indexed image sharing the run palette.
func (f Frame) Paletted() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, f.Width, f.Height), f.Palette.ColorPalette())
	last := uint32(len(f.Palette) - 1)
	for i, c := range f.Cells {
		if c > last {
			c = last
		}
		img.Pix[i] = uint8(c)
	}
	return img
}

// Scaled returns the frame image enlarged by an integer factor with nearest
// neighbor sampling.
func (f Frame) Scaled(scale int) image.Image {
	if scale <= 1 {
		return f.Image()
	}
	img := image.NewRGBA(image.Rect(0, 0, f.Width*scale, f.Height*scale))
	for row := 0; row < f.Height; row++ {
		for column := 0; column < f.Width; column++ {
			rgb := f.RGB(row, column)
			px := color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetRGBA(column*scale+dx, row*scale+dy, px)
				}
			}
		}
	}
	return img
}

// FrameSink receives frames in index order. An error aborts the render.
type FrameSink interface {
	WriteFrame(ctx context.Context, f Frame) error
}

// SinkFunc adapts a function to FrameSink.
type SinkFunc func(ctx context.Context, f Frame) error

func (fn SinkFunc) WriteFrame(ctx context.Context, f Frame) error { return fn(ctx, f) }

type Metric interface {
	Name() string
	Observe(generation int, state, trace *automaton.Grid, stats automaton.StepStats)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(generation int, stats automaton.StepStats)
}

// Sample records grid statistics at the moment a frame was emitted.
type Sample struct {
	Frame           int `json:"frame"`
	Generation      int `json:"generation"`
	StateNonZero    int `json:"state_nonzero"`
	TraceNonZero    int `json:"trace_nonzero"`
	TraceIncrements int `json:"trace_increments"`
	Changed         int `json:"changed"`
}

// SeriesNames lists the columns Result.Series understands.
var SeriesNames = []string{"state", "trace", "increments", "changed"}

type Result struct {
	Frames      int
	Generations int
	Samples     []Sample
	Metrics     map[string]float64
	Elapsed     time.Duration
}

// Series extracts one sample column as float64 values for plotting.
func (r *Result) Series(name string) ([]float64, error) {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		switch name {
		case "state":
			out[i] = float64(s.StateNonZero)
		case "trace":
			out[i] = float64(s.TraceNonZero)
		case "increments":
			out[i] = float64(s.TraceIncrements)
		case "changed":
			out[i] = float64(s.Changed)
		default:
			return nil, fmt.Errorf("unknown series: %s", name)
		}
	}
	return out, nil
}
