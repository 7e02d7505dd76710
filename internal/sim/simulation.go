package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/torus/internal/automaton"
	"github.com/san-kum/torus/internal/palette"
	"github.com/san-kum/torus/internal/rng"
)

// Simulation owns the state grid, its snapshot, the trace grid, the palette
// and the random stream of one run.
type Simulation struct {
	cfg        Config
	height     int
	width      int
	front      *automaton.Grid
	back       *automaton.Grid
	trace      *automaton.Grid
	palette    palette.Palette
	modulus    uint32
	rng        *rng.Stream
	seedPlan   []automaton.SeedAlteration
	generation int
	phase      Phase
	metrics    []Metric
	observers  []Observer
	logger     *slog.Logger
}

type Option func(*Simulation)

func WithLogger(l *slog.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetrics(m ...Metric) Option {
	return func(s *Simulation) { s.metrics = append(s.metrics, m...) }
}

func WithObserver(o Observer) Option {
	return func(s *Simulation) { s.observers = append(s.observers, o) }
}

// New builds the grids, then the palette, then seeds the state grid. The
// palette and the seeding share one random stream in that fixed order.
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	layer, err := ParseLayer(string(cfg.Layer))
	if err != nil {
		return nil, err
	}
	cfg.Layer = layer

	s := &Simulation{
		cfg:    cfg,
		height: cfg.Height,
		width:  cfg.Height * 2,
		rng:    rng.New(cfg.Seed),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, g := range []**automaton.Grid{&s.front, &s.back, &s.trace} {
		grid, err := automaton.NewGrid(s.height, s.width)
		if err != nil {
			return nil, err
		}
		*g = grid
	}

	s.palette, err = palette.Build(s.rng, cfg.Colors, cfg.Saturation, cfg.Value)
	if err != nil {
		return nil, err
	}
	s.modulus = uint32(cfg.Colors)

	s.seedPlan, err = automaton.Seed(s.front, s.rng, s.modulus)
	if err != nil {
		return nil, err
	}

	s.logger.Info("simulation ready",
		"height", s.height,
		"width", s.width,
		"seed", cfg.Seed,
		"colors", cfg.Colors,
		"rounds", len(s.seedPlan),
		"start_hue", s.palette[0].Hue,
	)
	return s, nil
}

func validateConfig(cfg Config) error {
	if cfg.Height <= 0 {
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidConfig, cfg.Height)
	}
	if cfg.Colors <= 0 || cfg.Colors > 256 {
		return fmt.Errorf("%w: colors must be in [1, 256], got %d", ErrInvalidConfig, cfg.Colors)
	}
	if cfg.Saturation < 0 || cfg.Saturation > 1 {
		return fmt.Errorf("%w: saturation must be in [0, 1], got %f", ErrInvalidConfig, cfg.Saturation)
	}
	if cfg.Value < 0 || cfg.Value > 1 {
		return fmt.Errorf("%w: value must be in [0, 1], got %f", ErrInvalidConfig, cfg.Value)
	}
	return nil
}

func (s *Simulation) Config() Config           { return s.cfg }
func (s *Simulation) Height() int              { return s.height }
func (s *Simulation) Width() int               { return s.width }
func (s *Simulation) Generation() int          { return s.generation }
func (s *Simulation) Phase() Phase             { return s.phase }
func (s *Simulation) Palette() palette.Palette { return s.palette }
func (s *Simulation) Modulus() uint32          { return s.modulus }
func (s *Simulation) Draws() int               { return s.rng.Draws() }
func (s *Simulation) StateColors() []uint32    { return s.front.Colors() }
func (s *Simulation) TraceColors() []uint32    { return s.trace.Colors() }

func (s *Simulation) SeedPlan() []automaton.SeedAlteration {
	out := make([]automaton.SeedAlteration, len(s.seedPlan))
	copy(out, s.seedPlan)
	return out
}

// Step advances one generation and notifies metrics and observers.
func (s *Simulation) Step() (automaton.StepStats, error) {
	if s.phase == PhaseDone {
		return automaton.StepStats{}, ErrAlreadyRendered
	}
	stats, err := automaton.Step(s.front, s.back, s.trace, s.modulus)
	if err != nil {
		return stats, err
	}
	s.generation++
	for _, m := range s.metrics {
		m.Observe(s.generation, s.front, s.trace, stats)
	}
	for _, o := range s.observers {
		o.OnStep(s.generation, stats)
	}
	return stats, nil
}

// Advance runs n generations without emitting frames.
func (s *Simulation) Advance(n int) error {
	for i := 0; i < n; i++ {
		if _, err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Frame captures the current generation of the given layer.
func (s *Simulation) Frame(index int, layer Layer) Frame {
	grid := s.trace
	if layer == LayerState {
		grid = s.front
	}
	return Frame{
		Index:      index,
		Generation: s.generation,
		Width:      s.width,
		Height:     s.height,
		Layer:      layer,
		Cells:      grid.Colors(),
		Palette:    s.palette,
	}
}

// Render emits frame i and then computes generation i+1 for every i in
// [0, frames), and finally emits frame frames, for frames+1 pictures in all.
// The first sink error stops the run. A simulation renders at most once.
func (s *Simulation) Render(ctx context.Context, sink FrameSink, frames int) (*Result, error) {
	if s.phase != PhaseConstructed {
		return nil, ErrAlreadyRendered
	}
	if frames < 0 {
		return nil, fmt.Errorf("%w: frame count must not be negative, got %d", ErrInvalidConfig, frames)
	}
	s.phase = PhaseRendering
	defer func() { s.phase = PhaseDone }()

	for _, m := range s.metrics {
		m.Reset()
	}

	start := time.Now()
	result := &Result{
		Samples: make([]Sample, 0, frames+1),
		Metrics: make(map[string]float64),
	}

	var last automaton.StepStats
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := s.emit(ctx, sink, i, last, result); err != nil {
			return result, err
		}

		stats, err := s.Step()
		if err != nil {
			return result, err
		}
		last = stats
		result.Generations++
	}
	if err := s.emit(ctx, sink, frames, last, result); err != nil {
		return result, err
	}

	result.Elapsed = time.Since(start)
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func (s *Simulation) emit(ctx context.Context, sink FrameSink, index int, last automaton.StepStats, result *Result) error {
	s.logger.Info("picture", "frame", index, "generation", s.generation)

	f := s.Frame(index, s.cfg.Layer)
	if err := sink.WriteFrame(ctx, f); err != nil {
		return fmt.Errorf("render frame %d: %w", index, err)
	}

	result.Frames++
	result.Samples = append(result.Samples, Sample{
		Frame:           index,
		Generation:      s.generation,
		StateNonZero:    s.front.CountNonZero(),
		TraceNonZero:    s.trace.CountNonZero(),
		TraceIncrements: last.TraceIncrements,
		Changed:         last.Changed,
	})
	return nil
}
