package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/san-kum/torus/internal/config"
	"github.com/san-kum/torus/internal/export"
	"github.com/san-kum/torus/internal/sim"
	"github.com/san-kum/torus/internal/storage"
)

var ErrNotSetup = errors.New("experiment: not set up")

// Experiment turns a config into a simulation plus the sinks the config
// asks for, and renders it once.
type Experiment struct {
	cfg      *config.Config
	registry *Registry
	logger   *slog.Logger
	sim      *sim.Simulation
	sinks    *export.Multi
}

type Option func(*Experiment)

func WithLogger(l *slog.Logger) Option {
	return func(e *Experiment) { e.logger = l }
}

func WithRegistry(r *Registry) Option {
	return func(e *Experiment) { e.registry = r }
}

func New(cfg *config.Config, opts ...Option) *Experiment {
	e := &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Setup validates the config, builds the simulation with the named metrics
// and opens every configured sink. The output directory is cleared here.
func (e *Experiment) Setup(metricNames []string) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	simCfg, err := e.cfg.SimConfig()
	if err != nil {
		return err
	}

	ms, err := e.registry.Metrics(metricNames, uint32(e.cfg.Colors))
	if err != nil {
		return err
	}

	s, err := sim.New(simCfg, sim.WithLogger(e.logger), sim.WithMetrics(ms...))
	if err != nil {
		return fmt.Errorf("build simulation: %w", err)
	}

	sinks := export.NewMulti()
	if e.cfg.Output != "" {
		enc, err := e.registry.GetEncoder(e.cfg.Format)
		if err != nil {
			return err
		}
		dir, err := export.NewDirSink(e.cfg.Output, enc, e.cfg.Scale)
		if err != nil {
			return err
		}
		sinks.Add(dir)
	}
	if e.cfg.GIF != "" {
		sinks.Add(export.NewGIFSink(e.cfg.GIF, e.cfg.FPS))
	}
	if e.cfg.Video != "" {
		v, err := export.NewVideoSink(e.cfg.Video, s.Width(), s.Height(), e.cfg.Scale, e.cfg.FPS)
		if err != nil {
			return err
		}
		sinks.Add(v)
	}

	e.sim = s
	e.sinks = sinks
	return nil
}

// Run renders the configured number of frames into every sink, plus any
// extra sinks, then closes the sinks and writes the optional chart.
func (e *Experiment) Run(ctx context.Context, extra ...sim.FrameSink) (*sim.Result, error) {
	if e.sim == nil {
		return nil, ErrNotSetup
	}
	for _, s := range extra {
		e.sinks.Add(s)
	}

	result, err := e.sim.Render(ctx, e.sinks, e.cfg.Frames)
	if cerr := e.sinks.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close sinks: %w", cerr)
	}
	if err != nil {
		return result, err
	}

	if e.cfg.Chart != "" {
		if err := export.WriteChart(e.cfg.Chart, result); err != nil {
			return result, err
		}
	}

	e.logger.Info("render complete",
		"frames", result.Frames,
		"generations", result.Generations,
		"elapsed", result.Elapsed,
	)
	return result, nil
}

// Simulation returns the underlying simulation for adding observers.
func (e *Experiment) Simulation() *sim.Simulation {
	return e.sim
}

// Params describes the run for the archive.
func (e *Experiment) Params() storage.RunParams {
	return storage.RunParams{
		Height: e.cfg.Height,
		Width:  e.cfg.Width(),
		Seed:   e.cfg.Seed,
		Colors: e.cfg.Colors,
		Frames: e.cfg.Frames,
		Layer:  sim.Layer(e.cfg.Layer),
		Output: e.cfg.Output,
		Format: e.cfg.Format,
	}
}
