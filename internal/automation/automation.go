package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/torus/internal/config"
	"github.com/san-kum/torus/internal/experiment"
	"github.com/san-kum/torus/internal/metrics"
	"github.com/san-kum/torus/internal/sim"
	"github.com/san-kum/torus/internal/storage"
)

// Scenario defines a scripted sequence of renders
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Runs        []ScenarioRun `yaml:"runs"`
}

// ScenarioRun is one render. Zero fields keep the value of the preset, or
// of the defaults when no preset is named.
type ScenarioRun struct {
	Name    string   `yaml:"name"`
	Preset  string   `yaml:"preset"`
	Height  int      `yaml:"height"`
	Frames  int      `yaml:"frames"`
	Seed    *uint64  `yaml:"seed"`
	Colors  int      `yaml:"colors"`
	Layer   string   `yaml:"layer"`
	Format  string   `yaml:"format"`
	Output  string   `yaml:"output"`
	Scale   int      `yaml:"scale"`
	GIF     string   `yaml:"gif"`
	Video   string   `yaml:"video"`
	Chart   string   `yaml:"chart"`
	Metrics []string `yaml:"metrics"`
	Save    bool     `yaml:"save"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(scenario.Runs) == 0 {
		return nil, fmt.Errorf("scenario %q has no runs", scenario.Name)
	}

	return &scenario, nil
}

// Config resolves the run against its preset and the defaults.
func (r ScenarioRun) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if r.Preset != "" {
		cfg = config.GetPreset(r.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", r.Preset)
		}
	}

	if r.Height != 0 {
		cfg.Height = r.Height
	}
	if r.Frames != 0 {
		cfg.Frames = r.Frames
	}
	if r.Seed != nil {
		cfg.Seed = *r.Seed
	}
	if r.Colors != 0 {
		cfg.Colors = r.Colors
	}
	if r.Layer != "" {
		cfg.Layer = r.Layer
	}
	if r.Format != "" {
		cfg.Format = r.Format
	}
	if r.Output != "" {
		cfg.Output = r.Output
	}
	if r.Scale != 0 {
		cfg.Scale = r.Scale
	}
	if r.GIF != "" {
		cfg.GIF = r.GIF
	}
	if r.Video != "" {
		cfg.Video = r.Video
	}
	if r.Chart != "" {
		cfg.Chart = r.Chart
	}
	return cfg, cfg.Validate()
}

// RunOutcome is the result of one scenario run. RunID is set when the run
// was archived.
type RunOutcome struct {
	Name   string
	RunID  string
	Result *sim.Result
}

// RunScenario executes all runs in order and stops at the first failure.
// store may be nil when no run asks to be saved.
func RunScenario(ctx context.Context, scenario *Scenario, logger *slog.Logger, store *storage.Store) ([]RunOutcome, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	outcomes := make([]RunOutcome, 0, len(scenario.Runs))

	for i, run := range scenario.Runs {
		name := run.Name
		if name == "" {
			name = fmt.Sprintf("run-%d", i+1)
		}
		logger.Info("scenario run", "scenario", scenario.Name, "run", name, "index", i+1, "total", len(scenario.Runs))

		if run.Save && store == nil {
			return outcomes, fmt.Errorf("run %d (%s): save requested without a store", i+1, name)
		}
		cfg, err := run.Config()
		if err != nil {
			return outcomes, fmt.Errorf("run %d (%s): %w", i+1, name, err)
		}

		exp := experiment.New(cfg, experiment.WithLogger(logger.With("run", name)))
		if err := exp.Setup(run.Metrics); err != nil {
			return outcomes, fmt.Errorf("run %d (%s) setup: %w", i+1, name, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return outcomes, fmt.Errorf("run %d (%s): %w", i+1, name, err)
		}

		outcome := RunOutcome{Name: name, Result: result}
		if run.Save {
			id, err := store.Save(exp.Params(), result)
			if err != nil {
				return outcomes, fmt.Errorf("run %d (%s) save: %w", i+1, name, err)
			}
			outcome.RunID = id
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// SeedSweep renders one configuration under consecutive seeds without
// writing any pictures.
type SeedSweep struct {
	Base      *config.Config
	NumSeeds  int
	SeedStart uint64
}

// SweepResult holds the final metrics of one seed.
type SweepResult struct {
	Seed    uint64
	Metrics map[string]float64
	Result  *sim.Result
}

// RunSweep executes the sweep in parallel, one simulation per seed.
func RunSweep(ctx context.Context, sweep *SeedSweep) ([]SweepResult, error) {
	if sweep.NumSeeds <= 0 {
		return nil, fmt.Errorf("sweep needs at least one seed, got %d", sweep.NumSeeds)
	}
	if err := sweep.Base.Validate(); err != nil {
		return nil, err
	}
	simCfg, err := sweep.Base.SimConfig()
	if err != nil {
		return nil, err
	}

	discard := sim.SinkFunc(func(context.Context, sim.Frame) error { return nil })
	ensemble := sim.NewEnsemble(simCfg, sweep.NumSeeds, sweep.SeedStart,
		func(uint64) sim.FrameSink { return discard },
		func() []sim.Metric { return metrics.Default(uint32(simCfg.Colors)) },
	)

	results, err := ensemble.Run(ctx, sweep.Base.Frames)
	if err != nil {
		return nil, err
	}

	out := make([]SweepResult, len(results))
	for i, r := range results {
		out[i] = SweepResult{Seed: sweep.SeedStart + uint64(i), Metrics: r.Metrics, Result: r}
	}
	return out, nil
}

// MetricStats summarizes one metric across a sweep.
type MetricStats struct {
	Name      string
	Mean      float64
	Min       float64
	Max       float64
	MinSeed   uint64
	MaxSeed   uint64
	NumValues int
}

// SweepStats computes per-metric statistics, sorted by metric name.
func SweepStats(results []SweepResult) []MetricStats {
	byName := make(map[string]*MetricStats)
	for _, r := range results {
		for name, v := range r.Metrics {
			st, ok := byName[name]
			if !ok {
				st = &MetricStats{Name: name, Min: math.Inf(1), Max: math.Inf(-1)}
				byName[name] = st
			}
			st.Mean += v
			st.NumValues++
			if v < st.Min {
				st.Min, st.MinSeed = v, r.Seed
			}
			if v > st.Max {
				st.Max, st.MaxSeed = v, r.Seed
			}
		}
	}

	stats := make([]MetricStats, 0, len(byName))
	for _, st := range byName {
		st.Mean /= float64(st.NumValues)
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}
