package sim

import (
	"context"
	"sync"
)

// Ensemble renders the same configuration under consecutive seeds. Each run
// owns its own simulation and random stream, so runs proceed in parallel
// while every individual run stays sequential.
type Ensemble struct {
	base      Config
	numRuns   int
	seedStart uint64
	sinks     func(seed uint64) FrameSink
	metrics   func() []Metric
}

// NewEnsemble prepares numRuns renders of base starting at seedStart. sinks
// is called once per run; metrics, when non-nil, supplies fresh metrics.
func NewEnsemble(base Config, numRuns int, seedStart uint64, sinks func(seed uint64) FrameSink, metrics func() []Metric) *Ensemble {
	return &Ensemble{base: base, numRuns: numRuns, seedStart: seedStart, sinks: sinks, metrics: metrics}
}

func (e *Ensemble) Run(ctx context.Context, frames int) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := e.base
			cfg.Seed = e.seedStart + uint64(idx)

			var opts []Option
			if e.metrics != nil {
				opts = append(opts, WithMetrics(e.metrics()...))
			}
			s, err := New(cfg, opts...)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = s.Render(ctx, e.sinks(cfg.Seed), frames)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
