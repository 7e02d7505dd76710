package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/torus/internal/export"
	"github.com/san-kum/torus/internal/metrics"
	"github.com/san-kum/torus/internal/sim"
)

// Registry maps names used in configuration files to metric and encoder
// constructors.
type Registry struct {
	metrics map[string]func(modulus uint32) sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func(modulus uint32) sim.Metric),
	}

	r.metrics["population"] = func(uint32) sim.Metric { return metrics.NewPopulation() }
	r.metrics["trace_coverage"] = func(uint32) sim.Metric { return metrics.NewTraceCoverage() }
	r.metrics["zero_returns"] = func(uint32) sim.Metric { return metrics.NewZeroReturns() }
	r.metrics["color_entropy"] = func(m uint32) sim.Metric { return metrics.NewColorEntropy(m) }
	r.metrics["stability"] = func(uint32) sim.Metric { return metrics.NewStability(0.01) }

	return r
}

func (r *Registry) GetMetric(name string, modulus uint32) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(modulus), nil
}

// Metrics resolves names in order; an empty list means the default set.
func (r *Registry) Metrics(names []string, modulus uint32) ([]sim.Metric, error) {
	if len(names) == 0 {
		return metrics.Default(modulus), nil
	}
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name, modulus)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Registry) GetEncoder(name string) (export.Encoder, error) {
	return export.GetEncoder(name)
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListFormats() []string {
	return export.Formats()
}
