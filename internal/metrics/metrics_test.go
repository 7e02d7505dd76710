package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/torus/internal/automaton"
	"github.com/san-kum/torus/internal/sim"
)

func TestEntropy(t *testing.T) {
	tests := []struct {
		counts   []int
		expected float64
	}{
		{[]int{}, 0},
		{[]int{0, 0}, 0},
		{[]int{10, 0, 0}, 0},
		{[]int{5, 5}, 1},
		{[]int{1, 1, 1, 1}, 2},
	}

	for _, tt := range tests {
		if got := Entropy(tt.counts); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("entropy(%v): expected %f, got %f", tt.counts, tt.expected, got)
		}
	}
}

func TestPopulation(t *testing.T) {
	g, _ := automaton.NewGrid(2, 5)
	p := NewPopulation()

	if p.Value() != 0 {
		t.Errorf("expected 0 before observing, got %f", p.Value())
	}

	p.Observe(1, g, g, automaton.StepStats{NonZero: 5})
	p.Observe(2, g, g, automaton.StepStats{NonZero: 10})

	if math.Abs(p.Value()-0.75) > 1e-12 {
		t.Errorf("expected 0.75, got %f", p.Value())
	}

	p.Reset()
	if p.Value() != 0 {
		t.Error("reset did not clear population")
	}
}

func TestTraceMetrics(t *testing.T) {
	g, _ := automaton.NewGrid(2, 2)
	cov := NewTraceCoverage()
	zr := NewZeroReturns()

	for _, s := range []automaton.StepStats{
		{TraceIncrements: 2, TraceNonZero: 2},
		{TraceIncrements: 1, TraceNonZero: 3},
	} {
		cov.Observe(0, g, g, s)
		zr.Observe(0, g, g, s)
	}

	if cov.Value() != 0.75 {
		t.Errorf("expected coverage 0.75, got %f", cov.Value())
	}
	if zr.Value() != 3 {
		t.Errorf("expected 3 zero returns, got %f", zr.Value())
	}
}

func TestStability(t *testing.T) {
	g, _ := automaton.NewGrid(10, 10)
	s := NewStability(0.05)

	if s.Value() != 1.0 {
		t.Errorf("expected 1.0 before observing, got %f", s.Value())
	}

	s.Observe(1, g, g, automaton.StepStats{Changed: 0})
	s.Observe(2, g, g, automaton.StepStats{Changed: 5})
	s.Observe(3, g, g, automaton.StepStats{Changed: 50})
	s.Observe(4, g, g, automaton.StepStats{Changed: 6})

	if s.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", s.Value())
	}
}

func TestDefaultMetricsInRender(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Height = 8
	s, err := sim.New(cfg, sim.WithMetrics(Default(16)...))
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	sink := sim.SinkFunc(func(context.Context, sim.Frame) error { return nil })
	result, err := s.Render(context.Background(), sink, 16)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, name := range []string{"population", "trace_coverage", "zero_returns", "color_entropy", "stability"} {
		v, ok := result.Metrics[name]
		if !ok {
			t.Errorf("missing metric %s", name)
			continue
		}
		if math.IsNaN(v) || v < 0 {
			t.Errorf("metric %s has invalid value %f", name, v)
		}
	}

	if result.Metrics["color_entropy"] > 4 {
		t.Errorf("entropy over 16 colors cannot exceed 4 bits, got %f", result.Metrics["color_entropy"])
	}
}
