package metrics

import "github.com/san-kum/torus/internal/automaton"

// Population is the mean fraction of non-zero state cells across generations.
type Population struct {
	name    string
	total   float64
	samples int
}

func NewPopulation() *Population {
	return &Population{name: "population"}
}

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(generation int, state, trace *automaton.Grid, stats automaton.StepStats) {
	p.total += float64(stats.NonZero) / float64(state.Len())
	p.samples++
}

func (p *Population) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.total / float64(p.samples)
}

func (p *Population) Reset() {
	p.total = 0
	p.samples = 0
}

// TraceCoverage is the fraction of non-zero trace cells after the latest
// generation.
type TraceCoverage struct {
	name     string
	coverage float64
}

func NewTraceCoverage() *TraceCoverage {
	return &TraceCoverage{name: "trace_coverage"}
}

func (t *TraceCoverage) Name() string { return t.name }

func (t *TraceCoverage) Observe(generation int, state, trace *automaton.Grid, stats automaton.StepStats) {
	t.coverage = float64(stats.TraceNonZero) / float64(trace.Len())
}

func (t *TraceCoverage) Value() float64 { return t.coverage }
func (t *TraceCoverage) Reset()         { t.coverage = 0 }

// ZeroReturns counts every trace increment over the run.
type ZeroReturns struct {
	name  string
	total int
}

func NewZeroReturns() *ZeroReturns {
	return &ZeroReturns{name: "zero_returns"}
}

func (z *ZeroReturns) Name() string { return z.name }

func (z *ZeroReturns) Observe(generation int, state, trace *automaton.Grid, stats automaton.StepStats) {
	z.total += stats.TraceIncrements
}

func (z *ZeroReturns) Value() float64 { return float64(z.total) }
func (z *ZeroReturns) Reset()         { z.total = 0 }
