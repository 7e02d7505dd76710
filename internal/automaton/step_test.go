package automaton_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/torus/internal/automaton"
)

func grids(height, width int) (front, back, trace *automaton.Grid) {
	var err error
	front, err = automaton.NewGrid(height, width)
	Expect(err).NotTo(HaveOccurred())
	back, _ = automaton.NewGrid(height, width)
	trace, _ = automaton.NewGrid(height, width)
	return front, back, trace
}

// expectedNext recomputes the rule from a frozen copy of the colors.
func expectedNext(snapshot []uint32, height, width int, modulus uint32) []uint32 {
	at := func(r, c int) uint32 { return snapshot[((r+height)%height)*width+(c+width)%width] }
	out := make([]uint32, len(snapshot))
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			sum := at(r, c) + at(r+1, c) + at(r-1, c) + at(r, c+1) + at(r, c-1)
			out[r*width+c] = sum % modulus
		}
	}
	return out
}

var _ = Describe("Step", func() {
	It("applies the modular sum to a snapshot, not to partial updates", func() {
		front, back, trace := grids(4, 6)
		colors := []uint32{
			1, 2, 3, 4, 5, 6,
			7, 8, 9, 10, 11, 12,
			13, 14, 15, 0, 1, 2,
			3, 4, 5, 6, 7, 8,
		}
		Expect(front.SetColors(colors)).To(Succeed())

		_, err := automaton.Step(front, back, trace, 16)
		Expect(err).NotTo(HaveOccurred())
		Expect(front.Colors()).To(Equal(expectedNext(colors, 4, 6, 16)))
		Expect(back.Colors()).To(Equal(colors))
	})

	It("spreads a single seed to its von Neumann neighborhood", func() {
		front, back, trace := grids(5, 5)
		front.At(2, 2).Color = 3

		stats, err := automaton.Step(front, back, trace, 16)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.NonZero).To(Equal(5))
		Expect(stats.Changed).To(Equal(4))
		for _, a := range []automaton.Address{{Row: 2, Column: 2}, {Row: 1, Column: 2}, {Row: 3, Column: 2}, {Row: 2, Column: 1}, {Row: 2, Column: 3}} {
			Expect(front.Find(a).Color).To(Equal(uint32(3)))
		}
		Expect(trace.CountNonZero()).To(BeZero())
	})

	It("bumps the trace when a non-zero neighborhood sums to zero", func() {
		front, back, trace := grids(4, 4)
		front.At(1, 1).Color = 8
		front.At(0, 1).Color = 8

		stats, err := automaton.Step(front, back, trace, 16)
		Expect(err).NotTo(HaveOccurred())
		// (1,1) and (0,1) each see 8+8; cells seeing a single 8 stay non-zero.
		Expect(front.At(1, 1).Color).To(BeZero())
		Expect(front.At(0, 1).Color).To(BeZero())
		Expect(trace.At(1, 1).Color).To(Equal(uint32(1)))
		Expect(trace.At(0, 1).Color).To(Equal(uint32(1)))
		Expect(stats.TraceIncrements).To(Equal(2))
		Expect(stats.TraceNonZero).To(Equal(2))
	})

	It("never touches the trace for all-zero neighborhoods", func() {
		front, back, trace := grids(4, 4)
		for i := 0; i < 5; i++ {
			stats, err := automaton.Step(front, back, trace, 16)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TraceIncrements).To(BeZero())
		}
		Expect(trace.CountNonZero()).To(BeZero())
		Expect(front.CountNonZero()).To(BeZero())
	})

	It("only ever increments trace cells by one modulo the modulus", func() {
		front, back, trace := grids(6, 12)
		_, err := automaton.Seed(front, &scriptedRand{values: []int{0, 5, 7, 9, 13, 2}}, 4)
		Expect(err).NotTo(HaveOccurred())

		prev := trace.Colors()
		for gen := 0; gen < 40; gen++ {
			snapshot := front.Colors()
			_, err := automaton.Step(front, back, trace, 4)
			Expect(err).NotTo(HaveOccurred())
			next := front.Colors()
			cur := trace.Colors()
			for i := range cur {
				r, c := i/12, i%12
				n := snapshot[((r+1)%6)*12+c] | snapshot[((r+5)%6)*12+c] | snapshot[r*12+(c+1)%12] | snapshot[r*12+(c+11)%12]
				fired := next[i] == 0 && (snapshot[i]|n) != 0
				if fired {
					Expect(cur[i]).To(Equal((prev[i] + 1) % 4))
				} else {
					Expect(cur[i]).To(Equal(prev[i]))
				}
			}
			prev = cur
		}
	})

	It("rejects mismatched grids and a zero modulus", func() {
		front, back, _ := grids(2, 4)
		small, _ := automaton.NewGrid(2, 2)
		_, err := automaton.Step(front, back, small, 16)
		Expect(err).To(MatchError(automaton.ErrDimensionMismatch))
		_, err = automaton.Step(front, small, back, 16)
		Expect(err).To(MatchError(automaton.ErrDimensionMismatch))
		_, err = automaton.Step(front, back, back, 0)
		Expect(err).To(MatchError(automaton.ErrInvalidModulus))
	})

	DescribeTable("Rule",
		func(a, b, c, d, e, mod, want uint32) {
			Expect(automaton.Rule(a, b, c, d, e, mod)).To(Equal(want))
		},
		Entry("zero", uint32(0), uint32(0), uint32(0), uint32(0), uint32(0), uint32(16), uint32(0)),
		Entry("wraps", uint32(15), uint32(1), uint32(0), uint32(0), uint32(0), uint32(16), uint32(0)),
		Entry("max", uint32(15), uint32(15), uint32(15), uint32(15), uint32(15), uint32(16), uint32(11)),
	)
})
