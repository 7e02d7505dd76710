package automaton_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/torus/internal/automaton"
)

var _ = Describe("Grid", func() {
	var g *automaton.Grid

	BeforeEach(func() {
		var err error
		g, err = automaton.NewGrid(3, 5)
		Expect(err).NotTo(HaveOccurred())
	})

	It("allocates all-zero cells", func() {
		Expect(g.Height()).To(Equal(3))
		Expect(g.Width()).To(Equal(5))
		Expect(g.Len()).To(Equal(15))
		Expect(g.Colors()).To(HaveEach(uint32(0)))
	})

	It("rejects non-positive dimensions", func() {
		_, err := automaton.NewGrid(0, 4)
		Expect(err).To(MatchError(automaton.ErrInvalidDimensions))
		_, err = automaton.NewGrid(4, -1)
		Expect(err).To(MatchError(automaton.ErrInvalidDimensions))
	})

	It("panics on out-of-range lookups", func() {
		Expect(func() { g.At(3, 0) }).To(Panic())
		Expect(func() { g.At(0, -1) }).To(Panic())
	})

	DescribeTable("wraps neighbors around the torus",
		func(row, col int, dir automaton.Direction, want automaton.Address) {
			Expect(g.At(row, col).Neighbor(dir)).To(Equal(want))
			Expect(g.Neighbor(g.At(row, col), dir).Address()).To(Equal(want))
		},
		Entry("down from last row", 2, 1, automaton.Down, automaton.Address{Row: 0, Column: 1}),
		Entry("up from first row", 0, 1, automaton.Up, automaton.Address{Row: 2, Column: 1}),
		Entry("right from last column", 1, 4, automaton.Right, automaton.Address{Row: 1, Column: 0}),
		Entry("left from first column", 1, 0, automaton.Left, automaton.Address{Row: 1, Column: 4}),
		Entry("interior down", 1, 2, automaton.Down, automaton.Address{Row: 2, Column: 2}),
		Entry("interior left", 1, 2, automaton.Left, automaton.Address{Row: 1, Column: 1}),
	)

	It("wraps a single-cell grid onto itself", func() {
		one, err := automaton.NewGrid(1, 1)
		Expect(err).NotTo(HaveOccurred())
		for _, d := range automaton.Directions {
			Expect(one.At(0, 0).Neighbor(d)).To(Equal(automaton.Address{}))
		}
	})

	Describe("CopyColorsFrom", func() {
		It("copies colors and leaves the source untouched", func() {
			src, _ := automaton.NewGrid(3, 5)
			src.At(0, 0).Color = 4
			src.At(2, 4).Color = 9

			Expect(g.CopyColorsFrom(src)).To(Succeed())
			Expect(g.At(0, 0).Color).To(Equal(uint32(4)))
			Expect(g.At(2, 4).Color).To(Equal(uint32(9)))

			g.At(0, 0).Color = 1
			Expect(src.At(0, 0).Color).To(Equal(uint32(4)))
		})

		It("overwrites every color in the receiver", func() {
			g.At(1, 1).Color = 7
			src, _ := automaton.NewGrid(3, 5)
			Expect(g.CopyColorsFrom(src)).To(Succeed())
			Expect(g.CountNonZero()).To(BeZero())
		})

		It("refuses grids of other dimensions", func() {
			other, _ := automaton.NewGrid(5, 3)
			Expect(g.CopyColorsFrom(other)).To(MatchError(automaton.ErrDimensionMismatch))
		})
	})

	DescribeTable("Reflect",
		func(addr automaton.Address, vertical, horizontal bool, want automaton.Address) {
			Expect(g.Reflect(addr, vertical, horizontal)).To(Equal(want))
		},
		Entry("identity", automaton.Address{Row: 0, Column: 1}, false, false, automaton.Address{Row: 0, Column: 1}),
		Entry("horizontal", automaton.Address{Row: 0, Column: 1}, false, true, automaton.Address{Row: 0, Column: 3}),
		Entry("vertical", automaton.Address{Row: 0, Column: 1}, true, false, automaton.Address{Row: 2, Column: 1}),
		Entry("both", automaton.Address{Row: 0, Column: 1}, true, true, automaton.Address{Row: 2, Column: 3}),
		Entry("center row is fixed", automaton.Address{Row: 1, Column: 2}, true, true, automaton.Address{Row: 1, Column: 2}),
	)

	It("round-trips colors through SetColors", func() {
		colors := make([]uint32, g.Len())
		for i := range colors {
			colors[i] = uint32(i % 4)
		}
		Expect(g.SetColors(colors)).To(Succeed())
		Expect(g.Colors()).To(Equal(colors))
		Expect(g.Histogram(4)).To(Equal([]int{4, 4, 4, 3}))
		Expect(g.SetColors(colors[:3])).To(MatchError(automaton.ErrDimensionMismatch))

		g.Clear()
		Expect(g.CountNonZero()).To(BeZero())
	})
})
