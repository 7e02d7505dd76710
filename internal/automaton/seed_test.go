package automaton_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/torus/internal/automaton"
)

var _ = Describe("Seed", func() {
	It("lists the top-left quadrant, dropping odd trailing rows and columns", func() {
		g, _ := automaton.NewGrid(5, 7)
		addrs := automaton.QuadrantAddresses(g)
		Expect(addrs).To(HaveLen(6))
		Expect(addrs[0]).To(Equal(automaton.Address{Row: 0, Column: 0}))
		Expect(addrs[5]).To(Equal(automaton.Address{Row: 1, Column: 2}))
		Expect(automaton.SeedRounds(g)).To(Equal(2))
	})

	It("draws an index then a color per round over the unshrunk list", func() {
		g, _ := automaton.NewGrid(4, 8)
		r := &scriptedRand{values: []int{5, 3, 5, 7}}

		alts, err := automaton.PlanSeed(g, r, 16)
		Expect(err).NotTo(HaveOccurred())
		Expect(alts).To(HaveLen(2))
		Expect(r.bounds).To(Equal([]int{8, 16, 8, 16}))

		Expect(alts[0].Color).To(Equal(uint32(3)))
		Expect(alts[0].Addresses).To(Equal([4]automaton.Address{
			{Row: 1, Column: 1},
			{Row: 1, Column: 6},
			{Row: 2, Column: 1},
			{Row: 2, Column: 6},
		}))
		Expect(alts[1].Addresses).To(Equal(alts[0].Addresses))
		Expect(alts[1].Color).To(Equal(uint32(7)))
		Expect(g.CountNonZero()).To(BeZero())
	})

	It("applies rounds in order so later colors win", func() {
		g, _ := automaton.NewGrid(4, 8)
		_, err := automaton.Seed(g, &scriptedRand{values: []int{5, 3, 5, 7}}, 16)
		Expect(err).NotTo(HaveOccurred())

		for _, a := range []automaton.Address{{Row: 1, Column: 1}, {Row: 1, Column: 6}, {Row: 2, Column: 1}, {Row: 2, Column: 6}} {
			Expect(g.Find(a).Color).To(Equal(uint32(7)))
		}
		Expect(g.CountNonZero()).To(Equal(4))
	})

	It("produces a pattern symmetric under both mirrors", func() {
		g, _ := automaton.NewGrid(10, 20)
		r := &scriptedRand{values: []int{0, 1, 11, 2, 23, 3, 49, 4, 30, 5}}
		_, err := automaton.Seed(g, r, 16)
		Expect(err).NotTo(HaveOccurred())

		for row := 0; row < g.Height(); row++ {
			for col := 0; col < g.Width(); col++ {
				v := g.At(row, col).Color
				Expect(g.At(row, g.Width()-1-col).Color).To(Equal(v))
				Expect(g.At(g.Height()-1-row, col).Color).To(Equal(v))
				Expect(g.At(g.Height()-1-row, g.Width()-1-col).Color).To(Equal(v))
			}
		}
	})

	DescribeTable("leaves degenerate grids untouched without drawing",
		func(height, width int) {
			g, _ := automaton.NewGrid(height, width)
			r := &scriptedRand{}
			alts, err := automaton.Seed(g, r, 16)
			Expect(err).NotTo(HaveOccurred())
			Expect(alts).To(BeEmpty())
			Expect(r.bounds).To(BeEmpty())
			Expect(g.CountNonZero()).To(BeZero())
		},
		Entry("single row", 1, 2),
		Entry("single column", 4, 1),
		Entry("single cell", 1, 1),
	)

	It("rejects a zero modulus", func() {
		g, _ := automaton.NewGrid(2, 4)
		_, err := automaton.PlanSeed(g, &scriptedRand{}, 0)
		Expect(err).To(MatchError(automaton.ErrInvalidModulus))
	})
})
