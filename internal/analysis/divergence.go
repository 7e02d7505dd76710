package analysis

import (
	"fmt"

	"github.com/san-kum/torus/internal/automaton"
)

// Divergence runs two copies of a state side by side, the second with the
// cell at addr bumped by one color, and returns the number of differing
// cells at every generation from 0 through generations.
func Divergence(height, width int, colors []uint32, modulus uint32, addr automaton.Address, generations int) ([]int, error) {
	var grids [6]*automaton.Grid
	for i := range grids {
		g, err := automaton.NewGrid(height, width)
		if err != nil {
			return nil, err
		}
		grids[i] = g
	}
	base, baseBack, baseTrace := grids[0], grids[1], grids[2]
	pert, pertBack, pertTrace := grids[3], grids[4], grids[5]

	if err := base.SetColors(colors); err != nil {
		return nil, err
	}
	if err := pert.SetColors(colors); err != nil {
		return nil, err
	}
	if addr.Row < 0 || addr.Row >= height || addr.Column < 0 || addr.Column >= width {
		return nil, fmt.Errorf("perturbation %s outside %dx%d grid", addr, height, width)
	}
	cell := pert.Find(addr)
	cell.Color = (cell.Color + 1) % modulus

	distances := make([]int, 0, generations+1)
	distances = append(distances, hamming(base, pert))
	for i := 0; i < generations; i++ {
		if _, err := automaton.Step(base, baseBack, baseTrace, modulus); err != nil {
			return nil, err
		}
		if _, err := automaton.Step(pert, pertBack, pertTrace, modulus); err != nil {
			return nil, err
		}
		distances = append(distances, hamming(base, pert))
	}
	return distances, nil
}

func hamming(a, b *automaton.Grid) int {
	ac, bc := a.Colors(), b.Colors()
	n := 0
	for i := range ac {
		if ac[i] != bc[i] {
			n++
		}
	}
	return n
}
