package automaton

import "fmt"

// StepStats summarizes one generation.
type StepStats struct {
	Changed         int // cells whose state color differs from the snapshot
	NonZero         int // non-zero state cells after the step
	TraceIncrements int // trace cells bumped this step
	TraceNonZero    int // non-zero trace cells after the step
}

// Rule computes the next color of a cell from its own color and its four
// neighbors, all read from the same snapshot.
func Rule(self, down, up, right, left, modulus uint32) uint32 {
	sum := uint64(self) + uint64(down) + uint64(up) + uint64(right) + uint64(left)
	return uint32(sum % uint64(modulus))
}

// Step advances front by one generation. It first copies front into back and
// from then on reads only back, so no cell sees a neighbor updated in the same
// step. Whenever a non-all-zero neighborhood sums to zero, the trace cell at
// that position is incremented modulo modulus.
func Step(front, back, trace *Grid, modulus uint32) (StepStats, error) {
	var stats StepStats
	if modulus == 0 {
		return stats, ErrInvalidModulus
	}
	if !front.SameShape(trace) {
		return stats, fmt.Errorf("%w: trace %dx%d, state %dx%d", ErrDimensionMismatch, trace.height, trace.width, front.height, front.width)
	}
	if err := back.CopyColorsFrom(front); err != nil {
		return stats, err
	}

	for i := range back.cells {
		cell := &back.cells[i]
		a := cell.Color
		b := back.Neighbor(cell, Down).Color
		c := back.Neighbor(cell, Up).Color
		d := back.Neighbor(cell, Right).Color
		e := back.Neighbor(cell, Left).Color

		next := Rule(a, b, c, d, e, modulus)
		front.cells[i].Color = next
		if next != a {
			stats.Changed++
		}
		if next != 0 {
			stats.NonZero++
		}

		tc := &trace.cells[i]
		if next == 0 && (a|b|c|d|e) != 0 {
			tc.Color = (tc.Color + 1) % modulus
			stats.TraceIncrements++
		}
		if tc.Color != 0 {
			stats.TraceNonZero++
		}
	}
	return stats, nil
}
