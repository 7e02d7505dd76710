package analysis

import (
	"encoding/binary"
	"hash/fnv"
	"slices"

	"github.com/san-kum/torus/internal/automaton"
)

// Stepper is the slice of a simulation that cycle detection drives.
type Stepper interface {
	Step() (automaton.StepStats, error)
	StateColors() []uint32
	Generation() int
}

// Cycle describes the first revisited state of a run.
type Cycle struct {
	Found   bool
	Start   int // generation first showing the repeated state
	Period  int
	Checked int // generations stepped while searching
}

type snapshot struct {
	generation int
	colors     []uint32
}

// DetectCycle steps s up to maxGenerations times and stops at the first
// state already seen. Candidates are matched by FNV-64a hash and then
// compared cell by cell.
func DetectCycle(s Stepper, maxGenerations int) (Cycle, error) {
	seen := make(map[uint64][]snapshot)
	record := func() (Cycle, bool) {
		colors := s.StateColors()
		h := hashColors(colors)
		for _, prev := range seen[h] {
			if slices.Equal(prev.colors, colors) {
				return Cycle{Found: true, Start: prev.generation, Period: s.Generation() - prev.generation}, true
			}
		}
		seen[h] = append(seen[h], snapshot{generation: s.Generation(), colors: colors})
		return Cycle{}, false
	}

	record()
	for i := 0; i < maxGenerations; i++ {
		if _, err := s.Step(); err != nil {
			return Cycle{Checked: i}, err
		}
		if c, ok := record(); ok {
			c.Checked = i + 1
			return c, nil
		}
	}
	return Cycle{Checked: maxGenerations}, nil
}

func hashColors(colors []uint32) uint64 {
	h := fnv.New64a()
	var buf [4]byte
	for _, c := range colors {
		binary.LittleEndian.PutUint32(buf[:], c)
		h.Write(buf[:])
	}
	return h.Sum64()
}
