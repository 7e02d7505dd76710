package automaton_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAutomaton(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Automaton Suite")
}

// scriptedRand replays a fixed list of draws and records the bounds asked for.
type scriptedRand struct {
	values []int
	bounds []int
}

func (s *scriptedRand) IntN(n int) int {
	s.bounds = append(s.bounds, n)
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v % n
}
