// Package rng provides the single deterministic random stream of a run.
package rng

import "math/rand/v2"

// Stream is a seeded PCG generator. Two streams built from the same seed
// produce the same sequence of draws.
type Stream struct {
	seed  uint64
	r     *rand.Rand
	draws int
}

// New creates a stream from seed.
func New(seed uint64) *Stream {
	return &Stream{seed: seed, r: rand.New(rand.NewPCG(seed, 0))}
}

// IntN returns a uniform int in [0, n). n must be positive.
func (s *Stream) IntN(n int) int {
	s.draws++
	return s.r.IntN(n)
}

// Seed returns the seed the stream was built from.
func (s *Stream) Seed() uint64 { return s.seed }

// Draws reports how many values have been taken from the stream.
func (s *Stream) Draws() int { return s.draws }
