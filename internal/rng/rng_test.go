package rng

import "testing"

func TestStreamDeterministic(t *testing.T) {
	a := New(7)
	b := New(7)
	for i := 0; i < 100; i++ {
		x, y := a.IntN(360), b.IntN(360)
		if x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
	if a.Draws() != 100 {
		t.Errorf("expected 100 draws, got %d", a.Draws())
	}
}

func TestStreamRange(t *testing.T) {
	s := New(0)
	for i := 0; i < 1000; i++ {
		if v := s.IntN(16); v < 0 || v >= 16 {
			t.Fatalf("value %d out of range", v)
		}
	}
	if s.Seed() != 0 {
		t.Errorf("expected seed 0, got %d", s.Seed())
	}
}

func TestStreamSeedsDiffer(t *testing.T) {
	a := New(1)
	b := New(2)
	same := true
	for i := 0; i < 16; i++ {
		if a.IntN(1<<30) != b.IntN(1<<30) {
			same = false
		}
	}
	if same {
		t.Error("expected different sequences for different seeds")
	}
}
