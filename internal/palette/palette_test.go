package palette

import (
	"math"
	"testing"
)

type fixedRand struct{ v int }

func (f fixedRand) IntN(n int) int { return f.v % n }

func TestBuildShape(t *testing.T) {
	p, err := Build(fixedRand{v: 100}, DefaultCount, DefaultSaturation, DefaultValue)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(p) != 16 {
		t.Fatalf("expected 16 colors, got %d", len(p))
	}
	if math.Abs(p[0].Hue-122.5) > 1e-9 {
		t.Errorf("expected first hue 122.5, got %f", p[0].Hue)
	}
	for i := range p {
		if p[i].Saturation != 0.75 || p[i].Value != 1.0 {
			t.Errorf("color %d: unexpected s/v %f/%f", i, p[i].Saturation, p[i].Value)
		}
		if p[i].Hue < 0 || p[i].Hue >= 360 {
			t.Errorf("color %d: hue %f out of range", i, p[i].Hue)
		}
		next := p[(i+1)%len(p)]
		diff := math.Mod(next.Hue-p[i].Hue+360, 360)
		if math.Abs(diff-22.5) > 1e-9 {
			t.Errorf("color %d: hue step %f, expected 22.5", i, diff)
		}
	}
}

func TestBuildDrawsOnce(t *testing.T) {
	r := &countingRand{}
	BuildDefault(r)
	if r.calls != 1 {
		t.Errorf("expected 1 draw, got %d", r.calls)
	}
	if r.lastN != 360 {
		t.Errorf("expected draw bound 360, got %d", r.lastN)
	}
}

type countingRand struct {
	calls int
	lastN int
}

func (c *countingRand) IntN(n int) int {
	c.calls++
	c.lastN = n
	return 0
}

func TestBuildInvalidCount(t *testing.T) {
	if _, err := Build(fixedRand{}, 0, 0.75, 1); err == nil {
		t.Error("expected error for zero count")
	}
}

func TestNewColor(t *testing.T) {
	tests := []struct {
		hue  float64
		want [3]uint8
	}{
		{0, [3]uint8{255, 63, 63}},
		{120, [3]uint8{63, 255, 63}},
		{240, [3]uint8{63, 63, 255}},
	}

	for _, tt := range tests {
		c := NewColor(tt.hue, 0.75, 1.0)
		if c.RGB != tt.want {
			t.Errorf("hue %.0f: expected %v, got %v", tt.hue, tt.want, c.RGB)
		}
	}
}

func TestPaletteAtClamps(t *testing.T) {
	p := BuildDefault(fixedRand{})
	if p.At(99) != p[len(p)-1] {
		t.Error("expected out of range index to clamp to last color")
	}
	if got := p.At(3).Hex(); len(got) != 7 || got[0] != '#' {
		t.Errorf("unexpected hex %q", got)
	}
	if len(p.ColorPalette()) != len(p) {
		t.Error("color palette length mismatch")
	}
}
