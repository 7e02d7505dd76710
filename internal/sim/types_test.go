package sim

import (
	"errors"
	"testing"

	"github.com/san-kum/torus/internal/palette"
)

func testFrame() Frame {
	p := make(palette.Palette, 4)
	for i := range p {
		p[i] = palette.NewColor(float64(i)*90, 1, 1)
	}
	return Frame{
		Width:   3,
		Height:  2,
		Cells:   []uint32{0, 1, 2, 3, 2, 1},
		Palette: p,
	}
}

func TestFrameImage(t *testing.T) {
	f := testFrame()
	img := f.Image()

	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}

	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			got := img.RGBAAt(col, row)
			want := f.RGB(row, col)
			if got.R != want[0] || got.G != want[1] || got.B != want[2] || got.A != 0xff {
				t.Errorf("pixel (%d,%d): expected %v, got %v", row, col, want, got)
			}
		}
	}
}

func TestFramePaletted(t *testing.T) {
	f := testFrame()
	img := f.Paletted()
	if len(img.Palette) != 4 {
		t.Fatalf("expected 4 palette entries, got %d", len(img.Palette))
	}
	if img.ColorIndexAt(2, 1) != 1 {
		t.Errorf("expected index 1, got %d", img.ColorIndexAt(2, 1))
	}
}

func TestFrameScaled(t *testing.T) {
	f := testFrame()
	img := f.Scaled(3)
	if img.Bounds().Dx() != 9 || img.Bounds().Dy() != 6 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	r, g, b, _ := img.At(8, 5).RGBA()
	want := f.RGB(1, 2)
	if uint8(r>>8) != want[0] || uint8(g>>8) != want[1] || uint8(b>>8) != want[2] {
		t.Errorf("scaled pixel mismatch: %v", want)
	}
	if f.Scaled(1).Bounds().Dx() != 3 {
		t.Error("scale 1 should keep the frame size")
	}
}

func TestParseLayer(t *testing.T) {
	tests := []struct {
		in   string
		want Layer
		err  bool
	}{
		{"", LayerTrace, false},
		{"trace", LayerTrace, false},
		{"state", LayerState, false},
		{"bogus", "", true},
	}

	for _, tt := range tests {
		got, err := ParseLayer(tt.in)
		if tt.err {
			if !errors.Is(err, ErrUnknownLayer) {
				t.Errorf("%q: expected ErrUnknownLayer, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("%q: expected %s, got %s (%v)", tt.in, tt.want, got, err)
		}
	}
}

func TestResultSeries(t *testing.T) {
	r := &Result{Samples: []Sample{
		{StateNonZero: 4, TraceNonZero: 1, TraceIncrements: 1, Changed: 3},
		{StateNonZero: 6, TraceNonZero: 2, TraceIncrements: 2, Changed: 5},
	}}

	for _, name := range SeriesNames {
		s, err := r.Series(name)
		if err != nil {
			t.Fatalf("series %s: %v", name, err)
		}
		if len(s) != 2 {
			t.Errorf("series %s: expected 2 values, got %d", name, len(s))
		}
	}

	trace, _ := r.Series("trace")
	if trace[1] != 2 {
		t.Errorf("expected trace 2, got %f", trace[1])
	}

	if _, err := r.Series("energy"); err == nil {
		t.Error("expected error for unknown series")
	}
}
