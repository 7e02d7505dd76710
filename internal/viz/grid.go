package viz

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/torus/internal/sim"
)

const halfBlock = "▀"

// RenderGrid draws f with one character per two rows: the upper cell is the
// foreground of an upper half block, the lower cell its background. Frames
// wider than maxWidth are sampled with a fixed column stride.
func RenderGrid(f sim.Frame, maxWidth int) string {
	stride := 1
	if maxWidth > 0 && f.Width > maxWidth {
		stride = (f.Width + maxWidth - 1) / maxWidth
	}

	styles := make(map[[2]uint32]lipgloss.Style)
	var sb strings.Builder
	for row := 0; row < f.Height; row += 2 * stride {
		for col := 0; col < f.Width; col += stride {
			top := f.Cells[row*f.Width+col]
			bottom := top
			if below := row + stride; below < f.Height {
				bottom = f.Cells[below*f.Width+col]
			}

			key := [2]uint32{top, bottom}
			style, ok := styles[key]
			if !ok {
				style = lipgloss.NewStyle().
					Foreground(lipgloss.Color(f.Palette.At(top).Hex())).
					Background(lipgloss.Color(f.Palette.At(bottom).Hex()))
				styles[key] = style
			}
			sb.WriteString(style.Render(halfBlock))
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Legend shows each palette entry as a colored swatch and its index.
func Legend(f sim.Frame) string {
	var sb strings.Builder
	for i, c := range f.Palette {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("  ")
		sb.WriteString(swatch + Subtle.Render(" "+strconv.Itoa(i)+" "))
	}
	return sb.String()
}
