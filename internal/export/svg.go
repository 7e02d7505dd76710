package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/torus/internal/sim"
)

// FrameToSVG draws every non-background cell of a frame as a square. Cells
// sharing the color of index 0 are covered by the background rect.
func FrameToSVG(f sim.Frame, scale float64) string {
	width := float64(f.Width) * scale
	height := float64(f.Height) * scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" shape-rendering="crispEdges">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, f.Palette.At(0).Hex()))

	for row := 0; row < f.Height; row++ {
		for col := 0; col < f.Width; col++ {
			c := f.Cells[row*f.Width+col]
			if c == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(col)*scale, float64(row)*scale, scale, scale, f.Palette.At(c).Hex()))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
