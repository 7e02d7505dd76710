package viz

import (
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/torus/internal/sim"
)

var plotColors = map[string]asciigraph.AnsiColor{
	"state":      asciigraph.Cyan,
	"trace":      asciigraph.Magenta,
	"increments": asciigraph.Orange,
	"changed":    asciigraph.Green,
}

// PlotSeries draws the named sample series of result on one ASCII chart.
func PlotSeries(result *sim.Result, names []string, width, height int) (string, error) {
	if len(names) == 0 {
		names = sim.SeriesNames
	}

	data := make([][]float64, 0, len(names))
	colors := make([]asciigraph.AnsiColor, 0, len(names))
	for _, name := range names {
		series, err := result.Series(name)
		if err != nil {
			return "", err
		}
		if len(series) == 0 {
			return "", nil
		}
		data = append(data, series)
		colors = append(colors, plotColors[name])
	}

	caption := names[0]
	for _, n := range names[1:] {
		caption += ", " + n
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(caption),
	), nil
}
