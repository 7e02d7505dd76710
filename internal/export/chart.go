package export

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/torus/internal/sim"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrNotEnoughSamples = errors.New("export: at least two samples are needed for a chart")

var seriesColors = map[string]drawing.Color{
	"state":      {R: 0, G: 168, B: 204, A: 255},
	"trace":      {R: 255, G: 0, B: 255, A: 255},
	"increments": {R: 255, G: 165, B: 0, A: 255},
	"changed":    {R: 0, G: 200, B: 100, A: 255},
}

// RenderChart draws the named sample series of a run as a PNG line chart.
func RenderChart(w io.Writer, result *sim.Result, names ...string) error {
	if len(result.Samples) < 2 {
		return ErrNotEnoughSamples
	}
	if len(names) == 0 {
		names = sim.SeriesNames
	}

	xs := make([]float64, len(result.Samples))
	for i, s := range result.Samples {
		xs[i] = float64(s.Generation)
	}

	yMax := 1.0
	series := make([]chart.Series, 0, len(names))
	for _, name := range names {
		ys, err := result.Series(name)
		if err != nil {
			return err
		}
		for _, y := range ys {
			yMax = max(yMax, y)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: seriesColors[name], StrokeWidth: 2.0},
		})
	}

	graph := chart.Chart{
		Width:  800,
		Height: 300,
		XAxis: chart.XAxis{
			Name:  "generation",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "cells",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}

// WriteChart renders the chart into a file.
func WriteChart(path string, result *sim.Result, names ...string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := RenderChart(f, result, names...); err != nil {
		f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}
