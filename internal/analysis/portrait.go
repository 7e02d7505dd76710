package analysis

import (
	"errors"
	"strings"
)

// Portrait pairs two series sample by sample, for example state population
// against trace coverage.
type Portrait struct {
	Points []struct{ X, Y float64 }
}

func NewPortrait(xs, ys []float64) (*Portrait, error) {
	if len(xs) != len(ys) {
		return nil, errors.New("analysis: portrait series differ in length")
	}
	p := &Portrait{Points: make([]struct{ X, Y float64 }, len(xs))}
	for i := range xs {
		p.Points[i].X = xs[i]
		p.Points[i].Y = ys[i]
	}
	return p, nil
}

// ASCII plots the points on a width×height character canvas.
func (p *Portrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		mark := '•'
		if i == 0 {
			mark = 'o'
		}
		if canvas[row][col] == ' ' || i == 0 {
			canvas[row][col] = mark
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteRune('\n')
	}
	return sb.String()
}
