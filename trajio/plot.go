// SPDX-License-Identifier: MIT

package trajio

import (
	"bytes"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/stochrare/markov"
)

const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 5 * vg.Inch
)

// PlotTrajectory draws coordinate coord of xs against the sample index and
// saves the image to path. The format follows the file extension (png, svg, pdf).
func PlotTrajectory(path, title string, xs []markov.State, coord int) error {
	if len(xs) == 0 {
		return fmt.Errorf("PlotTrajectory: %w", ErrEmpty)
	}
	pts := make(plotter.XYs, len(xs))
	for t, s := range xs {
		if coord < 0 || coord >= len(s) {
			return fmt.Errorf("PlotTrajectory: coordinate %d of state %d (dim %d): %w", coord, t, len(s), ErrMismatch)
		}
		pts[t] = plotter.XY{X: float64(t), Y: s[coord]}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "t"
	p.Y.Label.Text = fmt.Sprintf("x%d", coord)

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("PlotTrajectory: %w", err)
	}
	line.Color = color.RGBA{R: 20, G: 80, B: 200, A: 255}
	line.Width = vg.Points(0.8)
	p.Add(plotter.NewGrid(), line)

	return savePlot(p, path)
}

// PlotCommittor draws the committor value of every state against its
// coordinate coord. States of A and B are highlighted.
func PlotCommittor(path, title string, states []markov.State, q *markov.Committor, coord int) error {
	if q == nil || len(states) != len(q.Position) {
		return fmt.Errorf("PlotCommittor: %d states vs committor of %d: %w", len(states), lenPos(q), ErrMismatch)
	}
	if len(states) == 0 {
		return fmt.Errorf("PlotCommittor: %w", ErrEmpty)
	}

	var interior, inA, inB plotter.XYs
	for i, s := range states {
		if coord < 0 || coord >= len(s) {
			return fmt.Errorf("PlotCommittor: coordinate %d of state %d (dim %d): %w", coord, i, len(s), ErrMismatch)
		}
		xy := plotter.XY{X: s[coord], Y: q.At(i)}
		switch q.Position[i] {
		case markov.PosA:
			inA = append(inA, xy)
		case markov.PosB:
			inB = append(inB, xy)
		default:
			interior = append(interior, xy)
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = fmt.Sprintf("x%d", coord)
	p.Y.Label.Text = "committor"
	p.Y.Min, p.Y.Max = -0.05, 1.05
	p.Add(plotter.NewGrid())

	groups := []struct {
		name string
		xys  plotter.XYs
		col  color.RGBA
	}{
		{"interior", interior, color.RGBA{R: 120, G: 120, B: 120, A: 180}},
		{"A", inA, color.RGBA{R: 200, G: 30, B: 30, A: 220}},
		{"B", inB, color.RGBA{R: 20, G: 80, B: 200, A: 220}},
	}
	for _, g := range groups {
		if len(g.xys) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(g.xys)
		if err != nil {
			return fmt.Errorf("PlotCommittor: %w", err)
		}
		sc.GlyphStyle.Color = g.col
		sc.GlyphStyle.Radius = vg.Points(1.8)
		p.Add(sc)
		p.Legend.Add(g.name, sc)
	}

	return savePlot(p, path)
}

// savePlot renders p in memory and writes it atomically.
func savePlot(p *plot.Plot, path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		format = "png"
	}
	wt, err := p.WriterTo(plotWidth, plotHeight, format)
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	var buf bytes.Buffer
	if _, err = wt.WriteTo(&buf); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return writeFile(path, &buf)
}
