package main

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// distanceGrid adapts a *mat.SymDense to plotter.GridXYZ so it can be
// rendered as a heatmap.
type distanceGrid struct {
	m *mat.SymDense
	n int
}

func (g distanceGrid) Dims() (c, r int)   { return g.n, g.n }
func (g distanceGrid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g distanceGrid) X(c int) float64    { return float64(c) }
func (g distanceGrid) Y(r int) float64    { return float64(r) }

// renderHeatmap saves a PNG heatmap of the distance matrix, following
// the teacher's gonum/plot save pattern (New -> configure -> Save).
func renderHeatmap(dm *mat.SymDense, path string) error {
	n, _ := dm.Dims()
	p := plot.New()
	p.Title.Text = "Trajectory distance matrix"
	p.X.Label.Text = "trajectory index"
	p.Y.Label.Text = "trajectory index"

	hm := plotter.NewHeatMap(distanceGrid{m: dm, n: n}, palette.Heat(24, 1))
	p.Add(hm)

	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}
