// Package dtw implements the dynamic-time-warping trajectory distance
// driver of spec.md §4.3: align two waypoint sequences of unequal
// length against a pointwise distance kernel, with inferred local
// headings and an optional reverse-sequence comparison.
package dtw

import (
	"math"

	"github.com/oceanroutes/feline/internal/feline/config"
	"github.com/oceanroutes/feline/internal/feline/ferrors"
	"github.com/oceanroutes/feline/internal/feline/geo"
	"github.com/oceanroutes/feline/internal/feline/xtd"

	"github.com/oceanroutes/feline/internal/feline/trajectory"
)

// Driver runs DTW over an xtd.Kernel.
type Driver struct {
	Kernel xtd.Kernel
	Cfg    config.DTWConfig
}

// NewDriver builds a Driver over the given pointwise kernel.
func NewDriver(kernel xtd.Kernel, cfg config.DTWConfig) *Driver {
	return &Driver{Kernel: kernel, Cfg: cfg}
}

// Distance computes the DTW distance between a and b under cs, per
// spec.md §4.3: an n x m warping table normalised by (n+m), optionally
// also evaluated against the reversed a (swapping portside/starboard,
// spec.md §9) and taking the minimum.
func (d *Driver) Distance(cs geo.CoordSys, a, b *trajectory.XYXtdList) (float64, error) {
	if a.Len() < 2 || b.Len() < 2 {
		return 0, ferrors.Invalidf("dtw", "length", "both sequences need at least 2 waypoints, got %d and %d", a.Len(), b.Len())
	}

	forward, err := d.align(cs, a, b)
	if err != nil {
		return 0, err
	}
	if !d.Cfg.EnableReversedSequence {
		return forward, nil
	}

	reversed, err := d.align(cs, a.Reverse(), b)
	if err != nil {
		return 0, err
	}
	return math.Min(forward, reversed), nil
}

// align runs a single DTW table fill and returns W[n-1,m-1]/(n+m).
func (d *Driver) align(cs geo.CoordSys, a, b *trajectory.XYXtdList) (float64, error) {
	n, m := a.Len(), b.Len()
	const inf = math.MaxFloat64

	w := make([][]float64, n)
	for i := range w {
		w[i] = make([]float64, m)
	}

	for i := 0; i < n; i++ {
		aDir := a.Heading(cs, i)
		for j := 0; j < m; j++ {
			bDir := b.Heading(cs, j)
			cost, err := d.Kernel.Distance(cs, a.Points[i], aDir, b.Points[j], bDir)
			if err != nil {
				return 0, err
			}

			if i == 0 && j == 0 {
				w[i][j] = cost
				continue
			}
			best := inf
			if i > 0 {
				best = math.Min(best, w[i-1][j])
			}
			if j > 0 {
				best = math.Min(best, w[i][j-1])
			}
			if i > 0 && j > 0 {
				best = math.Min(best, w[i-1][j-1])
			}
			w[i][j] = cost + best
		}
	}

	return w[n-1][m-1] / float64(n+m), nil
}
