package measure

import (
	"math"

	"github.com/oceanroutes/feline/internal/feline/geo"
	"github.com/oceanroutes/feline/internal/feline/trajectory"
)

// Merge is the "merge distance" of Ismail & Vigneron (2015): the extra
// length incurred by interleaving a and b (preserving each one's
// internal order) into a single path, over the length of the better of
// the two trajectories alone. Implemented as a dynamic program over the
// n x m grid of prefix pairs, tracking the accumulated merged-path
// length and which trajectory contributed the most recent point. Each
// new point's edge is measured from the previous merged point, whether
// that is its own predecessor or the latest point of the other
// trajectory.
type Merge struct{}

func (Merge) Name() string { return "Merge" }
func (Merge) Kind() Kind   { return KindDistance }

// mergeState holds, for one (i,j) cell, the best accumulated length when the
// most recent merged point came from a (viaA) or from b (viaB).
type mergeState struct {
	viaA, viaB float64
}

const mergeInf = math.MaxFloat64 / 2

func (Merge) Measure(cs geo.CoordSys, a, b *trajectory.XYList) (float64, error) {
	n, m := a.Len(), b.Len()
	table := make([][]mergeState, n+1)
	for i := range table {
		table[i] = make([]mergeState, m+1)
	}
	table[0][0] = mergeState{viaA: 0, viaB: 0}
	for j := range table[0] {
		table[0][j] = mergeState{viaA: mergeInf, viaB: mergeInf}
	}
	for i := range table {
		table[i][0] = mergeState{viaA: mergeInf, viaB: mergeInf}
	}
	table[0][0] = mergeState{viaA: 0, viaB: 0}

	for i := 0; i <= n; i++ {
		for j := 0; j <= m; j++ {
			if i == 0 && j == 0 {
				continue
			}
			best := mergeState{viaA: mergeInf, viaB: mergeInf}
			if i > 0 {
				prev := table[i-1][j]
				edge := 0.0
				if i > 1 {
					edge = cs.Distance(a.Points[i-2], a.Points[i-1])
				}
				cost := prev.viaA + edge
				if j > 0 {
					cost = math.Min(cost, prev.viaB+cs.Distance(b.Points[j-1], a.Points[i-1]))
				}
				if cost < best.viaA {
					best.viaA = cost
				}
			}
			if j > 0 {
				prev := table[i][j-1]
				edge := 0.0
				if j > 1 {
					edge = cs.Distance(b.Points[j-2], b.Points[j-1])
				}
				cost := prev.viaB + edge
				if i > 0 {
					cost = math.Min(cost, prev.viaA+cs.Distance(a.Points[i-1], b.Points[j-1]))
				}
				if cost < best.viaB {
					best.viaB = cost
				}
			}
			table[i][j] = best
		}
	}

	merged := math.Min(table[n][m].viaA, table[n][m].viaB)
	lenA, _ := a.LengthBetween(cs, 0, n-1)
	lenB, _ := b.LengthBetween(cs, 0, m-1)
	baseline := math.Min(lenA, lenB)
	diff := merged - baseline
	if diff < 0 {
		diff = 0
	}
	return diff, nil
}
