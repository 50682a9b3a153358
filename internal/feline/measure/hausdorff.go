package measure

import (
	"math"

	"github.com/oceanroutes/feline/internal/feline/geo"
	"github.com/oceanroutes/feline/internal/feline/trajectory"
)

// Hausdorff is the classic (symmetric, sequence-invariant) Hausdorff
// distance between two waypoint sets: the larger of the two directed
// "farthest nearest neighbour" distances. Reordering either trajectory
// leaves the result unchanged, so the DTW driver's reverse-sequence
// option has nothing to contribute here (grounded on the original
// library's note that Hausdorff always disables it).
type Hausdorff struct{}

func (Hausdorff) Name() string { return "Hausdorff" }
func (Hausdorff) Kind() Kind   { return KindDistance }

func (Hausdorff) Measure(cs geo.CoordSys, a, b *trajectory.XYList) (float64, error) {
	return math.Max(directedHausdorff(cs, a, b), directedHausdorff(cs, b, a)), nil
}

// directedHausdorff returns max_{x in a} min_{y in b} dist(x,y).
func directedHausdorff(cs geo.CoordSys, a, b *trajectory.XYList) float64 {
	worst := 0.0
	for _, x := range a.Points {
		best := math.Inf(1)
		for _, y := range b.Points {
			d := cs.Distance(x, y)
			if d < best {
				best = d
			}
		}
		if best > worst {
			worst = best
		}
	}
	return worst
}

// ModifiedHausdorff blends the averaged nearest-neighbour distances with
// the worst case, trading outlier sensitivity for robustness to a single
// noisy waypoint. Alpha is its only parameter: there is no per-sample
// weighting and no fraction of closest pairs to keep.
type ModifiedHausdorff struct {
	// Alpha blends the averaged and worst-case directed distances:
	// result = Alpha*avg + (1-Alpha)*max. Alpha=1 is the pure average,
	// and a zero Alpha is treated as 1.
	Alpha float64
}

func (ModifiedHausdorff) Name() string { return "ModifiedHausdorff" }
func (ModifiedHausdorff) Kind() Kind   { return KindDistance }

func (m ModifiedHausdorff) Measure(cs geo.CoordSys, a, b *trajectory.XYList) (float64, error) {
	alpha := m.Alpha
	if alpha == 0 {
		alpha = 1
	}
	avg := 0.5 * (directedAverageHausdorff(cs, a, b) + directedAverageHausdorff(cs, b, a))
	worst := math.Max(directedHausdorff(cs, a, b), directedHausdorff(cs, b, a))
	return alpha*avg + (1-alpha)*worst, nil
}

func directedAverageHausdorff(cs geo.CoordSys, a, b *trajectory.XYList) float64 {
	sum := 0.0
	for _, x := range a.Points {
		best := math.Inf(1)
		for _, y := range b.Points {
			d := cs.Distance(x, y)
			if d < best {
				best = d
			}
		}
		sum += best
	}
	return sum / float64(len(a.Points))
}
