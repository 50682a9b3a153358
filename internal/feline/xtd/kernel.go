package xtd

import (
	"github.com/oceanroutes/feline/internal/feline/geo"
	"github.com/oceanroutes/feline/internal/feline/trajectory"
)

// Kernel is the pointwise distance contract shared by every distance
// kernel in this package, and the contract the dtw package drives over
// trajectory waypoint pairs.
type Kernel interface {
	Distance(cs geo.CoordSys, a trajectory.XYXtd, aDir float64, b trajectory.XYXtd, bDir float64) (float64, error)
}

// Euclidean is the plain position distance, ignoring XTD and heading —
// the c_E term of the blended distance (spec.md §4.2.4) and a useful
// baseline kernel on its own.
type Euclidean struct{}

// Distance returns cs.Distance(a.Pos, b.Pos).
func (Euclidean) Distance(cs geo.CoordSys, a trajectory.XYXtd, _ float64, b trajectory.XYXtd, _ float64) (float64, error) {
	return cs.Distance(a.Pos, b.Pos), nil
}
