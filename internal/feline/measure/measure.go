// Package measure implements the named whole-trajectory distance
// measures of spec.md's expanded component design and the distance-
// matrix builder of spec.md §4.5.
package measure

import (
	"github.com/oceanroutes/feline/internal/feline/geo"
	"github.com/oceanroutes/feline/internal/feline/trajectory"
)

// Kind distinguishes a distance measure (small=similar) from a
// similarity measure (large=similar), mirroring
// HashColon::Clustering::DistanceMeasureType.
type Kind int

const (
	// KindDistance measures are small for similar trajectories.
	KindDistance Kind = iota
	// KindSimilarity measures are large for similar trajectories.
	KindSimilarity
)

// Measure is the capability interface implemented by every whole-
// trajectory comparison in this package.
type Measure interface {
	// Measure returns the distance (or similarity, see Kind) between a
	// and b under the given coordinate system.
	Measure(cs geo.CoordSys, a, b *trajectory.XYList) (float64, error)
	// Kind reports whether Measure returns a distance or a similarity.
	Kind() Kind
	// Name identifies the measure for logging and reports.
	Name() string
}
