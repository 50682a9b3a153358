// Package trajectory implements the waypoint-sequence data model of
// spec.md §3: ordered Position/XYXtd lists with cumulative arc length,
// length-parameterised queries, uniform-length resampling, and
// reversal. Every operation is geodesic under a caller-supplied
// geo.CoordSys rather than a fixed projection, so the same sequence can
// be measured under Cartesian or Haversine without copying data.
package trajectory

import (
	"github.com/oceanroutes/feline/internal/feline/ferrors"
	"github.com/oceanroutes/feline/internal/feline/geo"
)

// XYList is an ordered sequence of Positions.
type XYList struct {
	Points []geo.Position
}

// NewXYList validates len(points) >= 2 per spec.md §3's invariant that a
// sequence has at least two points before a distance evaluation, and
// returns an immutable XYList.
func NewXYList(points []geo.Position) (*XYList, error) {
	if len(points) < 2 {
		return nil, ferrors.Invalidf("trajectory.xylist", "points", "need at least 2 points, got %d", len(points))
	}
	cp := make([]geo.Position, len(points))
	copy(cp, points)
	return &XYList{Points: cp}, nil
}

// Len returns the number of waypoints.
func (l *XYList) Len() int { return len(l.Points) }

// CumulativeLength returns, for each index i, the geodesic arc length
// from Points[0] to Points[i] under cs. CumulativeLength[0] == 0 and the
// sequence is non-negative and monotone non-decreasing.
func (l *XYList) CumulativeLength(cs geo.CoordSys) []float64 {
	out := make([]float64, len(l.Points))
	for i := 1; i < len(l.Points); i++ {
		out[i] = out[i-1] + cs.Distance(l.Points[i-1], l.Points[i])
	}
	return out
}

// LengthBetween returns the arc length from index s to index e (s<=e)
// under cs.
func (l *XYList) LengthBetween(cs geo.CoordSys, s, e int) (float64, error) {
	if s < 0 || e >= len(l.Points) || s > e {
		return 0, ferrors.Invalidf("trajectory.xylist", "range", "invalid range [%d,%d] for length %d", s, e, len(l.Points))
	}
	cum := l.CumulativeLength(cs)
	return cum[e] - cum[s], nil
}

// Reverse returns a new XYList with waypoint order reversed. Arc length
// is preserved.
func (l *XYList) Reverse() *XYList {
	n := len(l.Points)
	rev := make([]geo.Position, n)
	for i, p := range l.Points {
		rev[n-1-i] = p
	}
	return &XYList{Points: rev}
}

// interpAt locates the segment containing target arc length s (given
// the list's cumulative lengths) and returns the segment index and the
// fractional position [0,1] within it. s is clamped to [0, total].
func interpAt(cum []float64, s float64) (seg int, frac float64) {
	total := cum[len(cum)-1]
	if s <= 0 {
		return 0, 0
	}
	if s >= total {
		return len(cum) - 2, 1
	}
	for i := 1; i < len(cum); i++ {
		if s <= cum[i] {
			span := cum[i] - cum[i-1]
			if span == 0 {
				return i - 1, 0
			}
			return i - 1, (s - cum[i-1]) / span
		}
	}
	return len(cum) - 2, 1
}

// ResampleUniform produces a new XYList with exactly n waypoints evenly
// spaced in arc length along l, interpolating position geodesically via
// cs.MovePoint/cs.Angle (spec.md §4.4). It is idempotent for len(l)==n
// when l's own waypoints already sit at those exact arc-length
// fractions.
func (l *XYList) ResampleUniform(cs geo.CoordSys, n int) (*XYList, error) {
	if n < 2 {
		return nil, ferrors.Invalidf("trajectory.xylist", "n", "need at least 2 target points, got %d", n)
	}
	cum := l.CumulativeLength(cs)
	total := cum[len(cum)-1]
	out := make([]geo.Position, n)
	for i := 0; i < n; i++ {
		target := total * float64(i) / float64(n-1)
		seg, frac := interpAt(cum, target)
		out[i] = interpolatePosition(cs, l.Points[seg], l.Points[seg+1], frac)
	}
	return &XYList{Points: out}, nil
}

// interpolatePosition walks frac of the geodesic distance from a to b,
// on the bearing from a to b — exact on a great circle or the
// equirectangular plane, and well-defined when a==b (frac is then
// irrelevant since distance is 0).
func interpolatePosition(cs geo.CoordSys, a, b geo.Position, frac float64) geo.Position {
	if frac <= 0 {
		return a
	}
	if frac >= 1 {
		return b
	}
	d := cs.Distance(a, b)
	if d == 0 {
		return a
	}
	bearing := cs.Angle(a, b)
	return cs.MovePoint(a, d*frac, bearing)
}

// XYXtd is the fundamental waypoint of the distance core: a position
// plus its asymmetric cross-track envelope.
type XYXtd struct {
	Pos geo.Position
	Xtd geo.XTD
}

// XYXtdList is an ordered sequence of XYXtd.
type XYXtdList struct {
	Points []XYXtd
}

// NewXYXtdList validates len(points) >= 2.
func NewXYXtdList(points []XYXtd) (*XYXtdList, error) {
	if len(points) < 2 {
		return nil, ferrors.Invalidf("trajectory.xyxtdlist", "points", "need at least 2 points, got %d", len(points))
	}
	cp := make([]XYXtd, len(points))
	copy(cp, points)
	return &XYXtdList{Points: cp}, nil
}

// Len returns the number of waypoints.
func (l *XYXtdList) Len() int { return len(l.Points) }

// Positions extracts the underlying XYList, discarding XTD.
func (l *XYXtdList) Positions() *XYList {
	pts := make([]geo.Position, len(l.Points))
	for i, p := range l.Points {
		pts[i] = p.Pos
	}
	return &XYList{Points: pts}
}

// Heading returns the inferred travel bearing at index i, per spec.md
// §4.3: the bearing to the next waypoint, or from the second-to-last to
// the last waypoint at the final index.
func (l *XYXtdList) Heading(cs geo.CoordSys, i int) float64 {
	n := len(l.Points)
	if i < n-1 {
		return cs.Angle(l.Points[i].Pos, l.Points[i+1].Pos)
	}
	return cs.Angle(l.Points[n-2].Pos, l.Points[n-1].Pos)
}

// Reverse returns a new XYXtdList with waypoint order reversed and,
// per spec.md §9, every waypoint's portside/starboard widths swapped —
// "left of travel" flips meaning when the direction of travel flips.
func (l *XYXtdList) Reverse() *XYXtdList {
	n := len(l.Points)
	rev := make([]XYXtd, n)
	for i, p := range l.Points {
		rev[n-1-i] = XYXtd{Pos: p.Pos, Xtd: p.Xtd.Swapped()}
	}
	return &XYXtdList{Points: rev}
}

// CumulativeLength delegates to the underlying position sequence.
func (l *XYXtdList) CumulativeLength(cs geo.CoordSys) []float64 {
	return l.Positions().CumulativeLength(cs)
}

// ResampleUniform produces a new XYXtdList with exactly n waypoints
// evenly spaced in arc length, interpolating position geodesically and
// projecting XTD from the nearer source endpoint (spec.md §3, §4.4) —
// the envelope describes sensor uncertainty at a specific observation,
// so it is carried rather than blended across an interpolated point.
func (l *XYXtdList) ResampleUniform(cs geo.CoordSys, n int) (*XYXtdList, error) {
	if n < 2 {
		return nil, ferrors.Invalidf("trajectory.xyxtdlist", "n", "need at least 2 target points, got %d", n)
	}
	cum := l.CumulativeLength(cs)
	total := cum[len(cum)-1]
	out := make([]XYXtd, n)
	for i := 0; i < n; i++ {
		target := total * float64(i) / float64(n-1)
		seg, frac := interpAt(cum, target)
		a, b := l.Points[seg], l.Points[seg+1]
		pos := interpolatePosition(cs, a.Pos, b.Pos, frac)
		nearer := a.Xtd
		if frac > 0.5 {
			nearer = b.Xtd
		}
		out[i] = XYXtd{Pos: pos, Xtd: nearer}
	}
	return &XYXtdList{Points: out}, nil
}
