package xtd

import "github.com/oceanroutes/feline/internal/feline/geo"

// headingAxisOffset returns the signed perpendicular offset of x from
// the line through base along headingDeg — the waypoint's lateral (S)
// coordinate in its own local frame.
func headingAxisOffset(cs geo.CoordSys, x, base geo.Position, headingDeg float64) float64 {
	far := cs.MovePoint(base, 1000, headingDeg)
	return cs.CrossTrackDistance(x, base, far)
}

// starboardAxisOffset returns the signed perpendicular offset of x from
// the line through base along headingDeg-90 — the waypoint's
// along-heading (H) coordinate in its own local frame.
func starboardAxisOffset(cs geo.CoordSys, x, base geo.Position, headingDeg float64) float64 {
	far := cs.MovePoint(base, 1000, headingDeg-90)
	return cs.CrossTrackDistance(x, base, far)
}

// crossSigmaByEpsilon picks the lateral sigma for a point at signed
// lateral offset zLateral relative to a waypoint's own heading frame:
// near-zero offsets (within errorEpsilon) are treated as on-axis and
// use the heading sigma; positive offsets (portside) use sigmaP;
// negative offsets (starboard) use sigmaS (spec.md §9).
func crossSigmaByEpsilon(zLateral, sigmaH, sigmaP, sigmaS, errorEpsilon float64) float64 {
	switch {
	case zLateral > errorEpsilon:
		return sigmaP
	case zLateral < -errorEpsilon:
		return sigmaS
	default:
		return sigmaH
	}
}
