// Package geo implements the geographic primitives of spec.md §4.1: an
// immutable Position/XTD value model plus pluggable coordinate systems
// (Cartesian/equirectangular and Haversine/great-circle) behind a single
// CoordSys capability interface, grounded on
// HashColon/Feline/GeoValues.hpp's GeoCoordSysBase + CoordSys::{Cartesian,
// Haversine} split.
package geo

import "math"

// Position is an immutable geographic coordinate. Longitude is kept in
// [-180,180) and latitude in [-90,90]; NewPosition normalises out-of-range
// input by modular (wrap-around) arithmetic rather than rejecting it.
type Position struct {
	Lon float64
	Lat float64
}

// NewPosition builds a Position, wrapping lon into [-180,180) and folding
// lat into [-90,90] (a north-pole crossing reflects latitude without also
// rotating longitude by 180 — an accepted simplification for this library,
// since no pointwise distance kernel in this package is evaluated across
// the poles).
func NewPosition(lon, lat float64) Position {
	return Position{Lon: normalizeLon(lon), Lat: normalizeLat(lat)}
}

func normalizeLon(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

func normalizeLat(lat float64) float64 {
	t := math.Mod(lat+90, 360)
	if t < 0 {
		t += 360
	}
	if t > 180 {
		t = 360 - t
	}
	return t - 90
}

// Equal compares two positions for exact coordinate equality.
func (p Position) Equal(o Position) bool {
	return p.Lon == o.Lon && p.Lat == o.Lat
}

// XTD is the asymmetric cross-track uncertainty envelope around a
// heading: Portside is the half-width to the left of travel, Starboard
// the half-width to the right. Both are non-negative.
type XTD struct {
	Portside  float64
	Starboard float64
}

// NewXTD builds an XTD, clamping negative half-widths to zero to satisfy
// the spec.md §3 invariant (portside >= 0, starboard >= 0) without
// rejecting the caller outright — a malformed sensor-derived envelope is
// a numerical anomaly, not an input-validation failure (spec.md §7).
func NewXTD(portside, starboard float64) XTD {
	if portside < 0 {
		portside = 0
	}
	if starboard < 0 {
		starboard = 0
	}
	return XTD{Portside: portside, Starboard: starboard}
}

// Swapped returns the XTD with portside and starboard exchanged — used
// when a waypoint sequence is reversed, since "left of travel" flips
// meaning when travel direction flips (spec.md §9).
func (x XTD) Swapped() XTD {
	return XTD{Portside: x.Starboard, Starboard: x.Portside}
}

// Velocity is a speed/bearing pair, returned by CoordSys.Velocity.
type Velocity struct {
	SpeedMPS   float64
	BearingDeg float64
}
