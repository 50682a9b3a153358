package geo

import "math"

// Haversine is a great-circle coordinate system on a sphere of the
// given radius (spec.md §4.1). It has no base-location state, unlike
// Cartesian, so it is accurate everywhere the sphere approximation
// holds.
type Haversine struct {
	radiusMeters float64
}

// NewHaversine builds a Haversine coordinate system over a sphere of
// radiusMeters. The radius is not checked here; a Registry built from a
// GeoConfig with EarthRadiusMeters == 0 passes
// config.DefaultEarthRadiusMeters instead.
func NewHaversine(radiusMeters float64) *Haversine {
	return &Haversine{radiusMeters: radiusMeters}
}

func (h *Haversine) Distance(a, b Position) float64 {
	lat1, lat2 := deg2rad(a.Lat), deg2rad(b.Lat)
	dLat := lat2 - lat1
	dLon := deg2rad(b.Lon - a.Lon)
	sinDLat2 := math.Sin(dLat / 2)
	sinDLon2 := math.Sin(dLon / 2)
	x := sinDLat2*sinDLat2 + math.Cos(lat1)*math.Cos(lat2)*sinDLon2*sinDLon2
	c := 2 * math.Atan2(math.Sqrt(x), math.Sqrt(1-x))
	return h.radiusMeters * c
}

// angularDistance returns Distance(a,b)/radius, the great-circle angle
// in radians between a and b.
func (h *Haversine) angularDistance(a, b Position) float64 {
	return h.Distance(a, b) / h.radiusMeters
}

func (h *Haversine) Angle(a, b Position) float64 {
	lat1, lat2 := deg2rad(a.Lat), deg2rad(b.Lat)
	dLon := deg2rad(b.Lon - a.Lon)
	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return normalizeBearing(rad2deg(math.Atan2(y, x)))
}

func (h *Haversine) AngleAPB(a, b, p Position) float64 {
	return normalizeBearing(h.Angle(p, b) - h.Angle(p, a))
}

func (h *Haversine) MovePoint(start Position, distMeters, bearingDeg float64) Position {
	lat1 := deg2rad(start.Lat)
	lon1 := deg2rad(start.Lon)
	brg := deg2rad(bearingDeg)
	angDist := distMeters / h.radiusMeters

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(angDist) + math.Cos(lat1)*math.Sin(angDist)*math.Cos(brg))
	lon2 := lon1 + math.Atan2(
		math.Sin(brg)*math.Sin(angDist)*math.Cos(lat1),
		math.Cos(angDist)-math.Sin(lat1)*math.Sin(lat2),
	)
	return NewPosition(rad2deg(lon2), rad2deg(lat2))
}

func (h *Haversine) CrossTrackDistance(p, s, e Position) float64 {
	angDistSP := h.angularDistance(s, p)
	bearingSP := deg2rad(h.Angle(s, p))
	bearingSE := deg2rad(h.Angle(s, e))
	return h.radiusMeters * math.Asin(math.Sin(angDistSP)*math.Sin(bearingSE-bearingSP))
}

func (h *Haversine) OnTrackDistance(p, s, e Position) float64 {
	angDistSP := h.angularDistance(s, p)
	axtd := h.CrossTrackDistance(p, s, e) / h.radiusMeters
	ratio := math.Cos(angDistSP) / math.Cos(axtd)
	// Clamp for floating-point drift at ratio ~= +/-1.
	if ratio > 1 {
		ratio = 1
	} else if ratio < -1 {
		ratio = -1
	}
	d := h.radiusMeters * math.Acos(ratio)
	// P projects behind S when it lies more than 90 degrees off the track bearing.
	if math.Cos(deg2rad(h.Angle(s, p)-h.Angle(s, e))) < 0 {
		return -d
	}
	return d
}

func (h *Haversine) Speed(a, b Position, seconds float64) float64 {
	if seconds == 0 {
		return 0
	}
	return h.Distance(a, b) / seconds
}

func (h *Haversine) Velocity(a, b Position, seconds float64) Velocity {
	return Velocity{SpeedMPS: h.Speed(a, b, seconds), BearingDeg: h.Angle(a, b)}
}
