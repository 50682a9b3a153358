package geo

import (
	"math"
	"testing"

	"github.com/oceanroutes/feline/internal/feline/config"
)

func almostEqual(t *testing.T, got, want, tol float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s: got %v, want %v +/- %v", msg, got, want, tol)
	}
}

func TestCartesianDistanceOneHundredthDegreeLatitude(t *testing.T) {
	c := NewCartesian(37)
	a := NewPosition(0, 37)
	b := NewPosition(0, 37.01)
	almostEqual(t, c.Distance(a, b), 1111.0, 1.0, "distance")
}

func TestCartesianBearingDueNorth(t *testing.T) {
	c := NewCartesian(37)
	a := NewPosition(0, 37)
	b := NewPosition(0, 37.01)
	almostEqual(t, c.Angle(a, b), 0.0, 0.01, "bearing")
}

func TestCartesianMovePointRoundTrip(t *testing.T) {
	c := NewCartesian(37)
	a := NewPosition(0, 37)
	moved := c.MovePoint(a, 1111.0, 0.0)
	almostEqual(t, moved.Lat, 37.01, 1e-4, "moved.Lat")
	almostEqual(t, moved.Lon, 0.0, 1e-9, "moved.Lon")
}

func TestPositionNormalizesOutOfRangeLongitude(t *testing.T) {
	p := NewPosition(190, 0)
	almostEqual(t, p.Lon, -170, 1e-9, "wrapped lon")
}

func TestPositionNormalizesOutOfRangeLatitude(t *testing.T) {
	p := NewPosition(0, 100)
	almostEqual(t, p.Lat, 80, 1e-9, "folded lat")
}

func TestHaversineDistanceMatchesCartesianNearEquator(t *testing.T) {
	h := NewHaversine(config.DefaultEarthRadiusMeters)
	c := NewCartesian(0)
	a := NewPosition(0, 0)
	b := NewPosition(0.01, 0)
	almostEqual(t, h.Distance(a, b), c.Distance(a, b), 5.0, "haversine vs cartesian near equator")
}

func TestCrossTrackDistanceSignPortside(t *testing.T) {
	c := NewCartesian(0)
	s := NewPosition(0, 0)
	e := NewPosition(0, 1) // heading due north
	west := NewPosition(-0.01, 0.5)
	east := NewPosition(0.01, 0.5)
	if c.CrossTrackDistance(west, s, e) <= 0 {
		t.Fatalf("expected positive (portside) cross-track distance for a point west of a northbound track")
	}
	if c.CrossTrackDistance(east, s, e) >= 0 {
		t.Fatalf("expected negative (starboard) cross-track distance for a point east of a northbound track")
	}
}

func TestHaversineCrossTrackDistanceSignPortside(t *testing.T) {
	h := NewHaversine(config.DefaultEarthRadiusMeters)
	s := NewPosition(0, 0)
	e := NewPosition(0, 1) // heading due north
	west := NewPosition(-0.01, 0.5)
	east := NewPosition(0.01, 0.5)
	if h.CrossTrackDistance(west, s, e) <= 0 {
		t.Fatalf("expected positive (portside) cross-track distance for a point west of a northbound track")
	}
	if h.CrossTrackDistance(east, s, e) >= 0 {
		t.Fatalf("expected negative (starboard) cross-track distance for a point east of a northbound track")
	}
}

func TestRegistryDefaultRequiresInit(t *testing.T) {
	r := &Registry{}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic from using an uninitialized Registry")
		}
	}()
	_ = r.Default()
}

func TestRegistrySetBaseLocationRejectsOnHaversine(t *testing.T) {
	r, err := NewRegistry(config.DefaultGeoConfig())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if err := r.SetBaseLocation(10); err == nil {
		t.Fatalf("expected error setting base location while kind=haversine")
	}
}

func TestRegistrySwitchToCartesian(t *testing.T) {
	r, err := NewRegistry(config.GeoConfig{Kind: "cartesian", BaseLatitudeDeg: 37})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	a := NewPosition(0, 37)
	b := NewPosition(0, 37.01)
	almostEqual(t, r.Default().Distance(a, b), 1111.0, 1.0, "registry cartesian distance")

	if err := r.SetDefaultDistanceType("haversine"); err != nil {
		t.Fatalf("SetDefaultDistanceType: %v", err)
	}
	if _, ok := r.Default().(*Haversine); !ok {
		t.Fatalf("expected *Haversine after switching kind")
	}
}
