package xtd

import (
	"math"
	"testing"

	"github.com/oceanroutes/feline/internal/feline/config"
	"github.com/oceanroutes/feline/internal/feline/geo"
	"github.com/oceanroutes/feline/internal/feline/trajectory"
)

func wp(lon, lat, portside, starboard float64) trajectory.XYXtd {
	return trajectory.XYXtd{Pos: geo.NewPosition(lon, lat), Xtd: geo.NewXTD(portside, starboard)}
}

func TestSampleCacheGridSizeMatchesConfig(t *testing.T) {
	cfg := config.DefaultXTDConfig()
	cs := geo.NewCartesian(0)
	samples, err := GetBVNSamples(cs, DefaultSampleCache, wp(0, 0, 100, 100), 0, cfg)
	if err != nil {
		t.Fatalf("GetBVNSamples: %v", err)
	}
	want := cfg.GridSize() * cfg.GridSize()
	if len(samples) != want {
		t.Fatalf("expected %d samples, got %d", want, len(samples))
	}
}

func TestSampleCacheWeightsSumToOne(t *testing.T) {
	cfg := config.DefaultXTDConfig()
	cs := geo.NewCartesian(0)
	samples, err := GetBVNSamples(cs, DefaultSampleCache, wp(0, 0, 100, 100), 45, cfg)
	if err != nil {
		t.Fatalf("GetBVNSamples: %v", err)
	}
	total := 0.0
	for _, s := range samples {
		total += s.Weight
	}
	if math.Abs(total-1) > 1e-9 {
		t.Fatalf("expected weights to sum to 1, got %v", total)
	}
}

func TestJSDivergenceZeroForIdenticalWaypoints(t *testing.T) {
	cs := geo.NewCartesian(0)
	k := NewJSDivergence(config.DefaultXTDConfig())
	a := wp(0, 0, 100, 100)
	d, err := k.Distance(cs, a, 0, a, 0)
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if math.Abs(d) > 1e-6 {
		t.Fatalf("expected ~0 JS divergence for identical waypoints, got %v", d)
	}
}

func TestJSDivergenceNonNegative(t *testing.T) {
	cs := geo.NewCartesian(0)
	k := NewJSDivergence(config.DefaultXTDConfig())
	a := wp(0, 0, 100, 200)
	b := wp(0, 0.05, 150, 80)
	d, err := k.Distance(cs, a, 10, b, 5)
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if d < 0 {
		t.Fatalf("expected non-negative JS divergence, got %v", d)
	}
}

func TestPotentialFieldZeroForSamePosition(t *testing.T) {
	cs := geo.NewCartesian(0)
	k := NewPotentialField(config.DefaultPFConfig())
	a := wp(0, 0, 100, 100)
	d, err := k.Distance(cs, a, 0, a, 90)
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if d != 0 {
		t.Fatalf("expected 0 distance for identical positions, got %v", d)
	}
}

func TestPotentialFieldZeroWhenRatioZero(t *testing.T) {
	cs := geo.NewCartesian(0)
	k := NewPotentialField(config.PFConfig{XtdSigmaRatio: 0})
	a := wp(0, 0, 100, 100)
	b := wp(0, 0.01, 100, 100)
	d, err := k.Distance(cs, a, 0, b, 0)
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if d != 0 {
		t.Fatalf("expected 0 distance when XtdSigmaRatio==0, got %v", d)
	}
}

func TestWassersteinNonNegativeAndSmallForIdenticalWaypoints(t *testing.T) {
	cs := geo.NewCartesian(0)
	k := NewWasserstein(config.DefaultXTDConfig())
	a := wp(0, 0, 100, 100)
	d, err := k.Distance(cs, a, 0, a, 0)
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if d < 0 {
		t.Fatalf("expected non-negative EMD, got %v", d)
	}
	if d > 1.0 {
		t.Fatalf("expected near-zero EMD for identical waypoints, got %v", d)
	}
}

func TestBlendSkipsZeroWeightTerms(t *testing.T) {
	cs := geo.NewCartesian(0)
	b := NewBlend(
		config.BlendConfig{EuclideanWeight: 1},
		config.DefaultXTDConfig(),
		config.DefaultPFConfig(),
	)
	a := wp(0, 0, 100, 100)
	c := wp(0, 1, 100, 100)
	d, err := b.Distance(cs, a, 0, c, 0)
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	want := cs.Distance(a.Pos, c.Pos)
	if math.Abs(d-want) > 1e-9 {
		t.Fatalf("expected pure Euclidean distance %v, got %v", want, d)
	}
}

func TestBlendNonNegative(t *testing.T) {
	cs := geo.NewCartesian(0)
	b := NewBlend(
		config.BlendConfig{EuclideanWeight: 1, JSWeight: 1, WassersteinWeight: 1, PFWeight: 1},
		config.DefaultXTDConfig(),
		config.DefaultPFConfig(),
	)
	a := wp(0, 0, 100, 200)
	c := wp(0, 0.02, 150, 90)
	d, err := b.Distance(cs, a, 0, c, 10)
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if d < 0 {
		t.Fatalf("expected non-negative blended distance, got %v", d)
	}
}
