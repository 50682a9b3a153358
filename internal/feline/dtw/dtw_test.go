package dtw

import (
	"math"
	"testing"

	"github.com/oceanroutes/feline/internal/feline/config"
	"github.com/oceanroutes/feline/internal/feline/geo"
	"github.com/oceanroutes/feline/internal/feline/trajectory"
	"github.com/oceanroutes/feline/internal/feline/xtd"
)

func xtdList(t *testing.T, pts [][2]float64) *trajectory.XYXtdList {
	t.Helper()
	wps := make([]trajectory.XYXtd, len(pts))
	for i, p := range pts {
		wps[i] = trajectory.XYXtd{Pos: geo.NewPosition(p[0], p[1]), Xtd: geo.NewXTD(100, 100)}
	}
	list, err := trajectory.NewXYXtdList(wps)
	if err != nil {
		t.Fatalf("NewXYXtdList: %v", err)
	}
	return list
}

func TestDTWZeroForIdenticalSequences(t *testing.T) {
	cs := geo.NewCartesian(0)
	a := xtdList(t, [][2]float64{{0, 0}, {0, 1}, {0, 2}})
	driver := NewDriver(xtd.Euclidean{}, config.DTWConfig{})
	d, err := driver.Distance(cs, a, a)
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if math.Abs(d) > 1e-9 {
		t.Fatalf("expected 0 distance for identical sequences, got %v", d)
	}
}

func TestDTWAcceptsTwoPointSequences(t *testing.T) {
	cs := geo.NewCartesian(0)
	short, err := trajectory.NewXYXtdList([]trajectory.XYXtd{{Pos: geo.NewPosition(0, 0), Xtd: geo.NewXTD(1, 1)}, {Pos: geo.NewPosition(0, 1), Xtd: geo.NewXTD(1, 1)}})
	if err != nil {
		t.Fatalf("NewXYXtdList: %v", err)
	}
	driver := NewDriver(xtd.Euclidean{}, config.DTWConfig{})
	if _, err := driver.Distance(cs, short, short); err != nil {
		t.Fatalf("2-point sequences should be valid, got error: %v", err)
	}
}

func TestDTWNonNegativeForDifferentLengths(t *testing.T) {
	cs := geo.NewCartesian(0)
	a := xtdList(t, [][2]float64{{0, 0}, {0, 1}, {0, 2}, {0, 3}})
	b := xtdList(t, [][2]float64{{0.01, 0}, {0.01, 2}})
	driver := NewDriver(xtd.Euclidean{}, config.DTWConfig{})
	d, err := driver.Distance(cs, a, b)
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if d < 0 {
		t.Fatalf("expected non-negative distance, got %v", d)
	}
}

func TestDTWReverseSequenceOptionTakesMinimum(t *testing.T) {
	cs := geo.NewCartesian(0)
	a := xtdList(t, [][2]float64{{0, 0}, {0, 1}, {0, 2}})
	b := xtdList(t, [][2]float64{{0, 2}, {0, 1}, {0, 0}})

	plain := NewDriver(xtd.Euclidean{}, config.DTWConfig{EnableReversedSequence: false})
	withReverse := NewDriver(xtd.Euclidean{}, config.DTWConfig{EnableReversedSequence: true})

	dPlain, err := plain.Distance(cs, a, b)
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	dRev, err := withReverse.Distance(cs, a, b)
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if dRev > dPlain+1e-9 {
		t.Fatalf("reverse-sequence distance %v should never exceed the plain distance %v", dRev, dPlain)
	}
	if math.Abs(dRev) > 1e-9 {
		t.Fatalf("expected near-0 distance once b is compared against reverse(a), got %v", dRev)
	}
}
