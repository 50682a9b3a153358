package measure

import (
	"context"
	"math"
	"testing"

	"github.com/oceanroutes/feline/internal/feline/config"
	"github.com/oceanroutes/feline/internal/feline/geo"
	"github.com/oceanroutes/feline/internal/feline/trajectory"
	"github.com/oceanroutes/feline/internal/feline/xtd"
)

func line(t *testing.T, lonOffset float64, lats ...float64) *trajectory.XYList {
	t.Helper()
	pts := make([]geo.Position, len(lats))
	for i, lat := range lats {
		pts[i] = geo.NewPosition(lonOffset, lat)
	}
	list, err := trajectory.NewXYList(pts)
	if err != nil {
		t.Fatalf("NewXYList: %v", err)
	}
	return list
}

func TestHausdorffZeroForIdenticalTrajectories(t *testing.T) {
	cs := geo.NewCartesian(0)
	a := line(t, 0, 0, 1, 2)
	d, err := Hausdorff{}.Measure(cs, a, a)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if d != 0 {
		t.Fatalf("expected 0, got %v", d)
	}
}

func TestHausdorffSymmetric(t *testing.T) {
	cs := geo.NewCartesian(0)
	a := line(t, 0, 0, 1, 2)
	b := line(t, 0.01, 0, 1, 2)
	dab, err := Hausdorff{}.Measure(cs, a, b)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	dba, err := Hausdorff{}.Measure(cs, b, a)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if math.Abs(dab-dba) > 1e-6 {
		t.Fatalf("expected symmetric Hausdorff distance, got %v vs %v", dab, dba)
	}
}

func TestEuclideanZeroForIdenticalTrajectories(t *testing.T) {
	cs := geo.NewCartesian(0)
	a := line(t, 0, 0, 1, 2)
	d, err := Euclidean{}.Measure(cs, a, a)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if d != 0 {
		t.Fatalf("expected 0, got %v", d)
	}
}

func TestLCSSFullMatchGivesSimilarityOne(t *testing.T) {
	cs := geo.NewCartesian(0)
	a := line(t, 0, 0, 1, 2)
	sim, err := LCSS{Epsilon: 1}.Measure(cs, a, a)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if math.Abs(sim-1) > 1e-9 {
		t.Fatalf("expected similarity 1 for identical trajectories, got %v", sim)
	}
}

func TestLCSSKindIsSimilarity(t *testing.T) {
	if (LCSS{}).Kind() != KindSimilarity {
		t.Fatalf("expected KindSimilarity")
	}
}

func TestDTWMeasureZeroForIdenticalTrajectories(t *testing.T) {
	cs := geo.NewCartesian(0)
	a := line(t, 0, 0, 1, 2)
	d := NewDTW(xtd.Euclidean{}, config.DTWConfig{})
	got, err := d.Measure(cs, a, a)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if math.Abs(got) > 1e-9 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestMergeNonNegative(t *testing.T) {
	cs := geo.NewCartesian(0)
	a := line(t, 0, 0, 1, 2)
	b := line(t, 0.01, 0, 1)
	d, err := Merge{}.Measure(cs, a, b)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if d < 0 {
		t.Fatalf("expected non-negative merge distance, got %v", d)
	}
}

func TestProjectedPCAZeroForIdenticalTrajectories(t *testing.T) {
	cs := geo.NewCartesian(0)
	a := line(t, 0, 0, 1, 2, 3)
	p := ProjectedPCA{Dim: 1, SampleCount: 4}
	d, err := p.Measure(cs, a, a)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if d > 1e-6 {
		t.Fatalf("expected ~0 distance for identical trajectories, got %v", d)
	}
}

func TestProjectedPCAAutoDimZeroForIdenticalTrajectories(t *testing.T) {
	cs := geo.NewCartesian(0)
	a := line(t, 0, 0, 1, 2, 3)
	p := ProjectedPCA{Dim: 0, SampleCount: 4}
	d, err := p.Measure(cs, a, a)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if d > 1e-6 {
		t.Fatalf("expected ~0 distance for identical trajectories under auto dim, got %v", d)
	}
}

func TestAutoDimRetainsVarianceThreshold(t *testing.T) {
	// One dominant axis: the leading component alone already clears 95%.
	if got := autoDim([]float64{10, 1}, 2); got != 1 {
		t.Fatalf("expected 1 dominant component, got %d", got)
	}
	// Evenly split variance: the leading component alone falls short.
	if got := autoDim([]float64{10, 10}, 2); got != 2 {
		t.Fatalf("expected both components for evenly split variance, got %d", got)
	}
	// Degenerate (zero-variance) input falls back to the full rank.
	if got := autoDim([]float64{0, 0}, 2); got != 2 {
		t.Fatalf("expected fallback to maxDim for zero variance, got %d", got)
	}
}

func TestBuildMatrixSymmetricZeroDiagonal(t *testing.T) {
	cs := geo.NewCartesian(0)
	trajs := []*trajectory.XYList{
		line(t, 0, 0, 1, 2),
		line(t, 0.01, 0, 1, 2),
		line(t, 0.02, 0, 1, 2),
	}
	m, err := BuildMatrix(context.Background(), cs, Hausdorff{}, trajs, nil)
	if err != nil {
		t.Fatalf("BuildMatrix: %v", err)
	}
	n, _ := m.Dims()
	for i := 0; i < n; i++ {
		if m.At(i, i) != 0 {
			t.Fatalf("expected zero diagonal at %d, got %v", i, m.At(i, i))
		}
		for j := 0; j < n; j++ {
			if math.Abs(m.At(i, j)-m.At(j, i)) > 1e-9 {
				t.Fatalf("expected symmetric matrix at (%d,%d)", i, j)
			}
		}
	}
}

func TestBuildMatrixRejectsFewerThanTwoTrajectories(t *testing.T) {
	cs := geo.NewCartesian(0)
	trajs := []*trajectory.XYList{line(t, 0, 0, 1)}
	if _, err := BuildMatrix(context.Background(), cs, Hausdorff{}, trajs, nil); err == nil {
		t.Fatalf("expected error for fewer than 2 trajectories")
	}
}

func TestBuildMatrixProgressReachesOne(t *testing.T) {
	cs := geo.NewCartesian(0)
	trajs := []*trajectory.XYList{
		line(t, 0, 0, 1),
		line(t, 0.01, 0, 1),
		line(t, 0.02, 0, 1),
	}
	progress := &Progress{}
	if _, err := BuildMatrix(context.Background(), cs, Hausdorff{}, trajs, progress); err != nil {
		t.Fatalf("BuildMatrix: %v", err)
	}
	if math.Abs(progress.Fraction()-1) > 1e-9 {
		t.Fatalf("expected progress to reach 1, got %v", progress.Fraction())
	}
}
