package eval

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func sym(raw [][]float64) *mat.SymDense {
	n := len(raw)
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			m.SetSym(i, j, raw[i][j])
		}
	}
	return m
}

func blockMatrix() *mat.SymDense {
	return sym([][]float64{
		{0, 0.1, 0.1, 10, 10.1, 10.1},
		{0.1, 0, 0.1, 10.1, 10, 10.1},
		{0.1, 0.1, 0, 10.1, 10.1, 10},
		{10, 10.1, 10.1, 0, 0.1, 0.1},
		{10.1, 10, 10.1, 0.1, 0, 0.1},
		{10.1, 10.1, 10, 0.1, 0.1, 0},
	})
}

func blockLabels() []int {
	return []int{0, 0, 0, 1, 1, 1}
}

func TestSortedDistanceGraphGroupsAndSorts(t *testing.T) {
	groups, err := SortedDistanceGraph(blockLabels(), blockMatrix())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	for _, g := range groups {
		if len(g) != 3 {
			t.Fatalf("expected 3 intra-cluster pairs, got %d", len(g))
		}
		for i := 1; i < len(g); i++ {
			if g[i-1] > g[i] {
				t.Fatalf("expected sorted distances, got %v", g)
			}
		}
	}
}

func TestAnalyzeDistances(t *testing.T) {
	groups, err := SortedDistanceGraph(blockLabels(), blockMatrix())
	require.NoError(t, err)
	per, total := AnalyzeDistances(groups)
	require.Len(t, per, 2)
	for _, s := range per {
		if s.Min > s.Mean || s.Mean > s.Max {
			t.Fatalf("expected min <= mean <= max, got %+v", s)
		}
	}
	if total.Min <= 0 {
		t.Fatalf("expected positive total min, got %v", total.Min)
	}
}

func TestPseudoMedoidPicksLowestSumMember(t *testing.T) {
	medoids, err := PseudoMedoid(blockLabels(), blockMatrix())
	require.NoError(t, err)
	require.Len(t, medoids, 2)
	if medoids[0] < 0 || medoids[0] > 2 {
		t.Fatalf("expected medoid 0 in first block, got %d", medoids[0])
	}
	if medoids[1] < 3 || medoids[1] > 5 {
		t.Fatalf("expected medoid 1 in second block, got %d", medoids[1])
	}
}

func TestPseudoDaviesBouldinNonNegative(t *testing.T) {
	scores, medoids, err := PseudoDaviesBouldin(blockLabels(), blockMatrix())
	require.NoError(t, err)
	require.Len(t, scores, 2)
	require.Len(t, medoids, 2)
	for _, s := range scores {
		if s < 0 {
			t.Fatalf("expected non-negative score, got %v", s)
		}
	}
}

func TestSilhouetteWellSeparatedIsNearOne(t *testing.T) {
	s, err := Silhouette(0, blockLabels(), blockMatrix())
	require.NoError(t, err)
	if s < 0.9 {
		t.Fatalf("expected silhouette near 1 for well-separated clusters, got %v", s)
	}
}

func TestSilhouetteSingletonClusterIsZero(t *testing.T) {
	m := sym([][]float64{
		{0, 1, 1},
		{1, 0, 0.1},
		{1, 0.1, 0},
	})
	labels := []int{0, 1, 1}
	s, err := Silhouette(0, labels, m)
	require.NoError(t, err)
	if s != 0 {
		t.Fatalf("expected 0 for singleton cluster, got %v", s)
	}
}

func TestSilhouetteTwoMemberClusterIsNonZero(t *testing.T) {
	m := sym([][]float64{
		{0, 0.2, 10.0, 10.1, 10.2},
		{0.2, 0, 10.05, 10.15, 10.25},
		{10.0, 10.05, 0, 0.1, 0.1},
		{10.1, 10.15, 0.1, 0, 0.1},
		{10.2, 10.25, 0.1, 0.1, 0},
	})
	labels := []int{0, 0, 1, 1, 1}
	s, err := Silhouette(0, labels, m)
	require.NoError(t, err)
	if s < 0.9 {
		t.Fatalf("expected near-1 silhouette for a well-separated 2-member cluster, got %v", s)
	}
}

func TestSilhouetteAllMatchesPerPoint(t *testing.T) {
	labels := blockLabels()
	m := blockMatrix()
	all, err := SilhouetteAll(context.Background(), labels, m)
	require.NoError(t, err)

	want := make([]float64, len(all))
	for i := range want {
		single, err := Silhouette(i, labels, m)
		require.NoError(t, err)
		want[i] = single
	}

	if diff := cmp.Diff(want, all, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Fatalf("SilhouetteAll mismatch (-want +got):\n%s", diff)
	}
}
