// Package eval implements the cluster-evaluation metrics of spec.md
// §4.9: sorted intra-cluster distance graphs, pseudo-medoids, a
// pseudo-Davies-Bouldin index, and silhouette scores, all computed
// directly from a distance matrix and a label assignment rather than
// from the original feature space.
package eval

import (
	"context"
	"math"
	"sort"

	"github.com/oceanroutes/feline/internal/feline/ferrors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func clusterCount(labels []int) (int, error) {
	if len(labels) == 0 {
		return 0, ferrors.Invalidf("eval", "labels", "labels must be non-empty")
	}
	max := labels[0]
	for _, l := range labels {
		if l < 0 {
			return 0, ferrors.Invalidf("eval", "labels", "labels must be >= 0, got %d", l)
		}
		if l > max {
			max = l
		}
	}
	return max + 1, nil
}

func checkDims(labels []int, dm *mat.SymDense) error {
	n, _ := dm.Dims()
	if len(labels) != n {
		return ferrors.Invalidf("eval", "labels", "labels length %d must equal matrix size %d", len(labels), n)
	}
	return nil
}

// SortedDistanceGraph groups the pairwise distances of points sharing a
// label and sorts each group ascending (spec.md §4.9.1).
func SortedDistanceGraph(labels []int, dm *mat.SymDense) ([][]float64, error) {
	if err := checkDims(labels, dm); err != nil {
		return nil, err
	}
	clusterNo, err := clusterCount(labels)
	if err != nil {
		return nil, err
	}
	n := len(labels)

	groups := make([][]float64, clusterNo)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if labels[i] == labels[j] {
				groups[labels[i]] = append(groups[labels[i]], dm.At(i, j))
			}
		}
	}
	for _, g := range groups {
		sort.Float64s(g)
	}
	return groups, nil
}

// DistanceStats holds summary statistics of a sorted distance list.
type DistanceStats struct {
	Min, Max, Mean, Median, Variance, StdDev float64
}

// AnalyzeDistances computes summary statistics for every cluster's
// sorted distance list plus the pooled total across all clusters
// (spec.md §4.9.1).
func AnalyzeDistances(groups [][]float64) (perCluster []DistanceStats, total DistanceStats) {
	var all []float64
	perCluster = make([]DistanceStats, len(groups))
	for i, g := range groups {
		perCluster[i] = analyzeOne(g)
		all = append(all, g...)
	}
	sort.Float64s(all)
	total = analyzeOne(all)
	return perCluster, total
}

func analyzeOne(sorted []float64) DistanceStats {
	if len(sorted) == 0 {
		return DistanceStats{}
	}
	mean := stat.Mean(sorted, nil)
	return DistanceStats{
		Min:      sorted[0],
		Max:      sorted[len(sorted)-1],
		Mean:     mean,
		Median:   stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Variance: stat.Variance(sorted, nil),
		StdDev:   stat.StdDev(sorted, nil),
	}
}

// PseudoMedoid returns, for each cluster, the index of the member point
// with the smallest sum of distances to every other member of the same
// cluster (spec.md §4.9.2).
func PseudoMedoid(labels []int, dm *mat.SymDense) ([]int, error) {
	if err := checkDims(labels, dm); err != nil {
		return nil, err
	}
	clusterNo, err := clusterCount(labels)
	if err != nil {
		return nil, err
	}
	n := len(labels)

	medoids := make([]int, clusterNo)
	best := make([]float64, clusterNo)
	for i := range best {
		best[i] = math.Inf(1)
	}

	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if labels[i] == labels[j] {
				sum += dm.At(i, j)
			}
		}
		if sum < best[labels[i]] {
			best[labels[i]] = sum
			medoids[labels[i]] = i
		}
	}
	return medoids, nil
}

// PseudoDaviesBouldin computes, for each cluster, the RMS distance of
// its members to the cluster's pseudo-medoid — a medoid-based proxy
// for the Davies-Bouldin intra-cluster scatter term (spec.md §4.9.3).
// It also returns the medoids used.
func PseudoDaviesBouldin(labels []int, dm *mat.SymDense) (scores []float64, medoids []int, err error) {
	if err := checkDims(labels, dm); err != nil {
		return nil, nil, err
	}
	clusterNo, err := clusterCount(labels)
	if err != nil {
		return nil, nil, err
	}
	medoids, err = PseudoMedoid(labels, dm)
	if err != nil {
		return nil, nil, err
	}

	sumSq := make([]float64, clusterNo)
	count := make([]float64, clusterNo)
	for i, l := range labels {
		d := dm.At(i, medoids[l])
		sumSq[l] += d * d
		count[l]++
	}

	scores = make([]float64, clusterNo)
	for i := 0; i < clusterNo; i++ {
		if count[i] == 0 {
			continue
		}
		scores[i] = math.Sqrt(sumSq[i] / count[i])
	}
	return scores, medoids, nil
}

// Silhouette computes the silhouette coefficient of a single point:
// (b-a)/max(a,b), where a is the mean distance to its own cluster and
// b is the smallest mean distance to any other cluster. Returns 0 for
// a point whose own cluster has no other members (spec.md §4.9.4).
func Silhouette(itemIdx int, labels []int, dm *mat.SymDense) (float64, error) {
	if err := checkDims(labels, dm); err != nil {
		return 0, err
	}
	if itemIdx < 0 || itemIdx >= len(labels) {
		return 0, ferrors.Invalidf("eval", "itemIdx", "must be in [0,%d), got %d", len(labels), itemIdx)
	}
	clusterNo, err := clusterCount(labels)
	if err != nil {
		return 0, err
	}
	n := len(labels)

	sums := make([]float64, clusterNo)
	counts := make([]float64, clusterNo)
	for i := 0; i < n; i++ {
		if i == itemIdx {
			continue
		}
		sums[labels[i]] += dm.At(itemIdx, i)
		counts[labels[i]]++
	}

	own := labels[itemIdx]
	if counts[own] == 0 {
		return 0, nil
	}

	a := sums[own] / counts[own]
	b := math.Inf(1)
	for c := 0; c < clusterNo; c++ {
		if c == own || counts[c] == 0 {
			continue
		}
		avg := sums[c] / counts[c]
		if avg < b {
			b = avg
		}
	}
	if math.IsInf(b, 1) {
		return 0, nil
	}

	div := a
	if b > div {
		div = b
	}
	if div == 0 {
		return 0, nil
	}
	return (b - a) / div, nil
}

// SilhouetteAll computes the silhouette coefficient for every point in
// parallel (spec.md §5).
func SilhouetteAll(ctx context.Context, labels []int, dm *mat.SymDense) ([]float64, error) {
	if err := checkDims(labels, dm); err != nil {
		return nil, err
	}
	n := len(labels)
	scores := make([]float64, n)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := Silhouette(i, labels, dm)
			if err != nil {
				return err
			}
			scores[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
