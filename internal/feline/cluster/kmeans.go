package cluster

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/oceanroutes/feline/internal/feline/config"
	"github.com/oceanroutes/feline/internal/feline/ferrors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// KMeans runs Lloyd's algorithm over row vectors of a *mat.Dense,
// restarting from independent random initializations and keeping the
// lowest-inertia run (spec.md §4.8).
type KMeans struct {
	Cfg config.KMeansConfig
	rng *rand.Rand
}

// NewKMeans builds a k-means runner with the given parameters.
func NewKMeans(cfg config.KMeansConfig) (*KMeans, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &KMeans{Cfg: cfg, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}, nil
}

// KMeansResult holds the outcome of a single best-of-Restarts run,
// tagged with an opaque RunID so callers can correlate it against logs
// emitted during the run.
type KMeansResult struct {
	RunID     string
	Labels    []int
	Centroids *mat.Dense
	Inertia   float64
}

// Run clusters the rows of data into Cfg.K groups, running Cfg.Restarts
// independent Lloyd iterations in parallel and keeping the lowest-inertia
// result.
func (km *KMeans) Run(ctx context.Context, data *mat.Dense) (*KMeansResult, error) {
	n, d := data.Dims()
	if n < km.Cfg.K {
		return nil, ferrors.Invalidf("cluster.kmeans", "data", "need at least K=%d points, got %d", km.Cfg.K, n)
	}

	seeds := make([]int64, km.Cfg.Restarts)
	for i := range seeds {
		seeds[i] = km.rng.Int63()
	}

	results := make([]*KMeansResult, km.Cfg.Restarts)
	g, gctx := errgroup.WithContext(ctx)
	for r := 0; r < km.Cfg.Restarts; r++ {
		r := r
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(seeds[r]))
			res := lloyd(data, n, d, km.Cfg, rng)
			results[r] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := results[0]
	for _, res := range results[1:] {
		if res.Inertia < best.Inertia {
			best = res
		}
	}
	best.RunID = uuid.New().String()
	return best, nil
}

// lloyd runs a single Lloyd's algorithm restart: centroids seeded via
// distinct random rows, then alternating assignment/update until either
// no label changes or centroid movement falls below Epsilon.
func lloyd(data *mat.Dense, n, d int, cfg config.KMeansConfig, rng *rand.Rand) *KMeansResult {
	centroids := mat.NewDense(cfg.K, d, nil)
	perm := rng.Perm(n)
	for k := 0; k < cfg.K; k++ {
		centroids.SetRow(k, rowOf(data, perm[k%n], d))
	}

	labels := make([]int, n)
	for iter := 0; iter < cfg.MaxIter; iter++ {
		changed := false
		counts := make([]int, cfg.K)
		sums := mat.NewDense(cfg.K, d, nil)

		for i := 0; i < n; i++ {
			x := rowOf(data, i, d)
			best, bestDist := 0, math.Inf(1)
			for k := 0; k < cfg.K; k++ {
				dist := sqDist(x, rowOf(centroids, k, d))
				if dist < bestDist {
					best, bestDist = k, dist
				}
			}
			if labels[i] != best {
				changed = true
			}
			labels[i] = best
			counts[best]++
			row := sums.RawRowView(best)
			floats.Add(row, x)
		}

		maxShift := 0.0
		newCentroids := mat.NewDense(cfg.K, d, nil)
		for k := 0; k < cfg.K; k++ {
			if counts[k] == 0 {
				newCentroids.SetRow(k, rowOf(centroids, k, d))
				continue
			}
			row := append([]float64(nil), sums.RawRowView(k)...)
			floats.Scale(1/float64(counts[k]), row)
			newCentroids.SetRow(k, row)
			maxShift = math.Max(maxShift, floats.Distance(row, rowOf(centroids, k, d), 2))
		}
		centroids = newCentroids

		if !changed || maxShift < cfg.Epsilon {
			break
		}
	}

	inertia := 0.0
	for i := 0; i < n; i++ {
		inertia += sqDist(rowOf(data, i, d), rowOf(centroids, labels[i], d))
	}
	return &KMeansResult{Labels: labels, Centroids: centroids, Inertia: inertia}
}

func rowOf(m *mat.Dense, i, d int) []float64 {
	row := make([]float64, d)
	for j := 0; j < d; j++ {
		row[j] = m.At(i, j)
	}
	return row
}

func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}
