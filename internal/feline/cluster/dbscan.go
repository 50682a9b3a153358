package cluster

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/oceanroutes/feline/internal/feline/config"
	"github.com/oceanroutes/feline/internal/feline/ferrors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Result is the outcome of a DBSCAN run, tagged with an opaque RunID so
// callers can correlate it against logs emitted during the run.
type Result struct {
	RunID  string
	Labels []int
}

// DBSCAN implements distance-based DBSCAN (spec.md §4.6): label 0 is
// noise, labels 1..K identify clusters.
type DBSCAN struct {
	Cfg config.DBSCANConfig
}

// NewDBSCAN builds a DBSCAN clusterer with the given parameters.
func NewDBSCAN(cfg config.DBSCANConfig) (*DBSCAN, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &DBSCAN{Cfg: cfg}, nil
}

// convertSimilarityToDistance maps a similarity value to a distance per
// spec.md §4.6: s <= 0 becomes +Inf, otherwise sqrt(-log(s)).
func convertSimilarityToDistance(s float64) float64 {
	if s <= 0 {
		return math.Inf(1)
	}
	return math.Sqrt(-math.Log(s))
}

// Cluster runs DBSCAN over m, which is a distance matrix unless
// isDistance is false, in which case it is first converted from a
// similarity matrix. Neighbour-set enumeration runs in parallel across
// rows (spec.md §5).
func (d *DBSCAN) Cluster(ctx context.Context, m *mat.SymDense, isDistance bool) (*Result, error) {
	n, _ := m.Dims()
	if n <= d.Cfg.MinPts {
		return nil, ferrors.Invalidf("cluster.dbscan", "matrix", "need more than minPts=%d points, got %d", d.Cfg.MinPts, n)
	}

	dist := func(i, j int) float64 {
		v := m.At(i, j)
		if !isDistance {
			v = convertSimilarityToDistance(v)
		}
		return v
	}

	neighbors := make([][]int, n)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			nb := make([]int, 0)
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				if dist(i, j) < d.Cfg.Eps {
					nb = append(nb, j)
				}
			}
			neighbors[i] = nb
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	const unclassified = 0
	const noise = 1
	labels := make([]int, n)
	clusterIdx := 2

	for i := 0; i < n; i++ {
		if labels[i] != unclassified {
			continue
		}
		if len(neighbors[i]) >= d.Cfg.MinPts {
			dbscanBFS(i, clusterIdx, neighbors, labels, d.Cfg.MinPts)
			clusterIdx++
		} else {
			labels[i] = noise
		}
	}

	for i := range labels {
		labels[i]--
	}
	return &Result{RunID: uuid.New().String(), Labels: labels}, nil
}

// dbscanBFS expands a cluster by breadth-first traversal from initP,
// attaching every reachable point as a member and continuing expansion
// only from core points (>= minPts neighbours) — non-core neighbours
// are attached as border points but do not themselves expand further.
func dbscanBFS(initP, clusterIdx int, neighbors [][]int, labels []int, minPts int) {
	queue := []int{initP}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		labels[p] = clusterIdx

		if len(neighbors[p]) >= minPts {
			for _, q := range neighbors[p] {
				if labels[q] != clusterIdx {
					queue = append(queue, q)
				}
			}
		}
	}
}
