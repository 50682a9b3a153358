package cluster

import (
	"context"
	"math"

	"github.com/oceanroutes/feline/internal/feline/config"
	"github.com/oceanroutes/feline/internal/feline/ferrors"
	"gonum.org/v1/gonum/mat"
)

// NJW implements Ng-Jordan-Weiss spectral clustering (spec.md §4.7):
// convert distances to an affinity matrix, form the normalized graph
// Laplacian, embed points in the top-K eigenvectors, row-normalize, and
// hand the embedding to k-means.
type NJW struct {
	Cfg config.NJWConfig
}

// NewNJW builds an NJW clusterer with the given parameters.
func NewNJW(cfg config.NJWConfig) (*NJW, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &NJW{Cfg: cfg}, nil
}

// affinity converts a distance to a similarity via
// exp(-d^2/(2*sigma^2)), zeroed on the diagonal.
func (n *NJW) affinity(m *mat.SymDense) *mat.SymDense {
	size, _ := m.Dims()
	sigma2 := 2 * n.Cfg.SimilaritySigma * n.Cfg.SimilaritySigma
	a := mat.NewSymDense(size, nil)
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			d := m.At(i, j)
			a.SetSym(i, j, math.Exp(-(d*d)/sigma2))
		}
		a.SetSym(i, i, 0)
	}
	return a
}

// Embedding returns the row-normalized spectral embedding of m, without
// running k-means — exposed so callers can inspect or cache it.
func (n *NJW) Embedding(m *mat.SymDense) (*mat.Dense, error) {
	size, _ := m.Dims()
	if size < n.Cfg.K {
		return nil, ferrors.Invalidf("cluster.njw", "matrix", "need at least K=%d points, got %d", n.Cfg.K, size)
	}

	a := n.affinity(m)

	degrees := make([]float64, size)
	for i := 0; i < size; i++ {
		sum := 0.0
		for j := 0; j < size; j++ {
			sum += a.At(i, j)
		}
		degrees[i] = sum
	}

	laplacian := mat.NewSymDense(size, nil)
	for i := 0; i < size; i++ {
		if degrees[i] <= 0 {
			return nil, ferrors.New(ferrors.Numerical, "cluster.njw", "", "degenerate row: zero total affinity")
		}
		for j := i; j < size; j++ {
			if degrees[j] <= 0 {
				return nil, ferrors.New(ferrors.Numerical, "cluster.njw", "", "degenerate row: zero total affinity")
			}
			laplacian.SetSym(i, j, a.At(i, j)/math.Sqrt(degrees[i]*degrees[j]))
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(laplacian, true); !ok {
		return nil, ferrors.New(ferrors.Numerical, "cluster.njw", "", "eigendecomposition failed")
	}
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// gonum returns eigenvalues in ascending order; the top-K eigenvectors
	// are the rightmost K columns.
	_, totalCols := vectors.Dims()
	embedding := mat.NewDense(size, n.Cfg.K, nil)
	for k := 0; k < n.Cfg.K; k++ {
		col := totalCols - 1 - k
		for i := 0; i < size; i++ {
			embedding.Set(i, n.Cfg.K-1-k, vectors.At(i, col))
		}
	}

	for i := 0; i < size; i++ {
		norm := 0.0
		for k := 0; k < n.Cfg.K; k++ {
			v := embedding.At(i, k)
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue
		}
		for k := 0; k < n.Cfg.K; k++ {
			embedding.Set(i, k, embedding.At(i, k)/norm)
		}
	}
	return embedding, nil
}

// Cluster runs the full NJW pipeline: spectral embedding followed by
// k-means over the embedded rows.
func (n *NJW) Cluster(ctx context.Context, m *mat.SymDense) (*KMeansResult, error) {
	embedding, err := n.Embedding(m)
	if err != nil {
		return nil, err
	}
	km, err := NewKMeans(n.Cfg.KMeans)
	if err != nil {
		return nil, err
	}
	return km.Run(ctx, embedding)
}
