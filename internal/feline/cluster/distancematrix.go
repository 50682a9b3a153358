// Package cluster implements the distance-matrix clustering pipeline of
// spec.md §4.6-§4.8: distance-based DBSCAN, NJW spectral clustering, and
// the Lloyd k-means that NJW runs on its spectral embedding.
package cluster

import (
	"github.com/oceanroutes/feline/internal/feline/ferrors"
	"gonum.org/v1/gonum/mat"
)

// NewDistanceMatrix builds a *mat.SymDense from a raw N x N slice,
// validating the square/symmetric/zero-diagonal contract of spec.md §3.
func NewDistanceMatrix(raw [][]float64) (*mat.SymDense, error) {
	n := len(raw)
	if n == 0 {
		return nil, ferrors.Invalidf("cluster.matrix", "raw", "matrix must be non-empty")
	}
	for i, row := range raw {
		if len(row) != n {
			return nil, ferrors.Invalidf("cluster.matrix", "raw", "matrix must be square, row %d has %d columns, want %d", i, len(row), n)
		}
	}
	for i := 0; i < n; i++ {
		if raw[i][i] != 0 {
			return nil, ferrors.Invalidf("cluster.matrix", "raw", "diagonal must be zero, got raw[%d][%d]=%v", i, i, raw[i][i])
		}
		for j := i + 1; j < n; j++ {
			if raw[i][j] != raw[j][i] {
				return nil, ferrors.Invalidf("cluster.matrix", "raw", "matrix must be symmetric, raw[%d][%d]=%v != raw[%d][%d]=%v", i, j, raw[i][j], j, i, raw[j][i])
			}
		}
	}

	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			m.SetSym(i, j, raw[i][j])
		}
	}
	return m, nil
}
