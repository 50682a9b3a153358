package measure

import (
	"math"

	"github.com/oceanroutes/feline/internal/feline/ferrors"
	"github.com/oceanroutes/feline/internal/feline/geo"
	"github.com/oceanroutes/feline/internal/feline/trajectory"
	"gonum.org/v1/gonum/mat"
)

// autoVarianceThreshold is the minimum fraction of total variance an
// auto-sized (Dim==0) ProjectedPCA must retain.
const autoVarianceThreshold = 0.95

// ProjectedPCA compares two trajectories after projecting their
// (lon,lat) waypoints onto the top Dim principal components of their
// combined point cloud — useful when trajectories are long and a
// cheaper low-rank proxy for full pointwise comparison is acceptable.
type ProjectedPCA struct {
	// Dim is the number of principal components retained. Dim==0 means
	// auto: retain the fewest leading components whose cumulative
	// variance share is >= autoVarianceThreshold.
	Dim int
	// SampleCount is the uniform resampling length applied to both
	// trajectories (in original lon/lat space) before projection, so
	// the projected sequences are the same length to compare pointwise.
	SampleCount int
}

func (ProjectedPCA) Name() string { return "ProjectedPCA" }
func (ProjectedPCA) Kind() Kind   { return KindDistance }

// autoDim picks the fewest leading components whose cumulative share of
// the singular values' squared magnitude (proportional to variance)
// reaches autoVarianceThreshold, falling back to all maxDim components
// if the total variance is zero.
func autoDim(values []float64, maxDim int) int {
	total := 0.0
	for _, s := range values {
		total += s * s
	}
	if total == 0 {
		return maxDim
	}
	cum := 0.0
	for i, s := range values {
		cum += s * s
		if cum/total >= autoVarianceThreshold {
			return i + 1
		}
	}
	return len(values)
}

func (p ProjectedPCA) Measure(cs geo.CoordSys, a, b *trajectory.XYList) (float64, error) {
	if p.Dim < 0 {
		return 0, ferrors.Invalidf("measure.pca", "Dim", "must be >= 0, got %d", p.Dim)
	}
	n := p.SampleCount
	if n == 0 {
		n = a.Len()
		if b.Len() < n {
			n = b.Len()
		}
	}

	ra, err := a.ResampleUniform(cs, n)
	if err != nil {
		return 0, err
	}
	rb, err := b.ResampleUniform(cs, n)
	if err != nil {
		return 0, err
	}

	// Centre the combined point cloud and fit principal components via
	// SVD of the centred data matrix.
	combined := mat.NewDense(2*n, 2, nil)
	for i, pt := range ra.Points {
		combined.Set(i, 0, pt.Lon)
		combined.Set(i, 1, pt.Lat)
	}
	for i, pt := range rb.Points {
		combined.Set(n+i, 0, pt.Lon)
		combined.Set(n+i, 1, pt.Lat)
	}
	var meanLon, meanLat float64
	rows, _ := combined.Dims()
	for i := 0; i < rows; i++ {
		meanLon += combined.At(i, 0)
		meanLat += combined.At(i, 1)
	}
	meanLon /= float64(rows)
	meanLat /= float64(rows)
	for i := 0; i < rows; i++ {
		combined.Set(i, 0, combined.At(i, 0)-meanLon)
		combined.Set(i, 1, combined.At(i, 1)-meanLat)
	}

	var svd mat.SVD
	if ok := svd.Factorize(combined, mat.SVDThin); !ok {
		return 0, ferrors.New(ferrors.Numerical, "measure.pca", "", "SVD factorization failed")
	}
	var v mat.Dense
	svd.VTo(&v)
	_, cols := v.Dims()

	dim := p.Dim
	if dim == 0 {
		dim = autoDim(svd.Values(nil), cols)
	}
	if dim > cols {
		dim = cols
	}
	components := v.Slice(0, 2, 0, dim)

	projA := mat.NewDense(n, dim, nil)
	projA.Mul(combined.Slice(0, n, 0, 2), components)
	projB := mat.NewDense(n, dim, nil)
	projB.Mul(combined.Slice(n, 2*n, 0, 2), components)

	sumSq := 0.0
	for i := 0; i < n; i++ {
		rowSq := 0.0
		for d := 0; d < dim; d++ {
			diff := projA.At(i, d) - projB.At(i, d)
			rowSq += diff * diff
		}
		sumSq += rowSq
	}
	return math.Sqrt(sumSq / float64(n)), nil
}
