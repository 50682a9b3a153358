package measure

import (
	"math"

	"github.com/oceanroutes/feline/internal/feline/ferrors"
	"github.com/oceanroutes/feline/internal/feline/geo"
	"github.com/oceanroutes/feline/internal/feline/trajectory"
)

// Euclidean is the pointwise RMS distance between two trajectories
// resampled to the same uniform length first — unlike DTW, it never
// warps the time axis, so it penalises a speed difference the DTW
// driver would absorb.
type Euclidean struct {
	// SampleCount is the uniform resampling length; both inputs are
	// resampled to this length before pointwise comparison. Zero means
	// the shorter of the two input lengths.
	SampleCount int
}

func (Euclidean) Name() string { return "Euclidean" }
func (Euclidean) Kind() Kind   { return KindDistance }

func (e Euclidean) Measure(cs geo.CoordSys, a, b *trajectory.XYList) (float64, error) {
	n := e.SampleCount
	if n == 0 {
		n = a.Len()
		if b.Len() < n {
			n = b.Len()
		}
	}
	if n < 2 {
		return 0, ferrors.Invalidf("measure.euclidean", "SampleCount", "need at least 2 samples, got %d", n)
	}

	ra, err := a.ResampleUniform(cs, n)
	if err != nil {
		return 0, err
	}
	rb, err := b.ResampleUniform(cs, n)
	if err != nil {
		return 0, err
	}

	sumSq := 0.0
	for i := 0; i < n; i++ {
		d := cs.Distance(ra.Points[i], rb.Points[i])
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n)), nil
}
