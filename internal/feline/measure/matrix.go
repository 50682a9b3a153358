package measure

import (
	"context"
	"sync/atomic"

	"github.com/oceanroutes/feline/internal/feline/ferrors"
	"github.com/oceanroutes/feline/internal/feline/geo"
	"github.com/oceanroutes/feline/internal/feline/trajectory"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Progress is a monotone [0,1] progress observer, safe to read
// concurrently with BuildMatrix's in-flight evaluations (spec.md §4.5:
// "exposable to an observer without holding the evaluation lock").
type Progress struct {
	done, total int64
}

// Fraction returns the current completion fraction.
func (p *Progress) Fraction() float64 {
	total := atomic.LoadInt64(&p.total)
	if total == 0 {
		return 0
	}
	return float64(atomic.LoadInt64(&p.done)) / float64(total)
}

// BuildMatrix evaluates measure μ over every pair i<j of trajs,
// producing the symmetric zero-diagonal L x L distance matrix of
// spec.md §4.5. Pair evaluations run in parallel across all available
// cores; progress, if non-nil, is updated as each pair completes.
func BuildMatrix(ctx context.Context, cs geo.CoordSys, mu Measure, trajs []*trajectory.XYList, progress *Progress) (*mat.SymDense, error) {
	l := len(trajs)
	if l < 2 {
		return nil, ferrors.Invalidf("measure.matrix", "trajs", "need at least 2 trajectories, got %d", l)
	}

	type pair struct{ i, j int }
	pairs := make([]pair, 0, l*(l-1)/2)
	for i := 0; i < l; i++ {
		for j := i + 1; j < l; j++ {
			pairs = append(pairs, pair{i, j})
		}
	}
	if progress != nil {
		atomic.StoreInt64(&progress.total, int64(len(pairs)))
		atomic.StoreInt64(&progress.done, 0)
	}

	out := mat.NewSymDense(l, nil)
	g, gctx := errgroup.WithContext(ctx)
	results := make([]float64, len(pairs))

	for idx, p := range pairs {
		idx, p := idx, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, err := mu.Measure(cs, trajs[p.i], trajs[p.j])
			if err != nil {
				return err
			}
			results[idx] = d
			if progress != nil {
				atomic.AddInt64(&progress.done, 1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for idx, p := range pairs {
		out.SetSym(p.i, p.j, results[idx])
	}
	for i := 0; i < l; i++ {
		out.SetSym(i, i, 0)
	}
	return out, nil
}
