package xtd

import (
	"github.com/oceanroutes/feline/internal/feline/config"
	"github.com/oceanroutes/feline/internal/feline/geo"
	"github.com/oceanroutes/feline/internal/feline/trajectory"
)

// Blend is the weighted combination of the four pointwise kernels
// (spec.md §4.2.4): a coefficient of zero skips evaluating that term
// entirely, so a Blend configured with only one non-zero weight costs
// no more than that kernel alone.
type Blend struct {
	Cfg config.BlendConfig

	Euclidean   Kernel
	JS          Kernel
	Wasserstein Kernel
	PF          Kernel
}

// NewBlend builds a Blend with the standard kernel set, sharing cache
// and sampling config across the JS and Wasserstein terms.
func NewBlend(cfg config.BlendConfig, xtdCfg config.XTDConfig, pfCfg config.PFConfig) *Blend {
	return &Blend{
		Cfg:         cfg,
		Euclidean:   Euclidean{},
		JS:          NewJSDivergence(xtdCfg),
		Wasserstein: NewWasserstein(xtdCfg),
		PF:          NewPotentialField(pfCfg),
	}
}

// Distance evaluates the weighted sum of whichever sub-distances carry
// a non-zero coefficient. Every sub-distance is itself non-negative, so
// the blend is non-negative.
func (b *Blend) Distance(cs geo.CoordSys, a trajectory.XYXtd, aDir float64, bPt trajectory.XYXtd, bDir float64) (float64, error) {
	total := 0.0
	if b.Cfg.EuclideanWeight != 0 {
		d, err := b.Euclidean.Distance(cs, a, aDir, bPt, bDir)
		if err != nil {
			return 0, err
		}
		total += b.Cfg.EuclideanWeight * d
	}
	if b.Cfg.JSWeight != 0 {
		d, err := b.JS.Distance(cs, a, aDir, bPt, bDir)
		if err != nil {
			return 0, err
		}
		total += b.Cfg.JSWeight * d
	}
	if b.Cfg.WassersteinWeight != 0 {
		d, err := b.Wasserstein.Distance(cs, a, aDir, bPt, bDir)
		if err != nil {
			return 0, err
		}
		total += b.Cfg.WassersteinWeight * d
	}
	if b.Cfg.PFWeight != 0 {
		d, err := b.PF.Distance(cs, a, aDir, bPt, bDir)
		if err != nil {
			return 0, err
		}
		total += b.Cfg.PFWeight * d
	}
	return total, nil
}
