package xtd

import (
	"github.com/oceanroutes/feline/internal/feline/config"
	"github.com/oceanroutes/feline/internal/feline/geo"
	"github.com/oceanroutes/feline/internal/feline/trajectory"
)

// Sample is one weighted point of a waypoint's BVN sample grid.
// CrossSigma is the lateral-axis sigma used to place this particular
// sample (portside or starboard, chosen by the grid index's sign), and
// HeadingSigma is the along-heading sigma shared by the whole grid —
// both are carried along so that the JS divergence's area-element ratio
// (spec.md §4.2.1 step 3) can be recovered without reprojecting.
type Sample struct {
	Pos          geo.Position
	Weight       float64
	CrossSigma   float64
	HeadingSigma float64
}

// GetBVNSamples builds the (2k+1)^2-point BVN sample grid for a
// waypoint with the given inferred heading, per spec.md §4.2. k =
// floor(domainSize/stepSize).
func GetBVNSamples(cs geo.CoordSys, cache *SampleCache, point trajectory.XYXtd, headingDeg float64, cfg config.XTDConfig) ([]Sample, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	k := int(cfg.DomainSize / cfg.StepSize)
	sigmaP := point.Xtd.Portside / cfg.DomainSize
	sigmaS := point.Xtd.Starboard / cfg.DomainSize
	sigmaH := (sigmaP + sigmaS) / 2

	weights := cache.Weights(k)
	aS := headingDeg + 90
	aH := headingDeg

	n := 2*k + 1
	samples := make([]Sample, 0, n*n)
	for i := -k; i <= k; i++ {
		cross := sigmaS
		if i <= 0 {
			cross = sigmaP
		}
		x := cross * cfg.StepSize * float64(i)
		for j := -k; j <= k; j++ {
			y := sigmaH * cfg.StepSize * float64(j)
			pos := cs.MovePoint(cs.MovePoint(point.Pos, x, aS), y, aH)
			samples = append(samples, Sample{
				Pos:          pos,
				Weight:       weights[i+k][j+k],
				CrossSigma:   cross,
				HeadingSigma: sigmaH,
			})
		}
	}
	return samples, nil
}

// gridHalfWidth returns k = floor(domainSize/stepSize), the same
// half-width GetBVNSamples uses to size its grid.
func gridHalfWidth(cfg config.XTDConfig) int {
	return int(cfg.DomainSize / cfg.StepSize)
}

