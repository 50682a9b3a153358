package xtd

import (
	"math"

	"github.com/oceanroutes/feline/internal/feline/config"
	"github.com/oceanroutes/feline/internal/feline/geo"
	"github.com/oceanroutes/feline/internal/feline/trajectory"
)

// JSDivergence is the Jensen-Shannon divergence pointwise kernel
// (spec.md §4.2.1): each waypoint's BVN sample grid stands in for its
// local probability density, and the divergence is estimated by
// resampling each grid's density against the other waypoint's
// distribution.
type JSDivergence struct {
	Cache *SampleCache
	Cfg   config.XTDConfig
}

// NewJSDivergence builds a JSDivergence kernel backed by
// DefaultSampleCache.
func NewJSDivergence(cfg config.XTDConfig) *JSDivergence {
	return &JSDivergence{Cache: DefaultSampleCache, Cfg: cfg}
}

// Distance evaluates the JS divergence between waypoints a and b given
// their inferred travel headings.
func (k *JSDivergence) Distance(cs geo.CoordSys, a trajectory.XYXtd, aDir float64, b trajectory.XYXtd, bDir float64) (float64, error) {
	samplesA, err := GetBVNSamples(cs, k.Cache, a, aDir, k.Cfg)
	if err != nil {
		return 0, err
	}
	samplesB, err := GetBVNSamples(cs, k.Cache, b, bDir, k.Cfg)
	if err != nil {
		return 0, err
	}

	sigmaAP := a.Xtd.Portside / k.Cfg.DomainSize
	sigmaAS := a.Xtd.Starboard / k.Cfg.DomainSize
	sigmaAH := (sigmaAP + sigmaAS) / 2
	sigmaBP := b.Xtd.Portside / k.Cfg.DomainSize
	sigmaBS := b.Xtd.Starboard / k.Cfg.DomainSize
	sigmaBH := (sigmaBP + sigmaBS) / 2

	gridK := gridHalfWidth(k.Cfg)
	z := k.Cache.rawTotal(gridK)
	if z == 0 {
		z = 1
	}

	klAM := 0.0
	for _, sa := range samplesA {
		zLat := headingAxisOffset(cs, sa.Pos, b.Pos, bDir)
		zAlong := starboardAxisOffset(cs, sa.Pos, b.Pos, bDir)
		sigmaBCross := crossSigmaByEpsilon(zLat, sigmaBH, sigmaBP, sigmaBS, k.Cfg.ErrorEpsilon)
		pB := stdBVNPdf(zAlong/sigmaBH, zLat/sigmaBCross) / z

		dAa := sa.HeadingSigma * sa.CrossSigma
		dAb := sigmaBH * sigmaBCross
		klAM += klTerm(sa.Weight, pB, dAa, dAb)
	}

	klBM := 0.0
	for _, sb := range samplesB {
		zLat := headingAxisOffset(cs, sb.Pos, a.Pos, aDir)
		zAlong := starboardAxisOffset(cs, sb.Pos, a.Pos, aDir)
		sigmaACross := crossSigmaByEpsilon(zLat, sigmaAH, sigmaAP, sigmaAS, k.Cfg.ErrorEpsilon)
		pA := stdBVNPdf(zAlong/sigmaAH, zLat/sigmaACross) / z

		dAb := sb.HeadingSigma * sb.CrossSigma
		dAa := sigmaAH * sigmaACross
		klBM += klTerm(sb.Weight, pA, dAb, dAa)
	}

	js := 0.5 * (klAM + klBM)
	if js < 0 {
		js = 0
	}
	return js, nil
}

// klTerm computes one sample's contribution pSelf*(log(pSelf) -
// log((pSelf + pOther*dASelf/dAOther)/2)), clamping a negative
// contribution (a rounding artifact near pSelf==pOther) to zero per
// spec.md §4.2.1's edge case.
func klTerm(pSelf, pOther, dASelf, dAOther float64) float64 {
	if pSelf <= 0 || dAOther == 0 {
		return 0
	}
	m := (pSelf + pOther*dASelf/dAOther) / 2
	if m <= 0 {
		return 0
	}
	contribution := pSelf * (math.Log(pSelf) - math.Log(m))
	if contribution < 0 {
		return 0
	}
	return contribution
}
