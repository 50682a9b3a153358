package xtd

import (
	"math"

	"github.com/oceanroutes/feline/internal/feline/config"
	"github.com/oceanroutes/feline/internal/feline/geo"
	"github.com/oceanroutes/feline/internal/feline/trajectory"
)

// PotentialField is the closed-form bearing-dependent distance of
// spec.md §4.2.3.
type PotentialField struct {
	Cfg config.PFConfig
}

// NewPotentialField builds a PotentialField kernel.
func NewPotentialField(cfg config.PFConfig) *PotentialField {
	return &PotentialField{Cfg: cfg}
}

// Distance evaluates the potential-field distance between waypoints a
// and b given their inferred travel headings.
func (k *PotentialField) Distance(cs geo.CoordSys, a trajectory.XYXtd, aDir float64, b trajectory.XYXtd, bDir float64) (float64, error) {
	if a.Pos.Equal(b.Pos) || k.Cfg.XtdSigmaRatio == 0 {
		return 0, nil
	}

	sigmaA := pfSigma(cs, a, aDir, b.Pos, k.Cfg.XtdSigmaRatio)
	sigmaB := pfSigma(cs, b, bDir, a.Pos, k.Cfg.XtdSigmaRatio)

	if sigmaA*sigmaB == 0 {
		return 0, nil
	}
	return cs.Distance(a.Pos, b.Pos) * (sigmaA + sigmaB) / (2 * sigmaA * sigmaB), nil
}

// pfSigma computes the directional standard deviation of waypoint w
// (with heading dirDeg) towards target, per spec.md §4.2.3.
func pfSigma(cs geo.CoordSys, w trajectory.XYXtd, dirDeg float64, target geo.Position, ratio float64) float64 {
	phi := deg2rad(cs.Angle(w.Pos, target) - dirDeg)
	crossXtd := w.Xtd.Portside
	if phi < 0 {
		crossXtd = w.Xtd.Starboard
	}
	along := 0.5 * (w.Xtd.Portside + w.Xtd.Starboard) * math.Cos(phi)
	cross := crossXtd * math.Sin(phi)
	return ratio * math.Sqrt(along*along+cross*cross)
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
