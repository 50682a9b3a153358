package measure

import (
	"github.com/oceanroutes/feline/internal/feline/config"
	"github.com/oceanroutes/feline/internal/feline/dtw"
	"github.com/oceanroutes/feline/internal/feline/geo"
	"github.com/oceanroutes/feline/internal/feline/trajectory"
	"github.com/oceanroutes/feline/internal/feline/xtd"
)

// DTW adapts the dtw.Driver into a whole-trajectory Measure, running
// over plain positions (zero-width XTD at every waypoint) so it can be
// compared side-by-side with the other named measures in this package.
// For the probabilistic driver with real XTD envelopes, use dtw.Driver
// directly against an XYXtdList.
type DTW struct {
	Driver *dtw.Driver
}

// NewDTW builds a DTW measure using the given pointwise kernel and
// reverse-sequence configuration.
func NewDTW(kernel xtd.Kernel, cfg config.DTWConfig) DTW {
	return DTW{Driver: dtw.NewDriver(kernel, cfg)}
}

func (DTW) Name() string { return "DTW" }
func (DTW) Kind() Kind   { return KindDistance }

func (d DTW) Measure(cs geo.CoordSys, a, b *trajectory.XYList) (float64, error) {
	return d.Driver.Distance(cs, asXtdList(a), asXtdList(b))
}

func asXtdList(l *trajectory.XYList) *trajectory.XYXtdList {
	pts := make([]trajectory.XYXtd, len(l.Points))
	for i, p := range l.Points {
		pts[i] = trajectory.XYXtd{Pos: p, Xtd: geo.XTD{}}
	}
	list, _ := trajectory.NewXYXtdList(pts) // l already satisfies len>=2
	return list
}
