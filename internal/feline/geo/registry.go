package geo

import (
	"sync/atomic"

	"github.com/oceanroutes/feline/internal/feline/config"
	"github.com/oceanroutes/feline/internal/feline/ferrors"
)

// Registry holds a process-wide default CoordSys, swappable at runtime
// via SetDefaultDistanceType/SetBaseLocation (spec.md §6.1). It is safe
// for concurrent use: readers get an immutable CoordSys snapshot via an
// atomic pointer, so a reconfiguration never races a distance call.
type Registry struct {
	cur atomic.Pointer[registryState]
}

type registryState struct {
	kind string
	cfg  config.GeoConfig
	cs   CoordSys
}

// NewRegistry builds a Registry from cfg, validating it first.
func NewRegistry(cfg config.GeoConfig) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Registry{}
	r.cur.Store(stateFromConfig(cfg))
	return r, nil
}

func stateFromConfig(cfg config.GeoConfig) *registryState {
	var cs CoordSys
	switch cfg.Kind {
	case "cartesian":
		cs = NewCartesian(cfg.BaseLatitudeDeg)
	case "haversine":
		radius := cfg.EarthRadiusMeters
		if radius == 0 {
			radius = config.DefaultEarthRadiusMeters
		}
		cs = NewHaversine(radius)
	}
	return &registryState{kind: cfg.Kind, cfg: cfg, cs: cs}
}

// Default returns the currently active CoordSys. Calling it before
// NewRegistry succeeds is a programming error (spec.md §4.1) — there is
// no zero-value Registry that returns a usable CoordSys.
func (r *Registry) Default() CoordSys {
	st := r.cur.Load()
	if st == nil {
		panic("geo: Registry used before initialization")
	}
	return st.cs
}

// SetDefaultDistanceType switches the active coordinate system kind
// ("cartesian" or "haversine"), keeping whatever base latitude / earth
// radius was last configured for that kind.
func (r *Registry) SetDefaultDistanceType(kind string) error {
	st := r.cur.Load()
	cfg := st.cfg
	cfg.Kind = kind
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.cur.Store(stateFromConfig(cfg))
	return nil
}

// SetBaseLocation sets the Cartesian base latitude used for the
// longitude scale factor. It is an InvalidState error to call this
// while the active kind is "haversine", which has no base location —
// mirroring spec.md §4.1's requirement that a Cartesian base be set
// before use.
func (r *Registry) SetBaseLocation(baseLatitudeDeg float64) error {
	st := r.cur.Load()
	if st.kind != "cartesian" {
		return ferrors.New(ferrors.InvalidState, "geo.registry", "", "SetBaseLocation requires the active kind to be \"cartesian\"")
	}
	cfg := st.cfg
	cfg.BaseLatitudeDeg = baseLatitudeDeg
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.cur.Store(stateFromConfig(cfg))
	return nil
}
