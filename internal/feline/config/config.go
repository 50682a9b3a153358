// Package config holds the explicit configuration structs consumed by
// feline engine constructors. GeoConfig, XTDConfig, PFConfig, KMeansConfig
// and NJWConfig have a Default constructor and a Validate method;
// BlendConfig and DBSCANConfig have only Validate, and DTWConfig has
// neither. None of them load from a file or the environment —
// that wiring belongs to the embedding application, not the core.
package config

import (
	"github.com/oceanroutes/feline/internal/feline/ferrors"
)

// GeoConfig configures the active coordinate system (spec.md §4.1 / §6.1).
type GeoConfig struct {
	// Kind selects "cartesian" or "haversine".
	Kind string
	// BaseLatitudeDeg fixes the longitude metres-per-degree factor for the
	// Cartesian coordinate system. Required when Kind == "cartesian".
	BaseLatitudeDeg float64
	// EarthRadiusMeters is the sphere radius used by the Haversine
	// coordinate system. Zero means DefaultEarthRadiusMeters.
	EarthRadiusMeters float64
}

// DefaultEarthRadiusMeters is the mean Earth radius (metres) used by the
// Haversine coordinate system when GeoConfig.EarthRadiusMeters is zero.
const DefaultEarthRadiusMeters = 6371000.0

// DefaultGeoConfig returns a Haversine configuration with the mean Earth
// radius — the safest default since it requires no base location.
func DefaultGeoConfig() GeoConfig {
	return GeoConfig{Kind: "haversine", EarthRadiusMeters: DefaultEarthRadiusMeters}
}

// Validate checks the configuration for the active Kind.
func (c GeoConfig) Validate() error {
	switch c.Kind {
	case "cartesian":
		if c.BaseLatitudeDeg < -90 || c.BaseLatitudeDeg > 90 {
			return ferrors.Invalidf("config.geo", "BaseLatitudeDeg", "must be in [-90,90], got %v", c.BaseLatitudeDeg)
		}
	case "haversine":
		if c.EarthRadiusMeters < 0 {
			return ferrors.Invalidf("config.geo", "EarthRadiusMeters", "must be >= 0, got %v", c.EarthRadiusMeters)
		}
	default:
		return ferrors.Invalidf("config.geo", "Kind", "must be \"cartesian\" or \"haversine\", got %q", c.Kind)
	}
	return nil
}

// XTDConfig configures the BVN sampling grid shared by the JS divergence,
// Wasserstein, and blended distance kernels (spec.md §4.2 / §6.3).
type XTDConfig struct {
	// StepSize is the sample spacing, in units of sigma. Default 0.5.
	StepSize float64
	// DomainSize is the half-width of the sampling domain, in units of
	// sigma. Default 3.0.
	DomainSize float64
	// ErrorEpsilon is the on-axis tolerance for the JS divergence sign
	// rule (spec.md §9: compared against |zS|). Default 1e-6.
	ErrorEpsilon float64
}

// DefaultXTDConfig returns the conventional sampling parameters used
// throughout the original library's test fixtures.
func DefaultXTDConfig() XTDConfig {
	return XTDConfig{StepSize: 0.5, DomainSize: 3.0, ErrorEpsilon: 1e-6}
}

// Validate checks StepSize and DomainSize are strictly positive per
// spec.md §4.2's contract.
func (c XTDConfig) Validate() error {
	if c.StepSize <= 0 {
		return ferrors.Invalidf("config.xtd", "StepSize", "must be > 0, got %v", c.StepSize)
	}
	if c.DomainSize <= 0 {
		return ferrors.Invalidf("config.xtd", "DomainSize", "must be > 0, got %v", c.DomainSize)
	}
	if c.ErrorEpsilon < 0 {
		return ferrors.Invalidf("config.xtd", "ErrorEpsilon", "must be >= 0, got %v", c.ErrorEpsilon)
	}
	return nil
}

// GridSize returns (2k+1) where k = floor(DomainSize/StepSize), the side
// length of the square BVN sampling grid (spec.md §4.2 contract).
func (c XTDConfig) GridSize() int {
	k := int(c.DomainSize / c.StepSize)
	return 2*k + 1
}

// PFConfig configures the closed-form potential-field distance
// (spec.md §4.2.3).
type PFConfig struct {
	XtdSigmaRatio float64
}

// DefaultPFConfig returns XtdSigmaRatio=1.0, the neutral scaling.
func DefaultPFConfig() PFConfig { return PFConfig{XtdSigmaRatio: 1.0} }

// Validate checks XtdSigmaRatio is non-negative.
func (c PFConfig) Validate() error {
	if c.XtdSigmaRatio < 0 {
		return ferrors.Invalidf("config.pf", "XtdSigmaRatio", "must be >= 0, got %v", c.XtdSigmaRatio)
	}
	return nil
}

// BlendConfig weighs the four pointwise XTD kernels (spec.md §4.2.4).
type BlendConfig struct {
	EuclideanWeight   float64
	JSWeight          float64
	WassersteinWeight float64
	PFWeight          float64
}

// Validate checks every coefficient is non-negative.
func (c BlendConfig) Validate() error {
	for name, w := range map[string]float64{
		"EuclideanWeight":   c.EuclideanWeight,
		"JSWeight":          c.JSWeight,
		"WassersteinWeight": c.WassersteinWeight,
		"PFWeight":          c.PFWeight,
	} {
		if w < 0 {
			return ferrors.Invalidf("config.blend", name, "must be >= 0, got %v", w)
		}
	}
	return nil
}

// DTWConfig configures the DTW trajectory distance driver
// (spec.md §4.3 / §6.4).
type DTWConfig struct {
	// EnableReversedSequence, when true, makes the driver return
	// min(D(A,B), D(reverse(A),B)).
	EnableReversedSequence bool
}

// DBSCANConfig configures distance-based DBSCAN (spec.md §4.6).
type DBSCANConfig struct {
	MinPts int
	Eps    float64
}

// Validate checks MinPts > 0 and Eps > 0 per spec.md §7's InvalidInput list.
func (c DBSCANConfig) Validate() error {
	if c.MinPts <= 0 {
		return ferrors.Invalidf("config.dbscan", "MinPts", "must be > 0, got %d", c.MinPts)
	}
	if c.Eps <= 0 {
		return ferrors.Invalidf("config.dbscan", "Eps", "must be > 0, got %v", c.Eps)
	}
	return nil
}

// KMeansConfig configures the internal Lloyd iterations used by NJW and
// available standalone (spec.md §4.8).
type KMeansConfig struct {
	K         int
	Epsilon   float64
	MaxIter   int
	Restarts  int // number of independent Lloyd runs; best inertia kept
}

// DefaultKMeansConfig mirrors the original library's NJW defaults.
func DefaultKMeansConfig(k int) KMeansConfig {
	return KMeansConfig{K: k, Epsilon: 1e-4, MaxIter: 100, Restarts: 8}
}

// Validate checks K>=1, Epsilon>0, MaxIter>0.
func (c KMeansConfig) Validate() error {
	if c.K < 1 {
		return ferrors.Invalidf("config.kmeans", "K", "must be >= 1, got %d", c.K)
	}
	if c.Epsilon <= 0 {
		return ferrors.Invalidf("config.kmeans", "Epsilon", "must be > 0, got %v", c.Epsilon)
	}
	if c.MaxIter <= 0 {
		return ferrors.Invalidf("config.kmeans", "MaxIter", "must be > 0, got %d", c.MaxIter)
	}
	if c.Restarts <= 0 {
		return ferrors.Invalidf("config.kmeans", "Restarts", "must be > 0, got %d", c.Restarts)
	}
	return nil
}

// NJWConfig configures NJW spectral clustering (spec.md §4.7).
type NJWConfig struct {
	SimilaritySigma float64
	K               int
	KMeans          KMeansConfig
}

// DefaultNJWConfig returns a config for k clusters with SimilaritySigma=1.0.
func DefaultNJWConfig(k int) NJWConfig {
	return NJWConfig{SimilaritySigma: 1.0, K: k, KMeans: DefaultKMeansConfig(k)}
}

// Validate checks K>=1 and SimilaritySigma>0, per spec.md §4.7's contract
// ("if sigma=0 on a similarity input, that is an error").
func (c NJWConfig) Validate() error {
	if c.K < 1 {
		return ferrors.Invalidf("config.njw", "K", "must be >= 1, got %d", c.K)
	}
	if c.SimilaritySigma <= 0 {
		return ferrors.Invalidf("config.njw", "SimilaritySigma", "must be > 0, got %v", c.SimilaritySigma)
	}
	return c.KMeans.Validate()
}
