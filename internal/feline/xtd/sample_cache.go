// Package xtd implements the pointwise probabilistic distance kernels of
// spec.md §4.2: a shared Monte-Carlo bivariate-normal sampling
// primitive, and the Jensen-Shannon divergence, Wasserstein (EMD), and
// potential-field distances built on it, plus a weighted blend.
package xtd

import (
	"math"
	"sync/atomic"

	"gonum.org/v1/gonum/floats"
)

// SampleCache holds the precomputed standard (zero-mean, unit-variance,
// uncorrelated) bivariate-normal density grid for a given half-width k,
// keyed by k (spec.md §3's MonteCarloSampleCache). Every waypoint's BVN
// sample grid reuses these same (2k+1)x(2k+1) density values, scaled
// into the waypoint's own H/S frame.
//
// Unlike the original library's mutex-guarded function-local-static
// rebuild, a reconfiguration here publishes a brand-new immutable
// snapshot behind an atomic pointer: readers never block on a writer,
// and a rebuild in flight never corrupts a grid mid-read.
type SampleCache struct {
	cur atomic.Pointer[cacheEntry]
}

type cacheEntry struct {
	k        int
	weights  [][]float64 // normalized so sum(weights) == 1
	rawTotal float64     // sum of the un-normalised density over the lattice
}

// stdBVNPdf is the density of a standard (uncorrelated, unit-variance)
// bivariate normal at (x,y).
func stdBVNPdf(x, y float64) float64 {
	return math.Exp(-(x*x+y*y)/2) / (2 * math.Pi)
}

func buildEntry(k int) *cacheEntry {
	n := 2*k + 1
	raw := make([][]float64, n)
	for i := -k; i <= k; i++ {
		row := make([]float64, n)
		for j := -k; j <= k; j++ {
			row[j+k] = stdBVNPdf(float64(i), float64(j))
		}
		raw[i+k] = row
	}

	rawTotal := 0.0
	for _, row := range raw {
		rawTotal += floats.Sum(row)
	}
	if rawTotal > 0 {
		for _, row := range raw {
			floats.Scale(1/rawTotal, row)
		}
	}
	return &cacheEntry{k: k, weights: raw, rawTotal: rawTotal}
}

// Weights returns the normalised (2k+1)x(2k+1) density grid for k,
// rebuilding and publishing a fresh snapshot if the cache currently
// holds a different k.
func (c *SampleCache) Weights(k int) [][]float64 {
	return c.entry(k).weights
}

// rawTotal returns the un-normalised density sum over the lattice for
// k, used to rescale a continuously-evaluated density onto the same
// footing as the cache's normalised grid weights.
func (c *SampleCache) rawTotal(k int) float64 {
	return c.entry(k).rawTotal
}

func (c *SampleCache) entry(k int) *cacheEntry {
	e := c.cur.Load()
	if e == nil || e.k != k {
		e = buildEntry(k)
		c.cur.Store(e)
	}
	return e
}

// DefaultSampleCache is the process-wide cache used by package-level
// kernel constructors when no dedicated cache is supplied.
var DefaultSampleCache = &SampleCache{}
