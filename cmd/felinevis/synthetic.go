package main

import (
	"math"
	"math/rand"

	"github.com/oceanroutes/feline/internal/feline/geo"
	"github.com/oceanroutes/feline/internal/feline/trajectory"
)

// syntheticGenerator produces synthetic bundles of maritime-like
// trajectories clustered around a handful of base headings and origins,
// for exercising the distance matrix and clustering pipeline without a
// real track feed.
type syntheticGenerator struct {
	rng *rand.Rand
}

func newSyntheticGenerator(seed int64) *syntheticGenerator {
	return &syntheticGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Generate builds groupCount clusters of perGroup trajectories each,
// with pointsPerTrack waypoints, each cluster following a distinct
// origin/heading with small jitter.
func (g *syntheticGenerator) Generate(groupCount, perGroup, pointsPerTrack int) ([]*trajectory.XYList, []int) {
	var trajs []*trajectory.XYList
	var groundTruth []int

	for grp := 0; grp < groupCount; grp++ {
		baseLon := float64(grp) * 0.5
		baseLat := 37.0 + float64(grp)*0.3
		headingDeg := float64(grp) * 53.0

		for t := 0; t < perGroup; t++ {
			pts := make([]geo.Position, pointsPerTrack)
			lon, lat := baseLon+g.rng.NormFloat64()*0.002, baseLat+g.rng.NormFloat64()*0.002
			hdg := headingDeg + g.rng.NormFloat64()*3.0
			stepDeg := 0.01

			for i := 0; i < pointsPerTrack; i++ {
				rad := hdg * math.Pi / 180
				lon += stepDeg * math.Sin(rad)
				lat += stepDeg * math.Cos(rad)
				pts[i] = geo.NewPosition(lon+g.rng.NormFloat64()*0.0005, lat+g.rng.NormFloat64()*0.0005)
			}

			list, err := trajectory.NewXYList(pts)
			if err != nil {
				continue
			}
			trajs = append(trajs, list)
			groundTruth = append(groundTruth, grp)
		}
	}
	return trajs, groundTruth
}
