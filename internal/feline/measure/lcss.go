package measure

import (
	"github.com/oceanroutes/feline/internal/feline/geo"
	"github.com/oceanroutes/feline/internal/feline/trajectory"
)

// LCSS is the longest-common-subsequence similarity measure (Vlachos,
// Kollios & Gunopulos 2002): two waypoints "match" when within Epsilon
// distance of each other and Delta index positions of each other in
// sequence order, and the similarity is the matched-pair count
// normalised by the shorter trajectory's length.
type LCSS struct {
	Epsilon float64 // spatial match threshold, in metres
	Delta   int     // index-window match threshold
}

func (LCSS) Name() string { return "LCSS" }
func (LCSS) Kind() Kind   { return KindSimilarity }

func (l LCSS) Measure(cs geo.CoordSys, a, b *trajectory.XYList) (float64, error) {
	n, m := a.Len(), b.Len()
	table := make([][]int, n+1)
	for i := range table {
		table[i] = make([]int, m+1)
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			within := l.Delta == 0 || absInt(i-j) <= l.Delta
			if within && cs.Distance(a.Points[i-1], b.Points[j-1]) <= l.Epsilon {
				table[i][j] = table[i-1][j-1] + 1
			} else if table[i-1][j] >= table[i][j-1] {
				table[i][j] = table[i-1][j]
			} else {
				table[i][j] = table[i][j-1]
			}
		}
	}

	shortest := n
	if m < shortest {
		shortest = m
	}
	if shortest == 0 {
		return 0, nil
	}
	return float64(table[n][m]) / float64(shortest), nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
