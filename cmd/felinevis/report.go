package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/oceanroutes/feline/internal/feline/trajectory"
)

// renderClusterReport writes an HTML page with a cluster-scatter chart
// (trajectory start points coloured by cluster label) and a silhouette
// bar chart, following the teacher's multi-chart components.Page pattern.
func renderClusterReport(trajs []*trajectory.XYList, labels []int, silhouettes []float64, runID, path string) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "feline clusters", Theme: "dark", Width: "900px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{Title: "Trajectory clusters", Subtitle: "run " + runID}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "lon", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "lat", NameLocation: "middle", NameGap: 30}),
	)

	byLabel := make(map[int][]opts.ScatterData)
	for i, traj := range trajs {
		start := traj.Points[0]
		l := labels[i]
		byLabel[l] = append(byLabel[l], opts.ScatterData{Value: []interface{}{start.Lon, start.Lat}})
	}
	for _, l := range sortedKeys(byLabel) {
		name := fmt.Sprintf("cluster %d", l)
		if l == 0 {
			name = "noise"
		}
		scatter.AddSeries(name, byLabel[l], charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}))
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Silhouette scores"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	xAxis := make([]string, len(silhouettes))
	barData := make([]opts.BarData, len(silhouettes))
	for i, s := range silhouettes {
		xAxis[i] = fmt.Sprintf("%d", i)
		barData[i] = opts.BarData{Value: s}
	}
	bar.SetXAxis(xAxis).AddSeries("silhouette", barData)

	page := components.NewPage()
	page.AddCharts(scatter, bar)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}

func sortedKeys(m map[int][]opts.ScatterData) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
