// Command felinevis is a debug/demo driver for the feline trajectory
// clustering pipeline: it generates synthetic trajectories, builds a
// distance matrix, clusters it with DBSCAN or NJW, and renders a
// distance-matrix heatmap plus a cluster-scatter/silhouette HTML report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/oceanroutes/feline/internal/feline/cluster"
	"github.com/oceanroutes/feline/internal/feline/config"
	"github.com/oceanroutes/feline/internal/feline/eval"
	"github.com/oceanroutes/feline/internal/feline/geo"
	"github.com/oceanroutes/feline/internal/feline/measure"
)

func main() {
	var (
		groups      = flag.Int("groups", 3, "number of synthetic trajectory clusters")
		perGroup    = flag.Int("per-group", 6, "trajectories per cluster")
		points      = flag.Int("points", 20, "waypoints per trajectory")
		algo        = flag.String("algo", "dbscan", "clustering algorithm: dbscan or njw")
		eps         = flag.Float64("eps", 5000, "DBSCAN epsilon (metres: the matrix holds Hausdorff distances under the default haversine coordinate system)")
		minPts      = flag.Int("min-pts", 3, "DBSCAN minPts")
		sigma       = flag.Float64("sigma", 5000, "NJW similarity sigma (metres)")
		outDir      = flag.String("out", "felinevis-out", "output directory")
		seed        = flag.Int64("seed", time.Now().UnixNano(), "synthetic data RNG seed")
	)
	flag.Parse()

	runID := uuid.New().String()
	runDir := filepath.Join(*outDir, runID[:8])
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		log.Fatalf("felinevis: create output dir: %v", err)
	}

	gen := newSyntheticGenerator(*seed)
	trajs, groundTruth := gen.Generate(*groups, *perGroup, *points)
	log.Printf("felinevis: generated %d trajectories across %d groups (run %s)", len(trajs), *groups, runID)

	geoCfg := config.DefaultGeoConfig()
	reg, err := geo.NewRegistry(geoCfg)
	if err != nil {
		log.Fatalf("felinevis: geo registry: %v", err)
	}
	cs := reg.Default()

	mu := measure.Hausdorff{}
	progress := &measure.Progress{}
	dm, err := measure.BuildMatrix(context.Background(), cs, mu, trajs, progress)
	if err != nil {
		log.Fatalf("felinevis: build matrix: %v", err)
	}
	log.Printf("felinevis: distance matrix built, progress=%.2f", progress.Fraction())

	var labels []int
	switch *algo {
	case "dbscan":
		d, err := cluster.NewDBSCAN(config.DBSCANConfig{MinPts: *minPts, Eps: *eps})
		if err != nil {
			log.Fatalf("felinevis: dbscan config: %v", err)
		}
		dres, err := d.Cluster(context.Background(), dm, true)
		if err != nil {
			log.Fatalf("felinevis: dbscan: %v", err)
		}
		labels = dres.Labels
		log.Printf("felinevis: dbscan run %s", dres.RunID)
	case "njw":
		njwCfg := config.DefaultNJWConfig(*groups)
		njwCfg.SimilaritySigma = *sigma
		n, err := cluster.NewNJW(njwCfg)
		if err != nil {
			log.Fatalf("felinevis: njw config: %v", err)
		}
		res, err := n.Cluster(context.Background(), dm)
		if err != nil {
			log.Fatalf("felinevis: njw: %v", err)
		}
		// NJW labels run 0..K-1 with no noise; shift them so label 0 keeps
		// its DBSCAN meaning (noise) in the report.
		labels = make([]int, len(res.Labels))
		for i, l := range res.Labels {
			labels[i] = l + 1
		}
		log.Printf("felinevis: njw run %s", res.RunID)
	default:
		log.Fatalf("felinevis: unknown algo %q (want dbscan or njw)", *algo)
	}

	silhouettes, err := eval.SilhouetteAll(context.Background(), labels, dm)
	if err != nil {
		log.Fatalf("felinevis: silhouette: %v", err)
	}

	heatmapPath := filepath.Join(runDir, "distance_heatmap.png")
	if err := renderHeatmap(dm, heatmapPath); err != nil {
		log.Fatalf("felinevis: render heatmap: %v", err)
	}

	reportPath := filepath.Join(runDir, "clusters.html")
	if err := renderClusterReport(trajs, labels, silhouettes, runID, reportPath); err != nil {
		log.Fatalf("felinevis: render cluster report: %v", err)
	}

	fmt.Printf("run %s: heatmap=%s report=%s groundTruth=%v labels=%v\n",
		runID, heatmapPath, reportPath, groundTruth, labels)
}
