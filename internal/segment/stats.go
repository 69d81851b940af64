package segment

import (
	"image"

	"gonum.org/v1/gonum/stat"
)

// ClusterStat summarises one cluster of a segmentation result.
type ClusterStat struct {
	// Index is the 1-based cluster index, matching mask export naming.
	Index int `json:"index"`
	// Population is the number of member pixels.
	Population int `json:"population"`
	// Share is Population over the total pixel count.
	Share float64 `json:"share"`
	// MeanDist and StdDevDist describe the spread of member pixels
	// around the cluster centroid, in RGB distance units.
	MeanDist   float64 `json:"mean_dist"`
	StdDevDist float64 `json:"stddev_dist"`
}

// Stats computes per-cluster population shares and centroid-distance
// spread for a result over its source image.
func Stats(img *image.NRGBA, res *Result) []ClusterStat {
	k := res.K()
	points := flatten(img)
	centroids := make([]point3, k)
	for i, c := range res.Palette.Colors {
		centroids[i] = point3{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
	}

	dists := make([][]float64, k)
	for i, p := range points {
		label := res.Labels.Labels[i]
		dists[label] = append(dists[label], p.distance(centroids[label]))
	}

	total := float64(len(points))
	out := make([]ClusterStat, k)
	for i := range k {
		cs := ClusterStat{
			Index:      i + 1,
			Population: len(dists[i]),
			Share:      float64(len(dists[i])) / total,
		}
		if len(dists[i]) > 0 {
			cs.MeanDist = stat.Mean(dists[i], nil)
		}
		if len(dists[i]) > 1 {
			cs.StdDevDist = stat.StdDev(dists[i], nil)
		}
		out[i] = cs
	}
	return out
}
