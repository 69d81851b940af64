package segment

import (
	"math"
	"math/rand"
	"slices"

	"github.com/zeeshanabi97/kmseg/internal/colour"
	"github.com/zeeshanabi97/kmseg/internal/errs"
)

// ClusterColors runs the k-means core over an arbitrary collection of
// color samples and returns the k centroid colors, most to least populous.
// This is the entry point for quick palette extraction, which samples
// pixels instead of clustering the full image; the segmentation bounds on
// K do not apply here.
func ClusterColors(samples []colour.RGB, k int, rng *rand.Rand) ([]colour.RGB, error) {
	if k < 1 || k > 256 {
		return nil, errs.InvalidInput("color count must be in [1,256], got %d", k)
	}
	if len(samples) == 0 {
		return nil, errs.InvalidInput("no color samples to cluster")
	}
	if rng == nil {
		rng = NewRand(RandomSeed())
	}

	// Fewer distinct colors than requested: return the distinct set.
	distinct := make([]colour.RGB, 0, k)
	seen := make(map[colour.RGB]bool)
	for _, s := range samples {
		if !seen[s] {
			seen[s] = true
			distinct = append(distinct, s)
		}
	}
	if len(distinct) <= k {
		return distinct, nil
	}

	points := make([]point3, len(samples))
	for i, s := range samples {
		points[i] = point3{R: float64(s.R), G: float64(s.G), B: float64(s.B)}
	}

	var (
		bestLabels      []int
		bestCentroids   []point3
		bestCompactness = math.Inf(1)
	)
	for range attempts {
		labels, centroids, compactness, ok := runAttempt(points, k, rng)
		if !ok {
			continue
		}
		if compactness < bestCompactness {
			bestCompactness = compactness
			bestLabels = labels
			bestCentroids = centroids
		}
	}
	if bestCentroids == nil {
		return nil, errs.Convergence("k-means produced no valid assignment")
	}

	// Order centroids by cluster population, largest first.
	counts := make([]int, k)
	for _, label := range bestLabels {
		counts[label]++
	}
	order := make([]int, k)
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return counts[b] - counts[a]
	})

	out := make([]colour.RGB, k)
	for i, idx := range order {
		c := bestCentroids[idx]
		out[i] = colour.RGB{R: roundByte(c.R), G: roundByte(c.G), B: roundByte(c.B)}
	}
	return out, nil
}
