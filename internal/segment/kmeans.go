// Package segment implements the color-clustering core: iterative k-means
// over all image pixels, palette and label-map derivation, per-cluster
// masks, and the compositor that rebuilds a display image from a subset
// of visible clusters.
package segment

import (
	"image"
	"math"
	"math/rand"

	"github.com/zeeshanabi97/kmseg/internal/colour"
	"github.com/zeeshanabi97/kmseg/internal/errs"
)

const (
	// MinClusters and MaxClusters bound the caller-supplied K.
	MinClusters = 2
	MaxClusters = 10

	// maxIterations and epsilon are the per-attempt termination criteria:
	// stop when the iteration budget is spent or no centroid moved more
	// than epsilon, whichever comes first.
	maxIterations = 100
	epsilon       = 0.2

	// attempts is the number of independently seeded runs; the run with
	// the lowest total within-cluster squared distance wins. Re-seeding
	// avoids bad local minima and is required for segmentation quality.
	attempts = 10
)

// point3 is a pixel color as a point in 3-D RGB space.
type point3 struct {
	R, G, B float64
}

func (p point3) squaredDistance(q point3) float64 {
	dr := p.R - q.R
	dg := p.G - q.G
	db := p.B - q.B
	return dr*dr + dg*dg + db*db
}

func (p point3) distance(q point3) float64 {
	return math.Sqrt(p.squaredDistance(q))
}

// Segment partitions the pixels of img into k color clusters and returns
// the palette, per-pixel label map and per-cluster masks of the winning
// attempt. rng is the source of randomness for centroid seeding; pass a
// fixed-seed source for reproducible results, or nil for a fresh seed.
func Segment(img *image.NRGBA, k int, rng *rand.Rand) (*Result, error) {
	if k < MinClusters || k > MaxClusters {
		return nil, errs.InvalidInput("cluster count must be in [%d,%d], got %d", MinClusters, MaxClusters, k)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, errs.InvalidInput("cannot segment an empty image")
	}
	if rng == nil {
		rng = NewRand(RandomSeed())
	}

	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	points := flatten(img)

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

	if bestLabels == nil {
		// Defensive: with a non-empty image every attempt produces an
		// assignment, so this path should never trigger.
		return nil, errs.Convergence("k-means produced no valid assignment")
	}

	palette := make([]colour.RGB, k)
	for i, c := range bestCentroids {
		palette[i] = colour.RGB{
			R: roundByte(c.R),
			G: roundByte(c.G),
			B: roundByte(c.B),
		}
	}

	labelMap := LabelMap{W: w, H: h, Labels: bestLabels}
	return &Result{
		Palette:     colour.NewPalette(palette),
		Labels:      labelMap,
		Masks:       deriveMasks(labelMap, k),
		Compactness: bestCompactness,
	}, nil
}

// runAttempt performs one independently seeded k-means run. Returns the
// per-point assignment, final centroids and total within-cluster squared
// distance.
func runAttempt(points []point3, k int, rng *rand.Rand) ([]int, []point3, float64, bool) {
	centroids := seedCentroids(points, k, rng)
	if len(centroids) != k {
		return nil, nil, 0, false
	}
	labels := make([]int, len(points))

	for range maxIterations {
		for i, p := range points {
			labels[i] = nearestCentroid(p, centroids)
		}

		next := recomputeCentroids(points, labels, k, rng)

		// Terminate when no centroid moved more than epsilon.
		moved := 0.0
		for i := range centroids {
			if d := centroids[i].distance(next[i]); d > moved {
				moved = d
			}
		}
		centroids = next
		if moved < epsilon {
			break
		}
	}

	// Final assignment against the settled centroids.
	compactness := 0.0
	for i, p := range points {
		labels[i] = nearestCentroid(p, centroids)
		compactness += p.squaredDistance(centroids[labels[i]])
	}
	return labels, centroids, compactness, true
}

// seedCentroids chooses k initial centers with probability-weighted
// ("++"-style) seeding: the first center is uniform, each further center
// is drawn with probability proportional to its squared distance from the
// nearest already-chosen center.
func seedCentroids(points []point3, k int, rng *rand.Rand) []point3 {
	if len(points) == 0 || k <= 0 {
		return nil
	}

	centroids := make([]point3, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	dists := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		latest := centroids[len(centroids)-1]
		for i, p := range points {
			d := p.squaredDistance(latest)
			if len(centroids) == 1 || d < dists[i] {
				dists[i] = d
			}
			total += dists[i]
		}

		if total == 0 {
			// Fewer distinct colors than clusters; nudge a duplicate so
			// every cluster still exists.
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := rng.Float64() * total
		cumulative := 0.0
		chosen := len(points) - 1
		for i, d := range dists {
			cumulative += d
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}
	return centroids
}

func nearestCentroid(p point3, centroids []point3) int {
	best := 0
	bestDist := math.Inf(1)
	for i, c := range centroids {
		if d := p.squaredDistance(c); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// recomputeCentroids averages each cluster's members. Empty clusters are
// reseeded from a random point so k centers always survive.
func recomputeCentroids(points []point3, labels []int, k int, rng *rand.Rand) []point3 {
	sums := make([]point3, k)
	counts := make([]int, k)
	for i, p := range points {
		c := labels[i]
		sums[c].R += p.R
		sums[c].G += p.G
		sums[c].B += p.B
		counts[c]++
	}

	centroids := make([]point3, k)
	for i := range k {
		if counts[i] > 0 {
			n := float64(counts[i])
			centroids[i] = point3{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
		} else {
			centroids[i] = points[rng.Intn(len(points))]
		}
	}
	return centroids
}

// flatten turns the image into an unordered collection of N color samples,
// row-major so sample index maps back to pixel position.
func flatten(img *image.NRGBA) []point3 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	points := make([]point3, 0, w*h)
	for y := range h {
		for x := range w {
			off := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			points = append(points, point3{
				R: float64(img.Pix[off]),
				G: float64(img.Pix[off+1]),
				B: float64(img.Pix[off+2]),
			})
		}
	}
	return points
}

func roundByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}
