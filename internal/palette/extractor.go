// Package palette provides quick palette extraction from an image without
// running a full segmentation: a selectable algorithm over a grid sample
// of pixels.
package palette

import (
	"image"
	"math/rand"

	"github.com/zeeshanabi97/kmseg/internal/colour"
	"github.com/zeeshanabi97/kmseg/internal/errs"
)

// Extractor is a palette extraction algorithm.
type Extractor interface {
	// Extract returns a palette of up to count colors from img.
	Extract(img image.Image, count int) (*colour.Palette, error)
}

// Algorithm names a palette extraction algorithm.
type Algorithm string

const (
	// AlgorithmKMeans clusters a pixel sample with the k-means core.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmDominant finds the most dominant colors via the
	// dominantcolor library.
	AlgorithmDominant Algorithm = "dominant"
)

// ValidAlgorithms returns the usable algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmKMeans, AlgorithmDominant}
}

// IsValidAlgorithm reports whether alg names a known algorithm.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// NewExtractor creates an Extractor for the given algorithm. rng feeds the
// k-means seeding; nil means a fresh seed (ignored by algorithms that do
// not use randomness).
func NewExtractor(alg Algorithm, rng *rand.Rand) (Extractor, error) {
	switch alg {
	case AlgorithmKMeans:
		return &kmeansExtractor{rng: rng}, nil
	case AlgorithmDominant:
		return &dominantExtractor{}, nil
	}
	return nil, errs.InvalidInput("unknown palette algorithm: %q (valid: kmeans, dominant)", alg)
}

// samplePixels grid-samples the image down to at most maxSamples colors.
func samplePixels(img image.Image, maxSamples int) []colour.RGB {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	total := width * height
	if total == 0 {
		return nil
	}

	step := 1
	if total > maxSamples {
		step = max(intSqrt(total/maxSamples), 1)
	}

	samples := make([]colour.RGB, 0, min(total, maxSamples+width))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			samples = append(samples, colour.FromColor(img.At(x, y)))
		}
	}
	return samples
}

func intSqrt(n int) int {
	if n <= 0 {
		return 0
	}
	x := n
	for {
		y := (x + n/x) / 2
		if y >= x {
			return x
		}
		x = y
	}
}
