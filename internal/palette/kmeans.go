package palette

import (
	"image"
	"math/rand"

	"github.com/zeeshanabi97/kmseg/internal/colour"
	"github.com/zeeshanabi97/kmseg/internal/errs"
	"github.com/zeeshanabi97/kmseg/internal/segment"
)

// maxKMeansSamples bounds the pixel sample fed to the clustering core.
const maxKMeansSamples = 10000

type kmeansExtractor struct {
	rng *rand.Rand
}

func (e *kmeansExtractor) Extract(img image.Image, count int) (*colour.Palette, error) {
	if count < 1 {
		return nil, errs.InvalidInput("color count must be at least 1, got %d", count)
	}

	samples := samplePixels(img, maxKMeansSamples)
	if len(samples) == 0 {
		return nil, errs.InvalidInput("image contains no pixels")
	}

	colors, err := segment.ClusterColors(samples, count, e.rng)
	if err != nil {
		return nil, err
	}
	return colour.NewPalette(colors), nil
}
