package palette

import (
	"image"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/zeeshanabi97/kmseg/internal/colour"
	"github.com/zeeshanabi97/kmseg/internal/errs"
)

type dominantExtractor struct{}

func (e *dominantExtractor) Extract(img image.Image, count int) (*colour.Palette, error) {
	if count < 1 {
		return nil, errs.InvalidInput("color count must be at least 1, got %d", count)
	}
	if img.Bounds().Empty() {
		return nil, errs.InvalidInput("image contains no pixels")
	}

	// Request more candidates than asked for, then prune near-duplicates so
	// the result spans the image rather than shades of one region.
	candidates := dominantcolor.FindWeight(img, max(24, count*8))
	if len(candidates) == 0 {
		return nil, errs.Convergence("dominant color search produced no candidates")
	}

	colors := make([]colour.RGB, 0, count)
	for _, cand := range candidates {
		if len(colors) == count {
			break
		}
		rgb := colour.RGB{R: cand.RGBA.R, G: cand.RGBA.G, B: cand.RGBA.B}
		if tooSimilar(colors, rgb) && len(candidates) > count {
			continue
		}
		colors = append(colors, rgb)
	}
	// Backfill from the skipped candidates if pruning was too aggressive.
	for _, cand := range candidates {
		if len(colors) == count {
			break
		}
		rgb := colour.RGB{R: cand.RGBA.R, G: cand.RGBA.G, B: cand.RGBA.B}
		if !contains(colors, rgb) {
			colors = append(colors, rgb)
		}
	}

	return colour.NewPalette(colors), nil
}

// minColorDistance is the CIE76 distance below which two candidates are
// treated as the same perceived color.
const minColorDistance = 0.08

func tooSimilar(existing []colour.RGB, candidate colour.RGB) bool {
	cc, _ := colorful.MakeColor(candidate.NRGBA())
	for _, e := range existing {
		ec, _ := colorful.MakeColor(e.NRGBA())
		if cc.DistanceLab(ec) < minColorDistance {
			return true
		}
	}
	return false
}

func contains(colors []colour.RGB, c colour.RGB) bool {
	for _, existing := range colors {
		if existing == c {
			return true
		}
	}
	return false
}
