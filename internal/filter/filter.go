// Package filter implements the optional preprocessing stage that runs
// before segmentation: at most one parameterised filter applied to the
// source image, producing a new image of identical dimensions.
package filter

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/zeeshanabi97/kmseg/internal/errs"
)

// Kind identifies a preprocessing filter.
type Kind string

const (
	None      Kind = "none"
	Gaussian  Kind = "gaussian"
	Median    Kind = "median"
	Bilateral Kind = "bilateral"
	Sharpen   Kind = "sharpen"
)

// ParseKind converts a user-supplied filter name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case None, Gaussian, Median, Bilateral, Sharpen:
		return Kind(s), nil
	case "":
		return None, nil
	}
	return None, errs.InvalidInput("unknown filter kind: %q (valid: none, gaussian, median, bilateral, sharpen)", s)
}

// Params carries the parameters for every filter kind; only the fields
// relevant to the selected kind are validated and used.
type Params struct {
	// KernelSize is the blur window size for Gaussian and Median,
	// an odd integer in [1,31]. Even values are silently incremented
	// to the next odd value before use.
	KernelSize int
	// Sigma is the Gaussian standard deviation, in [0.1, 5.0].
	Sigma float64
	// Diameter is the bilateral neighborhood diameter, in [1,31].
	Diameter int
	// SigmaColor is the bilateral range sigma, in [1,150].
	SigmaColor float64
	// SigmaSpace is the bilateral spatial sigma, in [1,150].
	SigmaSpace float64
	// Amount scales the fixed 3x3 sharpen kernel, in [0.1, 5.0].
	Amount float64
}

// DefaultParams returns the parameter defaults the interactive dialog of
// the original tool started from.
func DefaultParams() Params {
	return Params{
		KernelSize: 5,
		Sigma:      1.0,
		Diameter:   9,
		SigmaColor: 75,
		SigmaSpace: 75,
		Amount:     1.5,
	}
}

// Validate checks the parameters required by kind. Out-of-range values are
// rejected here, at the input boundary; Apply never fails on validated
// parameters.
func (p Params) Validate(kind Kind) error {
	switch kind {
	case None:
		return nil
	case Gaussian:
		if p.KernelSize < 1 || p.KernelSize > 31 {
			return errs.InvalidInput("gaussian kernel size must be in [1,31], got %d", p.KernelSize)
		}
		if p.Sigma < 0.1 || p.Sigma > 5.0 {
			return errs.InvalidInput("gaussian sigma must be in [0.1,5.0], got %g", p.Sigma)
		}
	case Median:
		if p.KernelSize < 1 || p.KernelSize > 31 {
			return errs.InvalidInput("median kernel size must be in [1,31], got %d", p.KernelSize)
		}
	case Bilateral:
		if p.Diameter < 1 || p.Diameter > 31 {
			return errs.InvalidInput("bilateral diameter must be in [1,31], got %d", p.Diameter)
		}
		if p.SigmaColor < 1 || p.SigmaColor > 150 {
			return errs.InvalidInput("bilateral sigma color must be in [1,150], got %g", p.SigmaColor)
		}
		if p.SigmaSpace < 1 || p.SigmaSpace > 150 {
			return errs.InvalidInput("bilateral sigma space must be in [1,150], got %g", p.SigmaSpace)
		}
	case Sharpen:
		if p.Amount < 0.1 || p.Amount > 5.0 {
			return errs.InvalidInput("sharpen amount must be in [0.1,5.0], got %g", p.Amount)
		}
	default:
		return errs.InvalidInput("unknown filter kind: %q", kind)
	}
	return nil
}

// oddKernel normalises an even kernel size to the next odd value. Blur
// kernels must be odd so the window has a center pixel.
func oddKernel(size int) int {
	if size%2 == 0 {
		return size + 1
	}
	return size
}

// Apply runs the selected filter over img and returns a new image of
// identical dimensions. The source image is never mutated.
func Apply(img *image.NRGBA, kind Kind, p Params) (*image.NRGBA, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errs.InvalidInput("cannot filter an empty image")
	}
	if err := p.Validate(kind); err != nil {
		return nil, err
	}

	switch kind {
	case None:
		return imaging.Clone(img), nil
	case Gaussian:
		return gaussianBlur(img, oddKernel(p.KernelSize), p.Sigma), nil
	case Median:
		return medianBlur(img, oddKernel(p.KernelSize)), nil
	case Bilateral:
		return bilateralFilter(img, p.Diameter, p.SigmaColor, p.SigmaSpace), nil
	case Sharpen:
		return sharpen(img, p.Amount), nil
	}
	return nil, errs.InvalidInput("unknown filter kind: %q", kind)
}

// sharpen applies the fixed unsharp-mask 3x3 kernel (center 9, eight
// neighbors -1) scaled by amount. The kernel is intentionally not
// normalised: its weights sum to amount, so brightness scales with
// amounts other than 1.
func sharpen(img *image.NRGBA, amount float64) *image.NRGBA {
	kernel := [9]float64{
		-amount, -amount, -amount,
		-amount, 9 * amount, -amount,
		-amount, -amount, -amount,
	}
	return imaging.Convolve3x3(img, kernel, &imaging.ConvolveOptions{Normalize: false})
}
