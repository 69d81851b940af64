// Package imageio handles image decoding, encoding and the size guard that
// bounds clustering cost.
package imageio

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"math"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/zeeshanabi97/kmseg/internal/errs"
)

// MaxPixels is the default pixel-count bound (4000x3000). Images above it
// are downsampled before segmentation to keep k-means cost bounded.
const MaxPixels = 12_000_000

// Loader handles loading images from a source path.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (*image.NRGBA, error)
}

// FileLoader loads images from the local filesystem.
// Supported formats: JPEG, PNG, GIF, WebP.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path and normalises it to NRGBA.
func (l *FileLoader) Load(path string) (*image.NRGBA, error) {
	if path == "" {
		return nil, errs.InvalidInput("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.IO(fmt.Sprintf("image file not found: %s", path), err)
		}
		return nil, errs.IO("failed to stat image file", err)
	}
	if info.IsDir() {
		return nil, errs.InvalidInput("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, errs.IO("failed to open image file", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, errs.IO(fmt.Sprintf("failed to decode image (format: %s)", format), err)
	}

	return imaging.Clone(img), nil
}

// ValidateImagePath checks that path exists and decodes as a supported
// image format, without loading the full pixel data.
func ValidateImagePath(path string) error {
	if path == "" {
		return errs.InvalidInput("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errs.IO(fmt.Sprintf("image file not found: %s", path), err)
		}
		return errs.IO("failed to access image path", err)
	}
	if info.IsDir() {
		return errs.InvalidInput("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return errs.IO("failed to open image file", err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return errs.IO("unsupported or invalid image format", err)
	}
	return nil
}

// Downsample rescales img so that its pixel count does not exceed maxPixels,
// preserving aspect ratio. Images already within the bound are returned
// unchanged. maxPixels <= 0 means the default bound.
func Downsample(img *image.NRGBA, maxPixels int) *image.NRGBA {
	if maxPixels <= 0 {
		maxPixels = MaxPixels
	}
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w*h <= maxPixels {
		return img
	}

	scale := math.Sqrt(float64(maxPixels) / float64(w*h))
	newW := max(int(float64(w)*scale), 1)
	newH := max(int(float64(h)*scale), 1)
	return imaging.Resize(img, newW, newH, imaging.Lanczos)
}
