package imageio

import (
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeeshanabi97/kmseg/internal/errs"
)

// jpegQuality is the encoder quality for JPEG output.
const jpegQuality = 92

// Save encodes img to path, choosing the format from the file extension.
// Unrecognised or missing extensions fall back to PNG. A failed save never
// touches in-memory state; the caller's session stays valid.
func Save(img image.Image, path string) error {
	if path == "" {
		return errs.InvalidInput("output path cannot be empty")
	}

	f, err := os.Create(path) // #nosec G304 - User-specified output path
	if err != nil {
		return errs.IO("failed to create output file", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
	case ".gif":
		err = gif.Encode(f, img, nil)
	default:
		// PNG is the default for .png and anything unrecognised.
		err = png.Encode(f, img)
	}
	if err != nil {
		return errs.IO("failed to encode image", err)
	}
	return nil
}
