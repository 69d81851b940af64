package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/zeeshanabi97/kmseg/internal/errs"
)

// writeTestPNG writes a small PNG to dir and returns its path.
func writeTestPNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	path := filepath.Join(dir, "test.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Encoding test PNG failed: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("Writing test PNG failed: %v", err)
	}
	return path
}

func TestFileLoaderLoad(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), 10, 6)

	img, err := NewFileLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 6 {
		t.Errorf("Expected 10x6, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
	if got := img.NRGBAAt(3, 2); got != (color.NRGBA{R: 3, G: 2, B: 128, A: 255}) {
		t.Errorf("Unexpected pixel value: %v", got)
	}
}

func TestFileLoaderErrors(t *testing.T) {
	loader := NewFileLoader()
	dir := t.TempDir()

	if _, err := loader.Load(""); !errs.IsKind(err, errs.KindInvalidInput) {
		t.Errorf("Expected invalid_input for empty path, got %v", err)
	}
	if _, err := loader.Load(filepath.Join(dir, "missing.png")); !errs.IsKind(err, errs.KindIO) {
		t.Errorf("Expected io_failure for missing file, got %v", err)
	}
	if _, err := loader.Load(dir); !errs.IsKind(err, errs.KindInvalidInput) {
		t.Errorf("Expected invalid_input for directory, got %v", err)
	}

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("Writing garbage file failed: %v", err)
	}
	if _, err := loader.Load(garbage); !errs.IsKind(err, errs.KindIO) {
		t.Errorf("Expected io_failure for undecodable file, got %v", err)
	}
}

func TestValidateImagePath(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, 4, 4)

	if err := ValidateImagePath(path); err != nil {
		t.Errorf("Expected valid path, got %v", err)
	}
	if err := ValidateImagePath(""); err == nil {
		t.Error("Expected error for empty path, got nil")
	}
	if err := ValidateImagePath(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
	if err := ValidateImagePath(dir); err == nil {
		t.Error("Expected error for directory, got nil")
	}
}

func TestDownsampleWithinBoundIsUnchanged(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	if out := Downsample(img, 20000); out != img {
		t.Error("Expected image within bound returned unchanged")
	}
}

func TestDownsampleBoundsPixelCount(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 400, 100))
	out := Downsample(img, 10000)

	w, h := out.Bounds().Dx(), out.Bounds().Dy()
	if w*h > 10000 {
		t.Errorf("Expected at most 10000 pixels, got %dx%d = %d", w, h, w*h)
	}

	// Aspect ratio is preserved to within rounding.
	want := 4.0
	got := float64(w) / float64(h)
	if math.Abs(got-want) > 0.2 {
		t.Errorf("Expected aspect ratio ~%.1f, got %.2f (%dx%d)", want, got, w, h)
	}
}

func TestDownsampleNeverZero(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10000, 1))
	out := Downsample(img, 10)
	if out.Bounds().Dx() < 1 || out.Bounds().Dy() < 1 {
		t.Errorf("Expected at least 1x1, got %v", out.Bounds())
	}
}

func TestSaveFormats(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	dir := t.TempDir()

	tests := []struct {
		name string
		file string
	}{
		{"png", "out.png"},
		{"jpeg", "out.jpg"},
		{"gif", "out.gif"},
		{"default to png", "out.xyz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := Save(img, path); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("Opening saved file failed: %v", err)
			}
			defer f.Close()
			if _, _, err := image.Decode(f); err != nil {
				t.Errorf("Saved file does not decode: %v", err)
			}
		})
	}
}

func TestSaveUnknownExtensionIsPNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	path := filepath.Join(t.TempDir(), "out.data")
	if err := Save(img, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Opening saved file failed: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("Expected PNG fallback, got %v", err)
	}
}

func TestSaveErrors(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	if err := Save(img, ""); !errs.IsKind(err, errs.KindInvalidInput) {
		t.Errorf("Expected invalid_input for empty path, got %v", err)
	}
	err := Save(img, filepath.Join(t.TempDir(), "missing", "out.png"))
	if !errs.IsKind(err, errs.KindIO) {
		t.Errorf("Expected io_failure for unwritable path, got %v", err)
	}
}
