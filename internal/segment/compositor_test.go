package segment

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/zeeshanabi97/kmseg/internal/colour"
)

func TestCompositeAllVisibleEqualsOriginal(t *testing.T) {
	img := noiseImage(10, 8)
	res, err := Segment(img, 3, NewRand(11))
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	visibility := []bool{true, true, true}
	out, err := Composite(img, res.Masks, visibility)
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}

	if !bytes.Equal(out.Pix, img.Pix) {
		t.Error("Composite with all clusters visible should equal the original image")
	}
}

func TestCompositeAllHiddenIsBlack(t *testing.T) {
	img := noiseImage(10, 8)
	res, err := Segment(img, 3, NewRand(11))
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	out, err := Composite(img, res.Masks, []bool{false, false, false})
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}

	black := color.NRGBA{A: 255}
	for y := 0; y < 8; y++ {
		for x := 0; x < 10; x++ {
			if got := out.NRGBAAt(x, y); got != black {
				t.Fatalf("Pixel (%d,%d): expected opaque black, got %v", x, y, got)
			}
		}
	}
}

func TestCompositePartialVisibility(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	img := quadrantImage(red, blue)

	res, err := Segment(img, 2, NewRand(7))
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	leftLabel := res.Labels.At(0, 0)
	visibility := make([]bool, 2)
	visibility[leftLabel] = true

	out, err := Composite(img, res.Masks, visibility)
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}

	black := color.NRGBA{A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			got := out.NRGBAAt(x, y)
			if x < 2 {
				if got != red {
					t.Errorf("Pixel (%d,%d): expected original red, got %v", x, y, got)
				}
			} else if got != black {
				t.Errorf("Pixel (%d,%d): expected opaque black, got %v", x, y, got)
			}
		}
	}
}

func TestCompositeIsPure(t *testing.T) {
	img := noiseImage(6, 6)
	res, err := Segment(img, 2, NewRand(1))
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	before := make([]byte, len(img.Pix))
	copy(before, img.Pix)

	first, err := Composite(img, res.Masks, []bool{true, false})
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}
	second, err := Composite(img, res.Masks, []bool{true, false})
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}

	if !bytes.Equal(img.Pix, before) {
		t.Error("Composite must not mutate the source image")
	}
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("Repeated composites with identical inputs must be identical")
	}
}

func TestCompositeValidatesInputs(t *testing.T) {
	img := noiseImage(4, 4)
	res, err := Segment(img, 2, NewRand(1))
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	if _, err := Composite(img, res.Masks, []bool{true}); err == nil {
		t.Error("Expected error for visibility length mismatch, got nil")
	}

	other := noiseImage(5, 5)
	if _, err := Composite(other, res.Masks, []bool{true, true}); err == nil {
		t.Error("Expected error for dimension mismatch, got nil")
	}
}

func TestRenderSegmented(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	img := quadrantImage(red, blue)

	res, err := Segment(img, 2, NewRand(7))
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	out := RenderSegmented(res.Labels, res.Palette)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want, _ := res.Palette.Get(res.Labels.At(x, y))
			if got := out.NRGBAAt(x, y); got != want.NRGBA() {
				t.Errorf("Pixel (%d,%d): expected %v, got %v", x, y, want.NRGBA(), got)
			}
		}
	}
}

func TestRenderMask(t *testing.T) {
	mask := Mask{W: 2, H: 2, Bits: []bool{true, false, false, true}}
	out := RenderMask(mask, colour.RGB{R: 255, G: 255, B: 255})

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.NRGBA{A: 255}
	if got := out.NRGBAAt(0, 0); got != white {
		t.Errorf("Expected member pixel white, got %v", got)
	}
	if got := out.NRGBAAt(1, 0); got != black {
		t.Errorf("Expected non-member pixel black, got %v", got)
	}
}
