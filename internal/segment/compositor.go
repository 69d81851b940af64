package segment

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/zeeshanabi97/kmseg/internal/colour"
	"github.com/zeeshanabi97/kmseg/internal/errs"
)

// background is the fill for pixels of hidden clusters: opaque black.
var background = color.NRGBA{A: 255}

// Composite rebuilds a display image from the original pixels, the cluster
// masks and a per-cluster visibility flag. A pixel keeps its original value
// when its cluster is visible and becomes the background value otherwise.
// Pure function: repeated calls with the same inputs produce byte-identical
// output, in any order.
func Composite(orig *image.NRGBA, masks []Mask, visibility []bool) (*image.NRGBA, error) {
	if orig == nil || orig.Bounds().Empty() {
		return nil, errs.InvalidInput("cannot composite an empty image")
	}
	if len(masks) != len(visibility) {
		return nil, errs.InvalidInput("visibility length %d does not match mask count %d", len(visibility), len(masks))
	}

	b := orig.Bounds()
	w, h := b.Dx(), b.Dy()
	for i, m := range masks {
		if m.W != w || m.H != h {
			return nil, errs.InvalidInput("mask %d is %dx%d, image is %dx%d", i, m.W, m.H, w, h)
		}
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), &image.Uniform{background}, image.Point{}, draw.Src)

	for i, m := range masks {
		if !visibility[i] {
			continue
		}
		for y := range h {
			for x := range w {
				if !m.At(x, y) {
					continue
				}
				src := orig.PixOffset(b.Min.X+x, b.Min.Y+y)
				dst := out.PixOffset(x, y)
				copy(out.Pix[dst:dst+4], orig.Pix[src:src+4])
			}
		}
	}
	return out, nil
}

// RenderSegmented paints every pixel with its cluster's palette color,
// producing the flattened segmentation preview.
func RenderSegmented(labels LabelMap, palette *colour.Palette) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, labels.W, labels.H))
	colors := make([]color.NRGBA, palette.Len())
	for i, c := range palette.Colors {
		colors[i] = c.NRGBA()
	}
	for y := range labels.H {
		for x := range labels.W {
			out.SetNRGBA(x, y, colors[labels.At(x, y)])
		}
	}
	return out
}

// RenderMask produces a standalone view of one cluster: member pixels in
// the cluster's palette color, everything else background. Derived on
// demand, never stored.
func RenderMask(mask Mask, c colour.RGB) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, mask.W, mask.H))
	fill := c.NRGBA()
	for y := range mask.H {
		for x := range mask.W {
			if mask.At(x, y) {
				out.SetNRGBA(x, y, fill)
			} else {
				out.SetNRGBA(x, y, background)
			}
		}
	}
	return out
}
