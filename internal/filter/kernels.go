package filter

import (
	"image"
	"math"
	"slices"
)

// clampIdx clamps v into [0, hi]. Border handling for every window filter
// here is edge replication.
func clampIdx(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// gaussianKernel builds a normalised 1-D Gaussian of the given odd size.
func gaussianKernel(size int, sigma float64) []float64 {
	k := make([]float64, size)
	center := float64(size-1) / 2
	sum := 0.0
	for i := range k {
		d := float64(i) - center
		k[i] = math.Exp(-(d * d) / (2 * sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// gaussianBlur runs a separable Gaussian pass (horizontal then vertical)
// over the RGB channels. Alpha is carried through untouched.
func gaussianBlur(img *image.NRGBA, size int, sigma float64) *image.NRGBA {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	kernel := gaussianKernel(size, sigma)
	radius := size / 2

	tmp := image.NewNRGBA(image.Rect(0, 0, w, h))
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	// Horizontal pass.
	for y := range h {
		row := img.PixOffset(img.Bounds().Min.X, img.Bounds().Min.Y+y)
		for x := range w {
			var r, g, b float64
			for i, kv := range kernel {
				sx := clampIdx(x+i-radius, w-1)
				off := row + sx*4
				r += kv * float64(img.Pix[off])
				g += kv * float64(img.Pix[off+1])
				b += kv * float64(img.Pix[off+2])
			}
			off := tmp.PixOffset(x, y)
			tmp.Pix[off] = clampByte(r)
			tmp.Pix[off+1] = clampByte(g)
			tmp.Pix[off+2] = clampByte(b)
			tmp.Pix[off+3] = img.Pix[row+x*4+3]
		}
	}

	// Vertical pass.
	for y := range h {
		for x := range w {
			var r, g, b float64
			for i, kv := range kernel {
				sy := clampIdx(y+i-radius, h-1)
				off := tmp.PixOffset(x, sy)
				r += kv * float64(tmp.Pix[off])
				g += kv * float64(tmp.Pix[off+1])
				b += kv * float64(tmp.Pix[off+2])
			}
			off := out.PixOffset(x, y)
			out.Pix[off] = clampByte(r)
			out.Pix[off+1] = clampByte(g)
			out.Pix[off+2] = clampByte(b)
			out.Pix[off+3] = tmp.Pix[tmp.PixOffset(x, y)+3]
		}
	}
	return out
}

// medianBlur replaces each pixel channel with the median of its size x size
// neighborhood.
func medianBlur(img *image.NRGBA, size int) *image.NRGBA {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	radius := size / 2
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	window := size * size
	rs := make([]uint8, 0, window)
	gs := make([]uint8, 0, window)
	bs := make([]uint8, 0, window)

	minX := img.Bounds().Min.X
	minY := img.Bounds().Min.Y

	for y := range h {
		for x := range w {
			rs = rs[:0]
			gs = gs[:0]
			bs = bs[:0]
			for dy := -radius; dy <= radius; dy++ {
				sy := clampIdx(y+dy, h-1)
				for dx := -radius; dx <= radius; dx++ {
					sx := clampIdx(x+dx, w-1)
					off := img.PixOffset(minX+sx, minY+sy)
					rs = append(rs, img.Pix[off])
					gs = append(gs, img.Pix[off+1])
					bs = append(bs, img.Pix[off+2])
				}
			}
			slices.Sort(rs)
			slices.Sort(gs)
			slices.Sort(bs)
			mid := len(rs) / 2

			off := out.PixOffset(x, y)
			out.Pix[off] = rs[mid]
			out.Pix[off+1] = gs[mid]
			out.Pix[off+2] = bs[mid]
			out.Pix[off+3] = img.Pix[img.PixOffset(minX+x, minY+y)+3]
		}
	}
	return out
}

// bilateralFilter smooths while preserving edges: each neighbor is weighted
// by spatial distance (sigmaSpace) and color distance (sigmaColor).
func bilateralFilter(img *image.NRGBA, diameter int, sigmaColor, sigmaSpace float64) *image.NRGBA {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	radius := diameter / 2
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	minX := img.Bounds().Min.X
	minY := img.Bounds().Min.Y

	// Spatial weights depend only on the offset; precompute the grid.
	side := 2*radius + 1
	spatial := make([]float64, side*side)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := float64(dx*dx + dy*dy)
			spatial[(dy+radius)*side+(dx+radius)] = math.Exp(-d2 / (2 * sigmaSpace * sigmaSpace))
		}
	}

	twoSigmaColor2 := 2 * sigmaColor * sigmaColor

	for y := range h {
		for x := range w {
			cOff := img.PixOffset(minX+x, minY+y)
			cr := float64(img.Pix[cOff])
			cg := float64(img.Pix[cOff+1])
			cb := float64(img.Pix[cOff+2])

			var sumW, sumR, sumG, sumB float64
			for dy := -radius; dy <= radius; dy++ {
				sy := clampIdx(y+dy, h-1)
				for dx := -radius; dx <= radius; dx++ {
					sx := clampIdx(x+dx, w-1)
					off := img.PixOffset(minX+sx, minY+sy)
					nr := float64(img.Pix[off])
					ng := float64(img.Pix[off+1])
					nb := float64(img.Pix[off+2])

					dr := nr - cr
					dg := ng - cg
					db := nb - cb
					colorW := math.Exp(-(dr*dr + dg*dg + db*db) / twoSigmaColor2)
					wt := spatial[(dy+radius)*side+(dx+radius)] * colorW

					sumW += wt
					sumR += wt * nr
					sumG += wt * ng
					sumB += wt * nb
				}
			}

			off := out.PixOffset(x, y)
			out.Pix[off] = clampByte(sumR / sumW)
			out.Pix[off+1] = clampByte(sumG / sumW)
			out.Pix[off+2] = clampByte(sumB / sumW)
			out.Pix[off+3] = img.Pix[cOff+3]
		}
	}
	return out
}
