package segment

import (
	"github.com/zeeshanabi97/kmseg/internal/colour"
)

// LabelMap assigns every pixel position a cluster index in [0, K).
// Every label is a valid index into the palette of the same run.
type LabelMap struct {
	W, H   int
	Labels []int // row-major, len = W*H
}

// At returns the cluster index at (x, y).
func (m LabelMap) At(x, y int) int {
	return m.Labels[y*m.W+x]
}

// Mask is a per-cluster boolean membership grid. The K masks of one
// result partition the image: every pixel is true in exactly one of them.
type Mask struct {
	W, H int
	Bits []bool // row-major, len = W*H
}

// At reports whether the pixel at (x, y) belongs to this mask's cluster.
func (m Mask) At(x, y int) bool {
	return m.Bits[y*m.W+x]
}

// Count returns the number of member pixels.
func (m Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// Result is the output of one segmentation run. Palette, Labels and Masks
// are created together and stay consistent with each other; they are
// invalidated together when the source image changes or segmentation is
// re-run.
type Result struct {
	Palette *colour.Palette
	Labels  LabelMap
	Masks   []Mask

	// Compactness is the winning attempt's total within-cluster squared
	// distance; lower is tighter clustering.
	Compactness float64
}

// K returns the cluster count of this run.
func (r *Result) K() int {
	return r.Palette.Len()
}

func deriveMasks(labels LabelMap, k int) []Mask {
	masks := make([]Mask, k)
	for i := range k {
		masks[i] = Mask{W: labels.W, H: labels.H, Bits: make([]bool, len(labels.Labels))}
	}
	for i, label := range labels.Labels {
		masks[label].Bits[i] = true
	}
	return masks
}
