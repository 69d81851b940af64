// Package colour provides the palette value types shared by the
// segmentation engine and the CLI output formatting.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the color in "rgb(r, g, b)" form.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex returns the color as a hex string (e.g. "#1a2b3c").
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// NRGBA returns the color as an opaque color.NRGBA.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// FromColor converts any color.Color to RGB, discarding alpha.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// Palette is an ordered sequence of colors. For a segmentation result the
// order is the cluster-index order of that run: entry i is the centroid of
// cluster i. The order is stable for the lifetime of one result but not
// across re-runs, since seeding is randomized.
type Palette struct {
	Colors []RGB
}

// NewPalette creates a palette with the given colors.
func NewPalette(colors []RGB) *Palette {
	return &Palette{Colors: colors}
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// Get returns the color at index, or an error if the index is out of bounds.
func (p *Palette) Get(index int) (RGB, error) {
	if index < 0 || index >= len(p.Colors) {
		return RGB{}, fmt.Errorf("index out of bounds: %d (palette has %d colors)", index, len(p.Colors))
	}
	return p.Colors[index], nil
}

// ToHex returns the palette as hex color codes.
func (p *Palette) ToHex() []string {
	out := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		out[i] = c.Hex()
	}
	return out
}

// ToRGBSlice returns a copy of the palette colors.
func (p *Palette) ToRGBSlice() []RGB {
	return slices.Clone(p.Colors)
}

// ColorJSON is one palette entry in JSON output. Index is 1-based to match
// mask export naming.
type ColorJSON struct {
	Index int    `json:"index"`
	Hex   string `json:"hex"`
	RGB   RGB    `json:"rgb"`
}

// PaletteJSON is the JSON form of a palette.
type PaletteJSON struct {
	Count  int         `json:"count"`
	Colors []ColorJSON `json:"colors"`
}

// ToJSON serialises the palette with per-entry hex and RGB values.
func (p *Palette) ToJSON() ([]byte, error) {
	colors := make([]ColorJSON, len(p.Colors))
	for i, c := range p.Colors {
		colors[i] = ColorJSON{Index: i + 1, Hex: c.Hex(), RGB: c}
	}
	return json.MarshalIndent(PaletteJSON{Count: len(p.Colors), Colors: colors}, "", "  ")
}

// String returns a human-readable listing of the palette.
func (p *Palette) String() string {
	if len(p.Colors) == 0 {
		return "Empty palette"
	}
	result := fmt.Sprintf("Palette with %d colors:\n", len(p.Colors))
	for i, c := range p.Colors {
		result += fmt.Sprintf("  %2d: %s (%s)\n", i+1, c.Hex(), c.String())
	}
	return result
}

// SortByBrightness orders colors darkest to brightest using linear-RGB
// luminance. Presentation helper for the quick palette command only;
// segmentation palettes keep centroid order because cluster indices refer
// into them.
func SortByBrightness(colors []RGB) {
	slices.SortFunc(colors, func(a, b RGB) int {
		la, lb := luminance(a), luminance(b)
		if la < lb {
			return -1
		}
		if la > lb {
			return 1
		}
		return 0
	})
}

func luminance(c RGB) float64 {
	col := colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
	r, g, b := col.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
