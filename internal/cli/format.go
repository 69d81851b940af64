package cli

import (
	"fmt"
	"strings"

	"github.com/zeeshanabi97/kmseg/internal/colour"
	"github.com/zeeshanabi97/kmseg/internal/segment"
)

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, showPreview bool) (string, error) {
	switch format {
	case "text":
		return formatText(palette, showPreview), nil
	case "hex":
		return formatHex(palette, showPreview), nil
	case "rgb":
		return formatRGB(palette, showPreview), nil
	case "json":
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, hex, rgb, json)", format)
	}
}

// formatText formats the palette as a numbered listing. Numbers are
// 1-based to match mask file names.
func formatText(palette *colour.Palette, showPreview bool) string {
	var sb strings.Builder
	for i, rgb := range palette.ToRGBSlice() {
		if showPreview {
			fmt.Fprintf(&sb, "%2d: %s  %s\n", i+1, colour.FormatColourWithPreview(rgb, 8), rgb.String())
		} else {
			fmt.Fprintf(&sb, "%2d: %s  %s\n", i+1, rgb.Hex(), rgb.String())
		}
	}
	return sb.String()
}

// formatHex formats the palette as hex colour codes.
func formatHex(palette *colour.Palette, showPreview bool) string {
	if showPreview {
		var sb strings.Builder
		for _, rgb := range palette.ToRGBSlice() {
			sb.WriteString(colour.FormatColourWithPreview(rgb, 8) + "\n")
		}
		return sb.String()
	}
	if palette.Len() == 0 {
		return ""
	}
	return strings.Join(palette.ToHex(), "\n") + "\n"
}

// formatRGB formats the palette as RGB values.
func formatRGB(palette *colour.Palette, showPreview bool) string {
	var sb strings.Builder
	for _, rgb := range palette.ToRGBSlice() {
		if showPreview {
			sb.WriteString(colour.FormatColourWithPreview(rgb, 8) + "  " + rgb.String() + "\n")
		} else {
			sb.WriteString(rgb.String() + "\n")
		}
	}
	return sb.String()
}

// formatStats renders per-cluster statistics as a table.
func formatStats(stats []segment.ClusterStat, showPreview bool, res *segment.Result) string {
	table := NewTable([]string{"CLUSTER", "COLOR", "PIXELS", "SHARE", "MEAN DIST", "STDDEV"})
	table.EnableTerminalAwareWidth(1, 16)

	for _, s := range stats {
		c, err := res.Palette.Get(s.Index - 1)
		if err != nil {
			continue
		}
		colorCell := c.Hex()
		if showPreview {
			colorCell = colour.FormatColourWithPreview(c, 4)
		}
		table.AddRow([]string{
			fmt.Sprintf("%d", s.Index),
			colorCell,
			fmt.Sprintf("%d", s.Population),
			fmt.Sprintf("%.1f%%", s.Share*100),
			fmt.Sprintf("%.2f", s.MeanDist),
			fmt.Sprintf("%.2f", s.StdDevDist),
		})
	}
	return "\n" + table.Render()
}
