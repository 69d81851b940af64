// Package export writes per-cluster mask images to disk, either as
// individual PNG files in a directory or bundled into an archive. Only
// visible clusters are exported; files are named by 1-based cluster index.
package export

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/zeeshanabi97/kmseg/internal/errs"
	"github.com/zeeshanabi97/kmseg/internal/segment"
)

// MaskFileName returns the export file name for a 0-based cluster index.
func MaskFileName(index int) string {
	return fmt.Sprintf("cluster_%d.png", index+1)
}

// maskEntry is one rendered, encoded mask ready for writing.
type maskEntry struct {
	name string
	data []byte
}

// renderVisible encodes every visible cluster's mask view as PNG.
func renderVisible(res *segment.Result, visibility []bool) ([]maskEntry, error) {
	if res == nil {
		return nil, errs.InvalidInput("no segmentation result to export")
	}
	if len(visibility) != len(res.Masks) {
		return nil, errs.InvalidInput("visibility length %d does not match mask count %d", len(visibility), len(res.Masks))
	}

	var entries []maskEntry
	for i, mask := range res.Masks {
		if !visibility[i] {
			continue
		}
		color, err := res.Palette.Get(i)
		if err != nil {
			return nil, errs.InvalidInput("mask %d has no palette entry", i)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, segment.RenderMask(mask, color)); err != nil {
			return nil, errs.IO("failed to encode mask image", err)
		}
		entries = append(entries, maskEntry{name: MaskFileName(i), data: buf.Bytes()})
	}
	return entries, nil
}

// WriteMasks writes one PNG per visible cluster into dir, creating the
// directory if needed. Returns the written paths. In-memory segmentation
// state is never altered, even on failure.
func WriteMasks(dir string, res *segment.Result, visibility []bool) ([]string, error) {
	entries, err := renderVisible(res, visibility)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.IO("failed to create mask directory", err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		path := filepath.Join(dir, e.name)
		if err := os.WriteFile(path, e.data, 0o644); err != nil {
			return nil, errs.IO(fmt.Sprintf("failed to write %s", e.name), err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
