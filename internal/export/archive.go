package export

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/zeeshanabi97/kmseg/internal/errs"
	"github.com/zeeshanabi97/kmseg/internal/segment"
)

// ArchiveFormat identifies a supported bundle format.
type ArchiveFormat string

const (
	FormatTarGz ArchiveFormat = "tar.gz"
	FormatTarXz ArchiveFormat = "tar.xz"
	FormatZip   ArchiveFormat = "zip"
)

// DetectArchiveFormat derives the bundle format from the file name.
func DetectArchiveFormat(path string) (ArchiveFormat, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return FormatTarGz, nil
	case strings.HasSuffix(lower, ".tar.xz"), strings.HasSuffix(lower, ".txz"):
		return FormatTarXz, nil
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip, nil
	}
	return "", errs.InvalidInput("unsupported archive extension: %s (valid: .tar.gz, .tgz, .tar.xz, .txz, .zip)", path)
}

// WriteArchive bundles every visible cluster's mask image into a single
// archive at path, format chosen by extension.
func WriteArchive(path string, res *segment.Result, visibility []bool) error {
	format, err := DetectArchiveFormat(path)
	if err != nil {
		return err
	}
	entries, err := renderVisible(res, visibility)
	if err != nil {
		return err
	}

	f, err := os.Create(path) // #nosec G304 - User-specified output path
	if err != nil {
		return errs.IO("failed to create archive", err)
	}
	defer f.Close()

	switch format {
	case FormatZip:
		err = writeZip(f, entries)
	case FormatTarXz:
		err = writeTarXz(f, entries)
	default:
		err = writeTarGz(f, entries)
	}
	if err != nil {
		return errs.IO("failed to write archive", err)
	}
	return nil
}

func writeTarGz(w io.Writer, entries []maskEntry) error {
	gzw := gzip.NewWriter(w)
	if err := writeTar(gzw, entries); err != nil {
		gzw.Close()
		return err
	}
	return gzw.Close()
}

func writeTarXz(w io.Writer, entries []maskEntry) error {
	xzw, err := xz.NewWriter(w)
	if err != nil {
		return err
	}
	if err := writeTar(xzw, entries); err != nil {
		xzw.Close()
		return err
	}
	return xzw.Close()
}

func writeTar(w io.Writer, entries []maskEntry) error {
	tw := tar.NewWriter(w)
	now := time.Now()
	for _, e := range entries {
		hdr := &tar.Header{
			Name:    e.name,
			Mode:    0o644,
			Size:    int64(len(e.data)),
			ModTime: now,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if _, err := tw.Write(e.data); err != nil {
			return err
		}
	}
	return tw.Close()
}

func writeZip(w io.Writer, entries []maskEntry) error {
	zw := zip.NewWriter(w)
	for _, e := range entries {
		fw, err := zw.Create(e.name)
		if err != nil {
			return err
		}
		if _, err := fw.Write(e.data); err != nil {
			return err
		}
	}
	return zw.Close()
}
