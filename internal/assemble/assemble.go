// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble writes a page collection as a single PDF volume.
//
// Each page is JPEG-encoded and placed full-bleed on a PDF page whose size in
// points equals its size in pixels. The document information is set before
// the file is written, so the volume is produced by one write: a temp file in
// the output directory renamed over the target once it is complete.
package assemble

import (
	"bytes"
	"errors"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/jung-kurt/gofpdf"

	"github.com/pdiddy/pagebind/internal/docinfo"
	"github.com/pdiddy/pagebind/internal/pages"
	"github.com/pdiddy/pagebind/pkg/types"
)

const defaultQuality = 75

// Options tunes Assemble.
type Options struct {
	// JPEGQuality is the encoder quality, 1-100 (default 75).
	JPEGQuality int
}

// PageSize is the pixel size of one written page.
type PageSize struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Document describes a written volume.
type Document struct {
	Path  string       `json:"path" yaml:"path"`
	Info  docinfo.Info `json:"info" yaml:"info"`
	Pages []PageSize   `json:"pages" yaml:"pages"`
	Bytes int64        `json:"bytes" yaml:"bytes"`
}

// Assemble writes every page of c, in order, to outputPath with info as the
// document information. An empty collection is an EmptyInput error and no
// file is created. A missing or unwritable output directory, or any failure
// while writing, is a Write error; in every failure case a file already at
// outputPath is left untouched.
func Assemble(c *pages.Collection, outputPath string, info docinfo.Info, opts Options) (*Document, error) {
	if c == nil || c.Empty() {
		return nil, types.EmptyInputError(outputPath)
	}

	dir := filepath.Dir(outputPath)
	st, err := os.Stat(dir)
	if err != nil {
		return nil, types.WriteError(outputPath, err)
	}
	if !st.IsDir() {
		return nil, types.WriteError(outputPath, fmt.Errorf("%s is not a directory", dir))
	}

	lock := flock.New(outputPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, types.WriteError(outputPath, fmt.Errorf("locking: %w", err))
	}
	if !locked {
		return nil, types.WriteError(outputPath, errors.New("another run is writing this volume"))
	}
	// The lock file is never removed, so every run locks the same inode.
	defer lock.Unlock()

	pdf, sizes, err := render(c, info, opts)
	if err != nil {
		return nil, types.WriteError(outputPath, err)
	}

	n, err := writeAtomic(pdf, outputPath)
	if err != nil {
		return nil, types.WriteError(outputPath, err)
	}

	return &Document{Path: outputPath, Info: info, Pages: sizes, Bytes: n}, nil
}

func render(c *pages.Collection, info docinfo.Info, opts Options) (*gofpdf.Fpdf, []PageSize, error) {
	quality := opts.JPEGQuality
	if quality <= 0 || quality > 100 {
		quality = defaultQuality
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	docinfo.Apply(pdf, info)

	imgOpts := gofpdf.ImageOptions{ImageType: "JPG"}
	sizes := make([]PageSize, 0, c.Len())
	for i, p := range c.Pages() {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, p.Image, &jpeg.Options{Quality: quality}); err != nil {
			return nil, nil, fmt.Errorf("encoding page %d (%s): %w", i+1, p.Source, err)
		}

		name := fmt.Sprintf("page-%04d", i+1)
		w, h := float64(p.Width()), float64(p.Height())
		pdf.RegisterImageOptionsReader(name, imgOpts, &buf)
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
		pdf.ImageOptions(name, 0, 0, w, h, false, imgOpts, 0, "")
		if err := pdf.Error(); err != nil {
			return nil, nil, fmt.Errorf("adding page %d (%s): %w", i+1, p.Source, err)
		}
		sizes = append(sizes, PageSize{Width: p.Width(), Height: p.Height()})
	}
	return pdf, sizes, nil
}

// writeAtomic writes pdf to a temp file next to dest, syncs it, and renames it
// into place. It returns the size of the written file.
func writeAtomic(pdf *gofpdf.Fpdf, dest string) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".pagebind-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	outErr := pdf.Output(tmp)
	syncErr := tmp.Sync()
	closeErr := tmp.Close()
	if err := errors.Join(outErr, syncErr, closeErr); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("writing temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("renaming temp file: %w", err)
	}

	st, err := os.Stat(dest)
	if err != nil {
		return 0, err
	}
	return st.Size(), nil
}
