//go:build mage

package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// samplePages describes the generated sample volume: a landscape cover
// followed by two short chapters.
var samplePages = []struct {
	path string
	w, h int
	c    color.NRGBA
}{
	{"ch01/000-cover.png", 1200, 800, color.NRGBA{R: 200, G: 60, B: 60, A: 255}},
	{"ch01/001.png", 800, 1200, color.NRGBA{R: 240, G: 240, B: 240, A: 255}},
	{"ch01/002.png", 800, 1200, color.NRGBA{R: 220, G: 220, B: 220, A: 255}},
	{"ch02/001.jpg", 800, 1200, color.NRGBA{R: 60, G: 60, B: 200, A: 255}},
}

// Sample writes a small generated volume into input/.
func Sample() error {
	mg.Deps(Init)
	for _, p := range samplePages {
		path := filepath.Join("input", p.path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := imaging.Save(imaging.New(p.w, p.h, p.c), path); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Println("  ", path)
	}
	return nil
}

// Convert builds the CLI and binds input/ into output/sample.pdf.
func Convert() error {
	mg.Deps(Build, Sample)
	return sh.RunV(filepath.Join(binDir, binName), "convert",
		"--input", "input",
		"--output-dir", "output",
		"--name", "sample",
		"--title", "Sample Volume",
	)
}
