// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package testsupport holds fixtures shared by package tests.
package testsupport

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Image returns a w×h opaque image with a horizontal gradient so resampling
// has something to work on.
func Image(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / max(w, 1)), G: uint8(y * 255 / max(h, 1)), B: 90, A: 255})
		}
	}
	return img
}

// PNG encodes a w×h test image as PNG.
func PNG(t testing.TB, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, Image(w, h)); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// JPEG encodes a w×h test image as JPEG.
func JPEG(t testing.TB, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, Image(w, h), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

// WriteImage writes an encoded w×h image to path in fsys. The format follows
// the extension: .jpg/.jpeg are JPEG, anything else PNG.
func WriteImage(t testing.TB, fsys billy.Filesystem, path string, w, h int) {
	t.Helper()
	if err := util.WriteFile(fsys, path, encode(t, path, w, h), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteImageFile is WriteImage for the OS filesystem.
func WriteImageFile(t testing.TB, path string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, encode(t, path, w, h), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func encode(t testing.TB, path string, w, h int) []byte {
	switch filepath.Ext(path) {
	case ".jpg", ".jpeg":
		return JPEG(t, w, h)
	}
	return PNG(t, w, h)
}
