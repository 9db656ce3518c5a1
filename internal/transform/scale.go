// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transform resizes pages and corrects the orientation of the cover.
package transform

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/pdiddy/pagebind/internal/pages"
	"github.com/pdiddy/pagebind/pkg/types"
)

// MaxDimension is the largest page side that can be embedded; image/jpeg
// rejects anything wider or taller.
const MaxDimension = 1<<16 - 1

// ScaledSize returns floor(w·f) × floor(h·f).
func ScaledSize(w, h int, f float64) (int, int) {
	return int(math.Floor(float64(w) * f)), int(math.Floor(float64(h) * f))
}

// ValidateScale checks f against every page of c without touching them. A
// non-positive or non-finite factor, or one that shrinks any page to a zero
// dimension or grows it past MaxDimension, is a configuration error.
func ValidateScale(c *pages.Collection, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return types.ConfigError("downscale_factor", "must be a positive number, got %v", f)
	}
	for _, p := range c.Pages() {
		if fw, fh := float64(p.Width())*f, float64(p.Height())*f; fw > MaxDimension || fh > MaxDimension {
			return types.ConfigError("downscale_factor",
				"%v is too large: %s (%dx%d) would exceed %d pixels per side",
				f, p.Source, p.Width(), p.Height(), MaxDimension)
		}
		w, h := ScaledSize(p.Width(), p.Height(), f)
		if w < 1 || h < 1 {
			return types.ConfigError("downscale_factor",
				"%v shrinks %s (%dx%d) to %dx%d", f, p.Source, p.Width(), p.Height(), w, h)
		}
	}
	return nil
}

// Scale resizes every page of c in place by f using Catmull-Rom resampling.
// The factor is validated against all pages before the first resize. Pages
// whose size would not change are left as they are.
func Scale(c *pages.Collection, f float64) error {
	if err := ValidateScale(c, f); err != nil {
		return err
	}
	for _, p := range c.Pages() {
		w, h := ScaledSize(p.Width(), p.Height(), f)
		if w == p.Width() && h == p.Height() {
			continue
		}
		p.Image = resize(p.Image, w, h)
	}
	return nil
}

func resize(src *image.NRGBA, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
