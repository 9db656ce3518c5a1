// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"github.com/disintegration/imaging"

	"github.com/pdiddy/pagebind/internal/pages"
	"github.com/pdiddy/pagebind/pkg/types"
)

// OrientCover turns a landscape first page upright and reports whether it did.
// Scanned covers are often stored sideways; only page 0 is ever inspected.
// Square and portrait covers are left alone, as is everything when hasCover
// is false or c is empty. The canvas grows to fit, so nothing is cropped.
func OrientCover(c *pages.Collection, hasCover bool, dir types.Rotation) bool {
	if !hasCover || c.Empty() {
		return false
	}
	cover := c.Pages()[0]
	if !cover.Landscape() {
		return false
	}

	if dir == types.RotateCounterClockwise {
		cover.Image = imaging.Rotate90(cover.Image)
	} else {
		cover.Image = imaging.Rotate270(cover.Image)
	}
	return true
}
