// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "image"

// ChapterGroup is one chapter directory and the image files directly under it,
// sorted by name.
type ChapterGroup struct {
	// Name is the directory name (sort key among groups).
	Name string `json:"name" yaml:"name"`

	// Dir is the directory path relative to the input filesystem.
	Dir string `json:"dir" yaml:"dir"`

	// Files lists file names in byte order.
	Files []string `json:"files" yaml:"files"`
}

// Page is one decoded page of the volume.
type Page struct {
	// Source is the path the page was decoded from.
	Source string

	// Group is the chapter the page belongs to; empty in flat mode.
	Group string

	// Image is an opaque bitmap. Alpha is always 0xff.
	Image *image.NRGBA
}

// Width returns the page width in pixels.
func (p *Page) Width() int { return p.Image.Bounds().Dx() }

// Height returns the page height in pixels.
func (p *Page) Height() int { return p.Image.Bounds().Dy() }

// Landscape reports whether the page is wider than it is tall.
func (p *Page) Landscape() bool { return p.Width() > p.Height() }
