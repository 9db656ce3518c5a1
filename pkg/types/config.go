// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"math"
	"path/filepath"
	"strings"
)

const (
	// DefaultDownscaleFactor keeps pages readable on an e-reader while
	// cutting their size roughly in half.
	DefaultDownscaleFactor = 0.6

	// DefaultAuthor is used when no author is configured.
	DefaultAuthor = "Unknown Author"

	// DefaultJPEGQuality is the encoder quality for embedded pages.
	DefaultJPEGQuality = 75

	pdfExt = ".pdf"
)

// Mode selects how the input root is traversed.
type Mode string

const (
	// ModeAuto picks grouped when the root has subdirectories, flat otherwise.
	ModeAuto Mode = "auto"
	// ModeGrouped treats each subdirectory of the root as a chapter.
	ModeGrouped Mode = "grouped"
	// ModeFlat treats the files directly under the root as the pages.
	ModeFlat Mode = "flat"
)

// Rotation is the direction a landscape cover is turned.
type Rotation string

const (
	// RotateClockwise turns the cover a quarter turn clockwise.
	RotateClockwise Rotation = "cw"
	// RotateCounterClockwise turns the cover a quarter turn counter-clockwise.
	RotateCounterClockwise Rotation = "ccw"
)

// Config holds everything a conversion run needs. It is built once (from
// flags, a config file, or code), then treated as read-only.
type Config struct {
	// InputRoot is the directory holding chapter folders or page images.
	InputRoot string `json:"input_root" yaml:"input_root" toml:"input_root" mapstructure:"input_root"`

	// OutputRoot is the directory the volume is written to.
	OutputRoot string `json:"output_root" yaml:"output_root" toml:"output_root" mapstructure:"output_root"`

	// OutputFilename is the base name of the volume; ".pdf" is appended.
	OutputFilename string `json:"output_filename" yaml:"output_filename" toml:"output_filename" mapstructure:"output_filename"`

	// DownscaleFactor multiplies the width and height of every page (default 0.6).
	DownscaleFactor float64 `json:"downscale_factor" yaml:"downscale_factor" toml:"downscale_factor" mapstructure:"downscale_factor"`

	// Author is written to the document info (default "Unknown Author").
	Author string `json:"author" yaml:"author" toml:"author" mapstructure:"author"`

	// Title is written to the document info (default: OutputFilename).
	Title string `json:"title" yaml:"title" toml:"title" mapstructure:"title"`

	// Subject and Keywords override the matching .volume.yaml fields when set.
	Subject  string `json:"subject,omitempty" yaml:"subject,omitempty" toml:"subject,omitempty" mapstructure:"subject"`
	Keywords string `json:"keywords,omitempty" yaml:"keywords,omitempty" toml:"keywords,omitempty" mapstructure:"keywords"`

	// HasCover enables landscape-cover rotation of the first page (default true).
	HasCover bool `json:"has_cover" yaml:"has_cover" toml:"has_cover" mapstructure:"has_cover"`

	// Mode selects grouped, flat, or auto traversal (default auto).
	Mode Mode `json:"mode" yaml:"mode" toml:"mode" mapstructure:"mode"`

	// CoverRotation is the turn applied to a landscape cover (default cw).
	CoverRotation Rotation `json:"cover_rotation" yaml:"cover_rotation" toml:"cover_rotation" mapstructure:"cover_rotation"`

	// JPEGQuality is the 1-100 quality used for embedded pages (default 75).
	JPEGQuality int `json:"jpeg_quality" yaml:"jpeg_quality" toml:"jpeg_quality" mapstructure:"jpeg_quality"`
}

// DefaultConfig returns a Config with every optional field at its default.
func DefaultConfig() Config {
	return Config{
		DownscaleFactor: DefaultDownscaleFactor,
		Author:          DefaultAuthor,
		HasCover:        true,
		Mode:            ModeAuto,
		CoverRotation:   RotateClockwise,
		JPEGQuality:     DefaultJPEGQuality,
	}
}

// Normalize trims string fields and fills empty optional fields with their
// defaults. It never changes DownscaleFactor or HasCover; those zero values
// are meaningful.
func (c Config) Normalize() Config {
	c.InputRoot = strings.TrimSpace(c.InputRoot)
	c.OutputRoot = strings.TrimSpace(c.OutputRoot)
	c.OutputFilename = strings.TrimSpace(c.OutputFilename)
	c.Author = strings.TrimSpace(c.Author)
	c.Title = strings.TrimSpace(c.Title)
	c.Subject = strings.TrimSpace(c.Subject)
	c.Keywords = strings.TrimSpace(c.Keywords)
	c.Mode = Mode(strings.ToLower(strings.TrimSpace(string(c.Mode))))
	c.CoverRotation = Rotation(strings.ToLower(strings.TrimSpace(string(c.CoverRotation))))

	if c.Author == "" {
		c.Author = DefaultAuthor
	}
	if c.Title == "" {
		c.Title = strings.TrimSuffix(c.OutputFilename, pdfExt)
	}
	if c.Mode == "" {
		c.Mode = ModeAuto
	}
	if c.CoverRotation == "" {
		c.CoverRotation = RotateClockwise
	}
	if c.JPEGQuality == 0 {
		c.JPEGQuality = DefaultJPEGQuality
	}
	return c
}

// Validate checks every field and returns a ConfigError naming the first
// offending one.
func (c Config) Validate() error {
	if c.InputRoot == "" {
		return ConfigError("input_root", "is required")
	}
	if c.OutputRoot == "" {
		return ConfigError("output_root", "is required")
	}
	if c.OutputFilename == "" {
		return ConfigError("output_filename", "is required")
	}
	if strings.ContainsRune(c.OutputFilename, '/') || strings.ContainsRune(c.OutputFilename, filepath.Separator) {
		return ConfigError("output_filename", "must be a file name, got %q", c.OutputFilename)
	}
	f := c.DownscaleFactor
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return ConfigError("downscale_factor", "must be a positive number, got %v", f)
	}
	switch c.Mode {
	case ModeAuto, ModeGrouped, ModeFlat:
	default:
		return ConfigError("mode", "must be auto, grouped, or flat, got %q", c.Mode)
	}
	switch c.CoverRotation {
	case RotateClockwise, RotateCounterClockwise:
	default:
		return ConfigError("cover_rotation", "must be cw or ccw, got %q", c.CoverRotation)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return ConfigError("jpeg_quality", "must be between 1 and 100, got %d", c.JPEGQuality)
	}
	return nil
}

// OutputPath returns OutputRoot/OutputFilename with ".pdf" appended unless the
// name already ends in it.
func (c Config) OutputPath() string {
	name := c.OutputFilename
	if !strings.EqualFold(filepath.Ext(name), pdfExt) {
		name += pdfExt
	}
	return filepath.Join(c.OutputRoot, name)
}
