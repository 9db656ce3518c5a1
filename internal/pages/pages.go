// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pages builds the ordered page collection of a volume.
//
// In grouped mode chapters are flattened in chapter order, then file order
// within each chapter; no chapter boundary survives into the collection.
// Index 0 is always the candidate cover, so the cover must be the file that
// sorts first.
package pages

import (
	"image"

	"github.com/go-git/go-billy/v5"

	"github.com/pdiddy/pagebind/internal/imageload"
	"github.com/pdiddy/pagebind/internal/listing"
	"github.com/pdiddy/pagebind/pkg/types"
)

// Entry is one planned page: where it comes from, before decoding.
type Entry struct {
	// Group is the chapter directory name; empty in flat mode.
	Group string
	// Name is the file name.
	Name string
	// Path is the file path within the input filesystem.
	Path string
}

// Collection is the ordered list of decoded pages for one run. It is created
// fresh by Build and owns its bitmaps until assembly.
type Collection struct {
	pages []*types.Page
}

// NewCollection wraps already-decoded pages, mostly for tests and callers that
// decode pages themselves.
func NewCollection(pages ...*types.Page) *Collection {
	return &Collection{pages: pages}
}

// Len returns the number of pages.
func (c *Collection) Len() int { return len(c.pages) }

// Empty reports whether the collection has no pages.
func (c *Collection) Empty() bool { return len(c.pages) == 0 }

// Pages returns the pages in volume order. Callers may replace a page's
// Image in place; the slice itself must not be reordered.
func (c *Collection) Pages() []*types.Page { return c.pages }

// Append adds a page at the end.
func (c *Collection) Append(p *types.Page) { c.pages = append(c.pages, p) }

// Loader decodes one page image.
type Loader func(fsys billy.Filesystem, path string) (*image.NRGBA, error)

// Options tunes Build.
type Options struct {
	// Loader decodes each file; defaults to imageload.Load.
	Loader Loader

	// Progress, if set, is called after each page is decoded.
	Progress func(done, total int)
}

// Plan lists the pages Build would decode, in order, without opening them.
// mode must be ModeGrouped or ModeFlat; ModeAuto is resolved first.
func Plan(fsys billy.Filesystem, root string, mode types.Mode) ([]Entry, error) {
	mode, err := listing.ResolveMode(fsys, root, mode)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	switch mode {
	case types.ModeFlat:
		files, err := listing.ListFiles(fsys, root)
		if err != nil {
			return nil, err
		}
		for _, name := range files {
			entries = append(entries, Entry{Name: name, Path: fsys.Join(root, name)})
		}
	default:
		groups, err := listing.ListGroups(fsys, root)
		if err != nil {
			return nil, err
		}
		for _, g := range groups {
			for _, name := range g.Files {
				entries = append(entries, Entry{Group: g.Name, Name: name, Path: fsys.Join(g.Dir, name)})
			}
		}
	}
	return entries, nil
}

// Build decodes every planned page in order. The first failure aborts the
// build; no partial collection is returned. An input with no pages yields an
// EmptyInput error.
func Build(fsys billy.Filesystem, root string, mode types.Mode, opts Options) (*Collection, error) {
	entries, err := Plan(fsys, root, mode)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, types.EmptyInputError(root)
	}

	load := opts.Loader
	if load == nil {
		load = imageload.Load
	}

	c := &Collection{pages: make([]*types.Page, 0, len(entries))}
	for i, e := range entries {
		img, err := load(fsys, e.Path)
		if err != nil {
			return nil, err
		}
		c.Append(&types.Page{Source: e.Path, Group: e.Group, Image: img})
		if opts.Progress != nil {
			opts.Progress(i+1, len(entries))
		}
	}
	return c, nil
}
