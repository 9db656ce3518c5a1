// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs the volume pipeline: list the input, decode the pages,
// turn a sideways cover upright, downscale, and write one PDF with its
// document information.
//
// Every failure is fatal to the run and no output file is produced unless the
// whole pipeline completes.
package convert

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/uuid"

	"github.com/pdiddy/pagebind/internal/assemble"
	"github.com/pdiddy/pagebind/internal/docinfo"
	"github.com/pdiddy/pagebind/internal/listing"
	"github.com/pdiddy/pagebind/internal/logging"
	"github.com/pdiddy/pagebind/internal/pages"
	"github.com/pdiddy/pagebind/internal/transform"
	"github.com/pdiddy/pagebind/pkg/types"
)

// Creator is written to the document information unless the sidecar sets one.
const Creator = "pagebind"

// Options carries the collaborators of a run. The zero value reads the input
// from disk and discards all output.
type Options struct {
	// FS is the input filesystem, rooted at the input root. Defaults to the OS
	// filesystem at cfg.InputRoot.
	FS billy.Filesystem

	// Out receives the progress lines ("Downscaling ...", "Rotating cover",
	// "Done").
	Out io.Writer

	// Logger receives structured diagnostics.
	Logger *slog.Logger

	// Progress, if set, is called after each page is decoded.
	Progress func(done, total int)
}

// Result summarizes a successful run.
type Result struct {
	RunID        string
	Mode         types.Mode
	CoverRotated bool
	Document     *assemble.Document
}

// Run converts cfg.InputRoot into cfg.OutputPath(). cfg is normalized and
// validated first; a configuration error is reported before any file is read.
func Run(cfg types.Config, opts Options) (*Result, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = osfs.New(cfg.InputRoot)
	}
	const root = "."

	result := &Result{RunID: uuid.NewString()}
	log = log.With("run_id", result.RunID)

	mode, err := listing.ResolveMode(fsys, root, cfg.Mode)
	if err != nil {
		return nil, fmt.Errorf("reading input %s: %w", cfg.InputRoot, err)
	}
	result.Mode = mode
	log.Info("reading input", "input", cfg.InputRoot, "mode", mode)

	sidecar, err := docinfo.LoadSidecar(fsys, root)
	if err != nil {
		return nil, err
	}

	c, err := pages.Build(fsys, root, mode, pages.Options{Progress: opts.Progress})
	if err != nil {
		return nil, fmt.Errorf("reading input %s: %w", cfg.InputRoot, err)
	}
	log.Debug("decoded pages", "pages", c.Len())

	// A quarter turn swaps width and height, so the factor can be checked
	// before the cover is oriented.
	if err := transform.ValidateScale(c, cfg.DownscaleFactor); err != nil {
		return nil, err
	}

	if transform.OrientCover(c, cfg.HasCover, cfg.CoverRotation) {
		result.CoverRotated = true
		fmt.Fprintln(out, "Rotating cover")
		log.Info("rotated cover", "source", c.Pages()[0].Source, "direction", cfg.CoverRotation)
	}
	fmt.Fprintf(out, "Downscaling %d images with a factor of %.2f\n", c.Len(), cfg.DownscaleFactor)
	if err := transform.Scale(c, cfg.DownscaleFactor); err != nil {
		return nil, err
	}

	info := docinfo.Merge(docinfo.Info{Creator: Creator}, sidecar)
	info = docinfo.Merge(info, docinfo.Info{
		Title:    cfg.Title,
		Author:   cfg.Author,
		Subject:  cfg.Subject,
		Keywords: cfg.Keywords,
	})

	doc, err := assemble.Assemble(c, cfg.OutputPath(), info, assemble.Options{JPEGQuality: cfg.JPEGQuality})
	if err != nil {
		return nil, err
	}
	result.Document = doc
	log.Info("wrote volume",
		"path", doc.Path,
		"pages", len(doc.Pages),
		"size", humanize.Bytes(uint64(doc.Bytes)),
		"info", info.String(),
	)

	fmt.Fprintln(out, "Done")
	return result, nil
}
