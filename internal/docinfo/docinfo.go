// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docinfo builds the document information (Title, Author, and so on)
// written into a volume.
//
// Fields can come from an optional sidecar file, SidecarName, in the input
// root. Configured values are merged over it: a field set in configuration
// replaces the sidecar value, every other sidecar field is kept.
package docinfo

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/jung-kurt/gofpdf"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/pagebind/pkg/types"
)

// SidecarName is the metadata file looked up in the input root. The leading
// dot keeps the listing from treating it as a page.
const SidecarName = ".volume.yaml"

// Info is the document information dictionary of a volume.
type Info struct {
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Author   string `json:"author,omitempty" yaml:"author,omitempty"`
	Subject  string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Keywords string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Creator  string `json:"creator,omitempty" yaml:"creator,omitempty"`
}

// LoadSidecar reads SidecarName from root. A missing sidecar is not an error
// and yields a zero Info; a malformed one is a configuration error.
func LoadSidecar(fsys billy.Filesystem, root string) (Info, error) {
	path := fsys.Join(root, SidecarName)
	f, err := fsys.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Info{}, nil
		}
		return Info{}, types.NotFoundError(path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return Info{}, types.NotFoundError(path, err)
	}

	var info Info
	if err := yaml.Unmarshal(data, &info); err != nil {
		return Info{}, types.ConfigError(SidecarName, "parsing %s: %v", path, err)
	}
	return info, nil
}

// Merge returns base with every non-empty field of override applied on top.
// All fields of the result are NFC-normalized.
func Merge(base, override Info) Info {
	pick := func(b, o string) string {
		if o != "" {
			return norm.NFC.String(o)
		}
		return norm.NFC.String(b)
	}
	return Info{
		Title:    pick(base.Title, override.Title),
		Author:   pick(base.Author, override.Author),
		Subject:  pick(base.Subject, override.Subject),
		Keywords: pick(base.Keywords, override.Keywords),
		Creator:  pick(base.Creator, override.Creator),
	}
}

// Apply sets the non-empty fields of info on pdf. Values outside ASCII are
// written as UTF-16 text strings.
func Apply(pdf *gofpdf.Fpdf, info Info) {
	if info.Title != "" {
		pdf.SetTitle(info.Title, !isASCII(info.Title))
	}
	if info.Author != "" {
		pdf.SetAuthor(info.Author, !isASCII(info.Author))
	}
	if info.Subject != "" {
		pdf.SetSubject(info.Subject, !isASCII(info.Subject))
	}
	if info.Keywords != "" {
		pdf.SetKeywords(info.Keywords, !isASCII(info.Keywords))
	}
	if info.Creator != "" {
		pdf.SetCreator(info.Creator, !isASCII(info.Creator))
	}
}

// String renders info as "Title by Author".
func (i Info) String() string {
	return fmt.Sprintf("%q by %q", i.Title, i.Author)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
