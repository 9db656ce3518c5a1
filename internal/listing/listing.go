// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package listing enumerates chapter directories and page files in a stable
// order. Names are compared byte by byte so the result never depends on the
// order the filesystem returns entries in.
package listing

import (
	"errors"
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/pdiddy/pagebind/pkg/types"
)

// ListGroups returns the subdirectories of root sorted by name, each with the
// sorted files directly beneath it. Non-directory entries under root are
// skipped.
func ListGroups(fsys billy.Filesystem, root string) ([]types.ChapterGroup, error) {
	entries, err := readDir(fsys, root)
	if err != nil {
		return nil, err
	}

	var groups []types.ChapterGroup
	for _, e := range entries {
		if !e.mode.IsDir() {
			continue
		}
		dir := fsys.Join(root, e.name)
		files, err := ListFiles(fsys, dir)
		if err != nil {
			return nil, err
		}
		groups = append(groups, types.ChapterGroup{
			Name:  e.name,
			Dir:   dir,
			Files: files,
		})
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups, nil
}

// ListFiles returns the names of the regular files directly under root,
// sorted. Directories and dot-files are skipped.
func ListFiles(fsys billy.Filesystem, root string) ([]string, error) {
	entries, err := readDir(fsys, root)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.mode.IsRegular() {
			continue
		}
		names = append(names, e.name)
	}
	sort.Strings(names)
	return names, nil
}

// DetectMode reports ModeGrouped when root has at least one visible
// subdirectory and ModeFlat otherwise.
func DetectMode(fsys billy.Filesystem, root string) (types.Mode, error) {
	entries, err := readDir(fsys, root)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if e.mode.IsDir() {
			return types.ModeGrouped, nil
		}
	}
	return types.ModeFlat, nil
}

// ResolveMode turns ModeAuto into a concrete mode; other modes pass through.
func ResolveMode(fsys billy.Filesystem, root string, mode types.Mode) (types.Mode, error) {
	if mode != types.ModeAuto && mode != "" {
		return mode, nil
	}
	return DetectMode(fsys, root)
}

// entry is a visible directory entry typed by what it resolves to.
type entry struct {
	name string
	mode os.FileMode
}

// readDir lists the visible entries of root. Symlinks are classified by
// their target; a dangling link is a NotFound error.
func readDir(fsys billy.Filesystem, root string) ([]entry, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, types.NotFoundError(root, err)
	}
	if !info.IsDir() {
		return nil, types.NotFoundError(root, errors.New("not a directory"))
	}
	infos, err := fsys.ReadDir(root)
	if err != nil {
		return nil, types.NotFoundError(root, err)
	}

	entries := make([]entry, 0, len(infos))
	for _, fi := range infos {
		if hidden(fi.Name()) {
			continue
		}
		mode := fi.Mode()
		if mode&os.ModeSymlink != 0 {
			path := fsys.Join(root, fi.Name())
			target, err := fsys.Stat(path)
			if err != nil {
				return nil, types.NotFoundError(path, err)
			}
			mode = target.Mode()
		}
		entries = append(entries, entry{name: fi.Name(), mode: mode})
	}
	return entries, nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
