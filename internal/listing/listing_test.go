// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package listing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pagebind/pkg/types"
)

func writeTree(t *testing.T, fsys billy.Filesystem, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, util.WriteFile(fsys, p, []byte("x"), 0o644))
	}
}

func TestListGroups(t *testing.T) {
	fsys := memfs.New()
	writeTree(t, fsys,
		"input/ch10/002.png",
		"input/ch10/001.png",
		"input/ch02/b.jpg",
		"input/ch02/a.jpg",
		"input/ch02/.DS_Store",
		"input/Extra/z.png",
		"input/loose.png",
		"input/.trash/x.png",
	)

	groups, err := ListGroups(fsys, "input")
	require.NoError(t, err)

	require.Len(t, groups, 3)
	// Byte order: uppercase sorts before lowercase.
	assert.Equal(t, "Extra", groups[0].Name)
	assert.Equal(t, "ch02", groups[1].Name)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, groups[1].Files)
	assert.Equal(t, "ch10", groups[2].Name)
	assert.Equal(t, []string{"001.png", "002.png"}, groups[2].Files)
	assert.Equal(t, fsys.Join("input", "ch10"), groups[2].Dir)
}

func TestListGroups_SkipsNestedDirectoriesInGroups(t *testing.T) {
	fsys := memfs.New()
	writeTree(t, fsys, "input/ch01/a.png", "input/ch01/nested/b.png")

	groups, err := ListGroups(fsys, "input")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"a.png"}, groups[0].Files)
}

func TestListFiles(t *testing.T) {
	fsys := memfs.New()
	writeTree(t, fsys, "input/b.jpg", "input/a.jpg", "input/A.jpg", "input/sub/c.jpg", "input/.hidden")

	files, err := ListFiles(fsys, "input")
	require.NoError(t, err)
	assert.Equal(t, []string{"A.jpg", "a.jpg", "b.jpg"}, files)
}

func TestListFiles_OSFilesystem(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"10.png", "02.png", "1.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	files, err := ListFiles(osfs.New(dir), ".")
	require.NoError(t, err)
	assert.Equal(t, []string{"02.png", "1.png", "10.png"}, files)
}

func TestMissingRoot(t *testing.T) {
	fsys := memfs.New()

	_, err := ListFiles(fsys, "nope")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = ListGroups(fsys, "nope")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = DetectMode(fsys, "nope")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestRootIsFile(t *testing.T) {
	fsys := memfs.New()
	writeTree(t, fsys, "input.png")

	_, err := ListFiles(fsys, "input.png")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestResolveMode(t *testing.T) {
	grouped := memfs.New()
	writeTree(t, grouped, "input/ch01/a.png")
	flat := memfs.New()
	writeTree(t, flat, "input/a.png", "input/.cache/x")

	mode, err := ResolveMode(grouped, "input", types.ModeAuto)
	require.NoError(t, err)
	assert.Equal(t, types.ModeGrouped, mode)

	mode, err = ResolveMode(flat, "input", types.ModeAuto)
	require.NoError(t, err)
	assert.Equal(t, types.ModeFlat, mode)

	mode, err = ResolveMode(grouped, "input", types.ModeFlat)
	require.NoError(t, err)
	assert.Equal(t, types.ModeFlat, mode)
}

func TestSymlinkedEntries(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input")
	elsewhere := filepath.Join(dir, "elsewhere")
	for _, p := range []string{
		filepath.Join(input, "ch01", "001.png"),
		filepath.Join(elsewhere, "ch02", "001.png"),
		filepath.Join(elsewhere, "002.png"),
	} {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	require.NoError(t, os.Symlink(filepath.Join(elsewhere, "ch02"), filepath.Join(input, "ch02")))
	require.NoError(t, os.Symlink(filepath.Join(elsewhere, "002.png"), filepath.Join(input, "ch01", "002.png")))
	fsys := osfs.New(input)

	t.Run("chapter directory", func(t *testing.T) {
		groups, err := ListGroups(fsys, ".")
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Equal(t, "ch02", groups[1].Name)
		assert.Equal(t, []string{"001.png"}, groups[1].Files)
	})

	t.Run("page file", func(t *testing.T) {
		files, err := ListFiles(fsys, "ch01")
		require.NoError(t, err)
		assert.Equal(t, []string{"001.png", "002.png"}, files)
	})

	t.Run("only chapter is a link", func(t *testing.T) {
		root := filepath.Join(dir, "linked-only")
		require.NoError(t, os.MkdirAll(root, 0o755))
		require.NoError(t, os.Symlink(filepath.Join(elsewhere, "ch02"), filepath.Join(root, "ch01")))

		mode, err := DetectMode(osfs.New(root), ".")
		require.NoError(t, err)
		assert.Equal(t, types.ModeGrouped, mode)
	})

	t.Run("dangling link", func(t *testing.T) {
		root := filepath.Join(dir, "dangling")
		require.NoError(t, os.MkdirAll(root, 0o755))
		require.NoError(t, os.Symlink(filepath.Join(dir, "missing.png"), filepath.Join(root, "a.png")))

		_, err := ListFiles(osfs.New(root), ".")
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.Contains(t, err.Error(), "a.png")

		_, err = DetectMode(osfs.New(root), ".")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}
