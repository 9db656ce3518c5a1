// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package imageload

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/pdiddy/pagebind/pkg/types"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoad_PNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	src.Set(1, 1, color.RGBA{R: 200, G: 10, B: 20, A: 255})

	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "p/page.png", encodePNG(t, src), 0o644))

	img, err := Load(fsys, "p/page.png")
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
	assert.Equal(t, color.NRGBA{R: 200, G: 10, B: 20, A: 255}, img.NRGBAAt(1, 1))
}

func TestLoad_BMP(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 5, 2))
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, src))

	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "p/page.bmp", buf.Bytes(), 0o644))

	img, err := Load(fsys, "p/page.bmp")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 5, 2), img.Bounds())
}

func TestLoad_Errors(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "p/notes.txt", []byte("not an image"), 0o644))

	_, err := Load(fsys, "p/notes.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrDecode)
	assert.Contains(t, err.Error(), "p/notes.txt")

	_, err = Load(fsys, "p/missing.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		src  image.Image
		x, y int
		want color.NRGBA
	}{
		{
			name: "gray",
			src: func() image.Image {
				g := image.NewGray(image.Rect(0, 0, 2, 2))
				g.SetGray(1, 0, color.Gray{Y: 77})
				return g
			}(),
			x: 1, y: 0,
			want: color.NRGBA{R: 77, G: 77, B: 77, A: 255},
		},
		{
			name: "alpha is discarded",
			src: func() image.Image {
				n := image.NewNRGBA(image.Rect(0, 0, 2, 2))
				n.SetNRGBA(0, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 0})
				return n
			}(),
			x: 0, y: 1,
			want: color.NRGBA{R: 10, G: 20, B: 30, A: 255},
		},
		{
			name: "paletted",
			src: func() image.Image {
				p := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{
					color.RGBA{A: 255},
					color.RGBA{R: 255, A: 255},
				})
				p.SetColorIndex(1, 1, 1)
				return p
			}(),
			x: 1, y: 1,
			want: color.NRGBA{R: 255, A: 255},
		},
		{
			name: "offset bounds are rebased",
			src: func() image.Image {
				r := image.NewRGBA(image.Rect(10, 10, 12, 12))
				r.Set(11, 10, color.RGBA{G: 128, A: 255})
				return r
			}(),
			x: 1, y: 0,
			want: color.NRGBA{G: 128, A: 255},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.src)
			assert.Equal(t, image.Pt(0, 0), got.Bounds().Min)
			assert.Equal(t, tt.want, got.NRGBAAt(tt.x, tt.y))
			for i := 3; i < len(got.Pix); i += 4 {
				require.Equal(t, uint8(0xff), got.Pix[i])
			}
		})
	}
}
