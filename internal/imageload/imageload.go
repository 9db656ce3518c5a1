// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imageload decodes page images into opaque NRGBA bitmaps.
//
// JPEG, PNG and GIF come from the standard library; BMP, TIFF and WebP are
// registered from golang.org/x/image.
package imageload

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/go-git/go-billy/v5"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pdiddy/pagebind/pkg/types"
)

// Load decodes the image at path and normalizes it with Normalize. A missing
// file yields a NotFound error; unreadable image data yields a Decode error.
// Both name path.
func Load(fsys billy.Filesystem, path string) (*image.NRGBA, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, types.NotFoundError(path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, types.DecodeError(path, err)
	}
	return Normalize(img), nil
}

// Normalize copies src into a new NRGBA whose bounds start at the origin and
// whose alpha is 0xff everywhere. Alpha is dropped, not composited: a
// transparent pixel keeps its stored color.
func Normalize(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			srcRow := n.Pix[n.PixOffset(b.Min.X, b.Min.Y+y):]
			dstRow := dst.Pix[y*dst.Stride:]
			for x := 0; x < b.Dx(); x++ {
				i := x * 4
				dstRow[i+0] = srcRow[i+0]
				dstRow[i+1] = srcRow[i+1]
				dstRow[i+2] = srcRow[i+2]
				dstRow[i+3] = 0xff
			}
		}
		return dst
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			c.A = 0xff
			dst.SetNRGBA(x-b.Min.X, y-b.Min.Y, c)
		}
	}
	return dst
}
