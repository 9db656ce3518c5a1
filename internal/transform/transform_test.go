// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pagebind/internal/pages"
	"github.com/pdiddy/pagebind/internal/testsupport"
	"github.com/pdiddy/pagebind/pkg/types"
)

func page(name string, w, h int) *types.Page {
	return &types.Page{Source: name, Image: testsupport.Image(w, h)}
}

func sizes(c *pages.Collection) [][2]int {
	var out [][2]int
	for _, p := range c.Pages() {
		out = append(out, [2]int{p.Width(), p.Height()})
	}
	return out
}

func TestScaledSize(t *testing.T) {
	tests := []struct {
		w, h   int
		f      float64
		ww, wh int
	}{
		{600, 800, 0.5, 300, 400},
		{900, 600, 0.6, 540, 360},
		{1001, 1499, 0.6, 600, 899},
		{333, 7, 0.5, 166, 3},
		{640, 480, 1.0, 640, 480},
		{10, 20, 1.5, 15, 30},
		{1, 1, 0.99, 0, 0},
	}
	for _, tt := range tests {
		w, h := ScaledSize(tt.w, tt.h, tt.f)
		assert.Equal(t, [2]int{tt.ww, tt.wh}, [2]int{w, h}, "%dx%d * %v", tt.w, tt.h, tt.f)
	}
}

func TestScale(t *testing.T) {
	c := pages.NewCollection(page("a", 600, 800), page("b", 901, 601), page("c", 7, 3))

	require.NoError(t, Scale(c, 0.5))
	assert.Equal(t, [][2]int{{300, 400}, {450, 300}, {3, 1}}, sizes(c))
	for _, p := range c.Pages() {
		assert.Equal(t, image.Pt(0, 0), p.Image.Bounds().Min)
	}
}

func TestScale_IdentityKeepsBitmap(t *testing.T) {
	p := page("a", 40, 60)
	orig := p.Image
	c := pages.NewCollection(p)

	require.NoError(t, Scale(c, 1.0))
	assert.Same(t, orig, p.Image)
	assert.Equal(t, [][2]int{{40, 60}}, sizes(c))
}

func TestScale_InvalidFactor(t *testing.T) {
	for _, f := range []float64{0, -1} {
		c := pages.NewCollection(page("a", 10, 10))
		err := Scale(c, f)
		assert.ErrorIs(t, err, types.ErrConfiguration)
		assert.Equal(t, [][2]int{{10, 10}}, sizes(c))
	}
}

func TestScale_ZeroDimensionRejectedBeforeResizing(t *testing.T) {
	first := page("big", 100, 100)
	orig := first.Image
	c := pages.NewCollection(first, page("thin", 100, 1))

	err := Scale(c, 0.5)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrConfiguration)
	assert.Contains(t, err.Error(), "thin")
	assert.Same(t, orig, first.Image, "no page may be resized when validation fails")
}

func TestValidateScale_TooLarge(t *testing.T) {
	for _, f := range []float64{1e300, 4000} {
		c := pages.NewCollection(page("a.png", 20, 30))
		err := ValidateScale(c, f)
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrConfiguration)
		assert.Contains(t, err.Error(), "too large")
		assert.Contains(t, err.Error(), "a.png (20x30)")
		assert.NotContains(t, err.Error(), "-")
	}

	// 20*3000 = 60000 still fits.
	assert.NoError(t, ValidateScale(pages.NewCollection(page("a.png", 20, 10)), 3000))
}

func TestOrientCover(t *testing.T) {
	tests := []struct {
		name        string
		hasCover    bool
		pages       [][2]int
		wantRotated bool
		want        [][2]int
	}{
		{"landscape cover", true, [][2]int{{900, 600}, {600, 800}}, true, [][2]int{{600, 900}, {600, 800}}},
		{"portrait cover", true, [][2]int{{600, 900}}, false, [][2]int{{600, 900}}},
		{"square cover", true, [][2]int{{500, 500}}, false, [][2]int{{500, 500}}},
		{"cover disabled", false, [][2]int{{900, 600}}, false, [][2]int{{900, 600}}},
		{"later landscape pages untouched", true, [][2]int{{600, 900}, {1200, 800}}, false, [][2]int{{600, 900}, {1200, 800}}},
		{"empty", true, nil, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := pages.NewCollection()
			for i, s := range tt.pages {
				c.Append(page(string(rune('a'+i)), s[0], s[1]))
			}
			rotated := OrientCover(c, tt.hasCover, types.RotateClockwise)
			assert.Equal(t, tt.wantRotated, rotated)
			assert.Equal(t, tt.want, sizes(c))
		})
	}
}

func TestOrientCover_RotatesOnce(t *testing.T) {
	c := pages.NewCollection(page("cover", 30, 20))
	assert.True(t, OrientCover(c, true, types.RotateClockwise))
	assert.False(t, OrientCover(c, true, types.RotateClockwise), "an upright cover is not rotated again")
	assert.Equal(t, [][2]int{{20, 30}}, sizes(c))
}

func TestOrientCover_Direction(t *testing.T) {
	marker := color.NRGBA{R: 255, A: 255}
	newCover := func() *types.Page {
		img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
		img.SetNRGBA(0, 0, marker)
		return &types.Page{Source: "cover", Image: img}
	}

	cw := pages.NewCollection(newCover())
	require.True(t, OrientCover(cw, true, types.RotateClockwise))
	assert.Equal(t, marker, cw.Pages()[0].Image.NRGBAAt(1, 0), "clockwise moves top-left to top-right")

	ccw := pages.NewCollection(newCover())
	require.True(t, OrientCover(ccw, true, types.RotateCounterClockwise))
	assert.Equal(t, marker, ccw.Pages()[0].Image.NRGBAAt(0, 2), "counter-clockwise moves top-left to bottom-left")
}
