package render

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestCompare(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	base := solid(4, 4, white)

	shifted := solid(4, 4, white)
	shifted.SetRGBA(1, 1, color.RGBA{0, 0, 0, 255})
	moved := solid(4, 4, white)
	moved.SetRGBA(2, 1, color.RGBA{0, 0, 0, 255})

	tests := []struct {
		name      string
		actual    image.Image
		expected  image.Image
		opts      CompareOptions
		wantMatch bool
		wantDiff  int
	}{
		{"identical", base, solid(4, 4, white), DefaultCompareOptions(), true, 0},
		{"within tolerance", solid(4, 4, color.RGBA{254, 254, 254, 255}), base, DefaultCompareOptions(), true, 0},
		{"one pixel off", shifted, base, DefaultCompareOptions(), false, 1},
		{"percentage allowance", shifted, base, CompareOptions{MaxDifferentPercent: 10}, true, 1},
		{"moved pixel", shifted, moved, CompareOptions{}, false, 2},
		{"fuzzy radius absorbs a move", shifted, moved, CompareOptions{FuzzyRadius: 1}, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compare(tt.actual, tt.expected, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMatch, res.Match)
			assert.Equal(t, tt.wantDiff, res.DifferentPixels)
			assert.Equal(t, 16, res.TotalPixels)
		})
	}
}

func TestCompareDimensionMismatch(t *testing.T) {
	_, err := Compare(solid(2, 2, color.RGBA{}), solid(3, 2, color.RGBA{}), DefaultCompareOptions())
	assert.ErrorContains(t, err, "dimensions differ")
}

func TestCompareDiffImage(t *testing.T) {
	a := solid(2, 1, color.RGBA{255, 255, 255, 255})
	b := solid(2, 1, color.RGBA{255, 255, 255, 255})
	b.SetRGBA(1, 0, color.RGBA{0, 0, 0, 255})

	res, err := Compare(a, b, CompareOptions{Diff: true})
	require.NoError(t, err)
	require.NotNil(t, res.Diff)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, res.Diff.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, res.Diff.RGBAAt(1, 0))

	path := filepath.Join(t.TempDir(), "diff.png")
	require.NoError(t, WritePNG(path, res.Diff))
	loaded, err := LoadPNG(path)
	require.NoError(t, err)
	same, err := Compare(loaded, res.Diff, CompareOptions{})
	require.NoError(t, err)
	assert.True(t, same.Match)
}
