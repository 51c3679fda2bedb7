package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autosize/pkg/html"
	"autosize/pkg/layout"
	"autosize/pkg/text"
)

func renderSource(t *testing.T, src string, scroll func(*layout.LayoutEngine, *html.Document)) image.Image {
	t.Helper()
	doc, err := html.Parse(src)
	require.NoError(t, err)
	le := layout.NewLayoutEngine(doc, 200, 100)
	le.SetMeasurer(text.FixedMeasurer{Advance: 0.5})
	if scroll != nil {
		scroll(le, doc)
	}
	r := NewRenderer(200, 100)
	r.SetFonts(text.FontConfig{})
	r.Render(le)
	return r.Image()
}

func rgb(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestRenderTextareaChrome(t *testing.T) {
	img := renderSource(t, `<textarea></textarea>`, nil)
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, rgb(img, 0, 0), "border")
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgb(img, 1, 1), "padding")
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgb(img, 150, 50), "canvas")
}

func TestRenderBackgroundColor(t *testing.T) {
	img := renderSource(t, `<div style="height: 20px; background-color: #0000ff"></div>`, nil)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, rgb(img, 100, 10))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgb(img, 100, 30))
}

func TestRenderScrollbar(t *testing.T) {
	// Ten 15px lines in a 30px box: the gutter starts after the 119px
	// client width plus the 1px border, and the thumb covers the top.
	img := renderSource(t, "<textarea>1\n2\n3\n4\n5\n6\n7\n8\n9\n10</textarea>", nil)
	assert.Equal(t, color.RGBA{160, 160, 160, 255}, rgb(img, 127, 4), "thumb")
	assert.Equal(t, color.RGBA{235, 235, 235, 255}, rgb(img, 127, 30), "track")
}

func TestRenderFollowsScrollOffset(t *testing.T) {
	img := renderSource(t, "<textarea>1\n2\n3\n4\n5\n6\n7\n8\n9\n10</textarea>",
		func(le *layout.LayoutEngine, doc *html.Document) {
			ta := doc.Root.ElementsByTagName("textarea")[0]
			le.SetScrollTop(ta, 120)
		})
	assert.Equal(t, color.RGBA{235, 235, 235, 255}, rgb(img, 127, 4), "track above thumb")
	assert.Equal(t, color.RGBA{160, 160, 160, 255}, rgb(img, 127, 30), "thumb at bottom")
}

func TestSaveAndEncodePNG(t *testing.T) {
	doc, err := html.Parse(`<textarea>hello</textarea>`)
	require.NoError(t, err)
	le := layout.NewLayoutEngine(doc, 200, 100)
	r := NewRenderer(200, 100)
	r.Render(le)

	var buf bytes.Buffer
	require.NoError(t, r.EncodePNG(&buf))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 100), decoded.Bounds())

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, r.SavePNG(path))
	assert.FileExists(t, path)
}
