// Package render paints a laid-out document to an image with gg. It draws
// block backgrounds and borders, anonymous text lines and textareas with
// their text clipped to the padding box, shifted by their scroll offset,
// and a scrollbar when one is shown.
package render

import (
	"image"
	"io"

	"github.com/fogleman/gg"
	"go.uber.org/zap"

	"autosize/pkg/css"
	"autosize/pkg/layout"
	"autosize/pkg/text"
)

var (
	black          = css.Color{}
	white          = css.Color{R: 255, G: 255, B: 255}
	defaultBorder  = css.Color{R: 118, G: 118, B: 118}
	scrollbarTrack = css.Color{R: 235, G: 235, B: 235}
	scrollbarThumb = css.Color{R: 160, G: 160, B: 160}
)

type Renderer struct {
	context *gg.Context
	fonts   text.FontConfig
	logger  *zap.Logger
	failed  map[string]bool
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		context: gg.NewContext(width, height),
		fonts:   text.DefaultFontConfig(),
		logger:  zap.NewNop(),
		failed:  make(map[string]bool),
	}
}

// SetFonts replaces the font files used for text.
func (r *Renderer) SetFonts(fc text.FontConfig) {
	r.fonts = fc
}

func (r *Renderer) SetLogger(logger *zap.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// Render paints the engine's current layout, scrolled by the viewport's
// scroll offset.
func (r *Renderer) Render(le *layout.LayoutEngine) {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()

	root := le.Root()
	dy := -le.ScrollTop(root.Node)
	for _, box := range root.Children {
		r.drawBox(le, box, dy)
	}
}

func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}

func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.context.EncodePNG(w)
}

func (r *Renderer) drawBox(le *layout.LayoutEngine, box *layout.Box, dy float64) {
	if box.Node == nil {
		r.drawLines(box, box.X, box.Y+dy, box.Style.GetColor("color", black))
		return
	}

	isTextarea := box.Node.TagName == "textarea"
	fill, ok := css.Color{}, false
	if isTextarea {
		fill, ok = white, true
	}
	if v, set := box.Style.Get("background-color"); set {
		fill, ok = css.ParseColor(v)
	}
	if ok {
		r.setColor(fill)
		r.context.DrawRectangle(box.X+box.Border.Left, box.Y+dy+box.Border.Top, paddingWidth(box), box.ClientHeight())
		r.context.Fill()
	}
	r.drawBorder(box, dy)

	scrollTop := le.ScrollTop(box.Node)
	if isTextarea {
		r.drawTextarea(box, dy, scrollTop)
		return
	}
	for _, child := range box.Children {
		r.drawBox(le, child, dy-scrollTop)
	}
	if box.ScrollbarWidth > 0 {
		r.drawScrollbar(box, dy, scrollTop)
	}
}

// drawBorder draws each side as a filled strip.
func (r *Renderer) drawBorder(box *layout.Box, dy float64) {
	b := box.Border
	if b.Top <= 0 && b.Right <= 0 && b.Bottom <= 0 && b.Left <= 0 {
		return
	}
	if style, _ := box.Style.Get("border-style"); style == "none" {
		return
	}
	r.setColor(box.Style.GetColor("border-color", defaultBorder))

	x, y := box.X, box.Y+dy
	w, h := box.OffsetWidth(), box.OffsetHeight()
	r.context.DrawRectangle(x, y, w, b.Top)
	r.context.DrawRectangle(x, y+h-b.Bottom, w, b.Bottom)
	r.context.DrawRectangle(x, y+b.Top, b.Left, h-b.Top-b.Bottom)
	r.context.DrawRectangle(x+w-b.Right, y+b.Top, b.Right, h-b.Top-b.Bottom)
	r.context.Fill()
}

func (r *Renderer) drawTextarea(box *layout.Box, dy, scrollTop float64) {
	px := box.X + box.Border.Left
	py := box.Y + dy + box.Border.Top

	// gg keeps the clip mask across Push/Pop, so reset it explicitly.
	r.context.DrawRectangle(px, py, box.ClientWidth(), box.ClientHeight())
	r.context.Clip()
	r.drawLines(box, px+box.Padding.Left, py+box.Padding.Top-scrollTop, box.Style.GetColor("color", black))
	r.context.ResetClip()

	if box.ScrollbarWidth > 0 {
		r.drawScrollbar(box, dy, scrollTop)
	}
}

// drawLines draws box.Lines with their top edge at (x, y).
func (r *Renderer) drawLines(box *layout.Box, x, y float64, color css.Color) {
	if len(box.Lines) == 0 {
		return
	}
	fontSize := box.Style.GetFontSize()
	r.loadFont(r.fonts.FontPath(box.Style.IsMonospace()), fontSize)
	r.setColor(color)

	// Center the em box in each line.
	baseline := (box.LineHeight + fontSize) / 2
	for i, line := range box.Lines {
		r.context.DrawString(line, x, y+float64(i)*box.LineHeight+baseline)
	}
}

// drawScrollbar paints a track in the gutter and a thumb sized to the
// visible fraction of the content.
func (r *Renderer) drawScrollbar(box *layout.Box, dy, scrollTop float64) {
	x := box.X + box.Border.Left + box.ClientWidth()
	y := box.Y + dy + box.Border.Top
	h := box.ClientHeight()

	r.setColor(scrollbarTrack)
	r.context.DrawRectangle(x, y, box.ScrollbarWidth, h)
	r.context.Fill()

	scrollHeight := box.ScrollHeight()
	if scrollHeight <= 0 || h <= 0 {
		return
	}
	thumb := h * h / scrollHeight
	top := y + h*scrollTop/scrollHeight
	r.setColor(scrollbarThumb)
	r.context.DrawRectangle(x+2, top, box.ScrollbarWidth-4, thumb)
	r.context.Fill()
}

// loadFont switches to the face at path. Faces that fail to load keep gg's
// built-in bitmap face; each failure is logged once.
func (r *Renderer) loadFont(path string, size float64) {
	if path == "" || r.failed[path] {
		return
	}
	if err := r.context.LoadFontFace(path, size); err != nil {
		r.failed[path] = true
		r.logger.Debug("font unavailable, using built-in face", zap.String("path", path), zap.Error(err))
	}
}

func (r *Renderer) setColor(c css.Color) {
	r.context.SetRGB255(int(c.R), int(c.G), int(c.B))
}

func paddingWidth(box *layout.Box) float64 {
	return box.ClientWidth() + box.ScrollbarWidth
}
