package layout

import (
	"math"

	"autosize/pkg/css"
	"autosize/pkg/html"
)

type Box struct {
	Node    *html.Node
	Style   *css.Style
	X       float64 // border-box left, document coordinates
	Y       float64 // border-box top, document coordinates
	Width   float64 // Content width, excluding any scrollbar gutter
	Height  float64 // Used content height
	Margin  css.BoxEdge
	Padding css.BoxEdge
	Border  css.BoxEdge

	// ScrollbarWidth is the vertical scrollbar gutter carved out of the
	// padding box; zero when no scrollbar is shown.
	ScrollbarWidth float64

	// ContentHeight is the natural height of the in-flow content, which
	// may exceed Height when the box overflows.
	ContentHeight float64

	// Text content for textareas and anonymous line boxes.
	Lines      []string
	LineHeight float64

	Children []*Box
}

// ClientWidth is the padding box width minus the scrollbar.
func (b *Box) ClientWidth() float64 {
	return b.Width + b.Padding.Horizontal()
}

// ClientHeight is the padding box height.
func (b *Box) ClientHeight() float64 {
	return b.Height + b.Padding.Vertical()
}

// OffsetWidth is the border box width.
func (b *Box) OffsetWidth() float64 {
	return b.Width + b.ScrollbarWidth + b.Padding.Horizontal() + b.Border.Horizontal()
}

// OffsetHeight is the border box height.
func (b *Box) OffsetHeight() float64 {
	return b.Height + b.Padding.Vertical() + b.Border.Vertical()
}

// ScrollHeight is the height of the content including overflow, never less
// than the client height.
func (b *Box) ScrollHeight() float64 {
	return math.Max(b.ClientHeight(), b.ContentHeight+b.Padding.Vertical())
}

// MaxScrollTop is the largest scroll offset the box accepts.
func (b *Box) MaxScrollTop() float64 {
	return math.Max(0, b.ScrollHeight()-b.ClientHeight())
}

// MarginBoxHeight is the vertical space the box takes in its parent.
func (b *Box) MarginBoxHeight() float64 {
	return b.OffsetHeight() + b.Margin.Vertical()
}

// Quirks switch on rendering defects of real engines. The autosize core is
// expected to produce correct results with any combination enabled.
type Quirks struct {
	// StaleOverflowReflow keeps a textarea's line wrapping computed for its
	// previous scrollbar state when only overflow-y changes. Text is
	// re-wrapped once the width changes and layout is forced.
	StaleOverflowReflow bool
}

// DefaultScrollbarWidth is the gutter a vertical scrollbar takes.
const DefaultScrollbarWidth = 15.0
