package layout

import (
	"strconv"

	"autosize/pkg/css"
	"autosize/pkg/html"
	"autosize/pkg/text"
)

const (
	defaultRows = 2
	defaultCols = 20
)

// layoutTextarea lays out a textarea. Without a declared width a block
// textarea fills its container and an inline-block one is cols characters
// wide; without a declared height it is rows lines tall.
// The vertical scrollbar gutter is carved out of the content width when
// overflow-y is scroll, or auto and the text overflows.
func (le *LayoutEngine) layoutTextarea(node *html.Node, style *css.Style, x, y, avail float64) *Box {
	box := le.newBox(node, style, x, y)
	opts := text.WrapOptions{
		FontSize:  style.GetFontSize(),
		Mono:      style.IsMonospace(),
		BreakWord: style.BreaksWords(),
	}
	box.LineHeight = style.GetLineHeight()

	width, ok := le.specifiedWidth(box)
	switch {
	case ok:
	case style.GetDisplay() == css.DisplayBlock:
		width = maxf(0, avail-box.Margin.Horizontal()-box.Border.Horizontal()-box.Padding.Horizontal())
	default:
		charWidth := le.measurer.Width("m", opts.FontSize, opts.Mono)
		width = float64(intAttr(node, "cols", defaultCols)) * charWidth
	}

	height, ok := le.specifiedHeight(box, "height")
	if !ok {
		height = float64(intAttr(node, "rows", defaultRows)) * box.LineHeight
	}
	box.Height = le.clampHeight(box, height)

	value := node.TextContent()
	wrap := func(gutter bool) []string {
		w := width
		if gutter {
			w = maxf(0, width-le.scrollbarWidth)
		}
		return text.Wrap(value, w, le.measurer, opts)
	}
	overflows := func(lines []string) bool {
		return float64(len(lines))*box.LineHeight > box.Height
	}

	var gutter bool
	switch style.GetOverflowY() {
	case css.OverflowScroll:
		gutter = true
		box.Lines = wrap(true)
	case css.OverflowAuto:
		box.Lines = wrap(false)
		if overflows(box.Lines) {
			gutter = true
			box.Lines = wrap(true)
		}
	default:
		box.Lines = wrap(false)
	}

	if le.quirks.StaleOverflowReflow {
		decl, _ := style.Get("width")
		if memo, ok := le.wraps[node]; ok && memo.widthDecl == decl {
			// The engine kept the wrapping of the previous scrollbar state.
			box.Lines = wrap(memo.gutter)
		} else {
			le.wraps[node] = wrapMemo{widthDecl: decl, gutter: gutter}
		}
	}

	if gutter {
		box.ScrollbarWidth = minf(le.scrollbarWidth, width)
	}
	box.Width = width - box.ScrollbarWidth
	box.ContentHeight = float64(len(box.Lines)) * box.LineHeight

	le.boxes[node] = box
	return box
}

func intAttr(node *html.Node, name string, def int) int {
	attr, ok := node.GetAttribute(name)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(attr)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
