package layout

import (
	"strings"

	"autosize/pkg/css"
	"autosize/pkg/html"
	"autosize/pkg/text"
)

// layoutChildren stacks the children of node vertically starting at
// (x, y) inside a content area of the given width. Runs of text and inline
// elements become anonymous line boxes. It returns the child boxes and the
// height they occupy.
func (le *LayoutEngine) layoutChildren(node *html.Node, style *css.Style, x, y, width float64) ([]*Box, float64) {
	var boxes []*Box
	cursor := y
	var inline strings.Builder

	flushInline := func() {
		if strings.TrimSpace(inline.String()) == "" {
			inline.Reset()
			return
		}
		b := le.layoutLines(strings.TrimSpace(inline.String()), style, x, cursor, width)
		inline.Reset()
		boxes = append(boxes, b)
		cursor += b.MarginBoxHeight()
	}

	for _, child := range node.Children {
		if child.Type == html.TextNode {
			inline.WriteString(child.Text)
			continue
		}
		cs := le.styles[child]
		switch {
		case cs == nil || cs.GetDisplay() == css.DisplayNone:
			continue
		case child.TagName == "textarea":
			flushInline()
			b := le.layoutTextarea(child, cs, x, cursor, width)
			boxes = append(boxes, b)
			cursor += b.MarginBoxHeight()
		case cs.GetDisplay() == css.DisplayInline:
			inline.WriteString(child.TextContent())
		default:
			flushInline()
			b := le.layoutBlock(child, cs, x, cursor, width)
			boxes = append(boxes, b)
			cursor += b.MarginBoxHeight()
		}
	}
	flushInline()
	return boxes, cursor - y
}

// layoutBlock lays out a block-level element whose margin box starts at
// (x, y) in a containing block of width avail.
func (le *LayoutEngine) layoutBlock(node *html.Node, style *css.Style, x, y, avail float64) *Box {
	box := le.newBox(node, style, x, y)

	if w, ok := le.specifiedWidth(box); ok {
		box.Width = w
	} else {
		box.Width = maxf(0, avail-box.Margin.Horizontal()-box.Border.Horizontal()-box.Padding.Horizontal())
	}

	contentX := box.X + box.Border.Left + box.Padding.Left
	contentY := box.Y + box.Border.Top + box.Padding.Top
	box.Children, box.ContentHeight = le.layoutChildren(node, style, contentX, contentY, box.Width)

	height := box.ContentHeight
	if h, ok := le.specifiedHeight(box, "height"); ok {
		height = h
	}
	box.Height = le.clampHeight(box, height)

	le.boxes[node] = box
	return box
}

// layoutLines creates an anonymous box of wrapped text.
func (le *LayoutEngine) layoutLines(content string, style *css.Style, x, y, width float64) *Box {
	lh := style.GetLineHeight()
	lines := text.Wrap(content, width, le.measurer, text.WrapOptions{
		FontSize:  style.GetFontSize(),
		Mono:      style.IsMonospace(),
		BreakWord: style.BreaksWords(),
	})
	h := float64(len(lines)) * lh
	return &Box{
		Style:         style,
		X:             x,
		Y:             y,
		Width:         width,
		Height:        h,
		ContentHeight: h,
		Lines:         lines,
		LineHeight:    lh,
	}
}

func (le *LayoutEngine) newBox(node *html.Node, style *css.Style, x, y float64) *Box {
	margin := style.GetMargin()
	return &Box{
		Node:    node,
		Style:   style,
		X:       x + margin.Left,
		Y:       y + margin.Top,
		Margin:  margin,
		Padding: style.GetPadding(),
		Border:  style.GetBorderWidth(),
	}
}

// specifiedWidth converts a declared width to a content width.
func (le *LayoutEngine) specifiedWidth(box *Box) (float64, bool) {
	w, ok := box.Style.GetSize("width")
	if !ok {
		return 0, false
	}
	if box.Style.GetBoxSizing() == css.BorderBox {
		w -= box.Padding.Horizontal() + box.Border.Horizontal()
	}
	return maxf(0, w), true
}

// specifiedHeight converts a declared height-like property to a content
// height.
func (le *LayoutEngine) specifiedHeight(box *Box, property string) (float64, bool) {
	h, ok := box.Style.GetSize(property)
	if !ok {
		return 0, false
	}
	if box.Style.GetBoxSizing() == css.BorderBox {
		h -= box.Padding.Vertical() + box.Border.Vertical()
	}
	return maxf(0, h), true
}

// clampHeight applies max-height then min-height, min winning as in CSS.
func (le *LayoutEngine) clampHeight(box *Box, h float64) float64 {
	if maxH, ok := le.specifiedHeight(box, "max-height"); ok && h > maxH {
		h = maxH
	}
	if minH, ok := le.specifiedHeight(box, "min-height"); ok && h < minH {
		h = minH
	}
	return h
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
