package layout

import (
	"math"

	"autosize/pkg/css"
	"autosize/pkg/html"
	"autosize/pkg/text"
)

// LayoutEngine lays out a document lazily: mutations only mark it dirty and
// the next geometry read recomputes every box. Scroll offsets persist across
// layouts and are clamped to the new scroll range each time, so a box that
// shrinks loses its scroll position just like in a browser.
type LayoutEngine struct {
	viewport struct {
		width  float64
		height float64
	}
	doc            *html.Document
	stylesheets    []*css.Stylesheet
	measurer       text.Measurer
	quirks         Quirks
	scrollbarWidth float64

	dirty   bool
	layouts int
	root    *Box
	boxes   map[*html.Node]*Box
	styles  map[*html.Node]*css.Style
	scroll  map[*html.Node]float64
	wraps   map[*html.Node]wrapMemo
}

// wrapMemo remembers the scrollbar state a textarea's text was last wrapped
// for, keyed by its declared width.
type wrapMemo struct {
	widthDecl string
	gutter    bool
}

func NewLayoutEngine(doc *html.Document, viewportWidth, viewportHeight float64) *LayoutEngine {
	le := &LayoutEngine{
		doc:            doc,
		stylesheets:    css.ParseStylesheets(doc),
		measurer:       text.NewFontMeasurer(text.DefaultFontConfig()),
		scrollbarWidth: DefaultScrollbarWidth,
		dirty:          true,
		scroll:         make(map[*html.Node]float64),
		wraps:          make(map[*html.Node]wrapMemo),
	}
	le.viewport.width = viewportWidth
	le.viewport.height = viewportHeight
	return le
}

// SetMeasurer replaces the text measurer used for line wrapping.
func (le *LayoutEngine) SetMeasurer(m text.Measurer) {
	le.measurer = m
	le.Invalidate()
}

// SetQuirks enables engine defects.
func (le *LayoutEngine) SetQuirks(q Quirks) {
	le.quirks = q
	le.Invalidate()
}

// SetScrollbarWidth sets the vertical scrollbar gutter width.
func (le *LayoutEngine) SetScrollbarWidth(w float64) {
	le.scrollbarWidth = w
	le.Invalidate()
}

// SetViewport resizes the viewport.
func (le *LayoutEngine) SetViewport(width, height float64) {
	le.viewport.width = width
	le.viewport.height = height
	le.Invalidate()
}

// Viewport returns the viewport size.
func (le *LayoutEngine) Viewport() (width, height float64) {
	return le.viewport.width, le.viewport.height
}

// Invalidate marks the layout stale. Call after any DOM or style mutation.
func (le *LayoutEngine) Invalidate() {
	le.dirty = true
}

// Layouts returns how many times layout has actually run.
func (le *LayoutEngine) Layouts() int {
	return le.layouts
}

// Layout brings the layout up to date and returns the top-level boxes.
func (le *LayoutEngine) Layout() []*Box {
	le.ensureLayout()
	return le.root.Children
}

// Root returns the viewport box.
func (le *LayoutEngine) Root() *Box {
	le.ensureLayout()
	return le.root
}

// Box returns the box of a node, nil when the node is not rendered
// (display: none, detached, or not an element).
func (le *LayoutEngine) Box(node *html.Node) *Box {
	le.ensureLayout()
	if node == le.doc.Root {
		return le.root
	}
	return le.boxes[node]
}

// Style returns the cascaded style of a connected element, rendered or
// not; nil for detached nodes.
func (le *LayoutEngine) Style(node *html.Node) *css.Style {
	le.ensureLayout()
	return le.styles[node]
}

// ScrollTop returns the scroll offset of a node. The document root node
// stands for the viewport.
func (le *LayoutEngine) ScrollTop(node *html.Node) float64 {
	le.ensureLayout()
	return le.scroll[node]
}

// SetScrollTop scrolls a scroll container, clamping to its range. Nodes
// that are not scroll containers ignore the write.
func (le *LayoutEngine) SetScrollTop(node *html.Node, v float64) {
	le.ensureLayout()
	box := le.Box(node)
	if box == nil || !le.scrolls(box) {
		return
	}
	v = clamp(v, 0, box.MaxScrollTop())
	if v == 0 {
		delete(le.scroll, node)
		return
	}
	le.scroll[node] = v
}

func (le *LayoutEngine) scrolls(b *Box) bool {
	return b == le.root || b.Style.GetOverflowY().Scrolls()
}

func (le *LayoutEngine) ensureLayout() {
	if !le.dirty {
		return
	}
	le.dirty = false
	le.layouts++

	le.styles = make(map[*html.Node]*css.Style)
	rootStyle := css.NewStyle()
	le.computeStyles(le.doc.Root, rootStyle)

	le.boxes = make(map[*html.Node]*Box)
	le.root = le.layoutViewport(rootStyle)

	// Clamp persisted scroll offsets to the new ranges.
	for node, top := range le.scroll {
		box := le.Box(node)
		if box == nil {
			delete(le.scroll, node)
			continue
		}
		if top = clamp(top, 0, box.MaxScrollTop()); top == 0 {
			delete(le.scroll, node)
		} else {
			le.scroll[node] = top
		}
	}
	for node := range le.wraps {
		if le.boxes[node] == nil {
			delete(le.wraps, node)
		}
	}
}

func (le *LayoutEngine) computeStyles(node *html.Node, parent *css.Style) {
	for _, child := range node.Children {
		if child.Type != html.ElementNode {
			continue
		}
		style := css.ComputeStyle(child, le.stylesheets, parent)
		le.styles[child] = style
		le.computeStyles(child, style)
	}
}

func (le *LayoutEngine) layoutViewport(rootStyle *css.Style) *Box {
	root := &Box{
		Node:   le.doc.Root,
		Style:  rootStyle,
		Width:  le.viewport.width,
		Height: le.viewport.height,
	}
	root.Children, root.ContentHeight = le.layoutChildren(le.doc.Root, rootStyle, 0, 0, le.viewport.width)
	return root
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
