package page

import (
	"autosize/pkg/autosize"
	"autosize/pkg/event"
)

// Window is the page's global object.
type Window struct {
	page *Page
}

var _ autosize.Window = (*Window)(nil)

func (w *Window) AddEventListener(typ string, l *event.Listener) {
	w.page.events.Add(w, typ, l)
}

func (w *Window) RemoveEventListener(typ string, l *event.Listener) {
	w.page.events.Remove(w, typ, l)
}

func (w *Window) DispatchEvent(ev *event.Event) error {
	return w.page.events.Dispatch(ev, []any{w})
}

func (w *Window) HasComputedStyle() bool {
	return !w.page.opts.NoComputedStyle
}

func (w *Window) ScrollingElement() autosize.Scroller {
	return documentScroller{page: w.page}
}

func (w *Window) InnerWidth() float64 {
	width, _ := w.page.engine.Viewport()
	return width
}

func (w *Window) InnerHeight() float64 {
	_, height := w.page.engine.Viewport()
	return height
}

func (w *Window) ScrollY() float64 {
	return documentScroller{page: w.page}.ScrollTop()
}

func (w *Window) ScrollTo(y float64) {
	documentScroller{page: w.page}.SetScrollTop(y)
}

// documentScroller scrolls the viewport.
type documentScroller struct {
	page *Page
}

func (d documentScroller) ScrollTop() float64 {
	return d.page.engine.ScrollTop(d.page.doc.Root)
}

func (d documentScroller) SetScrollTop(v float64) {
	d.page.engine.SetScrollTop(d.page.doc.Root, v)
}
