package page

import (
	"strings"

	"autosize/pkg/autosize"
	"autosize/pkg/event"
	"autosize/pkg/html"
	"autosize/pkg/layout"
)

// Element is a document element seen through the DOM-like API the
// autosize engine consumes. Geometry getters bring layout up to date.
type Element struct {
	page *Page
	node *html.Node
}

var _ autosize.Element = (*Element)(nil)

func (e *Element) Node() *html.Node { return e.node }

func (e *Element) NodeName() string {
	return strings.ToUpper(e.node.TagName)
}

func (e *Element) ID() string {
	id, _ := e.node.GetAttribute("id")
	return id
}

func (e *Element) String() string {
	if id := e.ID(); id != "" {
		return e.node.TagName + "#" + id
	}
	return e.node.TagName
}

// Value is the text of a textarea.
func (e *Element) Value() string {
	return e.node.TextContent()
}

// SetValue replaces the text without firing events, like assigning
// el.value from script.
func (e *Element) SetValue(v string) {
	e.node.SetTextContent(v)
	e.page.engine.Invalidate()
}

func (e *Element) Connected() bool {
	return e.node.IsConnected()
}

func (e *Element) Style() autosize.StyleDeclaration {
	return &InlineStyle{el: e}
}

// InlineStyle returns the concrete inline style declaration.
func (e *Element) InlineStyle() *InlineStyle {
	return &InlineStyle{el: e}
}

func (e *Element) ComputedStyle() autosize.StyleDeclaration {
	return &ComputedStyle{el: e}
}

func (e *Element) box() *layout.Box {
	return e.page.engine.Box(e.node)
}

func (e *Element) ScrollHeight() float64 {
	if b := e.box(); b != nil {
		return b.ScrollHeight()
	}
	return 0
}

func (e *Element) ClientWidth() float64 {
	if b := e.box(); b != nil {
		return b.ClientWidth()
	}
	return 0
}

func (e *Element) ClientHeight() float64 {
	if b := e.box(); b != nil {
		return b.ClientHeight()
	}
	return 0
}

func (e *Element) OffsetWidth() float64 {
	if b := e.box(); b != nil {
		return b.OffsetWidth()
	}
	return 0
}

func (e *Element) OffsetHeight() float64 {
	if b := e.box(); b != nil {
		return b.OffsetHeight()
	}
	return 0
}

func (e *Element) ScrollTop() float64 {
	return e.page.engine.ScrollTop(e.node)
}

func (e *Element) SetScrollTop(v float64) {
	e.page.engine.SetScrollTop(e.node, v)
}

func (e *Element) ParentElement() autosize.Element {
	if parent := e.page.Element(e.node.Parent); parent != nil {
		return parent
	}
	return nil
}

func (e *Element) AddEventListener(typ string, l *event.Listener) {
	e.page.events.Add(e, typ, l)
}

func (e *Element) RemoveEventListener(typ string, l *event.Listener) {
	e.page.events.Remove(e, typ, l)
}

// DispatchEvent runs ev on the element and, if it bubbles, on its
// ancestors and the window. Disconnected elements only reach their own
// detached ancestors.
func (e *Element) DispatchEvent(ev *event.Event) error {
	connected := e.node.IsConnected()
	if !connected && e.page.opts.Quirks.DetachedDispatchError {
		return event.ErrDetached
	}
	path := []any{e}
	for n := e.node.Parent; n != nil; n = n.Parent {
		if el := e.page.Element(n); el != nil {
			path = append(path, el)
		}
	}
	if connected {
		path = append(path, e.page.window)
	}
	return e.page.events.Dispatch(ev, path)
}
