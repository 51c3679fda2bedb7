// Package page hosts a parsed document: it owns the layout engine and the
// event registry and exposes the document through the autosize.Element
// and autosize.Window interfaces.
package page

import (
	"errors"
	"fmt"

	"github.com/rivo/uniseg"
	"go.uber.org/zap"

	"autosize/pkg/autosize"
	"autosize/pkg/event"
	"autosize/pkg/html"
	"autosize/pkg/layout"
	"autosize/pkg/text"
)

// ErrNoSuchElement is returned when a lookup matches nothing.
var ErrNoSuchElement = errors.New("no such element")

// Quirks are host defects the autosize engine has to cope with.
type Quirks struct {
	// StaleOverflowReflow: see layout.Quirks.
	StaleOverflowReflow bool
	// DetachedDispatchError makes DispatchEvent fail with event.ErrDetached
	// on elements outside the document.
	DetachedDispatchError bool
}

type Options struct {
	ViewportWidth  float64
	ViewportHeight float64
	ScrollbarWidth float64
	Quirks         Quirks

	// NoComputedStyle simulates a host without getComputedStyle.
	NoComputedStyle bool

	// Measurer defaults to a gg font measurer.
	Measurer text.Measurer
	Logger   *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		ViewportWidth:  800,
		ViewportHeight: 600,
		ScrollbarWidth: layout.DefaultScrollbarWidth,
	}
}

// Page is a live document. It is not safe for concurrent use.
type Page struct {
	doc      *html.Document
	engine   *layout.LayoutEngine
	events   *event.Registry
	opts     Options
	logger   *zap.Logger
	window   *Window
	elements map[*html.Node]*Element
	detached map[*html.Node]position
}

// position is where a detached node used to be.
type position struct {
	parent *html.Node
	next   *html.Node
}

// Load parses src and prepares it for layout.
func Load(src string, opts Options) (*Page, error) {
	doc, err := html.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return New(doc, opts), nil
}

// New hosts an already parsed document.
func New(doc *html.Document, opts Options) *Page {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Page{
		doc:      doc,
		events:   event.NewRegistry(logger),
		opts:     opts,
		logger:   logger,
		elements: make(map[*html.Node]*Element),
		detached: make(map[*html.Node]position),
	}
	p.window = &Window{page: p}
	p.engine = layout.NewLayoutEngine(doc, opts.ViewportWidth, opts.ViewportHeight)
	p.engine.SetQuirks(layout.Quirks{StaleOverflowReflow: opts.Quirks.StaleOverflowReflow})
	if opts.ScrollbarWidth > 0 {
		p.engine.SetScrollbarWidth(opts.ScrollbarWidth)
	}
	if opts.Measurer != nil {
		p.engine.SetMeasurer(opts.Measurer)
	}
	return p
}

func (p *Page) Document() *html.Document { return p.doc }
func (p *Page) Engine() *layout.LayoutEngine { return p.engine }
func (p *Page) Window() *Window { return p.window }
func (p *Page) Events() *event.Registry { return p.events }

// Element returns the wrapper of n. Wrappers are canonical: the same node
// always yields the same *Element, which the autosize registry relies on.
func (p *Page) Element(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode || n == p.doc.Root {
		return nil
	}
	el, ok := p.elements[n]
	if !ok {
		el = &Element{page: p, node: n}
		p.elements[n] = el
	}
	return el
}

func (p *Page) ElementByID(id string) (*Element, error) {
	n := p.doc.Root.ElementByID(id)
	if n == nil {
		return nil, fmt.Errorf("#%s: %w", id, ErrNoSuchElement)
	}
	return p.Element(n), nil
}

// ElementsByTag returns the connected elements with the given tag name in
// document order.
func (p *Page) ElementsByTag(tag string) []*Element {
	var els []*Element
	for _, n := range p.doc.Root.ElementsByTagName(tag) {
		if n != p.doc.Root {
			els = append(els, p.Element(n))
		}
	}
	return els
}

func (p *Page) Textareas() []*Element {
	return p.ElementsByTag("textarea")
}

// SetValue replaces a textarea's value the way a user edit does, firing
// input.
func (p *Page) SetValue(el *Element, value string) error {
	el.SetValue(value)
	return el.DispatchEvent(event.NewBubbling("input"))
}

// Type simulates typing s one rune at a time: each rune is appended (a
// backspace deletes the last rune instead) followed by input and keyup
// events.
func (p *Page) Type(el *Element, s string) error {
	for _, r := range s {
		value := el.Value()
		if r == '\b' {
			value = dropLastCluster(value)
		} else {
			value += string(r)
		}
		el.SetValue(value)
		if err := el.DispatchEvent(event.NewBubbling("input")); err != nil {
			return fmt.Errorf("type %q: %w", r, err)
		}
		if err := el.DispatchEvent(event.NewBubbling("keyup")); err != nil {
			return fmt.Errorf("type %q: %w", r, err)
		}
	}
	return nil
}

// dropLastCluster removes the last user-perceived character, so a
// backspace after a combining mark deletes the whole letter.
func dropLastCluster(s string) string {
	end := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		start, _ := g.Positions()
		end = start
	}
	return s[:end]
}

// ResizeViewport changes the viewport size and fires resize on the window.
func (p *Page) ResizeViewport(width, height float64) error {
	p.engine.SetViewport(width, height)
	return p.window.DispatchEvent(event.New("resize"))
}

// Detach removes el from the document, remembering where it was.
func (p *Page) Detach(el *Element) {
	n := el.node
	if n.Parent == nil {
		return
	}
	pos := position{parent: n.Parent}
	for i, c := range n.Parent.Children {
		if c == n && i+1 < len(n.Parent.Children) {
			pos.next = n.Parent.Children[i+1]
		}
	}
	n.Parent.RemoveChild(n)
	p.detached[n] = pos
	p.engine.Invalidate()
}

// Reattach puts a detached element back where it was.
func (p *Page) Reattach(el *Element) {
	pos, ok := p.detached[el.node]
	if !ok {
		return
	}
	delete(p.detached, el.node)
	next := pos.next
	if next != nil && next.Parent != pos.parent {
		next = nil
	}
	pos.parent.InsertBefore(el.node, next)
	p.engine.Invalidate()
}

// AsElements converts host elements for the autosize entry points.
func AsElements(els []*Element) []autosize.Element {
	out := make([]autosize.Element, len(els))
	for i, el := range els {
		out[i] = el
	}
	return out
}
