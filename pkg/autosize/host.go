package autosize

import "autosize/pkg/event"

// StyleDeclaration is a CSS declaration block addressed by property name
// ("height", "overflow-y", ...). Setting an empty value removes the
// property.
type StyleDeclaration interface {
	GetPropertyValue(name string) string
	SetProperty(name, value string)
}

// Scroller is anything with a vertical scroll offset.
type Scroller interface {
	ScrollTop() float64
	SetScrollTop(float64)
}

// Element is the host's view of a document element. Geometry getters must
// return live values, forcing layout when the host defers it.
type Element interface {
	event.Target
	Scroller

	// NodeName is the upper-case tag name, "TEXTAREA" for managed elements.
	NodeName() string

	// Style is the inline style; ComputedStyle the resolved style, which
	// is empty for elements outside the document.
	Style() StyleDeclaration
	ComputedStyle() StyleDeclaration

	ScrollHeight() float64
	ClientWidth() float64
	OffsetWidth() float64
	OffsetHeight() float64

	// ParentElement returns nil at the top of the element tree.
	ParentElement() Element
}

// Window is the page-wide context elements live in.
type Window interface {
	event.Target

	// ScrollingElement scrolls the document itself; nil when the host has
	// no document scroller.
	ScrollingElement() Scroller

	// HasComputedStyle reports whether computed styles can be queried. Hosts
	// without it get an inert Autosizer.
	HasComputedStyle() bool
}
