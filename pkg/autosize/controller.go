package autosize

import (
	"go.uber.org/zap"

	"autosize/pkg/event"
)

// Event types on managed elements.
const (
	// EventUpdate dispatched on a managed element runs Update on it.
	EventUpdate = "autosize:update"
	// EventDestroy dispatched on a managed element runs Destroy on it.
	EventDestroy = "autosize:destroy"
	// EventResized bubbles from an element whose rendered height changed.
	EventResized = "autosize:resized"

	eventInput  = "input"
	eventKeyup  = "keyup"
	eventResize = "resize"
)

// snapshotProperties are the inline properties the engine writes and
// destroy puts back.
var snapshotProperties = []string{"height", "resize", "overflow-y", "overflow-x", "word-wrap"}

// controller is the state the engine keeps for one managed element.
type controller struct {
	el     Element
	win    Window
	logger *zap.Logger

	heightOffset float64
	clientWidth  float64
	cachedHeight float64
	measured     bool
	toggles      int

	// state mirrors the overflow-y the engine last wrote. Until the first
	// transition it is a guess from the computed overflow, and settled is
	// false unless that overflow was already hidden or scroll.
	state   State
	settled bool

	original map[string]string

	onUpdate     *event.Listener
	onDestroy    *event.Listener
	onPageResize *event.Listener
	keyup        bool
}

func newController(el Element, win Window, logger *zap.Logger, keyup bool) *controller {
	c := &controller{el: el, win: win, logger: logger, keyup: keyup}
	c.original = make(map[string]string, len(snapshotProperties))
	style := el.Style()
	for _, p := range snapshotProperties {
		c.original[p] = style.GetPropertyValue(p)
	}
	return c
}

// bind subscribes the controller to its element and the window. The
// destroy callback is supplied by the owner so that event-driven destroys
// also drop the registry entry.
func (c *controller) bind(destroy func()) {
	c.onUpdate = event.NewListener(func(*event.Event) { c.update() })
	c.onDestroy = event.NewListener(func(*event.Event) { destroy() })
	c.onPageResize = event.NewListener(func(*event.Event) { c.pageResize() })

	c.el.AddEventListener(EventDestroy, c.onDestroy)
	if c.keyup {
		c.el.AddEventListener(eventKeyup, c.onUpdate)
	}
	c.win.AddEventListener(eventResize, c.onPageResize)
	c.el.AddEventListener(eventInput, c.onUpdate)
	c.el.AddEventListener(EventUpdate, c.onUpdate)
}

// init prepares the element and runs the first pass.
func (c *controller) init() {
	style := c.el.Style()
	style.SetProperty("overflow-x", "hidden")
	style.SetProperty("word-wrap", "break-word")

	m := inspect(c.el)
	narrowResize(style, m)
	c.heightOffset = m.heightOffset()
	switch m.overflowY {
	case overflowHidden:
		c.state, c.settled = Clipped, true
	case overflowScroll:
		c.state, c.settled = Scrollable, true
	default:
		c.state = Scrollable
	}
	c.update()
}

// pageResize reruns the pass only when the window resize changed the
// element's width.
func (c *controller) pageResize() {
	if c.el.ClientWidth() != c.clientWidth {
		c.update()
	}
}

// unbind removes every listener and restores the inline style.
func (c *controller) unbind() {
	c.win.RemoveEventListener(eventResize, c.onPageResize)
	c.el.RemoveEventListener(eventInput, c.onUpdate)
	c.el.RemoveEventListener(eventKeyup, c.onUpdate)
	c.el.RemoveEventListener(EventDestroy, c.onDestroy)
	c.el.RemoveEventListener(EventUpdate, c.onUpdate)

	style := c.el.Style()
	for _, p := range snapshotProperties {
		style.SetProperty(p, c.original[p])
	}
}
