// Package autosize keeps textareas exactly as tall as their content.
//
// An Autosizer tracks one controller per managed element. Each controller
// listens for input on its element and for window resizes, and on every
// change runs a convergence pass: the inline height is set from the
// element's scroll height, then overflow-y is corrected at most once so a
// box capped by max-height scrolls while an uncapped box never shows a
// scrollbar. A bubbling EventResized is dispatched whenever the rendered
// height changes.
//
// The host document is reached only through the Element and Window
// interfaces. All calls must come from the goroutine that owns the host.
package autosize

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Autosizer is the entry point. Attach, Update and Destroy accept any
// number of elements, silently skip the ones that do not apply, and return
// their arguments unchanged.
type Autosizer struct {
	win      Window
	logger   *zap.Logger
	keyup    bool
	enabled  bool
	registry *registry
}

// Option configures an Autosizer.
type Option func(*Autosizer)

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Autosizer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithKeyupFallback also runs the pass on keyup, for hosts whose input
// event misses some edits such as deletions.
func WithKeyupFallback() Option {
	return func(a *Autosizer) {
		a.keyup = true
	}
}

// New returns an Autosizer for the elements of win. When the host cannot
// report computed styles the Autosizer is inert and its operations are
// identity functions.
func New(win Window, opts ...Option) *Autosizer {
	a := &Autosizer{
		win:      win,
		logger:   zap.NewNop(),
		registry: newRegistry(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.enabled = win != nil && win.HasComputedStyle()
	if !a.enabled {
		a.logger.Debug("computed styles unavailable, autosize disabled")
	}
	return a
}

// Enabled reports whether the host supports autosizing.
func (a *Autosizer) Enabled() bool {
	return a.enabled
}

// Attach starts managing every textarea in els that is not managed yet.
func (a *Autosizer) Attach(els ...Element) []Element {
	if !a.enabled {
		return els
	}
	for _, el := range els {
		a.attach(el)
	}
	return els
}

// Update runs a convergence pass on every managed element in els.
func (a *Autosizer) Update(els ...Element) []Element {
	if !a.enabled {
		return els
	}
	for _, el := range els {
		if c, ok := a.lookup(el); ok {
			c.update()
		}
	}
	return els
}

// Destroy stops managing every managed element in els and restores the
// inline style each had before Attach.
func (a *Autosizer) Destroy(els ...Element) []Element {
	if !a.enabled {
		return els
	}
	for _, el := range els {
		a.destroy(el)
	}
	return els
}

// Tracked reports whether el is managed.
func (a *Autosizer) Tracked(el Element) bool {
	_, ok := a.lookup(el)
	return ok
}

// State returns the overflow state of a managed element.
func (a *Autosizer) State(el Element) (State, bool) {
	c, ok := a.lookup(el)
	if !ok {
		return 0, false
	}
	return c.state, true
}

// Len returns the number of managed elements.
func (a *Autosizer) Len() int {
	return a.registry.len()
}

func (a *Autosizer) lookup(el Element) (*controller, bool) {
	if isNil(el) {
		return nil, false
	}
	return a.registry.get(el)
}

func (a *Autosizer) attach(el Element) {
	if isNil(el) || el.NodeName() != "TEXTAREA" || a.registry.has(el) {
		return
	}
	logger := a.logger.With(elementField(el))
	c := newController(el, a.win, logger, a.keyup)
	c.bind(func() { a.destroy(el) })
	a.registry.put(el, c)
	logger.Debug("attached")
	c.init()
}

func (a *Autosizer) destroy(el Element) {
	c, ok := a.lookup(el)
	if !ok {
		return
	}
	c.unbind()
	a.registry.remove(el)
	c.logger.Debug("destroyed")
}

// isNil also catches a nil pointer stored in a non-nil Element.
func isNil(el Element) bool {
	if el == nil {
		return true
	}
	v := reflect.ValueOf(el)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func elementField(el Element) zap.Field {
	if s, ok := el.(fmt.Stringer); ok {
		return zap.Stringer("element", s)
	}
	return zap.String("element", el.NodeName())
}
