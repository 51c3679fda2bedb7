package autosize

import (
	"go.uber.org/zap"

	"autosize/pkg/event"
)

// State is the overflow mode the engine keeps an element in.
type State int

const (
	// Clipped: overflow-y is hidden and the box is as tall as its content.
	Clipped State = iota
	// Scrollable: the box is capped (usually by max-height) and scrolls.
	Scrollable
)

func (s State) String() string {
	switch s {
	case Clipped:
		return "clipped"
	case Scrollable:
		return "scrollable"
	default:
		return "unknown"
	}
}

// update runs one convergence pass: size the element, then correct the
// overflow mode at most once, then announce a changed rendered height.
func (c *controller) update() {
	if !renderable(c.el) {
		c.logger.Debug("skipping update of unrendered element")
		return
	}
	c.resize()

	requested := c.styleHeight()
	actual := c.actualHeight()

	if actual < requested {
		// Capped below the content height: let it scroll.
		if c.state == Clipped || !c.settled {
			c.transition(Scrollable, overflowScroll)
			actual = c.actualHeight()
		}
	} else if c.state != Clipped || !c.settled {
		c.transition(Clipped, overflowHidden)
		actual = c.actualHeight()
	}

	if c.measured && c.cachedHeight == actual {
		return
	}
	c.measured = true
	c.cachedHeight = actual
	if err := c.el.DispatchEvent(event.NewBubbling(EventResized)); err != nil {
		c.logger.Debug("resized notification failed", zap.Error(err))
	}
}

func (c *controller) transition(to State, overflow string) {
	c.logger.Debug("overflow transition",
		zap.Stringer("from", c.state),
		zap.Stringer("to", to))
	setOverflowY(c.el, overflow)
	c.state = to
	c.settled = true
	c.toggles++
	c.resize()
}
