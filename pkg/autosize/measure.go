package autosize

import (
	"math"

	"autosize/pkg/css"
)

// renderable reports whether the element has a box to measure. Elements
// that are hidden or outside the document report a zero scroll height.
func renderable(el Element) bool {
	return el.ScrollHeight() != 0
}

// resize sets style.height to the natural content height plus the offset
// and records the client width, keeping ancestor scroll positions intact.
func (c *controller) resize() {
	if !renderable(c.el) {
		return
	}
	guard := guardScroll(c.el, c.win)

	style := c.el.Style()
	style.SetProperty("height", "")
	style.SetProperty("height", css.FormatPx(c.el.ScrollHeight()+c.heightOffset))
	c.clientWidth = c.el.ClientWidth()

	guard.restore()
}

// styleHeight is the rounded height last written to the inline style.
func (c *controller) styleHeight() float64 {
	return math.Round(css.ParseFloat(c.el.Style().GetPropertyValue("height")))
}

// actualHeight is the rounded height the engine actually rendered: the
// computed height for content-box, the border box otherwise, since the
// computed value is unreliable for border-box in some engines.
func (c *controller) actualHeight() float64 {
	cs := c.el.ComputedStyle()
	if cs.GetPropertyValue("box-sizing") == "content-box" {
		return math.Round(css.ParseFloat(cs.GetPropertyValue("height")))
	}
	return math.Round(c.el.OffsetHeight())
}
