package autosize

import (
	"math"

	"autosize/pkg/css"
)

// metrics is the computed presentation state the engine depends on.
type metrics struct {
	resize    string
	boxSizing string
	overflowY string

	paddingTop, paddingBottom         float64
	borderTopWidth, borderBottomWidth float64
}

func inspect(el Element) metrics {
	return inspectStyle(el.ComputedStyle())
}

func inspectStyle(cs StyleDeclaration) metrics {
	return metrics{
		resize:            cs.GetPropertyValue("resize"),
		boxSizing:         cs.GetPropertyValue("box-sizing"),
		overflowY:         cs.GetPropertyValue("overflow-y"),
		paddingTop:        css.ParseFloat(cs.GetPropertyValue("padding-top")),
		paddingBottom:     css.ParseFloat(cs.GetPropertyValue("padding-bottom")),
		borderTopWidth:    css.ParseFloat(cs.GetPropertyValue("border-top-width")),
		borderBottomWidth: css.ParseFloat(cs.GetPropertyValue("border-bottom-width")),
	}
}

func (m metrics) contentBox() bool {
	return m.boxSizing == "content-box"
}

// heightOffset is what to add to the scroll height to get the value for
// style.height: minus the vertical padding for content-box, plus the
// vertical borders otherwise. Unmeasurable elements get zero.
func (m metrics) heightOffset() float64 {
	var off float64
	if m.contentBox() {
		off = -(m.paddingTop + m.paddingBottom)
	} else {
		off = m.borderTopWidth + m.borderBottomWidth
	}
	if math.IsNaN(off) {
		return 0
	}
	return off
}

// narrowResize takes the vertical axis away from the user's resize handle.
func narrowResize(inline StyleDeclaration, m metrics) {
	switch m.resize {
	case "vertical":
		inline.SetProperty("resize", "none")
	case "both":
		inline.SetProperty("resize", "horizontal")
	}
}
