package autosize

type scrollPosition struct {
	node Scroller
	top  float64
}

// scrollGuard remembers the scroll offsets that a height change could
// disturb: every scrolled ancestor, nearest first, and the document.
type scrollGuard struct {
	ancestors []scrollPosition
	doc       Scroller
	docTop    float64
}

func guardScroll(el Element, win Window) scrollGuard {
	var ancestors []Scroller
	for p := el.ParentElement(); p != nil; p = p.ParentElement() {
		ancestors = append(ancestors, p)
	}
	return captureScroll(ancestors, win.ScrollingElement())
}

func captureScroll(ancestors []Scroller, doc Scroller) scrollGuard {
	var g scrollGuard
	for _, a := range ancestors {
		if top := a.ScrollTop(); top != 0 {
			g.ancestors = append(g.ancestors, scrollPosition{node: a, top: top})
		}
	}
	if doc != nil {
		g.doc = doc
		g.docTop = doc.ScrollTop()
	}
	return g
}

// restore writes every captured offset back in capture order. Nothing is
// written when nothing was scrolled.
func (g scrollGuard) restore() {
	for _, p := range g.ancestors {
		p.node.SetScrollTop(p.top)
	}
	if g.docTop != 0 {
		g.doc.SetScrollTop(g.docTop)
	}
}
