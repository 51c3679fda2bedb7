package page

import (
	"autosize/pkg/autosize"
	"autosize/pkg/css"
)

// InlineStyle reads and writes an element's style attribute. Every write
// invalidates layout.
type InlineStyle struct {
	el *Element
}

var _ autosize.StyleDeclaration = (*InlineStyle)(nil)

func (s *InlineStyle) parse() *css.Style {
	attr, _ := s.el.node.GetAttribute("style")
	return css.ParseInlineStyle(attr)
}

func (s *InlineStyle) GetPropertyValue(name string) string {
	v, _ := s.parse().Get(name)
	return v
}

// SetProperty sets a declaration; shorthands are expanded and an empty
// value removes the property.
func (s *InlineStyle) SetProperty(name, value string) {
	style := s.parse()
	if value == "" {
		style.Remove(name)
	} else {
		style.Merge(css.ParseInlineStyle(name + ": " + value))
	}
	s.write(style)
}

// CSSText is the serialized declaration block.
func (s *InlineStyle) CSSText() string {
	return s.parse().String()
}

func (s *InlineStyle) SetCSSText(text string) {
	s.write(css.ParseInlineStyle(text))
}

func (s *InlineStyle) write(style *css.Style) {
	if text := style.String(); text != "" {
		s.el.node.SetAttribute("style", text)
	} else {
		s.el.node.RemoveAttribute("style")
	}
	s.el.page.engine.Invalidate()
}

// ComputedStyle is the resolved style of an element. Lengths are reported
// in px; height and width are the used content size when the element is
// rendered. Elements outside the document have no computed values.
type ComputedStyle struct {
	el *Element
}

var _ autosize.StyleDeclaration = (*ComputedStyle)(nil)

func (s *ComputedStyle) GetPropertyValue(name string) string {
	style := s.el.page.engine.Style(s.el.node)
	if style == nil {
		return ""
	}
	box := s.el.box()
	switch name {
	case "height":
		if box != nil {
			return css.FormatPx(box.Height)
		}
		return "auto"
	case "width":
		if box != nil {
			return css.FormatPx(box.Width + box.ScrollbarWidth)
		}
		return "auto"
	case "box-sizing":
		return string(style.GetBoxSizing())
	case "overflow-x":
		return string(style.GetOverflowX())
	case "overflow-y":
		return string(style.GetOverflowY())
	case "display":
		return string(style.GetDisplay())
	case "resize":
		if v, ok := style.Get("resize"); ok {
			return v
		}
		return "none"
	case "padding-top":
		return css.FormatPx(style.GetPadding().Top)
	case "padding-right":
		return css.FormatPx(style.GetPadding().Right)
	case "padding-bottom":
		return css.FormatPx(style.GetPadding().Bottom)
	case "padding-left":
		return css.FormatPx(style.GetPadding().Left)
	case "border-top-width":
		return css.FormatPx(style.GetBorderWidth().Top)
	case "border-right-width":
		return css.FormatPx(style.GetBorderWidth().Right)
	case "border-bottom-width":
		return css.FormatPx(style.GetBorderWidth().Bottom)
	case "border-left-width":
		return css.FormatPx(style.GetBorderWidth().Left)
	case "font-size":
		return css.FormatPx(style.GetFontSize())
	case "line-height":
		return css.FormatPx(style.GetLineHeight())
	}
	v, _ := style.Get(name)
	return v
}

// SetProperty is a no-op: computed styles are read-only.
func (s *ComputedStyle) SetProperty(string, string) {}
