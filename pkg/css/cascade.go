package css

import (
	"sort"

	"autosize/pkg/html"
)

// inheritedProperties flow from parent to child when not declared.
var inheritedProperties = []string{
	"font-size", "line-height", "font-family", "font-weight", "color", "word-wrap", "white-space",
}

// applyUserAgentStyles applies default browser styles based on element type
func applyUserAgentStyles(node *html.Node, style *Style) {
	switch node.TagName {
	case "textarea":
		style.Set("display", "inline-block")
		style.Set("box-sizing", string(ContentBox))
		expandShorthand(style, "border", "1px solid gray")
		expandShorthand(style, "padding", "2px")
		style.Set("resize", "both")
		expandShorthand(style, "overflow", "auto")
		style.Set("font-family", "monospace")
		style.Set("font-size", "13px")
		style.Set("line-height", "15px")
		style.Set("white-space", "pre-wrap")
		style.Set("word-wrap", "break-word")
	case "html", "body", "div", "form", "p", "section", "article", "main", "header", "footer":
		style.Set("display", "block")
	case "span", "a", "b", "em", "strong", "i", "label":
		style.Set("display", "inline")
	case "head", "title", "meta", "link":
		style.Set("display", "none")
	}
}

// ComputeStyle computes the final style for a node: user agent defaults,
// inherited values from parent, matching rules by specificity then source
// order, and finally the inline style attribute.
func ComputeStyle(node *html.Node, stylesheets []*Stylesheet, parent *Style) *Style {
	finalStyle := NewStyle()

	if parent != nil {
		for _, prop := range inheritedProperties {
			if v, ok := parent.Get(prop); ok {
				finalStyle.Set(prop, v)
			}
		}
	}

	applyUserAgentStyles(node, finalStyle)

	allRules := make([]Rule, 0)
	for i, stylesheet := range stylesheets {
		for _, r := range FindMatchingRules(node, stylesheet) {
			r.Order += i << 16
			allRules = append(allRules, r)
		}
	}
	sort.SliceStable(allRules, func(i, j int) bool {
		if allRules[i].Selector.Specificity != allRules[j].Selector.Specificity {
			return allRules[i].Selector.Specificity < allRules[j].Selector.Specificity
		}
		return allRules[i].Order < allRules[j].Order
	})
	for _, rule := range allRules {
		finalStyle.Merge(rule.Declarations)
	}

	if styleAttr, ok := node.GetAttribute("style"); ok {
		finalStyle.Merge(ParseInlineStyle(styleAttr))
	}

	return finalStyle
}

// ParseStylesheets parses every stylesheet of the document, skipping
// sheets that fail.
func ParseStylesheets(doc *html.Document) []*Stylesheet {
	sheets := make([]*Stylesheet, 0, len(doc.Stylesheets))
	for _, cssText := range doc.Stylesheets {
		if sheet, err := ParseStylesheet(cssText); err == nil {
			sheets = append(sheets, sheet)
		}
	}
	return sheets
}
