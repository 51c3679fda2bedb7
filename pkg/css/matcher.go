package css

import "autosize/pkg/html"

// MatchesSelector returns true if the node matches the descendant chain.
func MatchesSelector(node *html.Node, selector Selector) bool {
	if node.Type != html.ElementNode || len(selector.Parts) == 0 {
		return false
	}
	last := len(selector.Parts) - 1
	if !matchesSelectorPart(node, selector.Parts[last]) {
		return false
	}
	return matchesAncestors(node.Parent, selector.Parts[:last])
}

// matchesAncestors matches the remaining parts right-to-left against the
// ancestor chain, greedily taking the nearest matching ancestor.
func matchesAncestors(ancestor *html.Node, parts []SelectorPart) bool {
	if len(parts) == 0 {
		return true
	}
	want := parts[len(parts)-1]
	for ; ancestor != nil; ancestor = ancestor.Parent {
		if ancestor.Type != html.ElementNode || ancestor.TagName == html.DocumentTag {
			continue
		}
		if matchesSelectorPart(ancestor, want) && matchesAncestors(ancestor.Parent, parts[:len(parts)-1]) {
			return true
		}
	}
	return false
}

// matchesSelectorPart checks if a node matches a single compound selector
func matchesSelectorPart(node *html.Node, part SelectorPart) bool {
	if part.Element != "" && part.Element != "*" && node.TagName != part.Element {
		return false
	}
	if part.ID != "" {
		if id, ok := node.GetAttribute("id"); !ok || id != part.ID {
			return false
		}
	}
	for _, cls := range part.Classes {
		if !node.HasClass(cls) {
			return false
		}
	}
	return true
}

// FindMatchingRules returns all rules that match the given node
func FindMatchingRules(node *html.Node, stylesheet *Stylesheet) []Rule {
	matches := make([]Rule, 0)
	for _, rule := range stylesheet.Rules {
		if MatchesSelector(node, rule.Selector) {
			matches = append(matches, rule)
		}
	}
	return matches
}
