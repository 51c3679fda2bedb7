package css

import (
	"fmt"
	"strings"
)

// SelectorPart is one compound selector: tag, #id and .classes.
type SelectorPart struct {
	Element string
	ID      string
	Classes []string
}

// Selector is a chain of compound parts joined by descendant combinators,
// leftmost ancestor first.
type Selector struct {
	Raw         string
	Parts       []SelectorPart
	Specificity int
}

// Rule represents a CSS rule (selector + declarations)
type Rule struct {
	Selector     Selector
	Declarations *Style
	Order        int // source order, breaks specificity ties
}

// Stylesheet represents a parsed CSS stylesheet
type Stylesheet struct {
	Rules []Rule
}

// ParseStylesheet parses CSS stylesheet content into rules. Malformed rules
// are skipped; at-rules are ignored.
func ParseStylesheet(css string) (*Stylesheet, error) {
	stylesheet := &Stylesheet{Rules: make([]Rule, 0)}

	css = strings.TrimSpace(stripCSSComments(css))
	if css == "" {
		return stylesheet, nil
	}

	for _, ruleStr := range splitRules(css) {
		rules, err := parseRule(ruleStr)
		if err != nil {
			continue
		}
		for _, r := range rules {
			r.Order = len(stylesheet.Rules)
			stylesheet.Rules = append(stylesheet.Rules, r)
		}
	}

	return stylesheet, nil
}

// stripCSSComments removes /* ... */ comments. An unterminated comment runs
// to the end of input.
func stripCSSComments(css string) string {
	var sb strings.Builder
	for {
		start := strings.Index(css, "/*")
		if start < 0 {
			sb.WriteString(css)
			return sb.String()
		}
		sb.WriteString(css[:start])
		end := strings.Index(css[start+2:], "*/")
		if end < 0 {
			return sb.String()
		}
		css = css[start+2+end+2:]
	}
}

// splitRules splits CSS into individual top-level rules
func splitRules(css string) []string {
	rules := make([]string, 0)
	depth := 0
	start := 0

	for i, ch := range css {
		switch ch {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				// Stray close brace: resynchronise after it.
				depth = 0
				start = i + 1
				continue
			}
			if depth == 0 {
				if ruleStr := strings.TrimSpace(css[start : i+1]); ruleStr != "" {
					rules = append(rules, ruleStr)
				}
				start = i + 1
			}
		}
	}

	return rules
}

// parseRule parses one rule; a selector list yields one Rule per selector.
func parseRule(ruleStr string) ([]Rule, error) {
	bracePos := strings.Index(ruleStr, "{")
	if bracePos == -1 {
		return nil, fmt.Errorf("no opening brace found")
	}
	selectorStr := strings.TrimSpace(ruleStr[:bracePos])
	if strings.HasPrefix(selectorStr, "@") {
		return nil, fmt.Errorf("at-rule %q not supported", selectorStr)
	}

	declEnd := strings.LastIndex(ruleStr, "}")
	if declEnd < bracePos {
		declEnd = len(ruleStr)
	}
	decls := ParseInlineStyle(ruleStr[bracePos+1 : declEnd])

	var rules []Rule
	for _, raw := range strings.Split(selectorStr, ",") {
		sel, err := ParseSelector(raw)
		if err != nil {
			return nil, err
		}
		rules = append(rules, Rule{Selector: sel, Declarations: decls})
	}
	return rules, nil
}

// ParseSelector parses a descendant chain such as "form .notes textarea#a".
func ParseSelector(selectorStr string) (Selector, error) {
	selectorStr = strings.TrimSpace(selectorStr)
	fields := strings.Fields(selectorStr)
	if len(fields) == 0 {
		return Selector{}, fmt.Errorf("empty selector")
	}

	sel := Selector{Raw: selectorStr}
	for _, f := range fields {
		part, spec, err := parseCompound(f)
		if err != nil {
			return Selector{}, err
		}
		sel.Parts = append(sel.Parts, part)
		sel.Specificity += spec
	}
	return sel, nil
}

// parseCompound parses "tag#id.class1.class2" and returns its specificity
// (ids 100, classes 10, elements 1).
func parseCompound(s string) (SelectorPart, int, error) {
	var part SelectorPart
	spec := 0
	i := 0
	readIdent := func() string {
		start := i
		for i < len(s) && isIdentChar(s[i]) {
			i++
		}
		return s[start:i]
	}

	if i < len(s) && s[i] == '*' {
		part.Element = "*"
		i++
	} else if name := readIdent(); name != "" {
		part.Element = strings.ToLower(name)
		spec++
	}
	for i < len(s) {
		marker := s[i]
		i++
		name := readIdent()
		if name == "" {
			return SelectorPart{}, 0, fmt.Errorf("invalid selector %q", s)
		}
		switch marker {
		case '#':
			part.ID = name
			spec += 100
		case '.':
			part.Classes = append(part.Classes, name)
			spec += 10
		default:
			return SelectorPart{}, 0, fmt.Errorf("invalid selector %q", s)
		}
	}
	if part.Element == "" && part.ID == "" && len(part.Classes) == 0 {
		return SelectorPart{}, 0, fmt.Errorf("invalid selector %q", s)
	}
	return part, spec, nil
}

func isIdentChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_'
}
