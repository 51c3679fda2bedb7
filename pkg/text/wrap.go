package text

import (
	"strings"

	"github.com/rivo/uniseg"
)

// WrapOptions controls line breaking.
type WrapOptions struct {
	FontSize  float64
	Mono      bool
	BreakWord bool // break words that are wider than the line on their own
}

// Wrap breaks text into lines no wider than maxWidth. Hard newlines always
// start a new line and an empty paragraph is an empty line, so the result
// has at least one line. Spaces are preserved inside lines; the space at a
// soft break is consumed.
func Wrap(s string, maxWidth float64, m Measurer, opts WrapOptions) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		lines = append(lines, wrapParagraph(para, maxWidth, m, opts)...)
	}
	return lines
}

func wrapParagraph(para string, maxWidth float64, m Measurer, opts WrapOptions) []string {
	width := func(s string) float64 { return m.Width(s, opts.FontSize, opts.Mono) }
	if para == "" || width(para) <= maxWidth {
		return []string{para}
	}

	var lines []string
	current := ""
	for _, word := range splitKeepSpaces(para) {
		candidate := current + word
		if width(strings.TrimRight(candidate, " ")) <= maxWidth {
			current = candidate
			continue
		}
		if strings.TrimSpace(word) == "" {
			// A space that overflows ends the line.
			lines = append(lines, current)
			current = ""
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		if width(word) > maxWidth && opts.BreakWord {
			pieces := breakWord(word, maxWidth, width)
			lines = append(lines, pieces[:len(pieces)-1]...)
			word = pieces[len(pieces)-1]
		}
		current = word
	}
	if current != "" || len(lines) == 0 {
		lines = append(lines, current)
	}
	return lines
}

// splitKeepSpaces splits "ab  cd" into "ab", " ", " ", "cd".
func splitKeepSpaces(s string) []string {
	var out []string
	start := 0
	for i, r := range s {
		if r == ' ' || r == '\t' {
			if start < i {
				out = append(out, s[start:i])
			}
			out = append(out, s[i:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

// breakWord splits a single word into grapheme cluster chunks that each fit
// maxWidth, always taking at least one cluster per chunk.
func breakWord(word string, maxWidth float64, width func(string) float64) []string {
	var clusters []string
	g := uniseg.NewGraphemes(word)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	var pieces []string
	for len(clusters) > 0 {
		n := 1
		for n < len(clusters) && width(strings.Join(clusters[:n+1], "")) <= maxWidth {
			n++
		}
		pieces = append(pieces, strings.Join(clusters[:n], ""))
		clusters = clusters[n:]
	}
	return pieces
}
