package css

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"100px", 100, true},
		{" 12.5px ", 12.5, true},
		{"7", 7, true},
		{"auto", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLength(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseLength(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseFloat(t *testing.T) {
	assert.Equal(t, 52.0, ParseFloat("52px"))
	assert.Equal(t, -4.5, ParseFloat("-4.5px"))
	assert.Equal(t, 1000.0, ParseFloat("1e3"))
	assert.Equal(t, 3.0, ParseFloat("3.px"))
	assert.True(t, math.IsNaN(ParseFloat("")))
	assert.True(t, math.IsNaN(ParseFloat("auto")))
	assert.True(t, math.IsNaN(ParseFloat("-")))
}

func TestFormatPx(t *testing.T) {
	assert.Equal(t, "30px", FormatPx(30))
	assert.Equal(t, "30.5px", FormatPx(30.5))
	assert.Equal(t, "-4px", FormatPx(-4))
}

func TestStyle_SetEmptyRemoves(t *testing.T) {
	s := ParseInlineStyle("height: 30px; resize: none")
	s.Set("height", "")
	_, ok := s.Get("height")
	assert.False(t, ok)
	assert.Equal(t, "resize: none", s.String())
}

func TestStyle_StringKeepsOrder(t *testing.T) {
	s := NewStyle()
	s.Set("overflow-x", "hidden")
	s.Set("word-wrap", "break-word")
	s.Set("height", "40px")
	s.Set("overflow-x", "scroll")
	assert.Equal(t, "overflow-x: scroll; word-wrap: break-word; height: 40px", s.String())
	assert.Equal(t, []string{"overflow-x", "word-wrap", "height"}, s.Keys())
}

func TestParseInlineStyle_Shorthands(t *testing.T) {
	s := ParseInlineStyle("padding: 1px 2px 3px; border: 4px solid red; overflow: hidden scroll; margin: 5px")
	assert.Equal(t, BoxEdge{Top: 1, Right: 2, Bottom: 3, Left: 2}, s.GetPadding())
	assert.Equal(t, BoxEdge{Top: 4, Right: 4, Bottom: 4, Left: 4}, s.GetBorderWidth())
	assert.Equal(t, BoxEdge{Top: 5, Right: 5, Bottom: 5, Left: 5}, s.GetMargin())
	assert.Equal(t, OverflowHidden, s.GetOverflowX())
	assert.Equal(t, OverflowScroll, s.GetOverflowY())
	c, _ := s.Get("border-color")
	assert.Equal(t, "red", c)
}

func TestGetBorderWidth_StyleNone(t *testing.T) {
	s := ParseInlineStyle("border-width: 3px; border-style: none")
	assert.Equal(t, BoxEdge{}, s.GetBorderWidth())
}

func TestGetLineHeight(t *testing.T) {
	tests := []struct {
		decl string
		want float64
	}{
		{"font-size: 10px", 12},
		{"font-size: 10px; line-height: 20px", 20},
		{"font-size: 10px; line-height: 1.5", 15},
		{"font-size: 10px; line-height: normal", 12},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ParseInlineStyle(tt.decl).GetLineHeight(), 1e-9, tt.decl)
	}
}

func TestTypedGetters(t *testing.T) {
	s := ParseInlineStyle("box-sizing: border-box; display: none; word-wrap: break-word; font-family: Courier Mono; height: auto; width: 120px")
	assert.Equal(t, BorderBox, s.GetBoxSizing())
	assert.Equal(t, DisplayNone, s.GetDisplay())
	assert.True(t, s.BreaksWords())
	assert.True(t, s.IsMonospace())
	_, ok := s.GetSize("height")
	assert.False(t, ok)
	w, ok := s.GetSize("width")
	assert.True(t, ok)
	assert.Equal(t, 120.0, w)
	assert.Equal(t, ContentBox, NewStyle().GetBoxSizing())
	assert.Equal(t, OverflowVisible, NewStyle().GetOverflowY())
}

func TestParseColor(t *testing.T) {
	c, ok := ParseColor("#f80")
	assert.True(t, ok)
	assert.Equal(t, Color{255, 136, 0}, c)
	c, ok = ParseColor("Navy")
	assert.True(t, ok)
	assert.Equal(t, Color{0, 0, 128}, c)
	_, ok = ParseColor("#12")
	assert.False(t, ok)
}
