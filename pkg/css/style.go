package css

import (
	"math"
	"strconv"
	"strings"
)

// Style is an ordered set of longhand declarations. Order is kept so that
// serialized inline styles are stable across edits.
type Style struct {
	Properties map[string]string
	order      []string
}

func NewStyle() *Style {
	return &Style{Properties: make(map[string]string)}
}

func (s *Style) Get(property string) (string, bool) {
	val, ok := s.Properties[property]
	return val, ok
}

// Set assigns a declaration. An empty value removes the property, which is
// how the DOM treats `el.style.height = ""`.
func (s *Style) Set(property, value string) {
	if value == "" {
		s.Remove(property)
		return
	}
	if _, ok := s.Properties[property]; !ok {
		s.order = append(s.order, property)
	}
	s.Properties[property] = value
}

func (s *Style) Remove(property string) {
	if _, ok := s.Properties[property]; !ok {
		return
	}
	delete(s.Properties, property)
	for i, p := range s.order {
		if p == property {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Keys returns property names in declaration order.
func (s *Style) Keys() []string {
	keys := make([]string, len(s.order))
	copy(keys, s.order)
	return keys
}

// Merge copies every declaration of other over s.
func (s *Style) Merge(other *Style) {
	for _, k := range other.order {
		s.Set(k, other.Properties[k])
	}
}

// String serializes the declarations as an inline style attribute.
func (s *Style) String() string {
	parts := make([]string, 0, len(s.order))
	for _, k := range s.order {
		parts = append(parts, k+": "+s.Properties[k])
	}
	return strings.Join(parts, "; ")
}

func (s *Style) GetLength(property string) (float64, bool) {
	val, ok := s.Get(property)
	if !ok {
		return 0, false
	}
	return ParseLength(val)
}

// ParseLength parses a pixel length value (e.g., "100px" or "100").
func ParseLength(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	val = strings.TrimSuffix(val, "px")
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// ParseFloat mirrors JavaScript parseFloat on a CSS value: the longest
// numeric prefix is parsed and NaN is returned when there is none.
func ParseFloat(val string) float64 {
	val = strings.TrimSpace(val)
	end := 0
	seenDigit, seenDot, seenExp := false, false, false
scan:
	for end < len(val) {
		c := val[end]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case (c == '+' || c == '-') && (end == 0 || val[end-1] == 'e' || val[end-1] == 'E'):
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
		case (c == 'e' || c == 'E') && seenDigit && !seenExp:
			seenExp = true
		default:
			break scan
		}
		end++
	}
	for end > 0 {
		if f, err := strconv.ParseFloat(val[:end], 64); err == nil {
			return f
		}
		end--
	}
	return math.NaN()
}

// FormatPx renders a pixel length the way computed styles report it.
func FormatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// BoxEdge represents the four sides of a box (top, right, bottom, left)
type BoxEdge struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Vertical returns top + bottom.
func (e BoxEdge) Vertical() float64 { return e.Top + e.Bottom }

// Horizontal returns left + right.
func (e BoxEdge) Horizontal() float64 { return e.Left + e.Right }

// GetMargin returns the margin values for all four sides
func (s *Style) GetMargin() BoxEdge {
	return s.edge("margin-%s")
}

// GetPadding returns the padding values for all four sides
func (s *Style) GetPadding() BoxEdge {
	return s.edge("padding-%s")
}

// GetBorderWidth returns the border width for all four sides. A side whose
// border-style is none has zero width.
func (s *Style) GetBorderWidth() BoxEdge {
	e := s.edge("border-%s-width")
	if style, ok := s.Get("border-style"); ok && style == "none" {
		return BoxEdge{}
	}
	return e
}

func (s *Style) edge(pattern string) BoxEdge {
	side := func(name string) float64 {
		return s.getLengthOrZero(strings.Replace(pattern, "%s", name, 1))
	}
	return BoxEdge{
		Top:    side("top"),
		Right:  side("right"),
		Bottom: side("bottom"),
		Left:   side("left"),
	}
}

// getLengthOrZero returns the length value or 0 if not found
func (s *Style) getLengthOrZero(property string) float64 {
	val, ok := s.GetLength(property)
	if !ok {
		return 0
	}
	return val
}

// ParseInlineStyle parses a style attribute, expanding shorthands.
func ParseInlineStyle(styleAttr string) *Style {
	style := NewStyle()
	for _, decl := range strings.Split(styleAttr, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		property := strings.TrimSpace(strings.ToLower(parts[0]))
		value := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(parts[1]), "!important"))
		if property == "" || value == "" {
			continue
		}
		expandShorthand(style, property, value)
	}
	return style
}

// expandShorthand expands shorthand CSS properties into individual properties
func expandShorthand(style *Style, property, value string) {
	switch property {
	case "margin", "padding":
		expandBoxProperty(style, property+"-%s", value)
	case "border-width":
		expandBoxProperty(style, "border-%s-width", value)
	case "border":
		expandBorderProperty(style, value)
	case "overflow":
		// overflow: hidden -> overflow-x/y; two values are x then y
		parts := strings.Fields(value)
		style.Set("overflow-x", parts[0])
		style.Set("overflow-y", parts[len(parts)-1])
	case "overflow-wrap":
		style.Set("word-wrap", value)
	default:
		style.Set(property, value)
	}
}

// expandBoxProperty expands a four-sided shorthand.
// Supports: "10px" (all), "10px 20px" (vertical horizontal),
// "10px 20px 30px" (top h bottom), "10px 20px 30px 40px" (t r b l)
func expandBoxProperty(style *Style, pattern, value string) {
	parts := strings.Fields(value)
	var t, r, b, l string
	switch len(parts) {
	case 1:
		t, r, b, l = parts[0], parts[0], parts[0], parts[0]
	case 2:
		t, r, b, l = parts[0], parts[1], parts[0], parts[1]
	case 3:
		t, r, b, l = parts[0], parts[1], parts[2], parts[1]
	case 4:
		t, r, b, l = parts[0], parts[1], parts[2], parts[3]
	default:
		return
	}
	set := func(side, v string) {
		style.Set(strings.Replace(pattern, "%s", side, 1), v)
	}
	set("top", t)
	set("right", r)
	set("bottom", b)
	set("left", l)
}

// expandBorderProperty expands border shorthand
// Format: "1px solid black" or "2px dotted #FF0000"
func expandBorderProperty(style *Style, value string) {
	for _, part := range strings.Fields(value) {
		switch {
		case part == "0" || strings.HasSuffix(part, "px"):
			expandBoxProperty(style, "border-%s-width", part)
		case part == "none" || part == "solid" || part == "dotted" || part == "dashed" || part == "double" || part == "inset":
			style.Set("border-style", part)
		default:
			style.Set("border-color", part)
		}
	}
}

// BoxSizing is the box-sizing property value.
type BoxSizing string

const (
	ContentBox BoxSizing = "content-box"
	BorderBox  BoxSizing = "border-box"
)

// GetBoxSizing returns the box-sizing value (default: content-box)
func (s *Style) GetBoxSizing() BoxSizing {
	if v, ok := s.Get("box-sizing"); ok && v == string(BorderBox) {
		return BorderBox
	}
	return ContentBox
}

// Overflow is an overflow-x/overflow-y value.
type Overflow string

const (
	OverflowVisible Overflow = "visible"
	OverflowHidden  Overflow = "hidden"
	OverflowScroll  Overflow = "scroll"
	OverflowAuto    Overflow = "auto"
)

// GetOverflowY returns overflow-y (default: visible)
func (s *Style) GetOverflowY() Overflow {
	return parseOverflow(s.Properties["overflow-y"])
}

// GetOverflowX returns overflow-x (default: visible)
func (s *Style) GetOverflowX() Overflow {
	return parseOverflow(s.Properties["overflow-x"])
}

func parseOverflow(v string) Overflow {
	switch Overflow(v) {
	case OverflowHidden, OverflowScroll, OverflowAuto:
		return Overflow(v)
	}
	return OverflowVisible
}

// Scrolls reports whether the box is a scroll container.
func (o Overflow) Scrolls() bool {
	return o == OverflowScroll || o == OverflowAuto || o == OverflowHidden
}

// DisplayType represents the display property value
type DisplayType string

const (
	DisplayBlock       DisplayType = "block"
	DisplayInline      DisplayType = "inline"
	DisplayInlineBlock DisplayType = "inline-block"
	DisplayNone        DisplayType = "none"
)

// GetDisplay returns the display value (default: block)
func (s *Style) GetDisplay() DisplayType {
	if display, ok := s.Get("display"); ok {
		switch display {
		case "inline":
			return DisplayInline
		case "inline-block":
			return DisplayInlineBlock
		case "none":
			return DisplayNone
		}
	}
	return DisplayBlock
}

// GetFontSize returns the font-size in pixels (default: 16px)
func (s *Style) GetFontSize() float64 {
	if size, ok := s.GetLength("font-size"); ok {
		return size
	}
	return 16.0
}

// GetLineHeight returns the line-height in pixels (default: 1.2 * font-size).
// Unitless numbers are multiples of the font size.
func (s *Style) GetLineHeight() float64 {
	if lh, ok := s.Get("line-height"); ok && lh != "normal" {
		if strings.HasSuffix(lh, "px") {
			if v, ok := ParseLength(lh); ok {
				return v
			}
		} else if v, err := strconv.ParseFloat(lh, 64); err == nil {
			return v * s.GetFontSize()
		}
	}
	return s.GetFontSize() * 1.2
}

// IsMonospace reports whether font-family names a monospace face.
func (s *Style) IsMonospace() bool {
	family, _ := s.Get("font-family")
	return strings.Contains(strings.ToLower(family), "mono")
}

// BreaksWords reports whether long words wrap mid-word.
func (s *Style) BreaksWords() bool {
	v, _ := s.Get("word-wrap")
	return v == "break-word" || v == "anywhere"
}

// GetSize returns an explicit px size for width/height style properties;
// "auto", percentages and missing values report false.
func (s *Style) GetSize(property string) (float64, bool) {
	v, ok := s.Get(property)
	if !ok || v == "auto" || v == "none" {
		return 0, false
	}
	return ParseLength(v)
}

type Color struct {
	R, G, B uint8
}

// ParseColor accepts named colors and #rgb / #rrggbb.
func ParseColor(colorStr string) (Color, bool) {
	colorStr = strings.ToLower(strings.TrimSpace(colorStr))
	if strings.HasPrefix(colorStr, "#") {
		hex := colorStr[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return Color{}, false
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, false
		}
		return Color{uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
	}
	color, ok := namedColors[colorStr]
	return color, ok
}

var namedColors = map[string]Color{
	"red":       {255, 0, 0},
	"green":     {0, 128, 0},
	"blue":      {0, 0, 255},
	"white":     {255, 255, 255},
	"black":     {0, 0, 0},
	"gray":      {128, 128, 128},
	"grey":      {128, 128, 128},
	"silver":    {192, 192, 192},
	"lightgray": {211, 211, 211},
	"darkgray":  {169, 169, 169},
	"navy":      {0, 0, 128},
	"teal":      {0, 128, 128},
	"orange":    {255, 165, 0},
}

// GetColor returns the named color property or def when unset or unknown.
func (s *Style) GetColor(property string, def Color) Color {
	if colorStr, ok := s.Get(property); ok {
		if color, ok := ParseColor(colorStr); ok {
			return color
		}
	}
	return def
}
