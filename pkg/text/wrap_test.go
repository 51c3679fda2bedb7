package text

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// unit measures one pixel per grapheme cluster at font size 1.
var unit = FixedMeasurer{Advance: 1}

func TestWrap(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		width     float64
		breakWord bool
		want      []string
	}{
		{"empty text is one line", "", 10, false, []string{""}},
		{"fits", "hello", 10, false, []string{"hello"}},
		{"hard newlines", "a\n\nb", 10, false, []string{"a", "", "b"}},
		{"trailing newline adds a line", "a\n", 10, false, []string{"a", ""}},
		{"soft wrap at spaces", "aaa bbb ccc", 7, false, []string{"aaa bbb ", "ccc"}},
		{"long word overflows", "abcdefghij xy", 4, false, []string{"abcdefghij", "xy"}},
		{"long word breaks", "abcdefghij", 4, true, []string{"abcd", "efgh", "ij"}},
		{"broken tail continues line", "abcdefg hi", 4, true, []string{"abcd", "efg ", "hi"}},
		{"breaks keep combining marks", "ae\u0301ioue\u0301", 2, true, []string{"ae\u0301", "io", "ue\u0301"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width, unit, WrapOptions{FontSize: 1, BreakWord: tt.breakWord})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Wrap mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFixedMeasurer(t *testing.T) {
	m := FixedMeasurer{Advance: 0.5}
	if got := m.Width("héllo", 10, true); got != 25 {
		t.Errorf("Width = %v, want 25", got)
	}
	// e followed by a combining acute accent is one cluster.
	if got := m.Width("he\u0301llo", 10, true); got != 25 {
		t.Errorf("Width with combining mark = %v, want 25", got)
	}
}

func TestFontMeasurerFallsBackWithoutFont(t *testing.T) {
	m := NewFontMeasurer(FontConfig{Regular: "/nonexistent/font.ttf"})
	got := m.Width("abcd", 10, false)
	if want := EstimateWidth("abcd", 10); got != want {
		t.Errorf("Width = %v, want estimate %v", got, want)
	}
	// Second call hits the cached failed face.
	if got2 := m.Width("abcd", 10, false); got2 != got {
		t.Errorf("cached Width = %v, want %v", got2, got)
	}
}

func TestFontPath(t *testing.T) {
	fc := FontConfig{Regular: "r.ttf", Monospace: "m.otf"}
	if fc.FontPath(true) != "m.otf" || fc.FontPath(false) != "r.ttf" {
		t.Error("FontPath picked the wrong face")
	}
	if (FontConfig{Regular: "r.ttf"}).FontPath(true) != "r.ttf" {
		t.Error("missing mono face should fall back to regular")
	}
}
