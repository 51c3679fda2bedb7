package text

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/fogleman/gg"
	"github.com/rivo/uniseg"
)

// Measurer reports the advance width of a run of text at a font size.
type Measurer interface {
	Width(s string, fontSize float64, mono bool) float64
}

// FontConfig holds paths to font files used for text measurement and rendering.
type FontConfig struct {
	Regular   string
	Monospace string
}

// defaultFontsDir returns the fonts directory next to the executable, or
// relative to this source file when running from a checkout.
func defaultFontsDir() string {
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Join(filepath.Dir(exe), "..", "fonts")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "fonts")
}

// DefaultFontConfig returns a FontConfig using the bundled Atkinson Hyperlegible fonts.
func DefaultFontConfig() FontConfig {
	return FontsIn(defaultFontsDir())
}

// FontsIn returns a FontConfig for the Atkinson Hyperlegible fonts in dir.
func FontsIn(dir string) FontConfig {
	return FontConfig{
		Regular:   filepath.Join(dir, "AtkinsonHyperlegible-Regular.ttf"),
		Monospace: filepath.Join(dir, "AtkinsonHyperlegibleMono-Regular.otf"),
	}
}

// FontPath returns the font path for the given face.
func (fc FontConfig) FontPath(mono bool) string {
	if mono && fc.Monospace != "" {
		return fc.Monospace
	}
	return fc.Regular
}

// FontMeasurer measures with real font faces through gg. Faces that fail
// to load fall back to a per-rune estimate so layout still progresses.
type FontMeasurer struct {
	Fonts FontConfig

	mu       sync.Mutex
	contexts map[faceKey]*gg.Context
}

type faceKey struct {
	path string
	size float64
}

func NewFontMeasurer(fonts FontConfig) *FontMeasurer {
	return &FontMeasurer{Fonts: fonts, contexts: make(map[faceKey]*gg.Context)}
}

func (m *FontMeasurer) Width(s string, fontSize float64, mono bool) float64 {
	dc := m.context(m.Fonts.FontPath(mono), fontSize)
	if dc == nil {
		return EstimateWidth(s, fontSize)
	}
	w, _ := dc.MeasureString(s)
	return w
}

// context returns a cached gg context with the face loaded, nil if the
// face cannot be loaded.
func (m *FontMeasurer) context(path string, size float64) *gg.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := faceKey{path, size}
	if dc, ok := m.contexts[key]; ok {
		return dc
	}
	dc := gg.NewContext(1, 1)
	if err := dc.LoadFontFace(path, size); err != nil {
		dc = nil
	}
	m.contexts[key] = dc
	return dc
}

// EstimateWidth is the rough advance used when no font is available.
func EstimateWidth(s string, fontSize float64) float64 {
	return float64(uniseg.GraphemeClusterCount(s)) * fontSize * 0.6
}

// FixedMeasurer gives every grapheme cluster the same advance, expressed as a fraction
// of the font size. Layout with it is exact and reproducible.
type FixedMeasurer struct {
	Advance float64
}

func (m FixedMeasurer) Width(s string, fontSize float64, _ bool) float64 {
	return float64(uniseg.GraphemeClusterCount(s)) * fontSize * m.Advance
}
