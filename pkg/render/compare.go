package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// CompareResult summarises a pixel comparison.
type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // largest channel difference seen, 0-255

	// Diff shows matching pixels in grey and differing ones in red. Only
	// set when CompareOptions.Diff is true.
	Diff *image.RGBA
}

type CompareOptions struct {
	// Tolerance is the largest per-channel difference still treated as equal.
	Tolerance int
	// FuzzyRadius lets a pixel match any expected pixel within the radius.
	FuzzyRadius int
	// MaxDifferentPercent accepts images with at most this share of
	// differing pixels.
	MaxDifferentPercent float64
	Diff                bool
}

func DefaultCompareOptions() CompareOptions {
	return CompareOptions{Tolerance: 2}
}

// Compare compares two images pixel by pixel.
func Compare(actual, expected image.Image, opts CompareOptions) (*CompareResult, error) {
	bounds := actual.Bounds()
	if bounds != expected.Bounds() {
		return &CompareResult{}, fmt.Errorf("image dimensions differ: actual=%v, expected=%v", bounds, expected.Bounds())
	}

	result := &CompareResult{Match: true, TotalPixels: bounds.Dx() * bounds.Dy()}
	if opts.Diff {
		result.Diff = image.NewRGBA(bounds)
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := rgba8(actual.At(x, y))
			diff := channelDiff(a, rgba8(expected.At(x, y)))
			result.MaxDifference = max(result.MaxDifference, diff)

			same := diff <= opts.Tolerance ||
				(opts.FuzzyRadius > 0 && fuzzyMatch(a, expected, x, y, opts.FuzzyRadius, opts.Tolerance))
			if !same {
				result.Match = false
				result.DifferentPixels++
			}
			if result.Diff != nil {
				if same {
					result.Diff.Set(x, y, color.RGBA{a.R, a.R, a.R, 255})
				} else {
					result.Diff.Set(x, y, color.RGBA{255, 0, 0, 255})
				}
			}
		}
	}

	if !result.Match && opts.MaxDifferentPercent > 0 && result.TotalPixels > 0 {
		pct := float64(result.DifferentPixels) / float64(result.TotalPixels) * 100
		result.Match = pct <= opts.MaxDifferentPercent
	}
	return result, nil
}

// fuzzyMatch reports whether a matches any expected pixel within radius
// of (x, y).
func fuzzyMatch(a color.RGBA, expected image.Image, x, y, radius, tolerance int) bool {
	bounds := expected.Bounds()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			p := image.Pt(x+dx, y+dy)
			if !p.In(bounds) {
				continue
			}
			if channelDiff(a, rgba8(expected.At(p.X, p.Y))) <= tolerance {
				return true
			}
		}
	}
	return false
}

func rgba8(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func channelDiff(a, b color.RGBA) int {
	return max(absInt(int(a.R)-int(b.R)), absInt(int(a.G)-int(b.G)),
		absInt(int(a.B)-int(b.B)), absInt(int(a.A)-int(b.A)))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// LoadPNG decodes the PNG at path.
func LoadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
