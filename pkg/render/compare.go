package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// CompareResult is the outcome of comparing a frame against a reference.
type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // largest channel difference seen, 0-255

	// Diff marks differing pixels red over a grayscale copy of the frame.
	// Only set when CompareOptions.Diff is true.
	Diff *image.RGBA
}

// CompareOptions configures Compare.
type CompareOptions struct {
	// Tolerance is the largest per-channel difference (0-255) still
	// counted as equal.
	Tolerance int

	// FuzzyRadius lets a pixel match any reference pixel within this many
	// pixels, absorbing one-pixel shifts from rounding.
	FuzzyRadius int

	// MaxDifferentPercent accepts the frame when at most this share of
	// pixels differs.
	MaxDifferentPercent float64

	Diff bool
}

// DefaultCompareOptions tolerates small anti-aliasing differences.
func DefaultCompareOptions() CompareOptions {
	return CompareOptions{Tolerance: 2}
}

// Compare checks actual against expected pixel by pixel.
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
			d := channelDiff(actual.At(x, y), expected.At(x, y))
			if d > result.MaxDifference {
				result.MaxDifference = d
			}

			same := d <= opts.Tolerance ||
				(opts.FuzzyRadius > 0 && fuzzyMatch(actual, expected, x, y, opts))
			if !same {
				result.Match = false
				result.DifferentPixels++
			}
			if result.Diff != nil {
				result.Diff.Set(x, y, diffColor(actual.At(x, y), same))
			}
		}
	}

	if !result.Match && opts.MaxDifferentPercent > 0 {
		pct := float64(result.DifferentPixels) / float64(result.TotalPixels) * 100
		result.Match = pct <= opts.MaxDifferentPercent
	}
	return result, nil
}

// CompareFile compares actual against the PNG at path.
func CompareFile(actual image.Image, path string, opts CompareOptions) (*CompareResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference image: %w", err)
	}
	defer f.Close()

	expected, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode reference image: %w", err)
	}
	return Compare(actual, expected, opts)
}

func fuzzyMatch(actual, expected image.Image, x, y int, opts CompareOptions) bool {
	bounds := expected.Bounds()
	a := actual.At(x, y)
	for dy := -opts.FuzzyRadius; dy <= opts.FuzzyRadius; dy++ {
		for dx := -opts.FuzzyRadius; dx <= opts.FuzzyRadius; dx++ {
			p := image.Pt(x+dx, y+dy)
			if !p.In(bounds) {
				continue
			}
			if channelDiff(a, expected.At(p.X, p.Y)) <= opts.Tolerance {
				return true
			}
		}
	}
	return false
}

// channelDiff is the largest 8-bit channel difference between a and b.
func channelDiff(a, b color.Color) int {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return max(
		absDiff(ar>>8, br>>8),
		absDiff(ag>>8, bg>>8),
		absDiff(ab>>8, bb>>8),
		absDiff(aa>>8, ba>>8),
	)
}

func absDiff(a, b uint32) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func diffColor(c color.Color, same bool) color.Color {
	if !same {
		return color.RGBA{255, 0, 0, 255}
	}
	g := color.GrayModel.Convert(c).(color.Gray)
	return color.RGBA{g.Y, g.Y, g.Y, 255}
}
