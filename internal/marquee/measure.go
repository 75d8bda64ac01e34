package marquee

import (
	"math"
	"strings"
	"unicode"
)

// Separator is appended to the text so adjacent tiles are visually separated.
const Separator = "\u00a0"

// Measurer reports the advance of a string on the host rendering surface. It must use the
// same font context as the rendered tiles, otherwise seams appear at wrap boundaries.
type Measurer interface {
	Advance(text string) float64
}

// MeasureFunc adapts a function to the Measurer interface.
type MeasureFunc func(text string) float64

// Advance calls f(text).
func (f MeasureFunc) Advance(text string) float64 {
	return f(text)
}

// Metrics is the result of measuring the text and the travel path.
type Metrics struct {
	Spacing    float64
	PathLength float64
}

// Frozen reports whether the text could not be measured.
func (m Metrics) Frozen() bool {
	return m.Spacing == 0
}

// NormalizeText strips trailing whitespace (including non-breaking spaces) and appends
// exactly one Separator.
func NormalizeText(text string) string {
	return strings.TrimRightFunc(text, unicode.IsSpace) + Separator
}

// Measure measures already normalized text. A nil measurer, a negative result or a
// non-finite result yields a zero value.
func Measure(m Measurer, text string, pathLength float64) Metrics {
	var spacing float64
	if m != nil {
		spacing = m.Advance(text)
	}
	return Metrics{
		Spacing:    nonNegative(spacing),
		PathLength: nonNegative(pathLength),
	}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
