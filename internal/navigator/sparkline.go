package navigator

import (
	"math"
	"strings"
)

// sparkGlyphs is the 8-level ramp, lowest first
var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values as exactly width glyphs. Longer inputs are
// downsampled by stride (output i takes input i*len/width); shorter inputs
// get one glyph per value, right-aligned behind blank padding. Empty or
// flat input renders as width blanks.
func Sparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat(" ", width)
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		return strings.Repeat(" ", width)
	}

	samples := values
	if len(values) > width {
		samples = make([]float64, width)
		for i := range samples {
			samples[i] = values[i*len(values)/width]
		}
	}

	var sb strings.Builder
	sb.Grow(width * 3)
	sb.WriteString(strings.Repeat(" ", width-len(samples)))

	top := len(sparkGlyphs) - 1
	for _, v := range samples {
		level := int((v - lo) / (hi - lo) * float64(top))
		if level < 0 {
			level = 0
		} else if level > top {
			level = top
		}
		sb.WriteRune(sparkGlyphs[level])
	}

	return sb.String()
}

// SparkLevel returns the ramp level (0-7) of a glyph, or -1 for anything else
func SparkLevel(r rune) int {
	for i, g := range sparkGlyphs {
		if g == r {
			return i
		}
	}
	return -1
}
