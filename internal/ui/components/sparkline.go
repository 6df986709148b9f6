package components

import (
	"strings"
)

// Sparkline characters: U+2581 to U+2588
var sparkBars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline converts values to unicode sparkline
func RenderSparkline(values []int) string {
	if len(values) == 0 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	var sb strings.Builder
	if hi == lo {
		// All values are the same, use middle bar
		for range values {
			sb.WriteRune(sparkBars[len(sparkBars)/2])
		}
		return sb.String()
	}

	scale := float64(len(sparkBars)-1) / float64(hi-lo)
	for _, v := range values {
		idx := int(float64(v-lo) * scale)
		idx = max(0, min(idx, len(sparkBars)-1))
		sb.WriteRune(sparkBars[idx])
	}
	return sb.String()
}

// RenderSparklineColored returns sparkline with tview color tags
func RenderSparklineColored(values []int, width int, color string) string {
	spark := RenderSparklineWithWidth(values, width)
	if spark == "" {
		return ""
	}
	return "[" + color + "]" + spark + "[-]"
}

// RenderSparklineWithWidth renders sparkline scaled to a target width
func RenderSparklineWithWidth(values []int, targetWidth int) string {
	if len(values) == 0 || targetWidth <= 0 {
		return ""
	}
	return RenderSparkline(Downsample(values, targetWidth))
}

// Downsample averages values into at most width buckets
func Downsample(values []int, width int) []int {
	if width <= 0 || len(values) <= width {
		return values
	}

	scaled := make([]int, width)
	bucketSize := float64(len(values)) / float64(width)
	for i := 0; i < width; i++ {
		start := int(float64(i) * bucketSize)
		end := min(int(float64(i+1)*bucketSize), len(values))

		sum := 0
		for j := start; j < end; j++ {
			sum += values[j]
		}
		if end > start {
			scaled[i] = sum / (end - start)
		}
	}
	return scaled
}
