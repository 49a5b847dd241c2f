// Package axis generates axis tick values.
package axis

import (
	"git.sr.ht/~whereswaldon/chartkit/chart"
	"git.sr.ht/~whereswaldon/chartkit/stats"
)

// Baseline selects the value the Y axis starts from.
type Baseline uint8

const (
	// BaselineZero starts the axis at zero, as bar charts do.
	BaselineZero Baseline = iota
	// BaselineMinimum starts the axis at the smallest data value.
	BaselineMinimum
)

// DefaultBaseline returns the baseline a chart variant draws against.
func DefaultBaseline(v chart.Variant) Baseline {
	switch v {
	case chart.Line, chart.MultiLine:
		return BaselineMinimum
	default:
		return BaselineZero
	}
}

// Labels returns n+1 evenly spaced values from low to high inclusive. The
// values are a raw linear interpolation and are not rounded to "nice" numbers.
// Labels returns nil if n is less than one.
func Labels(low, high float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	step := (high - low) / float64(n)
	labels := make([]float64, n+1)
	for i := range labels {
		labels[i] = low + float64(i)*step
	}
	return labels
}

// YLabels returns n+1 Y axis labels spanning the summarized data.
func YLabels(s stats.Summary, n int, base Baseline) []float64 {
	low := 0.0
	if base == BaselineMinimum {
		low = s.Min
	}
	return Labels(low, s.Max, n)
}
