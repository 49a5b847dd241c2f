// Package stats summarizes chart data sets.
package stats

import (
	mstats "github.com/aclements/go-moremath/stats"

	"git.sr.ht/~whereswaldon/chartkit/chart"
)

// Summary describes the values of one or more data sets.
type Summary struct {
	// Max and Min are the largest and smallest individual point values.
	Max, Min float64
	// Average is the mean of the individual point values.
	Average float64
	// Range is Max-Min padded by chart.RangeEpsilon.
	Range float64
	// StackMax and StackAverage describe the per-stack sums, where each data
	// set is one stack.
	StackMax, StackAverage float64
}

// Compute summarizes sets. It returns chart.ErrEmptyData if the sets hold no
// points.
func Compute(sets []chart.DataSet) (Summary, error) {
	values := Values(sets)
	if len(values) == 0 {
		return Summary{}, chart.ErrEmptyData
	}
	var s Summary
	s.Min, s.Max = mstats.Bounds(values)
	s.Average = mstats.Mean(values)
	s.Range = s.Max - s.Min + chart.RangeEpsilon

	sums := StackSums(sets)
	_, s.StackMax = mstats.Bounds(sums)
	s.StackAverage = mstats.Mean(sums)
	return s, nil
}

// Values flattens the point values of sets in order.
func Values(sets []chart.DataSet) []float64 {
	var values []float64
	for _, ds := range sets {
		for _, p := range ds.Points {
			values = append(values, p.Value)
		}
	}
	return values
}

// StackSums returns the sum of each non-empty data set.
func StackSums(sets []chart.DataSet) []float64 {
	sums := make([]float64, 0, len(sets))
	for _, ds := range sets {
		if len(ds.Points) == 0 {
			continue
		}
		sums = append(sums, Sum(ds))
	}
	return sums
}

// Sum returns the total of the values in ds.
func Sum(ds chart.DataSet) float64 {
	sum := 0.0
	for _, p := range ds.Points {
		sum += p.Value
	}
	return sum
}

// SetMax returns the largest value in ds, or zero if ds is empty.
func SetMax(ds chart.DataSet) float64 {
	if len(ds.Points) == 0 {
		return 0
	}
	m := ds.Points[0].Value
	for _, p := range ds.Points[1:] {
		m = max(m, p.Value)
	}
	return m
}

// IsGreaterThanTwo reports whether every data set holds more than two points.
// It counts points per data set, not data sets, so four sets of one point
// each report false.
func IsGreaterThanTwo(sets []chart.DataSet) bool {
	if len(sets) == 0 {
		return false
	}
	for _, ds := range sets {
		if len(ds.Points) <= 2 {
			return false
		}
	}
	return true
}
