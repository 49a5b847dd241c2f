// Package touch maps between pixel locations inside a chart's drawing
// rectangle and the chart's logical data points.
//
// Everything here runs synchronously on the goroutine that delivers input
// events. The only state touched is the chart.Overlay of the chart being
// resolved.
package touch

import (
	"math"
	"sort"

	"git.sr.ht/~whereswaldon/chartkit/chart"
	"git.sr.ht/~whereswaldon/chartkit/stats"
)

// Locate returns the data points under p. Locations outside r are clamped to
// its edges. Bar and pie charts yield at most one point, line charts yield one
// point per data set. An empty result means nothing is under p.
func Locate(d *chart.Data, p Point, r Rect) []chart.DataPoint {
	if len(d.Sets) == 0 || r.Empty() {
		return nil
	}
	p = r.local(p)
	switch d.Variant {
	case chart.StackedBar:
		s, err := stats.Compute(d.Sets)
		if err != nil {
			return nil
		}
		stack := bin(p.X, r.Dx(), len(d.Sets))
		tops := stackTops(d.Sets[stack], s.Max, r.Dy())
		if len(tops) == 0 {
			return nil
		}
		// Segment tops are measured up from the bottom edge.
		index := segmentAt(tops, r.Dy()-p.Y)
		return []chart.DataPoint{d.Sets[stack].Points[index]}
	case chart.GroupedBar:
		stack := bin(p.X, r.Dx(), len(d.Sets))
		points := d.Sets[stack].Points
		if len(points) == 0 {
			return nil
		}
		binWidth := r.Dx() / float64(len(d.Sets))
		index := bin(p.X-float64(stack)*binWidth, binWidth, len(points))
		return []chart.DataPoint{points[index]}
	case chart.Bar:
		points := d.Sets[0].Points
		if len(points) == 0 {
			return nil
		}
		return []chart.DataPoint{points[bin(p.X, r.Dx(), len(points))]}
	case chart.Line, chart.MultiLine:
		var found []chart.DataPoint
		for _, ds := range d.Sets {
			if len(ds.Points) == 0 {
				continue
			}
			found = append(found, ds.Points[lineIndex(p.X, r.Dx(), len(ds.Points))])
		}
		return found
	case chart.Pie, chart.Doughnut:
		slices := pieSlices(d.Sets[0])
		if len(slices) == 0 {
			return nil
		}
		angle := clockAngle(p, r)
		index := sort.Search(len(slices), func(i int) bool {
			return angle < slices[i].end
		})
		if index == len(slices) {
			index--
		}
		return []chart.DataPoint{d.Sets[0].Points[slices[index].index]}
	}
	return nil
}

// Resolve locates the points under p and stores them in the chart's overlay,
// replacing whatever the previous touch resolved. A touch over nothing leaves
// the overlay active but empty.
func Resolve(d *chart.Data, p Point, r Rect) {
	d.Overlay.Set(Locate(d, p, r)...)
}

// End records the end of a touch, clearing the chart's overlay.
func End(d *chart.Data) {
	d.Overlay.Clear()
}

// stackTops returns the cumulative height of each segment of a stacked bar,
// measured up from the bottom of a chart of the given height. The bar as a
// whole is as tall as its largest segment value relative to overall, and each
// segment takes its share of the stack's sum. It returns nil when the stack
// cannot be drawn.
func stackTops(ds chart.DataSet, overall, height float64) []float64 {
	sum := stats.Sum(ds)
	if sum <= 0 || overall <= 0 {
		return nil
	}
	stackHeight := height * (stats.SetMax(ds) / overall)
	tops := make([]float64, len(ds.Points))
	acc := 0.0
	for i, p := range ds.Points {
		acc += stackHeight * (p.Value / sum)
		tops[i] = acc
	}
	return tops
}

// segmentAt returns the index of the first segment whose span contains y,
// given cumulative segment tops measured up from the bottom. A negative value
// makes its segment extend downwards, so tops need not increase. A y above
// every segment selects the top segment.
func segmentAt(tops []float64, y float64) int {
	bottom := 0.0
	for i, top := range tops {
		if min(bottom, top) <= y && y < max(bottom, top) {
			return i
		}
		bottom = top
	}
	return len(tops) - 1
}

// lineIndex returns the index of the line point nearest x when count points
// are spread across width with the first and last on the edges.
func lineIndex(x, width float64, count int) int {
	if count < 2 {
		return 0
	}
	section := width / float64(count-1)
	return clamp(int(math.Round(x/section)), 0, count-1)
}

type slice struct {
	index      int
	start, end float64
}

// pieSlices returns the angular extent of each positive point of ds, in
// radians clockwise from twelve o'clock.
func pieSlices(ds chart.DataSet) []slice {
	total := 0.0
	for _, p := range ds.Points {
		if p.Value > 0 {
			total += p.Value
		}
	}
	if total <= 0 {
		return nil
	}
	var slices []slice
	start := 0.0
	for i, p := range ds.Points {
		if p.Value <= 0 {
			continue
		}
		end := start + (p.Value/total)*2*math.Pi
		slices = append(slices, slice{index: i, start: start, end: end})
		start = end
	}
	return slices
}

// clockAngle returns the angle of the local point p around the centre of r,
// clockwise from twelve o'clock, in [0, 2π).
func clockAngle(p Point, r Rect) float64 {
	dx := p.X - r.Dx()/2
	up := r.Dy()/2 - p.Y
	angle := math.Atan2(dx, up)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}
