package touch

import (
	"math"

	"git.sr.ht/~whereswaldon/chartkit/chart"
	"git.sr.ht/~whereswaldon/chartkit/stats"
)

// Segment is the drawn rectangle of one point of a stacked bar.
type Segment struct {
	Set, Index int
	Point      chart.DataPoint
	Rect       Rect
}

// StackedPointLocation returns where to place an overlay marker for point
// index of the given stack: horizontally centred in the stack's column, at the
// top of the point's segment. It reports false if the stack or point does not
// exist or the stack cannot be drawn.
func StackedPointLocation(d *chart.Data, stack, index int, r Rect) (Point, bool) {
	if stack < 0 || stack >= len(d.Sets) || r.Empty() {
		return Point{}, false
	}
	ds := d.Sets[stack]
	if index < 0 || index >= len(ds.Points) {
		return Point{}, false
	}
	s, err := stats.Compute(d.Sets)
	if err != nil {
		return Point{}, false
	}
	tops := stackTops(ds, s.Max, r.Dy())
	if len(tops) == 0 {
		return Point{}, false
	}
	binWidth := r.Dx() / float64(len(d.Sets))
	return r.global(Point{
		X: (float64(stack) + 0.5) * binWidth,
		Y: r.Dy() - tops[index],
	}), true
}

// PointLocation returns where to place an overlay marker for p, which is
// looked up in d by identity. Bars are marked at the centre of their top edge,
// line points at their vertex and pie slices halfway out along their middle.
func PointLocation(d *chart.Data, p chart.DataPoint, r Rect) (Point, bool) {
	set, index, ok := d.Find(p.ID)
	if !ok || r.Empty() {
		return Point{}, false
	}
	if d.Variant == chart.StackedBar {
		return StackedPointLocation(d, set, index, r)
	}
	s, err := stats.Compute(d.Sets)
	if err != nil {
		return Point{}, false
	}
	w, h := r.Dx(), r.Dy()
	switch d.Variant {
	case chart.GroupedBar:
		if s.Max <= 0 {
			return Point{}, false
		}
		binWidth := w / float64(len(d.Sets))
		subWidth := binWidth / float64(len(d.Sets[set].Points))
		return r.global(Point{
			X: float64(set)*binWidth + (float64(index)+0.5)*subWidth,
			Y: h - (p.Value/s.Max)*h,
		}), true
	case chart.Bar:
		if s.Max <= 0 || set != 0 {
			return Point{}, false
		}
		binWidth := w / float64(len(d.Sets[0].Points))
		return r.global(Point{
			X: (float64(index) + 0.5) * binWidth,
			Y: h - (p.Value/s.Max)*h,
		}), true
	case chart.Line, chart.MultiLine:
		x := w / 2
		if count := len(d.Sets[set].Points); count > 1 {
			x = float64(index) * (w / float64(count-1))
		}
		return r.global(Point{
			X: x,
			Y: h - ((p.Value-s.Min)/s.Range)*h,
		}), true
	case chart.Pie, chart.Doughnut:
		if set != 0 {
			return Point{}, false
		}
		for _, sl := range pieSlices(d.Sets[0]) {
			if sl.index != index {
				continue
			}
			mid := (sl.start + sl.end) / 2
			radius := min(w, h) / 4
			return r.global(Point{
				X: w/2 + math.Sin(mid)*radius,
				Y: h/2 - math.Cos(mid)*radius,
			}), true
		}
	}
	return Point{}, false
}

// TouchPointLocation locates the point under p and returns where its overlay
// marker belongs. For line charts with several sets the first set's point is
// used.
func TouchPointLocation(d *chart.Data, p Point, r Rect) (Point, bool) {
	found := Locate(d, p, r)
	if len(found) == 0 {
		return Point{}, false
	}
	return PointLocation(d, found[0], r)
}

// StackSegments returns the rectangle of every segment of a stacked bar chart
// using the same geometry as Locate, so that drawn bars and resolved touches
// agree to the pixel. Each rectangle spans its stack's full column width.
func StackSegments(d *chart.Data, r Rect) [][]Segment {
	if d.Variant != chart.StackedBar || len(d.Sets) == 0 || r.Empty() {
		return nil
	}
	s, err := stats.Compute(d.Sets)
	if err != nil {
		return nil
	}
	binWidth := r.Dx() / float64(len(d.Sets))
	out := make([][]Segment, len(d.Sets))
	for stack, ds := range d.Sets {
		tops := stackTops(ds, s.Max, r.Dy())
		bottom := 0.0
		for i, top := range tops {
			out[stack] = append(out[stack], Segment{
				Set:   stack,
				Index: i,
				Point: ds.Points[i],
				Rect: Rect{
					Min: r.global(Point{X: float64(stack) * binWidth, Y: r.Dy() - max(top, bottom)}),
					Max: r.global(Point{X: float64(stack+1) * binWidth, Y: r.Dy() - min(top, bottom)}),
				},
			})
			bottom = top
		}
	}
	return out
}
