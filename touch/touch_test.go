package touch

import (
	"image/color"
	"math"
	"testing"

	"git.sr.ht/~whereswaldon/chartkit/chart"
)

var groups = []chart.Group{
	{Title: "One", Color: color.NRGBA{B: 0xff, A: 0xff}},
	{Title: "Two", Color: color.NRGBA{R: 0xff, A: 0xff}},
	{Title: "Three", Color: color.NRGBA{R: 0xff, G: 0xff, A: 0xff}},
	{Title: "Four", Color: color.NRGBA{G: 0xff, A: 0xff}},
}

func makeData(t *testing.T, variant chart.Variant, rows ...[]float64) *chart.Data {
	t.Helper()
	sets := make([]chart.DataSet, 0, len(rows))
	for _, row := range rows {
		var ds chart.DataSet
		for i, v := range row {
			var g chart.Group
			if variant.IsMultiBar() {
				g = groups[i%len(groups)]
			}
			ds.Points = append(ds.Points, chart.NewDataPoint(v, "", "", g))
		}
		sets = append(sets, ds)
	}
	d, err := chart.New(variant, sets, groups)
	if err != nil {
		t.Fatalf("failed building chart: %v", err)
	}
	return d
}

func stackedFixture(t *testing.T) *chart.Data {
	return makeData(t, chart.StackedBar,
		[]float64{10, 50, 30, 40},
		[]float64{20, 60, 40, 60},
		[]float64{30, 70, 30, 90},
		[]float64{40, 80, 20, 50},
	)
}

type stackedCase struct {
	touch        Point
	stack, index int
	location     Point
}

var stackedCases = []stackedCase{
	{touch: Pt(5, 95), stack: 0, index: 1, location: Pt(12.50, 74.35)},
	{touch: Pt(5, 60), stack: 0, index: 3, location: Pt(12.50, 44.44)},
	{touch: Pt(30, 95), stack: 1, index: 0, location: Pt(37.50, 92.59)},
	{touch: Pt(30, 66), stack: 1, index: 2, location: Pt(37.50, 55.55)},
	{touch: Pt(55, 95), stack: 2, index: 0, location: Pt(62.50, 86.36)},
	{touch: Pt(55, 10), stack: 2, index: 3, location: Pt(62.50, 0.00)},
	{touch: Pt(83, 50), stack: 3, index: 1, location: Pt(87.50, 43.85)},
	{touch: Pt(83, 40), stack: 3, index: 2, location: Pt(87.50, 34.50)},
}

func near(a, b Point) bool {
	return math.Abs(a.X-b.X) <= 0.01 && math.Abs(a.Y-b.Y) <= 0.01
}

func TestStackedLocate(t *testing.T) {
	d := stackedFixture(t)
	r := Size(100, 100)
	for _, tc := range stackedCases {
		Resolve(d, tc.touch, r)
		got, ok := d.Overlay.First()
		expected := d.Sets[tc.stack].Points[tc.index]
		if !ok || got.ID != expected.ID {
			t.Errorf("touch %v: expected stack %d point %d (%v), got %v", tc.touch, tc.stack, tc.index, expected.Value, got.Value)
		}
		if len(d.Overlay.Points) != 1 {
			t.Errorf("touch %v: expected exactly one resolved point, got %d", tc.touch, len(d.Overlay.Points))
		}
		if !d.Overlay.Active {
			t.Errorf("touch %v: expected overlay to be active", tc.touch)
		}
	}
}

func TestStackedPointLocation(t *testing.T) {
	d := stackedFixture(t)
	r := Size(100, 100)
	for _, tc := range stackedCases {
		loc, ok := TouchPointLocation(d, tc.touch, r)
		if !ok || !near(loc, tc.location) {
			t.Errorf("touch %v: expected location %v, got %v (%v)", tc.touch, tc.location, loc, ok)
		}
		loc, ok = StackedPointLocation(d, tc.stack, tc.index, r)
		if !ok || !near(loc, tc.location) {
			t.Errorf("stack %d point %d: expected location %v, got %v (%v)", tc.stack, tc.index, tc.location, loc, ok)
		}
		loc, ok = PointLocation(d, d.Sets[tc.stack].Points[tc.index], r)
		if !ok || !near(loc, tc.location) {
			t.Errorf("point %d/%d: expected location %v, got %v (%v)", tc.stack, tc.index, tc.location, loc, ok)
		}
	}
}

func TestStackedOffsetRect(t *testing.T) {
	d := stackedFixture(t)
	r := Rect{Min: Pt(10, 20), Max: Pt(110, 120)}
	found := Locate(d, Pt(15, 115), r)
	if len(found) != 1 || found[0].ID != d.Sets[0].Points[1].ID {
		t.Errorf("expected stack 0 point 1 in offset rect, got %v", found)
	}
	loc, ok := StackedPointLocation(d, 0, 1, r)
	if !ok || !near(loc, Pt(22.50, 94.35)) {
		t.Errorf("expected offset location (22.50, 94.35), got %v", loc)
	}
}

func TestStackedClamping(t *testing.T) {
	d := stackedFixture(t)
	r := Size(100, 100)
	for _, tc := range []struct {
		touch        Point
		stack, index int
	}{
		{touch: Pt(-50, 95), stack: 0, index: 1},
		{touch: Pt(500, 200), stack: 3, index: 0},
		{touch: Pt(100, 100), stack: 3, index: 0},
		// Above the top of a short stack resolves to its top segment.
		{touch: Pt(5, 10), stack: 0, index: 3},
		{touch: Pt(5, -40), stack: 0, index: 3},
	} {
		found := Locate(d, tc.touch, r)
		if len(found) != 1 || found[0].ID != d.Sets[tc.stack].Points[tc.index].ID {
			t.Errorf("touch %v: expected stack %d point %d, got %v", tc.touch, tc.stack, tc.index, found)
		}
	}
}

func TestNoMatch(t *testing.T) {
	d := makeData(t, chart.StackedBar, []float64{0, 0}, []float64{1, 2})
	r := Size(100, 100)
	Resolve(d, Pt(10, 90), r)
	if !d.Overlay.Active || len(d.Overlay.Points) != 0 {
		t.Errorf("expected an active, empty overlay over a zero stack, got %+v", d.Overlay)
	}
	if _, ok := StackedPointLocation(d, 0, 0, r); ok {
		t.Errorf("expected no location inside a zero stack")
	}
	if _, ok := StackedPointLocation(d, 2, 0, r); ok {
		t.Errorf("expected no location for an out of range stack")
	}
	if _, ok := StackedPointLocation(d, 1, 5, r); ok {
		t.Errorf("expected no location for an out of range point")
	}
	if found := Locate(d, Pt(60, 90), Size(0, 100)); len(found) != 0 {
		t.Errorf("expected no match in an empty rect, got %v", found)
	}
	if _, ok := PointLocation(d, chart.NewDataPoint(1, "", "", chart.Group{}), r); ok {
		t.Errorf("expected no location for a foreign point")
	}
}

func TestResolveIdempotent(t *testing.T) {
	d := stackedFixture(t)
	r := Size(100, 100)
	Resolve(d, Pt(83, 40), r)
	first := append([]chart.DataPoint(nil), d.Overlay.Points...)
	firstActive := d.Overlay.Active
	Resolve(d, Pt(83, 40), r)
	if firstActive != d.Overlay.Active || len(first) != len(d.Overlay.Points) {
		t.Fatalf("expected identical overlay, got %+v then %+v", first, d.Overlay.Points)
	}
	for i := range first {
		if first[i] != d.Overlay.Points[i] {
			t.Errorf("[%d] expected %v, got %v", i, first[i], d.Overlay.Points[i])
		}
	}
	End(d)
	if d.Overlay.Active || len(d.Overlay.Points) != 0 {
		t.Errorf("expected End to clear the overlay, got %+v", d.Overlay)
	}
}

func TestStackSegments(t *testing.T) {
	d := stackedFixture(t)
	r := Size(100, 100)
	segments := StackSegments(d, r)
	if len(segments) != len(d.Sets) {
		t.Fatalf("expected %d stacks, got %d", len(d.Sets), len(segments))
	}
	for _, tc := range stackedCases {
		seg := segments[tc.stack][tc.index]
		if seg.Point.ID != d.Sets[tc.stack].Points[tc.index].ID {
			t.Errorf("segment %d/%d holds the wrong point", tc.stack, tc.index)
		}
		if math.Abs(seg.Rect.Min.Y-tc.location.Y) > 0.01 {
			t.Errorf("segment %d/%d: expected top %f, got %f", tc.stack, tc.index, tc.location.Y, seg.Rect.Min.Y)
		}
		// The centre of every drawn segment resolves back to its own point.
		centre := Pt((seg.Rect.Min.X+seg.Rect.Max.X)/2, (seg.Rect.Min.Y+seg.Rect.Max.Y)/2)
		found := Locate(d, centre, r)
		if len(found) != 1 || found[0].ID != seg.Point.ID {
			t.Errorf("segment %d/%d: centre %v resolved to %v", tc.stack, tc.index, centre, found)
		}
	}
	if StackSegments(makeData(t, chart.Bar, []float64{1}), r) != nil {
		t.Errorf("expected no segments for a plain bar chart")
	}
}

func TestStackedNegativeValue(t *testing.T) {
	// Segment tops are 40, 20 and 100: the negative middle value reaches
	// back down into the first segment.
	d := makeData(t, chart.StackedBar, []float64{10, -5, 20})
	r := Size(100, 100)
	for _, tc := range []struct {
		touch Point
		index int
	}{
		{touch: Pt(50, 95), index: 0},
		{touch: Pt(50, 70), index: 0},
		{touch: Pt(50, 50), index: 2},
		{touch: Pt(50, 10), index: 2},
		{touch: Pt(50, 0), index: 2},
	} {
		found := Locate(d, tc.touch, r)
		expected := d.Sets[0].Points[tc.index]
		if len(found) != 1 || found[0].ID != expected.ID {
			t.Errorf("touch %v: expected point %d (%v), got %v", tc.touch, tc.index, expected.Value, found)
		}
	}
	seg := StackSegments(d, r)[0][1]
	if math.Abs(seg.Rect.Min.Y-60) > 0.01 || math.Abs(seg.Rect.Max.Y-80) > 0.01 {
		t.Errorf("expected the negative segment to span 60 to 80, got %v", seg.Rect)
	}
}

func TestSegmentAt(t *testing.T) {
	tops := []float64{40, 20, 100}
	for _, tc := range []struct {
		y     float64
		index int
	}{
		{y: 0, index: 0},
		{y: 30, index: 0},
		{y: 39.9, index: 0},
		{y: 40, index: 2},
		{y: 100, index: 2},
		{y: 150, index: 2},
	} {
		if got := segmentAt(tops, tc.y); got != tc.index {
			t.Errorf("y %v: expected segment %d, got %d", tc.y, tc.index, got)
		}
	}
}

func TestGroupedBar(t *testing.T) {
	d := makeData(t, chart.GroupedBar, []float64{1, 2}, []float64{3, 4})
	r := Size(100, 100)
	for _, tc := range []struct {
		touch      Point
		set, index int
	}{
		{touch: Pt(30, 10), set: 0, index: 1},
		{touch: Pt(60, 90), set: 1, index: 0},
		{touch: Pt(100, 50), set: 1, index: 1},
	} {
		found := Locate(d, tc.touch, r)
		if len(found) != 1 || found[0].ID != d.Sets[tc.set].Points[tc.index].ID {
			t.Errorf("touch %v: expected set %d point %d, got %v", tc.touch, tc.set, tc.index, found)
		}
	}
	loc, ok := PointLocation(d, d.Sets[0].Points[1], r)
	if !ok || !near(loc, Pt(37.5, 50)) {
		t.Errorf("expected (37.5, 50), got %v", loc)
	}
}

func TestBar(t *testing.T) {
	d := makeData(t, chart.Bar, []float64{5, 10, 15, 20})
	r := Size(100, 100)
	for _, tc := range []struct {
		x     float64
		index int
	}{
		{x: -5, index: 0},
		{x: 24.9, index: 0},
		{x: 25, index: 1},
		{x: 99, index: 3},
		{x: 150, index: 3},
	} {
		found := Locate(d, Pt(tc.x, 50), r)
		if len(found) != 1 || found[0].ID != d.Sets[0].Points[tc.index].ID {
			t.Errorf("x %v: expected point %d, got %v", tc.x, tc.index, found)
		}
	}
	loc, ok := PointLocation(d, d.Sets[0].Points[1], r)
	if !ok || !near(loc, Pt(37.5, 50)) {
		t.Errorf("expected (37.5, 50), got %v", loc)
	}
}

func TestLine(t *testing.T) {
	d := makeData(t, chart.MultiLine, []float64{10, 20, 30}, []float64{15, 25, 35})
	r := Size(100, 100)
	for _, tc := range []struct {
		x     float64
		index int
	}{
		{x: 20, index: 0},
		{x: 30, index: 1},
		{x: 74, index: 1},
		{x: 100, index: 2},
	} {
		found := Locate(d, Pt(tc.x, 0), r)
		if len(found) != 2 {
			t.Fatalf("x %v: expected one point per set, got %v", tc.x, found)
		}
		for set := range d.Sets {
			if found[set].ID != d.Sets[set].Points[tc.index].ID {
				t.Errorf("x %v set %d: expected point %d", tc.x, set, tc.index)
			}
		}
	}
	// min 10, range 25.001
	loc, ok := PointLocation(d, d.Sets[0].Points[1], r)
	expected := Pt(50, 100-(10/(25+chart.RangeEpsilon))*100)
	if !ok || !near(loc, expected) {
		t.Errorf("expected %v, got %v", expected, loc)
	}
}

func TestPie(t *testing.T) {
	d := makeData(t, chart.Pie, []float64{1, 1, 2})
	r := Size(100, 100)
	for _, tc := range []struct {
		touch Point
		index int
	}{
		{touch: Pt(75, 25), index: 0},
		{touch: Pt(75, 75), index: 1},
		{touch: Pt(25, 50), index: 2},
		{touch: Pt(49, 1), index: 2},
	} {
		found := Locate(d, tc.touch, r)
		if len(found) != 1 || found[0].ID != d.Sets[0].Points[tc.index].ID {
			t.Errorf("touch %v: expected slice %d, got %v", tc.touch, tc.index, found)
		}
	}
	for i, p := range d.Sets[0].Points {
		loc, ok := PointLocation(d, p, r)
		if !ok {
			t.Fatalf("expected a location for slice %d", i)
		}
		found := Locate(d, loc, r)
		if len(found) != 1 || found[0].ID != p.ID {
			t.Errorf("slice %d: marker %v resolved to %v", i, loc, found)
		}
	}
}
