// Package chart holds the data model shared by the statistics, axis, touch and
// legend packages.
package chart

import (
	"image/color"

	"github.com/google/uuid"
)

// RangeEpsilon pads every computed range so that dividing by a range never
// produces an infinite or NaN scale when the maximum equals the minimum.
const RangeEpsilon = 0.001

// Group is a named, colored category applied to data points in grouped and
// stacked bar charts. Groups are compared by value.
type Group struct {
	Title string
	Color color.NRGBA
}

// IsZero reports whether g is the zero Group, which means "no group".
func (g Group) IsZero() bool {
	return g == Group{}
}

// DataPoint is a single value in a chart.
type DataPoint struct {
	ID         uuid.UUID
	Value      float64
	XAxisLabel string
	PointLabel string
	Group      Group
}

// NewDataPoint returns a data point with a fresh identity.
func NewDataPoint(value float64, xAxisLabel, pointLabel string, group Group) DataPoint {
	return DataPoint{
		ID:         uuid.New(),
		Value:      value,
		XAxisLabel: xAxisLabel,
		PointLabel: pointLabel,
		Group:      group,
	}
}

// DataSet is an ordered sequence of points. In grouped and stacked bar charts
// one DataSet is one position along the x axis and its points are drawn
// bottom-up (stacked) or side by side (grouped).
type DataSet struct {
	Label  string
	Points []DataPoint
}

// Variant identifies the kind of chart a Data describes.
type Variant uint8

const (
	Line Variant = iota
	MultiLine
	Bar
	GroupedBar
	StackedBar
	Pie
	Doughnut
)

var variantNames = [...]string{
	Line:       "line",
	MultiLine:  "multiline",
	Bar:        "bar",
	GroupedBar: "grouped",
	StackedBar: "stacked",
	Pie:        "pie",
	Doughnut:   "doughnut",
}

func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return "unknown"
}

// ParseVariant converts the name produced by Variant.String back into a
// Variant.
func ParseVariant(s string) (Variant, error) {
	for i, name := range variantNames {
		if name == s {
			return Variant(i), nil
		}
	}
	return 0, &VariantError{Name: s}
}

// IsMultiBar reports whether v groups several points at each x position.
func (v Variant) IsMultiBar() bool {
	return v == GroupedBar || v == StackedBar
}

// IsCircular reports whether v lays its points out around a circle.
func (v Variant) IsCircular() bool {
	return v == Pie || v == Doughnut
}

// Data is one chart instance: its configuration and the touch overlay state
// derived from interaction with it.
type Data struct {
	Variant Variant
	Sets    []DataSet
	Groups  []Group
	Overlay Overlay
}

// New validates the chart configuration and returns a Data with an empty
// overlay.
func New(variant Variant, sets []DataSet, groups []Group) (*Data, error) {
	if err := Validate(variant, sets, groups); err != nil {
		return nil, err
	}
	return &Data{
		Variant: variant,
		Sets:    sets,
		Groups:  groups,
	}, nil
}

// Find returns the position of the point with the given identity.
func (d *Data) Find(id uuid.UUID) (set, index int, ok bool) {
	for s, ds := range d.Sets {
		for i, p := range ds.Points {
			if p.ID == id {
				return s, i, true
			}
		}
	}
	return 0, 0, false
}

// PointCount returns the total number of points across all sets.
func (d *Data) PointCount() int {
	n := 0
	for _, ds := range d.Sets {
		n += len(ds.Points)
	}
	return n
}
