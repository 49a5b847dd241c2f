// Package legend describes chart legend entries and decides which of them to
// emphasize while the chart is being touched.
package legend

import (
	"image/color"

	"github.com/google/uuid"

	"git.sr.ht/~whereswaldon/chartkit/chart"
)

// ChartType is the kind of swatch a legend entry is drawn with.
type ChartType uint8

const (
	Line ChartType = iota
	Bar
	Pie
)

func (c ChartType) String() string {
	switch c {
	case Line:
		return "line"
	case Bar:
		return "bar"
	case Pie:
		return "pie"
	default:
		return "unknown"
	}
}

// Priority values. Anything above PrimaryPriority marks a point of interest.
const (
	PrimaryPriority = 1
	MarkerPriority  = 2
)

// FillKind tags which field of a Fill is in use.
type FillKind uint8

const (
	FillColor FillKind = iota
	FillColors
	FillStops
)

// Stop is one stop of a gradient. Location is in [0, 1].
type Stop struct {
	Color    color.NRGBA
	Location float64
}

// Fill is the paint of a legend swatch.
type Fill struct {
	Kind   FillKind
	Color  color.NRGBA
	Colors []color.NRGBA
	Stops  []Stop
}

// Solid returns a single-color fill.
func Solid(c color.NRGBA) Fill {
	return Fill{Kind: FillColor, Color: c}
}

// Gradient returns a fill blending evenly between colors.
func Gradient(colors ...color.NRGBA) Fill {
	return Fill{Kind: FillColors, Colors: colors}
}

// GradientStops returns a fill blending between explicit stops.
func GradientStops(stops ...Stop) Fill {
	return Fill{Kind: FillStops, Stops: stops}
}

// Direction is the axis of a gradient fill in unit coordinates of the swatch.
type Direction struct {
	StartX, StartY float64
	EndX, EndY     float64
}

// Entry is one swatch and label of a chart legend.
type Entry struct {
	// ID is shared with the data point the entry describes, if any.
	ID        uuid.UUID
	ChartType ChartType
	Priority  int
	Text      string
	Fill      Fill
	Direction *Direction
}

// Marker returns a point of interest legend entry.
func Marker(chartType ChartType, text string, c color.NRGBA) Entry {
	return Entry{
		ID:        uuid.New(),
		ChartType: chartType,
		Priority:  MarkerPriority,
		Text:      text,
		Fill:      Solid(c),
	}
}

// Build returns the primary legend entries for a chart. Line charts get one
// entry per data set, bar and pie charts one entry per point and grouped or
// stacked bar charts one entry per declared group. Colors for data sets and
// points are taken from palette in order.
func Build(d *chart.Data, palette []color.NRGBA) []Entry {
	pick := func(i int) color.NRGBA {
		if len(palette) == 0 {
			return color.NRGBA{A: 0xff}
		}
		return palette[i%len(palette)]
	}
	var entries []Entry
	switch d.Variant {
	case chart.Line, chart.MultiLine:
		for i, ds := range d.Sets {
			entries = append(entries, Entry{
				ID:        uuid.New(),
				ChartType: Line,
				Priority:  PrimaryPriority,
				Text:      ds.Label,
				Fill:      Solid(pick(i)),
			})
		}
	case chart.Bar, chart.Pie, chart.Doughnut:
		chartType := Bar
		if d.Variant.IsCircular() {
			chartType = Pie
		}
		if len(d.Sets) == 0 {
			break
		}
		for i, p := range d.Sets[0].Points {
			entries = append(entries, Entry{
				ID:        p.ID,
				ChartType: chartType,
				Priority:  PrimaryPriority,
				Text:      p.PointLabel,
				Fill:      Solid(pick(i)),
			})
		}
	case chart.GroupedBar, chart.StackedBar:
		for _, g := range d.Groups {
			entries = append(entries, Entry{
				ID:        uuid.New(),
				ChartType: Bar,
				Priority:  PrimaryPriority,
				Text:      g.Title,
				Fill:      Solid(g.Color),
			})
		}
	}
	return entries
}

// ShouldEmphasize reports whether e should be drawn emphasized given the
// current touch overlay of a chart of the given variant.
//
// On single series bar and pie charts an entry is emphasized while the touched
// point is the one it describes. On grouped and stacked bar charts an entry is
// emphasized while the touched point's group has the entry's color, so every
// stack sharing that group highlights the same entry.
func ShouldEmphasize(e Entry, o *chart.Overlay, v chart.Variant) bool {
	if !o.Active {
		return false
	}
	touched, ok := o.First()
	if !ok {
		return false
	}
	switch e.ChartType {
	case Bar:
		switch v {
		case chart.Bar:
			return e.ID == touched.ID
		case chart.GroupedBar, chart.StackedBar:
			return e.Fill.Kind == FillColor && e.Fill.Color == touched.Group.Color
		}
	case Pie:
		if v.IsCircular() {
			return e.ID == touched.ID
		}
	}
	return false
}
