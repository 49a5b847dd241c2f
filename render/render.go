// Package render draws chart data to PNG images for use outside the
// interactive inspector.
package render

import (
	"fmt"
	"image/color"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"git.sr.ht/~whereswaldon/chartkit/backend"
	"git.sr.ht/~whereswaldon/chartkit/chart"
)

// renderer is implemented by every go-chart chart type.
type renderer interface {
	Render(rp gochart.RendererProvider, w io.Writer) error
}

func toDrawing(c color.NRGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func paletteColor(i int) drawing.Color {
	return toDrawing(backend.Palette[i%len(backend.Palette)])
}

func fill(c drawing.Color) gochart.Style {
	return gochart.Style{FillColor: c, StrokeColor: c}
}

func label(p chart.DataPoint) string {
	if p.PointLabel != "" {
		return p.PointLabel
	}
	return p.XAxisLabel
}

// PNG writes d as a width by height PNG image to w. Points are colored the
// same way the inspector colors them.
func PNG(w io.Writer, d *chart.Data, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	var r renderer
	switch d.Variant {
	case chart.Line, chart.MultiLine:
		r = lineChart(d, width, height)
	case chart.Bar, chart.GroupedBar:
		r = barChart(d, width, height)
	case chart.StackedBar:
		r = stackedChart(d, width, height)
	case chart.Pie:
		r = gochart.PieChart{Width: width, Height: height, Values: sliceValues(d)}
	case chart.Doughnut:
		r = gochart.DonutChart{Width: width, Height: height, Values: sliceValues(d)}
	default:
		return fmt.Errorf("cannot render %v chart", d.Variant)
	}
	if err := r.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("failed rendering %v chart: %w", d.Variant, err)
	}
	return nil
}

func lineChart(d *chart.Data, width, height int) gochart.Chart {
	c := gochart.Chart{Width: width, Height: height}
	for s, ds := range d.Sets {
		series := gochart.ContinuousSeries{
			Name: ds.Label,
			Style: gochart.Style{
				StrokeColor: paletteColor(s),
				StrokeWidth: 2,
			},
		}
		for i, p := range ds.Points {
			series.XValues = append(series.XValues, float64(i))
			series.YValues = append(series.YValues, p.Value)
		}
		c.Series = append(c.Series, series)
	}
	c.Elements = []gochart.Renderable{gochart.Legend(&c)}
	return c
}

func barChart(d *chart.Data, width, height int) gochart.BarChart {
	c := gochart.BarChart{Width: width, Height: height}
	for _, ds := range d.Sets {
		for i, p := range ds.Points {
			style := fill(paletteColor(i))
			if d.Variant == chart.GroupedBar {
				style = fill(toDrawing(p.Group.Color))
			}
			c.Bars = append(c.Bars, gochart.Value{Value: p.Value, Label: label(p), Style: style})
		}
	}
	return c
}

func stackedChart(d *chart.Data, width, height int) gochart.StackedBarChart {
	c := gochart.StackedBarChart{Width: width, Height: height}
	for _, ds := range d.Sets {
		bar := gochart.StackedBar{Name: ds.Label}
		for _, p := range ds.Points {
			bar.Values = append(bar.Values, gochart.Value{
				Value: p.Value,
				Label: p.Group.Title,
				Style: fill(toDrawing(p.Group.Color)),
			})
		}
		c.Bars = append(c.Bars, bar)
	}
	return c
}

func sliceValues(d *chart.Data) []gochart.Value {
	var values []gochart.Value
	for i, p := range d.Sets[0].Points {
		if p.Value <= 0 {
			continue
		}
		values = append(values, gochart.Value{Value: p.Value, Label: label(p), Style: fill(paletteColor(i))})
	}
	return values
}
