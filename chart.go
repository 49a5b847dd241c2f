package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~whereswaldon/chartkit/axis"
	"git.sr.ht/~whereswaldon/chartkit/backend"
	"git.sr.ht/~whereswaldon/chartkit/chart"
	"git.sr.ht/~whereswaldon/chartkit/legend"
	"git.sr.ht/~whereswaldon/chartkit/stats"
	"git.sr.ht/~whereswaldon/chartkit/touch"
)

var clearIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.ContentClear)
	return icon
}()

// ChartView draws a chart and routes pointer input through the touch
// pipeline: every pointer event resolves against the chart's overlay before
// the frame is drawn, and the legend reads that overlay to pick the entry to
// emphasize.
type ChartView struct {
	data     *chart.Data
	summary  stats.Summary
	legends  []legend.Entry
	labels   int
	keyTable component.GridState
	clearBtn widget.Clickable
	// plot is the drawing rectangle of the previous frame in the coordinate
	// space of the pointer events delivered to the view.
	plot touch.Rect
	pos  f32.Point
}

func NewChartView(d *chart.Data, labels int) *ChartView {
	// Charts are validated as non-empty on construction.
	s, _ := stats.Compute(d.Sets)
	c := &ChartView{
		data:    d,
		summary: s,
		legends: legend.Build(d, backend.Palette),
		labels:  labels,
	}
	if _, ok := c.averageY(); ok {
		label := "Average " + strconv.FormatFloat(s.Average, 'f', 2, 64)
		c.legends = append(c.legends, legend.Marker(legend.Line, label, averageColor))
	}
	return c
}

var averageColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

// averageY returns the height of the average line within the plot, measured
// from the top, for variants that draw one.
func (c *ChartView) averageY() (float64, bool) {
	h := c.plot.Dy()
	switch c.data.Variant {
	case chart.Line, chart.MultiLine:
		return h - (c.summary.Average-c.summary.Min)/c.summary.Range*h, true
	case chart.Bar, chart.GroupedBar:
		if c.summary.Max <= 0 {
			return 0, false
		}
		return h - c.summary.Average/c.summary.Max*h, true
	}
	return 0, false
}

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

func toTouch(p f32.Point) touch.Point {
	return touch.Pt(float64(p.X), float64(p.Y))
}

func (c *ChartView) Update(gtx C) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: c,
			Kinds:  pointer.Enter | pointer.Leave | pointer.Move | pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		switch ev := ev.(type) {
		case pointer.Event:
			switch ev.Kind {
			case pointer.Enter, pointer.Move, pointer.Press, pointer.Drag:
				c.pos = ev.Position
				touch.Resolve(c.data, toTouch(ev.Position), c.plot)
			case pointer.Leave, pointer.Release, pointer.Cancel:
				touch.End(c.data)
			}
		}
	}
	if c.clearBtn.Clicked(gtx) {
		touch.End(c.data)
	}
}

func (c *ChartView) Layout(gtx C, th *material.Theme) D {
	c.Update(gtx)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx C) D {
			return layout.Flex{}.Layout(gtx,
				layout.Rigid(func(gtx C) D {
					return c.layoutYAxisLabels(gtx, th)
				}),
				layout.Flexed(1, c.layoutPlot),
			)
		}),
		layout.Rigid(func(gtx C) D {
			return c.layoutOverlayInfo(gtx, th)
		}),
		layout.Rigid(func(gtx C) D {
			return c.layoutKey(gtx, th)
		}),
	)
}

func (c *ChartView) layoutYAxisLabels(gtx C, th *material.Theme) D {
	size := image.Pt(gtx.Dp(56), gtx.Constraints.Max.Y)
	if c.data.Variant.IsCircular() {
		return D{Size: image.Pt(0, size.Y)}
	}
	labels := axis.YLabels(c.summary, c.labels, axis.DefaultBaseline(c.data.Variant))
	if len(labels) < 2 {
		return D{Size: size}
	}
	low, high := labels[0], labels[len(labels)-1]
	span := high - low + chart.RangeEpsilon
	gtx.Constraints.Min = image.Point{}
	gtx.Constraints.Max.X = size.X
	gap := gtx.Dp(4)
	for _, v := range labels {
		l := material.Body2(th, strconv.FormatFloat(v, 'f', 1, 64))
		l.MaxLines = 1
		dims, call := rec(gtx, l.Layout)
		y := size.Y - int(math.Round((v-low)/span*float64(size.Y)))
		top := clamp(y-dims.Size.Y/2, 0, max(size.Y-dims.Size.Y, 0))
		stack := op.Offset(image.Pt(size.X-dims.Size.X-gap, top)).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}
	return D{Size: size}
}

func fillRect(gtx C, col color.NRGBA, minX, minY, maxX, maxY float64) {
	paint.FillShape(gtx.Ops, col, clip.Rect{
		Min: image.Pt(int(math.Round(minX)), int(math.Round(minY))),
		Max: image.Pt(int(math.Round(maxX)), int(math.Round(maxY))),
	}.Op())
}

func fillDot(gtx C, col color.NRGBA, at touch.Point, radius int) {
	center := image.Pt(int(math.Round(at.X)), int(math.Round(at.Y)))
	r := image.Pt(radius, radius)
	paint.FillShape(gtx.Ops, col, clip.Ellipse{Min: center.Sub(r), Max: center.Add(r)}.Op(gtx.Ops))
}

func (c *ChartView) touched(p chart.DataPoint) bool {
	for _, o := range c.data.Overlay.Points {
		if o.ID == p.ID {
			return true
		}
	}
	return false
}

func (c *ChartView) fillFor(set, index int) color.NRGBA {
	col := pointColor(c.data, set, index)
	if c.data.Overlay.Active && !c.touched(c.data.Sets[set].Points[index]) {
		col = dim(col)
	}
	return col
}

func (c *ChartView) layoutPlot(gtx C) D {
	size := gtx.Constraints.Max
	c.plot = touch.Size(float64(size.X), float64(size.Y))
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, c)
	c.layoutYAxisGrid(gtx)
	if c.data.Variant == chart.StackedBar {
		c.layoutStackPlot(gtx)
	} else {
		c.layoutPointPlot(gtx)
	}
	if y, ok := c.averageY(); ok {
		fillRect(gtx, averageColor, 0, y-float64(gtx.Dp(1)), c.plot.Dx(), y)
	}
	c.layoutMarkers(gtx)
	return D{Size: size}
}

func (c *ChartView) layoutYAxisGrid(gtx C) {
	if c.data.Variant.IsCircular() || c.labels < 1 {
		return
	}
	oneDp := float64(gtx.Dp(1))
	step := c.plot.Dy() / float64(c.labels)
	for i := 0; i <= c.labels; i++ {
		y := c.plot.Dy() - float64(i)*step
		fillRect(gtx, color.NRGBA{A: 50}, 0, y-oneDp, c.plot.Dx(), y)
	}
}

func (c *ChartView) layoutStackPlot(gtx C) {
	for _, stack := range touch.StackSegments(c.data, c.plot) {
		for _, seg := range stack {
			inset := seg.Rect.Dx() * 0.1
			fillRect(gtx, c.fillFor(seg.Set, seg.Index),
				seg.Rect.Min.X+inset, seg.Rect.Min.Y,
				seg.Rect.Max.X-inset, seg.Rect.Max.Y)
		}
	}
}

func (c *ChartView) layoutPointPlot(gtx C) {
	dot := gtx.Dp(4)
	for set, ds := range c.data.Sets {
		var halfWidth float64
		switch c.data.Variant {
		case chart.Bar:
			halfWidth = c.plot.Dx() / float64(len(ds.Points)) * 0.4
		case chart.GroupedBar:
			halfWidth = c.plot.Dx() / float64(len(c.data.Sets)) / float64(len(ds.Points)) * 0.4
		}
		for i, p := range ds.Points {
			loc, ok := touch.PointLocation(c.data, p, c.plot)
			if !ok {
				continue
			}
			col := c.fillFor(set, i)
			if halfWidth > 0 {
				fillRect(gtx, col, loc.X-halfWidth, loc.Y, loc.X+halfWidth, c.plot.Dy())
			} else {
				fillDot(gtx, col, loc, dot)
			}
		}
	}
}

func (c *ChartView) layoutMarkers(gtx C) {
	if !c.data.Overlay.Active {
		return
	}
	if !c.data.Variant.IsCircular() {
		xR := math.Ceil(float64(c.pos.X))
		xL := xR - float64(gtx.Dp(1))
		fillRect(gtx, color.NRGBA{A: 255}, xL, 0, xR, c.plot.Dy())
	}
	for _, p := range c.data.Overlay.Points {
		loc, ok := touch.PointLocation(c.data, p, c.plot)
		if !ok {
			continue
		}
		fillDot(gtx, color.NRGBA{A: 255}, loc, gtx.Dp(6))
		fillDot(gtx, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, loc, gtx.Dp(3))
	}
}

func (c *ChartView) layoutOverlayInfo(gtx C, th *material.Theme) D {
	var msg string
	switch {
	case !c.data.Overlay.Active:
		msg = "Touch the chart to inspect a point."
	case len(c.data.Overlay.Points) == 0:
		msg = "Nothing under the pointer."
	default:
		parts := make([]string, 0, len(c.data.Overlay.Points))
		for _, p := range c.data.Overlay.Points {
			label := p.PointLabel
			if label == "" {
				label = p.XAxisLabel
			}
			parts = append(parts, fmt.Sprintf("%s: %s", label, strconv.FormatFloat(p.Value, 'f', -1, 64)))
		}
		msg = strings.Join(parts, "   ")
	}
	return layout.UniformInset(4).Layout(gtx, func(gtx C) D {
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
			layout.Flexed(1, material.Body1(th, msg).Layout),
			layout.Rigid(func(gtx C) D {
				if !c.data.Overlay.Active {
					return D{}
				}
				return material.IconButton(th, &c.clearBtn, clearIcon, "Clear selection").Layout(gtx)
			}),
		)
	})
}

func (c *ChartView) layoutKey(gtx C, th *material.Theme) D {
	table := component.Table(th, &c.keyTable)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	rowHeight := gtx.Sp(20)
	colorColWidth := gtx.Dp(50)
	gtx.Constraints.Min.Y = 0
	gtx.Constraints.Max.Y = min(gtx.Constraints.Max.Y/3, rowHeight*(len(c.legends)+1))
	const (
		colorCol = iota
		entryCol
		numCols
	)
	return table.Layout(gtx, len(c.legends), numCols,
		func(ax layout.Axis, index, constraint int) int {
			if ax == layout.Vertical {
				return min(constraint, rowHeight)
			}
			switch index {
			case colorCol:
				return min(colorColWidth, constraint)
			default:
				return max(gtx.Constraints.Max.X-colorColWidth-gtx.Dp(table.VScrollbarStyle.Width()), 0)
			}
		},
		func(gtx C, index int) D {
			l := material.Body1(th, "Color")
			if index == entryCol {
				l = material.Body1(th, "Legend")
			}
			l.Color = th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, l.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			e := c.legends[row]
			emphasized := legend.ShouldEmphasize(e, &c.data.Overlay, c.data.Variant)
			if emphasized {
				paint.FillShape(gtx.Ops, dim(th.ContrastBg), clip.Rect{Max: gtx.Constraints.Max}.Op())
			}
			return layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				switch col {
				case colorCol:
					return layout.Center.Layout(gtx, func(gtx C) D {
						side := gtx.Dp(10)
						if emphasized {
							side = gtx.Dp(12)
						}
						sz := image.Pt(side, side)
						swatch := e.Fill.Color
						if c.data.Overlay.Active && !emphasized {
							swatch = dim(swatch)
						}
						shape := clip.Rect{Max: sz}.Op()
						if e.ChartType == legend.Pie {
							shape = clip.Ellipse{Max: sz}.Op(gtx.Ops)
						}
						paint.FillShape(gtx.Ops, swatch, shape)
						return D{Size: sz}
					})
				default:
					l := material.Body2(th, e.Text)
					if emphasized {
						l.Font.Weight = font.Bold
					}
					l.Alignment = text.Start
					return l.Layout(gtx)
				}
			})
		})
}
