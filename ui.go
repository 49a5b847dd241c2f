package main

import (
	"image"
	"image/color"
	"strconv"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"

	"git.sr.ht/~whereswaldon/chartkit/axis"
	"git.sr.ht/~whereswaldon/chartkit/backend"
	"git.sr.ht/~whereswaldon/chartkit/stats"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const (
	tabChart   = "chart"
	tabSummary = "summary"
)

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws     backend.WindowState
	expl   *explorer.Explorer
	labels int

	view        *ChartView
	summary     stats.Summary
	tab         widget.Enum
	explorerBtn widget.Clickable
	loadErr     string

	th          *material.Theme
	chartStream *stream.Stream[backend.Loaded]
	loaded      backend.Loaded
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, labels int) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	return &UI{
		ws:          ws,
		th:          th,
		expl:        expl,
		labels:      labels,
		tab:         widget.Enum{Value: tabChart},
		chartStream: stream.New(ws.Controller, ws.Datasource.ChartStream),
	}
}

// Update the state of the UI from the backend and from input events.
func (ui *UI) Update(gtx C) {
	next := ui.loaded
	ui.chartStream.ReadInto(gtx, &next, ui.loaded)
	if next.Data != ui.loaded.Data || next.Err != ui.loaded.Err {
		ui.loaded = next
		ui.loadErr = ""
		if next.Err != nil {
			ui.loadErr = next.Err.Error()
		}
		// A failed reload keeps showing the last good chart.
		if next.Data != nil {
			ui.view = NewChartView(next.Data, ui.labels)
			ui.summary, _ = stats.Compute(next.Data.Sets)
		}
	}
	ui.tab.Update(gtx)
	if ui.explorerBtn.Clicked(gtx) {
		ui.ws.Datasource.LoadFromFile(ui.expl)
	}
}

type TabStyle struct {
	state  *widget.Enum
	label  material.LabelStyle
	border widget.Border
	inset  layout.Inset
	value  string
	fill   color.NRGBA
}

func Tab(th *material.Theme, state *widget.Enum, value, display string) TabStyle {
	selected := state.Value == value
	ts := TabStyle{
		state: state,
		label: material.Body1(th, display),
		inset: layout.UniformInset(2),
		border: widget.Border{
			Width: 2,
			Color: th.ContrastBg,
		},
		value: value,
	}
	ts.label.Alignment = text.Middle
	if selected {
		ts.label.Color = th.ContrastFg
		ts.fill = th.ContrastBg
	}
	return ts
}

func (t TabStyle) Layout(gtx C) D {
	return t.inset.Layout(gtx, func(gtx C) D {
		return t.border.Layout(gtx, func(gtx C) D {
			return t.inset.Layout(gtx, func(gtx C) D {
				return t.state.Layout(gtx, t.value, func(gtx C) D {
					return layout.Background{}.Layout(gtx, func(gtx C) D {
						paint.FillShape(gtx.Ops, t.fill, clip.Rect{Max: gtx.Constraints.Min}.Op())
						return D{Size: gtx.Constraints.Min}
					}, t.label.Layout)
				})
			})
		})
	})
}

func (ui *UI) layoutSummary(gtx C) D {
	rows := []struct {
		name  string
		value float64
	}{
		{"Maximum", ui.summary.Max},
		{"Minimum", ui.summary.Min},
		{"Average", ui.summary.Average},
		{"Range", ui.summary.Range},
		{"Tallest stack", ui.summary.StackMax},
		{"Average stack", ui.summary.StackAverage},
	}
	children := make([]layout.FlexChild, 0, len(rows)+1)
	for _, row := range rows {
		children = append(children, layout.Rigid(func(gtx C) D {
			return layout.Flex{}.Layout(gtx,
				layout.Flexed(1, material.Body1(ui.th, row.name).Layout),
				layout.Flexed(1, material.Body1(ui.th, strconv.FormatFloat(row.value, 'f', 3, 64)).Layout),
			)
		}))
	}
	children = append(children, layout.Rigid(func(gtx C) D {
		variant := ui.view.data.Variant
		labels := axis.YLabels(ui.summary, ui.labels, axis.DefaultBaseline(variant))
		msg := "Axis labels:"
		for _, l := range labels {
			msg += " " + strconv.FormatFloat(l, 'f', 1, 64)
		}
		return material.Body2(ui.th, msg).Layout(gtx)
	}))
	return layout.UniformInset(8).Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
	})
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.Flex{}.Layout(gtx,
				layout.Flexed(1, Tab(ui.th, &ui.tab, tabChart, ui.view.data.Variant.String()).Layout),
				layout.Flexed(1, Tab(ui.th, &ui.tab, tabSummary, "Summary").Layout),
			)
		}),
		layout.Rigid(func(gtx C) D {
			if len(ui.loadErr) == 0 {
				return D{}
			}
			l := material.Body1(ui.th, ui.loadErr)
			l.Color = color.NRGBA{R: 150, A: 255}
			return l.Layout(gtx)
		}),
		layout.Flexed(1, func(gtx C) D {
			if ui.tab.Value == tabChart {
				return ui.view.Layout(gtx, ui.th)
			}
			return ui.layoutSummary(gtx)
		}),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	l := material.Body1(ui.th, "No chart loaded.")
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.explorerBtn, "Open Chart File").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body2(ui.th, ui.loadErr).Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if ui.view != nil {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
