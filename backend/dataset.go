package backend

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"git.sr.ht/~whereswaldon/chartkit/chart"
)

// Row is one data row of a Table. Values holds one entry per value column;
// empty cells are NaN.
type Row struct {
	Label  string
	Values []float64
}

// Table is the tabular form of a chart file. The first column labels each
// row and every other column is one group.
type Table struct {
	Headings []string
	Rows     []Row
}

// parseTable converts raw records into a Table. The first record holds the
// headings.
func parseTable(records [][]string) (Table, error) {
	if len(records) == 0 {
		return Table{}, fmt.Errorf("missing headings: %w", chart.ErrEmptyData)
	}
	var t Table
	for _, h := range records[0] {
		t.Headings = append(t.Headings, strings.TrimSpace(h))
	}
	columns := len(t.Headings) - 1
	for r, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		row := Row{
			Label:  strings.TrimSpace(rec[0]),
			Values: make([]float64, max(columns, 0)),
		}
		for c := range row.Values {
			row.Values[c] = math.NaN()
			if c+1 >= len(rec) {
				continue
			}
			cell := strings.TrimSpace(rec[c+1])
			if len(cell) < 1 {
				// Skip null cells.
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return Table{}, fmt.Errorf("row %d column %q: %w", r+2, t.Headings[c+1], err)
			}
			row.Values[c] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Groups returns one group per value column. A heading of the form
// "Title (#rrggbb)" sets the group's color, otherwise colors are taken from
// Palette in column order.
func (t Table) Groups() []chart.Group {
	if len(t.Headings) < 2 {
		return nil
	}
	groups := make([]chart.Group, 0, len(t.Headings)-1)
	for i, h := range t.Headings[1:] {
		title, c, ok := splitColor(h)
		if !ok {
			c = Palette[i%len(Palette)]
		}
		groups = append(groups, chart.Group{Title: title, Color: c})
	}
	return groups
}

func splitColor(heading string) (title string, c color.NRGBA, ok bool) {
	open := strings.LastIndex(heading, "(#")
	if open < 0 || !strings.HasSuffix(heading, ")") {
		return heading, c, false
	}
	hex := heading[open+2 : len(heading)-1]
	if len(hex) != 6 {
		return heading, c, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return heading, c, false
	}
	c = color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
	return strings.TrimSpace(heading[:open]), c, true
}

// Chart builds validated chart data from the table.
//
// Grouped and stacked bar charts turn each row into a data set whose points
// belong to the column groups. Multi-line charts turn each column into a data
// set. Every other variant charts the first value column as a single series.
func (t Table) Chart(variant chart.Variant) (*chart.Data, error) {
	groups := t.Groups()
	if len(groups) == 0 {
		return nil, fmt.Errorf("no value columns: %w", chart.ErrEmptyData)
	}
	var sets []chart.DataSet
	switch {
	case variant.IsMultiBar():
		for _, row := range t.Rows {
			ds := chart.DataSet{Label: row.Label}
			for c, v := range row.Values {
				if math.IsNaN(v) {
					continue
				}
				g := groups[c]
				ds.Points = append(ds.Points, chart.NewDataPoint(v, row.Label, row.Label+" "+g.Title, g))
			}
			sets = append(sets, ds)
		}
	case variant == chart.MultiLine:
		for c, g := range groups {
			ds := chart.DataSet{Label: g.Title}
			for _, row := range t.Rows {
				if v := row.Values[c]; !math.IsNaN(v) {
					ds.Points = append(ds.Points, chart.NewDataPoint(v, row.Label, row.Label, chart.Group{}))
				}
			}
			sets = append(sets, ds)
		}
	default:
		ds := chart.DataSet{Label: groups[0].Title}
		for _, row := range t.Rows {
			if v := row.Values[0]; !math.IsNaN(v) {
				ds.Points = append(ds.Points, chart.NewDataPoint(v, row.Label, row.Label, chart.Group{}))
			}
		}
		sets = append(sets, ds)
		groups = nil
	}
	return chart.New(variant, sets, groups)
}
