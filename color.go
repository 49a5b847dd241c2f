package main

import (
	"image/color"

	"git.sr.ht/~whereswaldon/chartkit/backend"
	"git.sr.ht/~whereswaldon/chartkit/chart"
)

// dimAlpha is applied to everything that is not under the current touch.
const dimAlpha = 0x60

// pointColor returns the fill of the point at index within set. It matches the
// palette order legend.Build uses.
func pointColor(d *chart.Data, set, index int) color.NRGBA {
	switch {
	case d.Variant.IsMultiBar():
		return d.Sets[set].Points[index].Group.Color
	case d.Variant == chart.Line || d.Variant == chart.MultiLine:
		return backend.Palette[set%len(backend.Palette)]
	default:
		return backend.Palette[index%len(backend.Palette)]
	}
}

func dim(c color.NRGBA) color.NRGBA {
	c.A = dimAlpha
	return c
}
