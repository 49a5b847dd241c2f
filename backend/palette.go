package backend

import "image/color"

// Palette colors groups and series that do not declare their own color.
var Palette = []color.NRGBA{
	{R: 0xa4, G: 0x63, B: 0x3a, A: 0xff},
	{R: 0x85, G: 0x76, B: 0x25, A: 0xff}, //#857625
	{R: 0x51, G: 0x85, B: 0x4d, A: 0xff}, //#51854d
	{R: 0x2b, G: 0x7f, B: 0xa8, A: 0xff}, //#2b7fa8
	{R: 0x72, G: 0x6c, B: 0xae, A: 0xff}, //#726cae
	{R: 0x97, G: 0x5f, B: 0x91, A: 0xff}, //975f91
	{R: 0xff, A: 0xff},
	{G: 0xff, A: 0xff},
	{B: 0xff, A: 0xff},
	{R: 0xf0, G: 0xf0, A: 0xff},
}
