package touch

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Point is a location in pixels. Y grows downwards.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Rect is the drawing rectangle of a chart, in pixels.
type Rect struct {
	Min, Max Point
}

// Size returns a rectangle of the given dimensions anchored at the origin.
func Size(width, height float64) Rect {
	return Rect{Max: Pt(width, height)}
}

// Dx returns the width of r.
func (r Rect) Dx() float64 {
	return r.Max.X - r.Min.X
}

// Dy returns the height of r.
func (r Rect) Dy() float64 {
	return r.Max.Y - r.Min.Y
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Dx() <= 0 || r.Dy() <= 0
}

// local translates p into r's coordinate space and clamps it to r.
func (r Rect) local(p Point) Point {
	return Point{
		X: clamp(p.X-r.Min.X, 0, r.Dx()),
		Y: clamp(p.Y-r.Min.Y, 0, r.Dy()),
	}
}

// global translates a point in r's coordinate space back to pixels.
func (r Rect) global(p Point) Point {
	return Point{X: p.X + r.Min.X, Y: p.Y + r.Min.Y}
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// bin returns which of n equal-width columns across width contains x.
func bin(x, width float64, n int) int {
	return clamp(int(math.Floor(x/(width/float64(n)))), 0, n-1)
}
