package chart

// Overlay is the touch overlay state of one chart: the points resolved by the
// most recent touch event and whether a touch is in progress.
//
// An Overlay is not safe for concurrent use. It is owned by a single Data and
// must only be touched from the goroutine processing input events.
type Overlay struct {
	Points []DataPoint
	Active bool
}

// Set replaces the overlay contents with points and marks the touch active.
func (o *Overlay) Set(points ...DataPoint) {
	o.Points = append([]DataPoint(nil), points...)
	o.Active = true
}

// Clear empties the overlay. It is invoked when a touch ends.
func (o *Overlay) Clear() {
	o.Points = nil
	o.Active = false
}

// First returns the first resolved point, if any.
func (o *Overlay) First() (DataPoint, bool) {
	if len(o.Points) == 0 {
		return DataPoint{}, false
	}
	return o.Points[0], true
}
