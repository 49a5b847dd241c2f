package chart

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptyData indicates there are no data points to summarize.
var ErrEmptyData = errors.New("no data points")

// ErrUnknownGroup indicates a data point references a group that was not
// declared for the chart.
var ErrUnknownGroup = errors.New("data point references undeclared group")

// ErrNonFinite indicates a data point holds NaN or an infinite value.
var ErrNonFinite = errors.New("non-finite data point value")

// GroupError reports a data point whose group does not match any declared
// group.
type GroupError struct {
	Set, Point int
	Group      Group
}

func (e *GroupError) Error() string {
	return fmt.Sprintf("set %d point %d: group %q %v: %v", e.Set, e.Point, e.Group.Title, e.Group.Color, ErrUnknownGroup)
}

func (e *GroupError) Unwrap() error {
	return ErrUnknownGroup
}

// ValueError reports a data point holding a value the geometry cannot map.
type ValueError struct {
	Set, Point int
	Value      float64
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("set %d point %d: %v: %v", e.Set, e.Point, e.Value, ErrNonFinite)
}

func (e *ValueError) Unwrap() error {
	return ErrNonFinite
}

// VariantError reports an unrecognized chart variant name.
type VariantError struct {
	Name string
}

func (e *VariantError) Error() string {
	return fmt.Sprintf("unknown chart variant %q", e.Name)
}

// Validate checks a chart configuration. Every value must be finite and, for
// grouped and stacked bar charts, every point's group must be one of groups.
// All problems are reported together.
func Validate(variant Variant, sets []DataSet, groups []Group) error {
	var errs []error
	empty := true
	for s, ds := range sets {
		for i, p := range ds.Points {
			empty = false
			if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
				errs = append(errs, &ValueError{Set: s, Point: i, Value: p.Value})
			}
			if variant.IsMultiBar() && !declared(p.Group, groups) {
				errs = append(errs, &GroupError{Set: s, Point: i, Group: p.Group})
			}
		}
	}
	if empty {
		errs = append(errs, ErrEmptyData)
	}
	return errors.Join(errs...)
}

func declared(g Group, groups []Group) bool {
	for _, candidate := range groups {
		if candidate == g {
			return true
		}
	}
	return false
}
