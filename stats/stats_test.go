package stats

import (
	"errors"
	"math"
	"testing"

	"git.sr.ht/~whereswaldon/chartkit/chart"
)

func makeSets(rows ...[]float64) []chart.DataSet {
	sets := make([]chart.DataSet, 0, len(rows))
	for _, row := range rows {
		var ds chart.DataSet
		for _, v := range row {
			ds.Points = append(ds.Points, chart.NewDataPoint(v, "", "", chart.Group{}))
		}
		sets = append(sets, ds)
	}
	return sets
}

func stackedFixture() []chart.DataSet {
	return makeSets(
		[]float64{10, 50, 30, 40},
		[]float64{20, 60, 40, 60},
		[]float64{30, 70, 30, 90},
		[]float64{40, 80, 20, 50},
	)
}

func TestCompute(t *testing.T) {
	s, err := Compute(stackedFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Max != 90 {
		t.Errorf("expected max 90, got %f", s.Max)
	}
	if s.Min != 10 {
		t.Errorf("expected min 10, got %f", s.Min)
	}
	if math.Abs(s.Average-45) > 1e-9 {
		t.Errorf("expected average 45, got %f", s.Average)
	}
	if math.Abs(s.Range-80.001) > 1e-9 {
		t.Errorf("expected range 80.001, got %f", s.Range)
	}
	if s.StackMax != 220 {
		t.Errorf("expected stack max 220, got %f", s.StackMax)
	}
	if math.Abs(s.StackAverage-180) > 1e-9 {
		t.Errorf("expected stack average 180, got %f", s.StackAverage)
	}
}

func TestComputeInvariants(t *testing.T) {
	for _, rows := range [][][]float64{
		{{5}},
		{{3, 3, 3}},
		{{-4, 2}, {7}},
		{{1.5, 2.25, 100}, {}, {0.125}},
	} {
		s, err := Compute(makeSets(rows...))
		if err != nil {
			t.Fatalf("unexpected error for %v: %v", rows, err)
		}
		if s.Min > s.Average || s.Average > s.Max {
			t.Errorf("expected min <= average <= max for %v, got %f %f %f", rows, s.Min, s.Average, s.Max)
		}
		if s.Range != s.Max-s.Min+chart.RangeEpsilon {
			t.Errorf("expected range %f for %v, got %f", s.Max-s.Min+chart.RangeEpsilon, rows, s.Range)
		}
		if s.Range <= 0 {
			t.Errorf("expected a positive range for %v, got %f", rows, s.Range)
		}
	}
}

func TestComputeEmpty(t *testing.T) {
	for _, sets := range [][]chart.DataSet{nil, {}, makeSets([]float64{}, nil)} {
		_, err := Compute(sets)
		if !errors.Is(err, chart.ErrEmptyData) {
			t.Errorf("expected ErrEmptyData, got: %v", err)
		}
	}
}

func TestIsGreaterThanTwo(t *testing.T) {
	type testcase struct {
		name   string
		sets   []chart.DataSet
		expect bool
	}
	for _, tc := range []testcase{
		{name: "four points per set", sets: stackedFixture(), expect: true},
		{name: "one point per set", sets: makeSets([]float64{10}, []float64{20}, []float64{30}, []float64{40}), expect: false},
		{name: "exactly three", sets: makeSets([]float64{1, 2, 3}), expect: true},
		{name: "exactly two", sets: makeSets([]float64{1, 2}, []float64{3, 4}), expect: false},
		{name: "uneven", sets: makeSets([]float64{1, 2, 3}, []float64{1, 2}), expect: false},
		{name: "empty", expect: false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsGreaterThanTwo(tc.sets); got != tc.expect {
				t.Errorf("expected %v, got %v", tc.expect, got)
			}
		})
	}
}

func TestSetHelpers(t *testing.T) {
	sets := stackedFixture()
	sums := StackSums(sets)
	expected := []float64{130, 180, 220, 190}
	for i := range expected {
		if sums[i] != expected[i] {
			t.Errorf("expected stack %d sum %f, got %f", i, expected[i], sums[i])
		}
	}
	if m := SetMax(sets[3]); m != 80 {
		t.Errorf("expected set max 80, got %f", m)
	}
	if m := SetMax(chart.DataSet{}); m != 0 {
		t.Errorf("expected empty set max 0, got %f", m)
	}
}
