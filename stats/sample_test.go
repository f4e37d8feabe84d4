// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"testing"
)

func TestSampleQuantile(t *testing.T) {
	s := Sample{Xs: []float64{40, 15, 50, 20, 35}}
	testFunc(t, "Quantile", s.Quantile, map[float64]float64{
		-1:  15,
		0:   15,
		.05: 15,
		.30: 19.666666666666666,
		.40: 27,
		.50: 35,
		.95: 50,
		1:   50,
		2:   50,
	})
	if s.Sorted || s.Xs[0] != 40 {
		t.Errorf("Quantile modified its receiver: %+v", s)
	}
	w := Sample{Xs: []float64{3, 1, 2}, Weights: []float64{1, 1, 2}}
	testFunc(t, "weighted Quantile", w.Quantile, map[float64]float64{
		0:   1,
		.25: 1,
		.5:  2,
		.75: 2,
		1:   3,
	})
	if got := (Sample{}).Quantile(0.5); !math.IsNaN(got) {
		t.Errorf("Quantile of empty sample = %v, want NaN", got)
	}
}

func TestSampleMoments(t *testing.T) {
	s := Sample{Xs: []float64{-8, 2, 3, 4, 5, 6}}
	check := func(name string, want, got float64) {
		t.Helper()
		if !aeq(want, got) {
			t.Errorf("%s: want %v, got %v", name, want, got)
		}
	}
	check("Sum", 12, s.Sum())
	check("Weight", 6, s.Weight())
	check("Mean", 2, s.Mean())
	check("Variance", 26, s.Variance())
	check("StdDev", math.Sqrt(26), s.StdDev())

	lo, hi := s.Bounds()
	check("min", -8, lo)
	check("max", 6, hi)

	w := Sample{Xs: []float64{1, 3}, Weights: []float64{3, 1}}
	check("weighted Sum", 6, w.Sum())
	check("weighted Weight", 4, w.Weight())
	check("weighted Mean", 1.5, w.Mean())

	one := Sample{Xs: []float64{1}}
	if !math.IsNaN(one.Variance()) {
		t.Errorf("Variance of one value = %v, want NaN", one.Variance())
	}
	if !math.IsNaN((Sample{}).Mean()) {
		t.Errorf("Mean of empty sample should be NaN")
	}
}

func TestSampleDistinct(t *testing.T) {
	for _, tc := range []struct {
		xs   []float64
		want int
	}{
		{nil, 0},
		{[]float64{1}, 1},
		{[]float64{2, 1, 2, 1, 2}, 2},
		{[]float64{3, 1, 2}, 3},
	} {
		if got := (Sample{Xs: tc.xs}).Distinct(); got != tc.want {
			t.Errorf("Distinct(%v)=%d, want %d", tc.xs, got, tc.want)
		}
	}
}

func TestSampleSortWeighted(t *testing.T) {
	s := &Sample{Xs: []float64{3, 1, 2}, Weights: []float64{30, 10, 20}}
	s.Sort()
	for i, want := range []float64{1, 2, 3} {
		if s.Xs[i] != want || s.Weights[i] != want*10 {
			t.Fatalf("sorted sample %+v", s)
		}
	}
	if !s.Sorted {
		t.Errorf("Sort did not mark sample sorted")
	}
}
