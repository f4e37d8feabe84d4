// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"sort"
	"testing"
)

func aeq(expect, got float64) bool {
	return expect == got || math.Abs(expect-got) < 0.00001
}

func testFunc(t *testing.T, name string, f func(float64) float64, vals map[float64]float64) {
	t.Helper()
	xs := make([]float64, 0, len(vals))
	for x := range vals {
		xs = append(xs, x)
	}
	sort.Float64s(xs)

	for _, x := range xs {
		want, got := vals[x], f(x)
		if math.IsNaN(want) && math.IsNaN(got) || aeq(want, got) {
			continue
		}
		t.Errorf("want %s(%v)=%v, got %v", name, x, want, got)
	}
}

// testMonotoneCDF checks that cdf is within [0, 1] and non-decreasing
// over xs, which must be sorted.
func testMonotoneCDF(t *testing.T, name string, cdf func([]float64) []float64, xs []float64) {
	t.Helper()
	ys := cdf(xs)
	for i, y := range ys {
		if y < 0 || y > 1+WeightTolerance {
			t.Errorf("%s(%v)=%v, want in [0, 1]", name, xs[i], y)
		}
		if i > 0 && y < ys[i-1] {
			t.Errorf("%s not monotone: %s(%v)=%v > %s(%v)=%v", name, name, xs[i-1], ys[i-1], name, xs[i], y)
		}
	}
}

func linspace(lo, hi float64, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return xs
}
