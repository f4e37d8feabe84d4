// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample is a collection of possibly weighted data points.
type Sample struct {
	// Xs is the slice of sample values.
	Xs []float64

	// Weights[i] is the weight of sample Xs[i].  If Weights is
	// nil, all Xs have weight 1.  Weights must have the same
	// length of Xs and all values must be non-negative.
	Weights []float64

	// Sorted indicates that Xs is sorted in ascending order.
	Sorted bool
}

// Bounds returns the minimum and maximum values of the Sample.
//
// If the Sample is empty, Bounds returns NaN, NaN.
func (s Sample) Bounds() (min float64, max float64) {
	if len(s.Xs) == 0 {
		return nan, nan
	}
	if s.Sorted {
		return s.Xs[0], s.Xs[len(s.Xs)-1]
	}
	return floats.Min(s.Xs), floats.Max(s.Xs)
}

// Sum returns the (possibly weighted) sum of the Sample.
func (s Sample) Sum() float64 {
	if s.Weights == nil {
		return floats.Sum(s.Xs)
	}
	return floats.Dot(s.Xs, s.Weights)
}

// Weight returns the total weight of the Sample.
func (s Sample) Weight() float64 {
	if s.Weights == nil {
		return float64(len(s.Xs))
	}
	return floats.Sum(s.Weights)
}

// Mean returns the arithmetic mean of the Sample, or NaN if the
// Sample is empty.
func (s Sample) Mean() float64 {
	if len(s.Xs) == 0 {
		return nan
	}
	return stat.Mean(s.Xs, s.Weights)
}

// Variance returns the sample variance of xs, or NaN if the Sample
// has fewer than two values.
func (s Sample) Variance() float64 {
	if len(s.Xs) < 2 {
		return nan
	}
	return stat.Variance(s.Xs, s.Weights)
}

// StdDev returns the sample standard deviation of the Sample.
func (s Sample) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// Quantile returns the sample value X at which q*weight of the sample
// is <= X. This uses interpolation method R8 from Hyndman and Fan
// (1996) for unweighted samples. Weighted samples use the empirical
// CDF, so X is one of the sample values.
//
// q will be capped to the range [0, 1]. If the Sample is empty,
// Quantile returns NaN.
func (s Sample) Quantile(q float64) float64 {
	if len(s.Xs) == 0 {
		return nan
	} else if q <= 0 {
		min, _ := s.Bounds()
		return min
	} else if q >= 1 {
		_, max := s.Bounds()
		return max
	}

	if !s.Sorted {
		s = *s.Copy().Sort()
	}
	if s.Weights != nil {
		return stat.Quantile(q, stat.Empirical, s.Xs, s.Weights)
	}

	N := float64(len(s.Xs))
	n := 1/3.0 + q*(N+1/3.0) // R8
	kf, frac := math.Modf(n)
	k := int(kf)
	if k <= 0 {
		return s.Xs[0]
	} else if k >= len(s.Xs) {
		return s.Xs[len(s.Xs)-1]
	}
	return s.Xs[k-1] + frac*(s.Xs[k]-s.Xs[k-1])
}

// Percentile is the same as Quantile.
func (s Sample) Percentile(q float64) float64 {
	return s.Quantile(q)
}

// Distinct returns the number of distinct values in the Sample.
func (s Sample) Distinct() int {
	if !s.Sorted {
		s = *s.Copy().Sort()
	}
	n := 0
	for i, x := range s.Xs {
		if i == 0 || x != s.Xs[i-1] {
			n++
		}
	}
	return n
}

// Copy returns a copy of the Sample.
//
// The returned Sample shares no data with the original, so they can
// be modified (for example, sorted) independently.
func (s Sample) Copy() *Sample {
	xs := append([]float64(nil), s.Xs...)

	var weights []float64
	if s.Weights != nil {
		weights = append([]float64(nil), s.Weights...)
	}

	return &Sample{xs, weights, s.Sorted}
}

// Sort sorts the samples in place in s and returns s.
//
// A sorted sample improves the performance of some algorithms.
func (s *Sample) Sort() *Sample {
	if s.Sorted || sort.Float64sAreSorted(s.Xs) {
		// All set
	} else if s.Weights == nil {
		sort.Float64s(s.Xs)
	} else {
		sort.Sort(&sampleSorter{s.Xs, s.Weights})
	}
	s.Sorted = true
	return s
}

type sampleSorter struct {
	xs      []float64
	weights []float64
}

func (p *sampleSorter) Len() int {
	return len(p.xs)
}

func (p *sampleSorter) Less(i, j int) bool {
	return p.xs[i] < p.xs[j]
}

func (p *sampleSorter) Swap(i, j int) {
	p.xs[i], p.xs[j] = p.xs[j], p.xs[i]
	p.weights[i], p.weights[j] = p.weights[j], p.weights[i]
}
