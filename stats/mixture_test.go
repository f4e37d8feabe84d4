// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func bimodal(t *testing.T) *Mixture {
	t.Helper()
	m, err := NewMixture([]float64{0.3, 0.7}, []float64{-2, 3}, []float64{0.5, 1})
	require.NoError(t, err)
	return m
}

func TestNewMixtureValidation(t *testing.T) {
	tests := []struct {
		name                   string
		weights, means, sigmas []float64
		ok                     bool
	}{
		{"single", []float64{1}, []float64{0}, []float64{1}, true},
		{"two", []float64{0.4, 0.6}, []float64{0, 1}, []float64{1, 2}, true},
		{"sum within tolerance", []float64{0.499999995, 0.5}, []float64{0, 1}, []float64{1, 1}, true},
		{"sum 0.99", []float64{0.49, 0.5}, []float64{0, 1}, []float64{1, 1}, false},
		{"sum 0.9", []float64{0.4, 0.5}, []float64{0, 1}, []float64{1, 1}, false},
		{"sum 1.1", []float64{0.6, 0.5}, []float64{0, 1}, []float64{1, 1}, false},
		{"negative weight", []float64{-0.5, 1.5}, []float64{0, 1}, []float64{1, 1}, false},
		{"zero weight", []float64{0, 1}, []float64{0, 1}, []float64{1, 1}, false},
		{"zero sigma", []float64{0.5, 0.5}, []float64{0, 1}, []float64{1, 0}, false},
		{"negative sigma", []float64{0.5, 0.5}, []float64{0, 1}, []float64{-1, 1}, false},
		{"NaN mean", []float64{0.5, 0.5}, []float64{nan, 1}, []float64{1, 1}, false},
		{"length mismatch", []float64{0.5, 0.5}, []float64{0}, []float64{1, 1}, false},
		{"empty", nil, nil, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMixture(tt.weights, tt.means, tt.sigmas)
			if tt.ok {
				require.NoError(t, err)
				require.Equal(t, len(tt.weights), m.K())
				return
			}
			require.ErrorIs(t, err, ErrInvalidParameter)

			_, err = MixturePDF([]float64{0}, tt.weights, tt.means, tt.sigmas)
			require.ErrorIs(t, err, ErrInvalidParameter)
			_, err = MixtureCDF([]float64{0}, tt.weights, tt.means, tt.sigmas)
			require.ErrorIs(t, err, ErrInvalidParameter)
			_, err = MixtureRand(tt.weights, tt.means, tt.sigmas, 1, nil)
			require.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestMixtureImmutable(t *testing.T) {
	w, mu, sigma := []float64{0.3, 0.7}, []float64{-2, 3}, []float64{0.5, 1}
	m, err := NewMixture(w, mu, sigma)
	require.NoError(t, err)

	w[0], mu[0], sigma[0] = 99, 99, 99
	m.Weights()[1] = 99
	m.Means()[1] = 99
	m.Sigmas()[1] = 99

	require.Equal(t, []float64{0.3, 0.7}, m.Weights())
	require.Equal(t, []float64{-2, 3}, m.Means())
	require.Equal(t, []float64{0.5, 1}, m.Sigmas())
}

func TestMixtureSingleComponent(t *testing.T) {
	norm := NormalDist{Mu: 1.5, Sigma: 0.7}
	m, err := NewMixture([]float64{1}, []float64{norm.Mu}, []float64{norm.Sigma})
	require.NoError(t, err)

	xs := linspace(-5, 8, 101)
	pdf, cdf := m.PDFEach(xs), m.CDFEach(xs)
	for i, x := range xs {
		if !aeq(norm.PDF(x), pdf[i]) {
			t.Errorf("PDF(%v)=%v, want %v", x, pdf[i], norm.PDF(x))
		}
		if !aeq(norm.CDF(x), cdf[i]) {
			t.Errorf("CDF(%v)=%v, want %v", x, cdf[i], norm.CDF(x))
		}
	}
	if !aeq(norm.PDF(0), m.PDF(0)) || !aeq(norm.CDF(0), m.CDF(0)) {
		t.Errorf("scalar evaluation differs from NormalDist")
	}
}

func TestMixturePDF(t *testing.T) {
	m := bimodal(t)
	a, b := NormalDist{-2, 0.5}, NormalDist{3, 1}
	want := func(x float64) float64 { return 0.3*a.PDF(x) + 0.7*b.PDF(x) }
	testFunc(t, "PDF", m.PDF, map[float64]float64{
		-1e6: 0,
		-2:   want(-2),
		0:    want(0),
		3:    want(3),
		1e6:  0,
	})

	got, err := MixturePDF([]float64{-2, 0, 3}, m.Weights(), m.Means(), m.Sigmas())
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{want(-2), want(0), want(3)}, got, 1e-12)

	got, err = MixturePDF(nil, m.Weights(), m.Means(), m.Sigmas())
	require.NoError(t, err)
	require.Empty(t, got)

	// The density integrates to 1.
	xs := linspace(-10, 12, 4001)
	ys := m.PDFEach(xs)
	area := 0.0
	for i := 1; i < len(xs); i++ {
		if ys[i] < 0 {
			t.Fatalf("PDF(%v)=%v < 0", xs[i], ys[i])
		}
		area += (xs[i] - xs[i-1]) * (ys[i] + ys[i-1]) / 2
	}
	require.InDelta(t, 1, area, 1e-6)
}

func TestMixtureCDF(t *testing.T) {
	m := bimodal(t)
	testMonotoneCDF(t, "CDF", m.CDFEach, linspace(-20, 20, 2001))

	require.InDelta(t, 0, m.CDF(-1e3), 1e-12)
	require.InDelta(t, 1, m.CDF(1e3), WeightTolerance)
	require.InDelta(t, 0.3*0.5+0.7*StdNormal.CDF(-5), m.CDF(-2), 1e-12)

	got, err := MixtureCDF([]float64{-1e3, 1e3}, m.Weights(), m.Means(), m.Sigmas())
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0, 1}, got, 1e-8)
}

func TestMixtureInvCDF(t *testing.T) {
	m := bimodal(t)
	for _, p := range []float64{0.001, 0.1, 0.3, 0.5, 0.9, 0.999} {
		x := m.InvCDF(p)
		if !aeq(p, m.CDF(x)) {
			t.Errorf("CDF(InvCDF(%v))=%v", p, m.CDF(x))
		}
	}
	testFunc(t, "InvCDF", m.InvCDF, map[float64]float64{
		-1: nan,
		0:  -inf,
		1:  inf,
		2:  nan,
	})
	require.Len(t, m.InvCDFEach([]float64{0.2, 0.8}), 2)
}

func TestMixtureMoments(t *testing.T) {
	m := bimodal(t)
	require.InDelta(t, 0.3*-2+0.7*3, m.Mean(), 1e-12)
	// E[X²] - E[X]²
	ex2 := 0.3*(0.25+4) + 0.7*(1+9)
	require.InDelta(t, ex2-m.Mean()*m.Mean(), m.Variance(), 1e-12)

	lo, hi := m.Bounds()
	require.Equal(t, -3.5, lo)
	require.Equal(t, 6.0, hi)
}

func TestMixtureRand(t *testing.T) {
	m := bimodal(t)

	xs1 := m.RandN(50, rand.NewSource(42))
	xs2 := m.RandN(50, rand.NewSource(42))
	require.Equal(t, xs1, xs2, "same seed must give the same draws")

	require.Len(t, m.RandN(0, rand.NewSource(1)), 1)
	require.Len(t, m.RandN(-3, nil), 1)

	xs, err := MixtureRand(m.Weights(), m.Means(), m.Sigmas(), 40000, rand.NewSource(7))
	require.NoError(t, err)
	s := Sample{Xs: xs}
	require.InDelta(t, m.Mean(), s.Mean(), 0.05)
	require.InDelta(t, m.Variance(), s.Variance(), 0.15)

	// The fraction of draws below the midpoint estimates the weight
	// of the left component.
	left := 0
	for _, x := range xs {
		if x < 0.5 {
			left++
		}
	}
	require.InDelta(t, 0.3, float64(left)/float64(len(xs)), 0.02)

	require.False(t, math.IsNaN(m.Rand(nil)))
}
