// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// WeightTolerance is how far the sum of a mixture's weights may be
// from 1.
const WeightTolerance = 1e-8

// A Mixture is a one-dimensional Gaussian mixture distribution: a
// weighted sum of K normal distributions.
//
// Component j has weight Weights()[j], mean Means()[j], and standard
// deviation Sigmas()[j]. All weights are strictly positive and sum to
// 1 (within WeightTolerance) and all standard deviations are strictly
// positive.
//
// A Mixture is immutable. Use NewMixture to construct one.
type Mixture struct {
	weights, means, sigmas []float64
}

// NewMixture returns the Gaussian mixture with the given component
// weights, means, and standard deviations. The slices must have the
// same, non-zero length. NewMixture copies its arguments.
//
// NewMixture fails with ErrInvalidParameter if the parameters do not
// describe a valid mixture.
func NewMixture(weights, means, sigmas []float64) (*Mixture, error) {
	if err := checkMixture(weights, means, sigmas); err != nil {
		return nil, err
	}
	return &Mixture{
		weights: append([]float64(nil), weights...),
		means:   append([]float64(nil), means...),
		sigmas:  append([]float64(nil), sigmas...),
	}, nil
}

func checkMixture(weights, means, sigmas []float64) error {
	k := len(weights)
	if k == 0 {
		return fmt.Errorf("%w: mixture has no components", ErrInvalidParameter)
	}
	if len(means) != k || len(sigmas) != k {
		return fmt.Errorf("%w: %d weights, %d means, %d sigmas", ErrInvalidParameter, k, len(means), len(sigmas))
	}
	for j := range k {
		if !(weights[j] > 0) || math.IsInf(weights[j], 0) {
			return fmt.Errorf("%w: weight %d is %v, must be positive", ErrInvalidParameter, j, weights[j])
		}
		if math.IsNaN(means[j]) || math.IsInf(means[j], 0) {
			return fmt.Errorf("%w: mean %d is %v", ErrInvalidParameter, j, means[j])
		}
		if !(sigmas[j] > 0) || math.IsInf(sigmas[j], 0) {
			return fmt.Errorf("%w: sigma %d is %v, must be positive", ErrInvalidParameter, j, sigmas[j])
		}
	}
	if sum := floats.Sum(weights); math.Abs(sum-1) > WeightTolerance {
		return fmt.Errorf("%w: weights sum to %v, not 1", ErrInvalidParameter, sum)
	}
	return nil
}

// K returns the number of components in m.
func (m *Mixture) K() int {
	return len(m.weights)
}

// Weights returns a copy of m's component weights.
func (m *Mixture) Weights() []float64 {
	return append([]float64(nil), m.weights...)
}

// Means returns a copy of m's component means.
func (m *Mixture) Means() []float64 {
	return append([]float64(nil), m.means...)
}

// Sigmas returns a copy of m's component standard deviations.
func (m *Mixture) Sigmas() []float64 {
	return append([]float64(nil), m.sigmas...)
}

// Component returns the j'th component of m as a normal
// distribution.
func (m *Mixture) Component(j int) NormalDist {
	return NormalDist{m.means[j], m.sigmas[j]}
}

// eachComponent evaluates f for every (x, component) pair and returns
// the weighted sum over components for each x.
//
// The component values form an n×k matrix with xs down the rows and
// components across the columns; the result is that matrix times the
// weight vector.
func (m *Mixture) eachComponent(xs []float64, f func(c NormalDist, x float64) float64) []float64 {
	if len(xs) == 0 {
		return []float64{}
	}
	k := len(m.weights)
	vals := mat.NewDense(len(xs), k, nil)
	for j := range k {
		c := m.Component(j)
		for i, x := range xs {
			vals.Set(i, j, f(c, x))
		}
	}
	var out mat.VecDense
	out.MulVec(vals, mat.NewVecDense(k, m.Weights()))
	return out.RawVector().Data
}

func (m *Mixture) PDF(x float64) float64 {
	return m.PDFEach([]float64{x})[0]
}

func (m *Mixture) PDFEach(xs []float64) []float64 {
	return m.eachComponent(xs, NormalDist.PDF)
}

func (m *Mixture) CDF(x float64) float64 {
	return m.CDFEach([]float64{x})[0]
}

func (m *Mixture) CDFEach(xs []float64) []float64 {
	return m.eachComponent(xs, NormalDist.CDF)
}

// InvCDF returns the y'th quantile of m. The mixture CDF has no
// closed-form inverse, so this searches for it numerically.
func (m *Mixture) InvCDF(y float64) float64 {
	switch {
	case y < 0 || y > 1 || math.IsNaN(y):
		return nan
	case y == 0:
		return -inf
	case y == 1:
		return inf
	}

	// Bracket the root. The weights may sum to slightly less
	// than 1, so give up expanding eventually.
	lo, hi := m.Bounds()
	for i := 0; i < 64 && m.CDF(lo) > y; i++ {
		lo -= hi - lo
	}
	for i := 0; i < 64 && m.CDF(hi) < y; i++ {
		hi += hi - lo
	}
	x, _ := bisect(func(x float64) float64 { return m.CDF(x) - y }, lo, hi, 1e-12*(hi-lo))
	return x
}

func (m *Mixture) InvCDFEach(ys []float64) []float64 {
	res := make([]float64, len(ys))
	for i, y := range ys {
		res[i] = m.InvCDF(y)
	}
	return res
}

// Bounds returns the union of the 3σ ranges of m's components.
func (m *Mixture) Bounds() (float64, float64) {
	lo, hi := inf, -inf
	for j := range m.weights {
		clo, chi := m.Component(j).Bounds()
		lo, hi = math.Min(lo, clo), math.Max(hi, chi)
	}
	return lo, hi
}

func (m *Mixture) Mean() float64 {
	return floats.Dot(m.weights, m.means)
}

func (m *Mixture) Variance() float64 {
	// Law of total variance.
	mean := m.Mean()
	v := 0.0
	for j, w := range m.weights {
		d := m.means[j] - mean
		v += w * (m.sigmas[j]*m.sigmas[j] + d*d)
	}
	return v
}

// Rand draws one value from m using src. If src is nil, the
// process-wide source of golang.org/x/exp/rand is used.
func (m *Mixture) Rand(src rand.Source) float64 {
	return m.RandN(1, src)[0]
}

// RandN draws n values from m using src. Each draw first picks a
// component with probability equal to its weight and then draws from
// that component. If n <= 0, RandN draws a single value.
func (m *Mixture) RandN(n int, src rand.Source) []float64 {
	if n <= 0 {
		n = 1
	}
	pick := distuv.NewCategorical(m.weights, src)
	out := make([]float64, n)
	for i := range out {
		out[i] = m.Component(int(pick.Rand())).Rand(src)
	}
	return out
}

// MixturePDF returns the density of the mixture with the given
// parameters at each of xs. It fails with ErrInvalidParameter if the
// parameters do not describe a valid mixture.
func MixturePDF(xs, weights, means, sigmas []float64) ([]float64, error) {
	m, err := NewMixture(weights, means, sigmas)
	if err != nil {
		return nil, err
	}
	return m.PDFEach(xs), nil
}

// MixtureCDF returns the cumulative probability of the mixture with
// the given parameters at each of xs. It fails with
// ErrInvalidParameter if the parameters do not describe a valid
// mixture.
func MixtureCDF(xs, weights, means, sigmas []float64) ([]float64, error) {
	m, err := NewMixture(weights, means, sigmas)
	if err != nil {
		return nil, err
	}
	return m.CDFEach(xs), nil
}

// MixtureRand draws count values from the mixture with the given
// parameters. See Mixture.RandN.
func MixtureRand(weights, means, sigmas []float64, count int, src rand.Source) ([]float64, error) {
	m, err := NewMixture(weights, means, sigmas)
	if err != nil {
		return nil, err
	}
	return m.RandN(count, src), nil
}
