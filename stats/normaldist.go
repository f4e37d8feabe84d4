// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// NormalDist is a normal (Gaussian) distribution with mean Mu and
// standard deviation Sigma.
type NormalDist struct {
	Mu, Sigma float64
}

// StdNormal is the standard normal distribution (Mu = 0, Sigma = 1)
var StdNormal = NormalDist{0, 1}

func (n NormalDist) dist(src rand.Source) distuv.Normal {
	return distuv.Normal{Mu: n.Mu, Sigma: n.Sigma, Src: src}
}

func (n NormalDist) PDF(x float64) float64 {
	return n.dist(nil).Prob(x)
}

func (n NormalDist) PDFEach(xs []float64) []float64 {
	d := n.dist(nil)
	res := make([]float64, len(xs))
	for i, x := range xs {
		res[i] = d.Prob(x)
	}
	return res
}

// LogPDF returns the natural logarithm of PDF(x). Unlike
// math.Log(n.PDF(x)), it stays finite far into the tails.
func (n NormalDist) LogPDF(x float64) float64 {
	return n.dist(nil).LogProb(x)
}

func (n NormalDist) CDF(x float64) float64 {
	return n.dist(nil).CDF(x)
}

func (n NormalDist) CDFEach(xs []float64) []float64 {
	d := n.dist(nil)
	res := make([]float64, len(xs))
	for i, x := range xs {
		res[i] = d.CDF(x)
	}
	return res
}

func (n NormalDist) InvCDF(p float64) float64 {
	switch {
	case p < 0 || p > 1 || math.IsNaN(p):
		return nan
	case p == 0:
		return -inf
	case p == 1:
		return inf
	}
	return n.dist(nil).Quantile(p)
}

func (n NormalDist) InvCDFEach(ps []float64) []float64 {
	res := make([]float64, len(ps))
	for i, p := range ps {
		res[i] = n.InvCDF(p)
	}
	return res
}

// Rand draws a value from n using src. If src is nil, the
// process-wide source of golang.org/x/exp/rand is used.
func (n NormalDist) Rand(src rand.Source) float64 {
	return n.dist(src).Rand()
}

func (n NormalDist) Bounds() (float64, float64) {
	const stddevs = 3
	return n.Mu - stddevs*n.Sigma, n.Mu + stddevs*n.Sigma
}

func (n NormalDist) Mean() float64 {
	return n.Mu
}

func (n NormalDist) Variance() float64 {
	return n.Sigma * n.Sigma
}
