// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mixfit estimates the parameters of one-dimensional Gaussian
// mixtures from data.
package mixfit // import "github.com/aclements/gmmselect/mixfit"

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/aclements/gmmselect/stats"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// A Fitter estimates a k-component Gaussian mixture from data.
//
// Implementations must not modify data. Failures should wrap
// stats.ErrFitConvergence.
type Fitter interface {
	Fit(ctx context.Context, data []float64, k int) (*stats.Mixture, error)
}

const (
	DefaultMaxIter = 1000
	DefaultTol     = 1e-5
	DefaultRegVar  = 1e-6
)

// EM fits Gaussian mixtures by expectation-maximization.
//
// The zero value is ready to use. EM is deterministic: fitting the same
// data with the same Seed always gives the same mixture.
type EM struct {
	// MaxIter bounds the number of EM iterations per attempt. If
	// zero, DefaultMaxIter is used. Running out of iterations
	// before converging is a fit failure.
	MaxIter int

	// Tol is the convergence threshold on the change in mean
	// per-observation log-likelihood between iterations. If zero,
	// DefaultTol is used.
	Tol float64

	// RegVar is added to every component variance on each
	// iteration, which keeps a component from collapsing onto a
	// single point. If zero, DefaultRegVar is used.
	RegVar float64

	// Restarts is the number of extra attempts to make, each from a
	// different random initialization, if an attempt fails.
	Restarts int

	// Seed seeds the initialization of restarted attempts. The
	// first attempt always starts from the data's quantiles.
	Seed uint64

	// Logger receives per-attempt diagnostics. If nil,
	// slog.Default() is used.
	Logger *slog.Logger
}

var _ Fitter = (*EM)(nil)

// Fit fits a k-component mixture to data.
//
// It fails with stats.ErrFitConvergence if k < 1, data is empty, data
// has fewer than k distinct values, ctx is done, or no attempt
// converges.
func (e *EM) Fit(ctx context.Context, data []float64, k int) (*stats.Mixture, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k=%d: need at least one component", stats.ErrFitConvergence, k)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: k=%d: %w", stats.ErrFitConvergence, k, stats.ErrSampleSize)
	}
	sorted := stats.Sample{Xs: data}.Copy().Sort()
	if d := sorted.Distinct(); k > d {
		return nil, fmt.Errorf("%w: k=%d: only %d distinct values", stats.ErrFitConvergence, k, d)
	}

	logger := e.logger().With(slog.Int("k", k))
	var errs []error
	for attempt := 0; attempt <= e.Restarts; attempt++ {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		m, iters, err := e.run(ctx, data, e.init(sorted, k, attempt))
		if err == nil {
			logger.Debug("EM converged", slog.Int("attempt", attempt), slog.Int("iterations", iters))
			return m, nil
		}
		logger.Debug("EM attempt failed", slog.Int("attempt", attempt), slog.Int("iterations", iters), slog.String("error", err.Error()))
		errs = append(errs, fmt.Errorf("attempt %d: %w", attempt, err))
	}
	return nil, fmt.Errorf("%w: k=%d: %w", stats.ErrFitConvergence, k, errors.Join(errs...))
}

func (e *EM) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

func (e *EM) maxIter() int {
	if e.MaxIter == 0 {
		return DefaultMaxIter
	}
	return e.MaxIter
}

func (e *EM) tol() float64 {
	if e.Tol == 0 {
		return DefaultTol
	}
	return e.Tol
}

func (e *EM) regVar() float64 {
	if e.RegVar == 0 {
		return DefaultRegVar
	}
	return e.RegVar
}

// params is a mixture under estimation. Unlike stats.Mixture it holds
// variances and is updated in place.
type params struct {
	w, mu, v []float64
}

// init returns the starting parameters for the given attempt.
// Attempt 0 spreads the means over the quantiles of the data; later
// attempts pick k distinct values of the data at random.
func (e *EM) init(sorted *stats.Sample, k, attempt int) params {
	p := params{
		w:  make([]float64, k),
		mu: make([]float64, k),
		v:  make([]float64, k),
	}
	v0 := sorted.Variance()
	if !(v0 > 0) {
		v0 = 1
	}
	if attempt == 0 {
		for j := range k {
			p.mu[j] = sorted.Quantile((float64(j) + 0.5) / float64(k))
		}
	} else {
		// Components that start equal stay equal, so draw from
		// the distinct values rather than the observations.
		vals := distinctValues(sorted.Xs)
		rng := rand.New(rand.NewSource(e.Seed + uint64(attempt)))
		for j, i := range rng.Perm(len(vals))[:k] {
			p.mu[j] = vals[i]
		}
	}
	for j := range k {
		p.w[j] = 1 / float64(k)
		p.v[j] = v0
	}
	return p
}

// distinctValues returns the distinct values of the sorted slice xs.
func distinctValues(xs []float64) []float64 {
	var vals []float64
	for i, x := range xs {
		if i == 0 || x != xs[i-1] {
			vals = append(vals, x)
		}
	}
	return vals
}

// run iterates EM from p until the mean log-likelihood stops
// improving by more than Tol. It returns the fitted mixture and the
// number of iterations used.
func (e *EM) run(ctx context.Context, data []float64, p params) (*stats.Mixture, int, error) {
	n, k := len(data), len(p.w)
	maxIter, tol, regVar := e.maxIter(), e.tol(), e.regVar()

	// resp[i*k+j] is the responsibility of component j for data[i].
	resp := make([]float64, n*k)
	comps := make([]distuv.Normal, k)
	logW := make([]float64, k)
	prevLL := math.Inf(-1)
	for iter := 0; iter < maxIter; iter++ {
		if iter%16 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, iter, err
			}
		}

		// E step.
		for j := range k {
			comps[j] = distuv.Normal{Mu: p.mu[j], Sigma: math.Sqrt(p.v[j])}
			logW[j] = math.Log(p.w[j])
		}
		ll := 0.0
		for i, x := range data {
			row := resp[i*k : (i+1)*k]
			for j := range k {
				row[j] = logW[j] + comps[j].LogProb(x)
			}
			lse := floats.LogSumExp(row)
			ll += lse
			for j := range row {
				row[j] = math.Exp(row[j] - lse)
			}
		}
		ll /= float64(n)
		if math.IsNaN(ll) || math.IsInf(ll, 0) {
			return nil, iter, fmt.Errorf("log-likelihood is %v", ll)
		}

		// M step.
		for j := range k {
			nj, sx := 0.0, 0.0
			for i, x := range data {
				r := resp[i*k+j]
				nj += r
				sx += r * x
			}
			if nj < 1e-10*float64(n) {
				return nil, iter, fmt.Errorf("component %d collapsed", j)
			}
			mu := sx / nj
			ss := 0.0
			for i, x := range data {
				d := x - mu
				ss += resp[i*k+j] * d * d
			}
			p.w[j], p.mu[j], p.v[j] = nj/float64(n), mu, ss/nj+regVar
		}
		floats.Scale(1/floats.Sum(p.w), p.w)

		if math.Abs(ll-prevLL) < tol {
			m, err := p.mixture()
			return m, iter + 1, err
		}
		prevLL = ll
	}
	return nil, maxIter, fmt.Errorf("no convergence after %d iterations", maxIter)
}

// mixture converts p to a stats.Mixture with components ordered by
// mean.
func (p params) mixture() (*stats.Mixture, error) {
	k := len(p.w)
	order := make([]int, k)
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool { return p.mu[order[a]] < p.mu[order[b]] })

	w, mu, sigma := make([]float64, k), make([]float64, k), make([]float64, k)
	for dst, src := range order {
		w[dst], mu[dst], sigma[dst] = p.w[src], p.mu[src], math.Sqrt(p.v[src])
	}
	return stats.NewMixture(w, mu, sigma)
}
