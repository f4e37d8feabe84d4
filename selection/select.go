// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package selection chooses the number of components of a Gaussian
// mixture by fitting a range of component counts and comparing their
// Akaike Information Criterion.
package selection // import "github.com/aclements/gmmselect/selection"

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aclements/gmmselect/mixfit"
	"github.com/aclements/gmmselect/stats"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoModel is returned when no component count in the
	// range could be fitted and scored.
	ErrNoModel = errors.New("no mixture could be fitted")

	// ErrInvalidRange is returned for an empty or non-positive
	// component count range.
	ErrInvalidRange = errors.New("invalid component range")
)

// Default component count range.
const (
	DefaultKMin = 2
	DefaultKMax = 10
)

// A FitResult is a fitted mixture together with its scores.
type FitResult struct {
	// K is the component count that was requested from the
	// fitter.
	K int

	Mixture *stats.Mixture

	LogLikelihood float64
	AIC           float64
}

// A Trial is the outcome of fitting and scoring one component count.
// If Err is non-nil, the trial failed, Mixture is nil, and the scores
// are NaN.
type Trial struct {
	FitResult
	Err error
}

// A Report is the result of a selection sweep.
type Report struct {
	// Best is the trial with the lowest AIC. Among equal AICs,
	// the smallest K wins.
	Best *FitResult

	// Trials has one entry per component count, in increasing K
	// order, including failed trials.
	Trials []Trial
}

// A Selector fits mixtures over a range of component counts and picks
// the one with the lowest AIC.
type Selector struct {
	fitter     mixfit.Fitter
	kmin, kmax int
	params     ParamCounter
	parallel   int
	timeout    time.Duration
	logger     *slog.Logger
	metrics    *Metrics
}

// An Option configures a Selector.
type Option func(*Selector)

// WithRange sets the inclusive range of component counts to try. The
// default is DefaultKMin to DefaultKMax.
func WithRange(kmin, kmax int) Option {
	return func(s *Selector) { s.kmin, s.kmax = kmin, kmax }
}

// WithParamCounter sets how AIC counts parameters. The default is
// ParamsAll.
func WithParamCounter(count ParamCounter) Option {
	return func(s *Selector) { s.params = count }
}

// WithParallelism sets how many trials may run at once. Values below
// 1 mean 1.
func WithParallelism(n int) Option {
	return func(s *Selector) { s.parallel = n }
}

// WithTimeout bounds the whole sweep. Trials still running when it
// expires fail like any other fit failure.
func WithTimeout(d time.Duration) Option {
	return func(s *Selector) { s.timeout = d }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Selector) { s.logger = l }
}

// WithMetrics records sweep progress in m.
func WithMetrics(m *Metrics) Option {
	return func(s *Selector) { s.metrics = m }
}

// New returns a Selector that fits mixtures with fitter.
func New(fitter mixfit.Fitter, opts ...Option) *Selector {
	s := &Selector{
		fitter:   fitter,
		kmin:     DefaultKMin,
		kmax:     DefaultKMax,
		params:   ParamsAll,
		parallel: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.parallel < 1 {
		s.parallel = 1
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.params == nil {
		s.params = ParamsAll
	}
	return s
}

// SelectBest fits and scores a mixture for every component count in
// the Selector's range and returns the one with the lowest AIC.
//
// A trial that fails to fit or score is logged, recorded in the
// report, and left out of the comparison. SelectBest fails with
// ErrNoModel only if every trial fails.
func (s *Selector) SelectBest(ctx context.Context, data []float64) (*Report, error) {
	if s.kmin < 1 || s.kmax < s.kmin {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, s.kmin, s.kmax)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %w", stats.ErrInvalidInput, stats.ErrSampleSize)
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// Trials share only the read-only data and each writes its
	// own slot, so they need no locking.
	trials := make([]Trial, s.kmax-s.kmin+1)
	var g errgroup.Group
	g.SetLimit(s.parallel)
	for i := range trials {
		k := s.kmin + i
		g.Go(func() error {
			trials[i] = s.trial(ctx, data, k)
			return nil
		})
	}
	// Trials report failure in their slot, never through the group.
	_ = g.Wait()

	var best *FitResult
	for i := range trials {
		t := &trials[i]
		if t.Err != nil {
			continue
		}
		if best == nil || t.AIC < best.AIC {
			best = &t.FitResult
		}
	}
	if best == nil {
		return &Report{Trials: trials}, fmt.Errorf("%w for k in [%d, %d]", ErrNoModel, s.kmin, s.kmax)
	}
	s.metrics.best(best.K)
	s.logger.Info("selected mixture", slog.Int("k", best.K), slog.Float64("aic", best.AIC))
	return &Report{Best: best, Trials: trials}, nil
}

func (s *Selector) trial(ctx context.Context, data []float64, k int) Trial {
	t := Trial{FitResult: FitResult{K: k, LogLikelihood: nan, AIC: nan}}
	logger := s.logger.With(slog.Int("k", k))

	start := time.Now()
	m, err := s.fitter.Fit(ctx, data, k)
	elapsed := time.Since(start)
	s.metrics.fit(elapsed)
	if err == nil {
		err = checkFit(m, k)
	}
	if err != nil {
		logger.Warn("fit failed, skipping", slog.String("error", err.Error()))
		s.metrics.trial(OutcomeFitError)
		t.Err = err
		return t
	}

	ll, err := LogLikelihood(data, m)
	if err != nil {
		logger.Warn("scoring failed, skipping", slog.String("error", err.Error()))
		s.metrics.trial(OutcomeScoreError)
		t.Err = err
		return t
	}
	t.Mixture, t.LogLikelihood, t.AIC = m, ll, aic(ll, s.params(m))
	logger.Debug("scored mixture",
		slog.Float64("log_likelihood", t.LogLikelihood),
		slog.Float64("aic", t.AIC),
		slog.Duration("fit_time", elapsed))
	s.metrics.trial(OutcomeScored)
	return t
}

// checkFit rejects a fitter result that is not a k-component mixture.
func checkFit(m *stats.Mixture, k int) error {
	if m == nil {
		return fmt.Errorf("%w: k=%d: fitter returned no mixture", stats.ErrFitConvergence, k)
	}
	if m.K() != k {
		return fmt.Errorf("%w: k=%d: fitter returned %d components", stats.ErrFitConvergence, k, m.K())
	}
	return nil
}
