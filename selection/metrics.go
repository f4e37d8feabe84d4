// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package selection

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Trial outcomes, used as the "outcome" label of Metrics.Trials.
const (
	OutcomeScored     = "scored"
	OutcomeFitError   = "fit_error"
	OutcomeScoreError = "score_error"
)

// Metrics records the progress of model selection sweeps. A nil
// *Metrics records nothing.
type Metrics struct {
	// Trials counts finished trials by outcome.
	Trials *prometheus.CounterVec

	// FitSeconds observes the time spent fitting each trial.
	FitSeconds prometheus.Histogram

	// BestK is the component count chosen by the last sweep.
	BestK prometheus.Gauge
}

// NewMetrics creates sweep metrics and registers them with reg. If reg
// is nil, the metrics are created but not registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Trials: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gmmselect",
			Name:      "trials_total",
			Help:      "Number of mixture fit trials, by outcome.",
		}, []string{"outcome"}),
		FitSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gmmselect",
			Name:      "fit_duration_seconds",
			Help:      "Time spent fitting one mixture.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		BestK: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "gmmselect",
			Name:      "best_components",
			Help:      "Component count of the minimum-AIC mixture of the last sweep.",
		}),
	}
}

func (m *Metrics) trial(outcome string) {
	if m == nil {
		return
	}
	m.Trials.WithLabelValues(outcome).Inc()
}

func (m *Metrics) fit(d time.Duration) {
	if m == nil {
		return
	}
	m.FitSeconds.Observe(d.Seconds())
}

func (m *Metrics) best(k int) {
	if m == nil {
		return
	}
	m.BestK.Set(float64(k))
}
