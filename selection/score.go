// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package selection

import (
	"fmt"
	"math"

	"github.com/aclements/gmmselect/stats"
)

// A ParamCounter returns the number of free parameters AIC charges a
// mixture for.
type ParamCounter func(m *stats.Mixture) int

// ParamsAll counts every weight, mean, and standard deviation: 3k for
// a k-component mixture. This overcounts by one, since the weights
// are constrained to sum to 1, but it is the conventional count for
// this tool and the default.
func ParamsAll(m *stats.Mixture) int {
	return len(m.Weights()) + len(m.Means()) + len(m.Sigmas())
}

// ParamsFree counts only the independent parameters: 3k-1 for a
// k-component mixture.
func ParamsFree(m *stats.Mixture) int {
	return ParamsAll(m) - 1
}

// LogLikelihood returns Σ ln m.PDF(x) over data.
//
// It fails with stats.ErrNonPositiveDensity if the density at any
// observation is not positive, which happens when m puts no
// probability mass near an observed value (or the density
// underflows). Such a mixture has no meaningful score.
func LogLikelihood(data []float64, m *stats.Mixture) (float64, error) {
	if len(data) == 0 {
		return nan, stats.ErrSampleSize
	}
	ll := 0.0
	for i, d := range m.PDFEach(data) {
		if !(d > 0) {
			return nan, fmt.Errorf("%w: density %v at data[%d]=%v", stats.ErrNonPositiveDensity, d, i, data[i])
		}
		ll += math.Log(d)
	}
	return ll, nil
}

// AIC returns the Akaike Information Criterion 2(p - LL) of m on
// data, where p is ParamsAll(m) and LL is LogLikelihood(data, m).
// Lower is better.
func AIC(data []float64, m *stats.Mixture) (float64, error) {
	return AICWith(data, m, ParamsAll)
}

// AICWith is like AIC, but counts parameters with count.
func AICWith(data []float64, m *stats.Mixture, count ParamCounter) (float64, error) {
	ll, err := LogLikelihood(data, m)
	if err != nil {
		return nan, err
	}
	return aic(ll, count(m)), nil
}

func aic(ll float64, params int) float64 {
	return 2 * (float64(params) - ll)
}

var nan = math.NaN()
