// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import "errors"

var (
	// ErrInvalidParameter is returned for malformed mixture
	// parameters: mismatched lengths, non-positive weights or
	// sigmas, or weights that do not sum to 1.
	ErrInvalidParameter = errors.New("invalid mixture parameter")

	// ErrNonPositiveDensity is returned when a density that must
	// be logged evaluates to zero or less.
	ErrNonPositiveDensity = errors.New("non-positive density")

	// ErrFitConvergence is returned when a mixture cannot be
	// fitted to a sample for a given component count.
	ErrFitConvergence = errors.New("mixture fit failed")

	// ErrInvalidInput is returned for data that cannot be parsed
	// into a sample.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSampleSize is returned for a sample with too few values.
	ErrSampleSize = errors.New("sample is too small")
)
