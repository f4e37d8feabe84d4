// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset reads one-dimensional datasets stored as a single
// line of comma-separated numbers.
package dataset // import "github.com/aclements/gmmselect/dataset"

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/aclements/gmmselect/stats"
)

// Parse parses s as comma-separated decimal numbers, for example
// "1.2,3.4,-0.5". Surrounding whitespace, both of s and of each
// field, is ignored.
//
// Parse fails with stats.ErrInvalidInput if any field is not a finite
// number. There is no partial result.
func Parse(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: no values", stats.ErrInvalidInput)
	}
	fields := strings.Split(s, ",")
	xs := make([]float64, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: field %d: %w", stats.ErrInvalidInput, i+1, err)
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: field %d: %q is not finite", stats.ErrInvalidInput, i+1, f)
		}
		xs[i] = x
	}
	return xs, nil
}

// ReadFile reads and parses the dataset in the named file.
func ReadFile(name string) ([]float64, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", stats.ErrInvalidInput, err)
	}
	xs, err := Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return xs, nil
}
