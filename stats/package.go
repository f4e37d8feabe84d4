// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stats implements one-dimensional Gaussian mixture
// distributions and the summary statistics used to fit and score
// them.
package stats // import "github.com/aclements/gmmselect/stats"

import "math"

var inf = math.Inf(1)
var nan = math.NaN()
