// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

// bisect returns an x in [low, high] such that |high-low| <= tolerance
// and f changes sign between low and high. f(low) and f(high) must
// bracket a root; if they do not, bisect returns false.
//
// f need not be continuous; at a discontinuity bisect converges on
// the step.
func bisect(f func(float64) float64, low, high, tolerance float64) (float64, bool) {
	flow, fhigh := f(low), f(high)
	if flow == 0 {
		return low, true
	} else if fhigh == 0 {
		return high, true
	}
	if (flow < 0) == (fhigh < 0) {
		return low, false
	}
	for i := 0; i < 200 && high-low > tolerance; i++ {
		mid := low + (high-low)/2
		if mid == low || mid == high {
			break
		}
		fmid := f(mid)
		if fmid == 0 {
			return mid, true
		}
		if (fmid < 0) == (flow < 0) {
			low, flow = mid, fmid
		} else {
			high = mid
		}
	}
	return low + (high-low)/2, true
}
