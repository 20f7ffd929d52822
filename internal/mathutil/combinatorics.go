// Package mathutil holds the small numeric helpers the learner leans on
// for minimum-description-length accounting.
package mathutil

import "math"

// Log2Combination returns log2(C(n, k)) computed via the log-gamma form,
// so it never overflows the way a direct factorial ratio would for even
// modest dataset sizes.
//
// Returns negative infinity when k is out of [0, n] — callers treat that
// as a signal to stop extending whatever branch produced it, never as an
// error.
func Log2Combination(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	lg := func(x int) float64 { return lgamma(float64(x + 1)) }
	return (lg(n) - lg(k) - lg(n-k)) / math.Ln2
}

func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}
