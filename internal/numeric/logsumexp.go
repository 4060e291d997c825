// Package numeric provides the small numerical primitives shared by the
// score-distribution and comparison engines: log-space addition in base 2
// and an approximate weighted median over a fixed-bin histogram.
package numeric

import "math"

// LogSumExp2 computes log2(2^x + 2^y) without overflow for widely
// separated inputs. -Inf is the identity element and +Inf is absorbing.
func LogSumExp2(x, y float64) float64 {
	if math.IsInf(x, -1) && math.IsInf(y, -1) {
		return math.Inf(-1)
	}
	if math.IsInf(x, 1) || math.IsInf(y, 1) {
		return math.Inf(1)
	}
	m, n := x, y
	if n > m {
		m, n = n, m
	}
	return m + math.Log2(math.Exp2(n-m)+1)
}
