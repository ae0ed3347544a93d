// Package linalg implements the one numerical primitive this module builds
// on raw arithmetic rather than a third-party library: dense LU with
// partial pivoting. The spec names this as an independently-tested,
// mandatory component (dense, not sparse - see DESIGN.md), so it is
// hand-written rather than delegated to gosl/la or gonum.
package linalg

import (
	"fmt"
	"math"
)

// Solve overwrites a and b with their Doolittle LU factorization (partial
// pivoting) and writes the solution of a*x = b into x. a, b and x must all
// be pre-sized to the same N; a is N x N. Returns an error if no usable
// pivot is found (a is numerically singular).
func Solve(a [][]float64, b []float64, x []float64) error {
	n := len(b)

	for k := 0; k < n; k++ {
		piv := k
		best := math.Abs(a[k][k])
		for i := k + 1; i < n; i++ {
			if v := math.Abs(a[i][k]); v > best {
				best = v
				piv = i
			}
		}
		if best == 0 {
			return fmt.Errorf("linalg: matrix is singular at column %d", k)
		}
		if piv != k {
			a[k], a[piv] = a[piv], a[k]
			b[k], b[piv] = b[piv], b[k]
		}

		for i := k + 1; i < n; i++ {
			factor := a[i][k] / a[k][k]
			a[i][k] = factor
			for j := k + 1; j < n; j++ {
				a[i][j] -= factor * a[k][j]
			}
			b[i] -= factor * b[k]
		}
	}

	for i := 0; i < n; i++ {
		x[i] = b[i]
	}
	for i := n - 1; i >= 0; i-- {
		x[i] /= a[i][i]
		for j := 0; j < i; j++ {
			x[j] -= a[j][i] * x[i]
		}
	}
	return nil
}
