// Package mna owns the assembled Modified Nodal Analysis system: the dense
// matrices and vectors every analysis solves against.
package mna

import "github.com/edp1096/mna-spice/pkg/device"

// State is (A, b, H, g): A x + H g(x) - b = 0.
type State struct {
	A [][]float64
	B []float64
	H [][]float64
	G []device.GFunc
}

// New allocates a zeroed State sized for n node unknowns and k nonlinear
// functions.
func New(n, k int) *State {
	a := make([][]float64, n)
	h := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
		h[i] = make([]float64, k)
	}
	return &State{
		A: a,
		B: make([]float64, n),
		H: h,
		G: make([]device.GFunc, 0, k),
	}
}

// X returns a freshly zeroed unknown vector of the right size.
func (s *State) X() []float64 { return make([]float64, len(s.B)) }

// Err evaluates the residual F(x) = A x + H g(x) - b.
func (s *State) Err(x []float64) []float64 {
	n := len(s.B)
	out := make([]float64, n)

	for i := 0; i < n; i++ {
		sum := -s.B[i]
		for j := 0; j < n; j++ {
			sum += s.A[i][j] * x[j]
		}
		out[i] = sum
	}

	if len(s.G) == 0 {
		return out
	}
	gVal := make([]float64, len(s.G))
	for k, g := range s.G {
		gVal[k] = g(x)
	}
	for i := 0; i < n; i++ {
		for k := range s.G {
			out[i] += s.H[i][k] * gVal[k]
		}
	}
	return out
}

// CloneAB returns independent copies of A and b, for the Newton working
// copy and for the transient backup/restore around dynamic stamping.
func (s *State) CloneAB() ([][]float64, []float64) {
	a := make([][]float64, len(s.A))
	for i, row := range s.A {
		a[i] = append([]float64(nil), row...)
	}
	b := append([]float64(nil), s.B...)
	return a, b
}
