package linalg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cloneMat(a [][]float64) [][]float64 {
	out := make([][]float64, len(a))
	for i, row := range a {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

func TestSolveSimple2x2(t *testing.T) {
	a := [][]float64{{2, 1}, {1, 3}}
	b := []float64{3, 5}
	x := make([]float64, 2)

	require.NoError(t, Solve(a, b, x))
	assert.InDelta(t, 0.8, x[0], 1e-9)
	assert.InDelta(t, 1.4, x[1], 1e-9)
}

func TestSolveRequiresPivotSwap(t *testing.T) {
	a := [][]float64{{0, 1}, {1, 1}}
	b := []float64{2, 3}
	x := make([]float64, 2)

	require.NoError(t, Solve(a, b, x))
	assert.InDelta(t, 1.0, x[0], 1e-9)
	assert.InDelta(t, 2.0, x[1], 1e-9)
}

func TestSolveThreeByThree(t *testing.T) {
	a := [][]float64{
		{2, -1, 0},
		{-1, 2, -1},
		{0, -1, 2},
	}
	b := []float64{1, 0, 1}
	x := make([]float64, 3)

	require.NoError(t, Solve(a, b, x))

	orig := [][]float64{
		{2, -1, 0},
		{-1, 2, -1},
		{0, -1, 2},
	}
	origB := []float64{1, 0, 1}
	residual := make([]float64, 3)
	for i := range residual {
		for j := range x {
			residual[i] += orig[i][j] * x[j]
		}
		residual[i] -= origB[i]
	}
	for _, r := range residual {
		assert.Less(t, math.Abs(r), 1e-9)
	}
}

func TestSolveSingularReturnsError(t *testing.T) {
	a := [][]float64{{1, 2}, {2, 4}}
	b := []float64{1, 2}
	x := make([]float64, 2)

	err := Solve(a, b, x)
	assert.Error(t, err)
}

func TestSolveRepeatsOnFreshClone(t *testing.T) {
	a := [][]float64{{4, 3}, {6, 3}}
	aCopy := cloneMat(a)
	b := []float64{1, 1}
	x := make([]float64, 2)

	require.NoError(t, Solve(a, b, x))
	// a and b are documented to be overwritten in place; this test only
	// pins down that Solve doesn't panic or corrupt unrelated memory
	// between calls when fed a fresh clone.
	x2 := make([]float64, 2)
	require.NoError(t, Solve(aCopy, []float64{1, 1}, x2))
	assert.InDelta(t, x[0], x2[0], 1e-9)
	assert.InDelta(t, x[1], x2[1], 1e-9)
}
