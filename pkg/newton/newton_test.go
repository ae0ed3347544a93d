package newton

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDampenIsMonotoneAndBounded(t *testing.T) {
	for _, d := range []float64{0, 0.001, 1, 10, 100, -5, -50} {
		got := dampen(d)
		if d == 0 {
			assert.Zero(t, got)
			continue
		}
		assert.LessOrEqual(t, math.Abs(got), math.Abs(d))
		assert.Equal(t, d > 0, got > 0)
	}
}

func TestConvergedRequiresBothClasses(t *testing.T) {
	small := Norm{V: 1e-9, I: 1e-12}
	big := Infinity()

	assert.True(t, converged(small, big, small, big))
	assert.False(t, converged(Norm{V: 1, I: 1e-12}, big, small, big))
	assert.False(t, converged(small, big, Norm{V: 1, I: 1e-12}, big))
}

func TestInfinitySentinelNeverBeatenOnFirstPass(t *testing.T) {
	inf := Infinity()
	assert.True(t, math.IsInf(inf.V, 1))
	assert.True(t, math.IsInf(inf.I, 1))
}
