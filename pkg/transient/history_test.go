package transient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPLTEZeroForLinearRamp(t *testing.T) {
	h := &History{}
	// x(t) = 2t is exactly linear: every third divided difference is zero,
	// so PLTE must vanish regardless of step size.
	for i, ti := range []float64{0, 1, 2, 3} {
		h.Push(Record{NIters: 1, X: []float64{2 * ti}, T: ti})
		_ = i
	}
	require.Equal(t, 4, h.Len())

	plte := h.PLTE(h.Len() - 2)
	require.Len(t, plte, 1)
	assert.InDelta(t, 0, plte[0], 1e-9)
}

func TestPLTENonzeroForCubic(t *testing.T) {
	h := &History{}
	for _, ti := range []float64{0, 1, 2, 3} {
		h.Push(Record{NIters: 1, X: []float64{ti * ti * ti}, T: ti})
	}
	plte := h.PLTE(h.Len() - 2)
	assert.NotZero(t, plte[0])
}

func TestPopRemovesLastRecord(t *testing.T) {
	h := &History{}
	h.Push(Record{T: 0})
	h.Push(Record{T: 1})
	h.Pop()
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0.0, h.At(0).T)
}
