package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBJTCountNonlinearFuncsIsTwo(t *testing.T) {
	q := NewBJT("Q1", []string{"c", "b", "e"})
	assert.Equal(t, 2, q.CountNonlinearFuncs())
}

func TestBJTHColumnsReflectBaseAsDependentSum(t *testing.T) {
	q := NewBJT("Q1", []string{"c", "b", "e"})
	nodes := collectionFor(q)
	h := make([][]float64, nodes.Len())
	for i := range h {
		h[i] = make([]float64, 2)
	}
	q.NonlinearFuncs(nodes, h, 0)

	c, _ := nodes.GetIdx("c")
	b, _ := nodes.GetIdx("b")
	e, _ := nodes.GetIdx("e")

	assert.Equal(t, 1.0, h[c][0])
	assert.Equal(t, -1.0, h[b][0])
	assert.Equal(t, -1.0, h[b][1])
	assert.Equal(t, 1.0, h[e][1])
}

func TestBJTForwardActiveGivesPositiveCollectorCurrent(t *testing.T) {
	q := NewBJT("Q1", []string{"c", "b", "e"})
	nodes := collectionFor(q)
	h := make([][]float64, nodes.Len())
	for i := range h {
		h[i] = make([]float64, 2)
	}
	funcs := q.NonlinearFuncs(nodes, h, 0)
	require.Len(t, funcs, 2)

	b, _ := nodes.GetIdx("b")
	c, _ := nodes.GetIdx("c")
	x := make([]float64, nodes.Len())
	x[b] = 0.7
	x[c] = 5.0

	ic := funcs[0](x)
	assert.Greater(t, ic, 0.0)
}

func TestBJTNonlinearStampAddsPositiveSelfConductances(t *testing.T) {
	q := NewBJT("Q1", []string{"c", "b", "e"})
	nodes := collectionFor(q)
	a, b := zeros(nodes.Len())

	bIdx, _ := nodes.GetIdx("b")
	cIdx, _ := nodes.GetIdx("c")
	x := make([]float64, nodes.Len())
	x[bIdx] = 0.7
	x[cIdx] = 5.0

	q.NonlinearStamp(nodes, x, a, b)
	assert.Greater(t, a[cIdx][cIdx], 0.0)
}
