package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMOSFETCutoffGivesZeroCurrent(t *testing.T) {
	m := NewMOSFET("M1", []string{"d", "g", "s"})
	nodes := collectionFor(m)
	h := make([][]float64, nodes.Len())
	for i := range h {
		h[i] = make([]float64, 1)
	}
	funcs := m.NonlinearFuncs(nodes, h, 0)
	require.Len(t, funcs, 1)

	gIdx, _ := nodes.GetIdx("g")
	dIdx, _ := nodes.GetIdx("d")
	x := make([]float64, nodes.Len())
	x[gIdx] = 0.0 // below NmosVt: cutoff
	x[dIdx] = 1.0

	assert.Zero(t, funcs[0](x))
}

func TestMOSFETSaturationGivesPositiveDrainCurrent(t *testing.T) {
	m := NewMOSFET("M1", []string{"d", "g", "s"})
	nodes := collectionFor(m)
	h := make([][]float64, nodes.Len())
	for i := range h {
		h[i] = make([]float64, 1)
	}
	funcs := m.NonlinearFuncs(nodes, h, 0)

	gIdx, _ := nodes.GetIdx("g")
	dIdx, _ := nodes.GetIdx("d")
	x := make([]float64, nodes.Len())
	x[gIdx] = 1.5
	x[dIdx] = 3.0

	assert.Greater(t, funcs[0](x), 0.0)
}

func TestMOSFETDrainSourceSwapFlipsSign(t *testing.T) {
	m := NewMOSFET("M1", []string{"d", "g", "s"})
	nodes := collectionFor(m)

	dName, sName := m.nmosDS(nodes, func() []float64 {
		dIdx, _ := nodes.GetIdx("d")
		sIdx, _ := nodes.GetIdx("s")
		x := make([]float64, nodes.Len())
		x[dIdx] = 0.0
		x[sIdx] = 1.0 // source above drain: model swaps roles
		return x
	}())

	assert.Equal(t, "s", dName)
	assert.Equal(t, "d", sName)
}

func TestMOSFETNonlinearStampAddsNonnegativeConductance(t *testing.T) {
	m := NewMOSFET("M1", []string{"d", "g", "s"})
	nodes := collectionFor(m)
	a, b := zeros(nodes.Len())

	gIdx, _ := nodes.GetIdx("g")
	dIdx, _ := nodes.GetIdx("d")
	x := make([]float64, nodes.Len())
	x[gIdx] = 1.5
	x[dIdx] = 3.0

	m.NonlinearStamp(nodes, x, a, b)
	assert.GreaterOrEqual(t, a[dIdx][dIdx], 0.0)
}
