package device

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edp1096/mna-spice/pkg/node"
)

func collectionFor(devs ...Stamp) *node.Collection {
	return node.FromElems(Stampers(devs))
}

func zeros(n int) ([][]float64, []float64) {
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
	}
	return a, make([]float64, n)
}

func TestResistorLinearStampGroundedNode(t *testing.T) {
	r := NewResistor("R1", []string{"0", "1"}, 1e3)
	nodes := collectionFor(r)
	a, b := zeros(nodes.Len())

	r.LinearStamp(nodes, a, b)

	assert.Equal(t, [][]float64{{1e-3}}, a)
	assert.Equal(t, []float64{0}, b)
}

func TestResistorLinearStampTwoNodes(t *testing.T) {
	r := NewResistor("R1", []string{"1", "2"}, 1e3)
	nodes := collectionFor(r)
	a, b := zeros(nodes.Len())

	r.LinearStamp(nodes, a, b)

	n1, _ := nodes.GetIdx("1")
	n2, _ := nodes.GetIdx("2")

	assert.InDelta(t, 1e-3, a[n1][n1], 1e-12)
	assert.InDelta(t, 1e-3, a[n2][n2], 1e-12)
	assert.InDelta(t, -1e-3, a[n1][n2], 1e-12)
	assert.InDelta(t, -1e-3, a[n2][n1], 1e-12)
}

func TestResistorUndoLinearStampIsExactInverse(t *testing.T) {
	r := NewResistor("R1", []string{"1", "2"}, 1e3)
	nodes := collectionFor(r)
	a, b := zeros(nodes.Len())

	r.LinearStamp(nodes, a, b)
	r.UndoLinearStamp(nodes, a, b)

	for _, row := range a {
		for _, v := range row {
			assert.Zero(t, v)
		}
	}
	for _, v := range b {
		assert.Zero(t, v)
	}
}

func TestResistorHasNoNonlinearFuncs(t *testing.T) {
	r := NewResistor("R1", []string{"1", "2"}, 1e3)
	assert.Equal(t, 0, r.CountNonlinearFuncs())
}
