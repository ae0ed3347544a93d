package engine

import (
	"github.com/edp1096/mna-spice/pkg/device"
	"github.com/edp1096/mna-spice/pkg/node"
)

// RunOP computes the DC operating point: the startup-regime Node
// Collection (inductors shorted, G2), a Newton solve, then InitState on
// every device so C/L capture their initial (u, i) history.
func RunOP(devs []device.Stamp) ([]float64, *node.Collection, error) {
	nodes := node.FromStartupElems(device.Stampers(devs))
	st := buildLinear(nodes, devs, true)

	x, _, err := solveNewton(nodes, st, devs)
	if err != nil {
		return nil, nil, err
	}

	for _, d := range devs {
		d.InitState(nodes, x)
	}

	return x, nodes, nil
}
