package engine

import (
	"fmt"

	"github.com/edp1096/mna-spice/pkg/device"
	"github.com/edp1096/mna-spice/pkg/netlist"
	"github.com/edp1096/mna-spice/pkg/node"
	"github.com/edp1096/mna-spice/pkg/result"
	"github.com/edp1096/mna-spice/pkg/transient"
)

// RunTran computes the DC initial condition, then integrates to TStop using
// the Trapezoidal companion models with PLTE-driven adaptive stepping,
// capped at TStep.
func RunTran(devs []device.Stamp, p *netlist.TranParam) (*result.Table, error) {
	x0, _, err := RunOP(devs)
	if err != nil {
		return nil, fmt.Errorf("initial condition: %w", err)
	}

	nodes := node.FromElems(device.Stampers(devs))
	st := buildLinear(nodes, devs, false)

	x := make([]float64, nodes.Len())
	copy(x, x0) // x0 may be longer: OP's startup regime only adds rows for
	// G1-normally/G2-at-startup devices, which sort after the shared
	// voltage+G2 prefix, so copy keeps exactly that shared prefix.

	names := sortedVoltageNames(nodes)
	headers := append([]string{"n_iters", "t"}, names...)
	tbl := result.NewTable(headers)

	hist := &transient.History{}

	t := 0.0
	h := transient.StepMin
	for t < p.TStop {
		hUsed, nextH, err := transient.Step(nodes, st, devs, hist, x, t, h, p.TStep)
		if err != nil {
			return nil, fmt.Errorf("at t=%g: %w", t, err)
		}
		t += hUsed
		h = nextH
		if h > p.TStep {
			h = p.TStep
		}

		row := map[string]float64{"n_iters": float64(hist.At(hist.Len() - 1).NIters), "t": t}
		for _, name := range names {
			idx, _ := nodes.GetIdx(name)
			row[name] = x[idx]
		}
		tbl.Push(row)
	}

	return tbl, nil
}
