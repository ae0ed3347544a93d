package engine

import (
	"fmt"

	"github.com/edp1096/mna-spice/pkg/device"
	"github.com/edp1096/mna-spice/pkg/netlist"
	"github.com/edp1096/mna-spice/pkg/node"
	"github.com/edp1096/mna-spice/pkg/result"
)

// RunDC sweeps the named source from Start to Stop (exclusive) in steps of
// Step, re-solving the operating point at every value. The source's
// original value is restored before returning, success or failure.
func RunDC(devs []device.Stamp, p *netlist.DCParam) (*result.Table, error) {
	nodes := node.FromElems(device.Stampers(devs))
	st := buildLinear(nodes, devs, false)

	src, err := findDevice(devs, p.Source)
	if err != nil {
		return nil, err
	}
	original := src.Value()
	defer func() {
		src.UndoLinearStamp(nodes, st.A, st.B)
		src.SetValue(original)
		src.LinearStamp(nodes, st.A, st.B)
	}()

	names := sortedVoltageNames(nodes)
	headers := append([]string{"n_iters"}, names...)
	tbl := result.NewTable(headers)

	for v := p.Start; v < p.Stop; v += p.Step {
		src.UndoLinearStamp(nodes, st.A, st.B)
		src.SetValue(v)
		src.LinearStamp(nodes, st.A, st.B)

		x, n, err := solveNewton(nodes, st, devs)
		if err != nil {
			return nil, fmt.Errorf("sweep at %g: %w", v, err)
		}

		row := map[string]float64{"n_iters": float64(n)}
		for _, name := range names {
			idx, _ := nodes.GetIdx(name)
			row[name] = x[idx]
		}
		tbl.Push(row)
	}

	return tbl, nil
}

func findDevice(devs []device.Stamp, name string) (device.Stamp, error) {
	for _, d := range devs {
		if d.Name() == name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("engine: .DC source %q not found in netlist", name)
}
