// Package engine is the driver: it owns the device list, builds the node
// collections and MNA state each analysis needs, and dispatches OP, DC and
// TRAN in that fixed order.
package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/edp1096/mna-spice/pkg/device"
	"github.com/edp1096/mna-spice/pkg/mna"
	"github.com/edp1096/mna-spice/pkg/netlist"
	"github.com/edp1096/mna-spice/pkg/newton"
	"github.com/edp1096/mna-spice/pkg/node"
	"github.com/edp1096/mna-spice/pkg/result"
)

// ErrMissingGround and ErrDuplicateName are the structural-validation
// errors raised before any analysis runs.
var (
	ErrMissingGround = errors.New("engine: netlist has no ground (\"0\") reference")
	ErrDuplicateName = errors.New("engine: duplicate device name")
)

// Engine owns the parsed circuit and runs the analyses it requests.
type Engine struct {
	devices []device.Stamp
	circuit *netlist.Circuit
}

// New builds an Engine from a parsed circuit.
func New(ckt *netlist.Circuit) *Engine {
	return &Engine{devices: ckt.Devices, circuit: ckt}
}

// Check validates structural well-formedness: ground must be referenced by
// at least one device, and every device name must be unique.
func (e *Engine) Check() error {
	seen := make(map[string]struct{}, len(e.devices))
	sawGround := false
	for _, d := range e.devices {
		if _, dup := seen[d.Name()]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateName, d.Name())
		}
		seen[d.Name()] = struct{}{}
		for _, n := range d.Nodes() {
			if n == node.GroundName {
				sawGround = true
			}
		}
	}
	if !sawGround {
		return ErrMissingGround
	}
	return nil
}

// Results collects the tables produced by whichever analyses the circuit
// requested, in the fixed OP -> DC -> TRAN order.
type Results struct {
	OP   *result.Table
	DC   *result.Table
	Tran *result.Table
}

// Run executes every requested analysis in order and returns their tables.
func (e *Engine) Run() (*Results, error) {
	res := &Results{}

	if e.circuit.HasOP {
		x, nodes, err := RunOP(e.devices)
		if err != nil {
			return nil, fmt.Errorf("op: %w", err)
		}
		res.OP = opTable(nodes, x)
	}

	if e.circuit.DC != nil {
		tbl, err := RunDC(e.devices, e.circuit.DC)
		if err != nil {
			return nil, fmt.Errorf("dc: %w", err)
		}
		res.DC = tbl
	}

	if e.circuit.Tran != nil {
		tbl, err := RunTran(e.devices, e.circuit.Tran)
		if err != nil {
			return nil, fmt.Errorf("tran: %w", err)
		}
		res.Tran = tbl
	}

	return res, nil
}

func sortedVoltageNames(nodes *node.Collection) []string {
	names := nodes.VoltageNames()
	sort.Strings(names)
	return names
}

func opTable(nodes *node.Collection, x []float64) *result.Table {
	names := sortedVoltageNames(nodes)
	headers := append([]string{"n_iters"}, names...)
	tbl := result.NewTable(headers)
	row := map[string]float64{"n_iters": 0}
	for _, n := range names {
		idx, _ := nodes.GetIdx(n)
		row[n] = x[idx]
	}
	tbl.Push(row)
	return tbl
}

// buildLinear assembles a fresh MNA state for nodes, linear-stamping every
// device and registering nonlinear functions. In the startup regime every
// device additionally gets LinearStartupStamp, which only inductors
// implement (their shorted-branch stamp); callers pass the regime explicitly.
func buildLinear(nodes *node.Collection, devs []device.Stamp, startup bool) *mna.State {
	k := 0
	for _, d := range devs {
		k += d.CountNonlinearFuncs()
	}
	st := mna.New(nodes.Len(), k)

	for _, d := range devs {
		d.LinearStamp(nodes, st.A, st.B)
		if startup {
			d.LinearStartupStamp(nodes, st.A, st.B)
		}
	}

	col := 0
	for _, d := range devs {
		n := d.CountNonlinearFuncs()
		if n == 0 {
			continue
		}
		st.G = append(st.G, d.NonlinearFuncs(nodes, st.H, col)...)
		col += n
	}

	return st
}

func solveNewton(nodes *node.Collection, st *mna.State, devs []device.Stamp) ([]float64, int, error) {
	x := st.X()
	n, err := newton.Solve(nodes, st, devs, x)
	return x, n, err
}
