package device

import (
	"github.com/edp1096/mna-spice/internal/consts"
	"github.com/edp1096/mna-spice/pkg/node"
)

// MOSFET is a level-1 NMOS model with channel-length modulation. Terminals
// are (drain, gate, source); it carries no scalar value, is G1, and
// registers one nonlinear current (the channel current).
type MOSFET struct {
	BaseDevice
}

// NewMOSFET builds a MOSFET named name with nodes = [drain, gate, source].
func NewMOSFET(name string, nodes []string) *MOSFET {
	return &MOSFET{BaseDevice{DevName: name, DevNodes: nodes}}
}

func (m *MOSFET) Group() Group        { return G1 }
func (m *MOSFET) GroupStartup() Group { return G1 }

func (m *MOSFET) LinearStamp(*node.Collection, [][]float64, []float64)     {}
func (m *MOSFET) UndoLinearStamp(*node.Collection, [][]float64, []float64) {}

func (m *MOSFET) CountNonlinearFuncs() int { return 1 }

// nmosDS resolves the swapped drain/source node names and indices: the
// model always treats the higher-potential terminal as the drain. The
// residual closure and the Jacobian stamp both call this helper so the
// swap can never go inconsistent between them (see the design notes on why
// that consistency matters).
func (m *MOSFET) nmosDS(nodes *node.Collection, x []float64) (dName, sName string) {
	vd := nodeVoltage(nodes, x, m.DevNodes[0])
	vs := nodeVoltage(nodes, x, m.DevNodes[2])
	if vs > vd {
		return m.DevNodes[2], m.DevNodes[0]
	}
	return m.DevNodes[0], m.DevNodes[2]
}

// id, gds, gm compute the level-1 drain current and its small-signal
// conductances for vgs, vds already ordered by nmosDS.
func nmosID(vgs, vds float64) (id, gds, gm float64) {
	vov := vgs - consts.NmosVt
	switch {
	case vov <= 0: // cutoff
		return 0, 0, 0
	case vds < vov: // linear/triode
		id = consts.NmosBeta * (vov*vds - vds*vds/2)
		gds = consts.NmosBeta * (vov - vds)
		gm = consts.NmosBeta * vds
	default: // saturation
		id = consts.NmosBeta / 2 * vov * vov * (1 + consts.NmosLambda*vds)
		gds = consts.NmosBeta / 2 * vov * vov * consts.NmosLambda
		gm = consts.NmosBeta * vov * (1 + consts.NmosLambda*vds)
	}
	return
}

func (m *MOSFET) NonlinearFuncs(nodes *node.Collection, h [][]float64, colOffset int) []GFunc {
	if idx, ok := nodes.GetIdx(m.DevNodes[0]); ok {
		h[idx][colOffset] = 1
	}
	if idx, ok := nodes.GetIdx(m.DevNodes[2]); ok {
		h[idx][colOffset] = -1
	}

	return []GFunc{func(x []float64) float64 {
		dName, sName := m.nmosDS(nodes, x)
		vgs := nodeVoltage(nodes, x, m.DevNodes[1]) - nodeVoltage(nodes, x, sName)
		vds := nodeVoltage(nodes, x, dName) - nodeVoltage(nodes, x, sName)
		id, _, _ := nmosID(vgs, vds)
		if dName != m.DevNodes[0] {
			return -id // swapped: physical current at nodes[0] reverses
		}
		return id
	}}
}

func (m *MOSFET) NonlinearStamp(nodes *node.Collection, x []float64, a [][]float64, b []float64) {
	dName, sName := m.nmosDS(nodes, x)
	gName := m.DevNodes[1]

	vs := nodeVoltage(nodes, x, sName)
	vd := nodeVoltage(nodes, x, dName)
	vg := nodeVoltage(nodes, x, gName)
	vgs := vg - vs
	vds := vd - vs

	id, gds, gm := nmosID(vgs, vds)
	ieq := id - gds*vds - gm*vgs

	dIdx, dOk := nodes.GetIdx(dName)
	sIdx, sOk := nodes.GetIdx(sName)
	gIdx, gOk := nodes.GetIdx(gName)

	if dOk {
		a[dIdx][dIdx] += gds
		b[dIdx] -= ieq
	}
	if sOk {
		a[sIdx][sIdx] += gds
		b[sIdx] += ieq
	}
	if dOk && sOk {
		a[dIdx][sIdx] -= gds
		a[sIdx][dIdx] -= gds
	}
	if dOk && gOk {
		a[dIdx][gIdx] += gm
	}
	if sOk && gOk {
		a[sIdx][gIdx] -= gm
	}
	if dOk && sOk {
		a[dIdx][sIdx] -= gm
		a[sIdx][sIdx] += gm
	}
}
