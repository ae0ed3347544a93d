package device

import (
	"math"

	"github.com/edp1096/mna-spice/internal/consts"
	"github.com/edp1096/mna-spice/pkg/node"
)

// Diode is the Shockley-equation nonlinear device. It carries no scalar
// value of its own; Value/SetValue are unused.
type Diode struct {
	BaseDevice
}

// NewDiode builds a Diode named name from nodes[0] (anode) to nodes[1]
// (cathode), matching the netlist grammar "Dname nA nK".
func NewDiode(name string, nodes []string) *Diode {
	return &Diode{BaseDevice{DevName: name, DevNodes: nodes}}
}

// diodeTerms returns (neg, pos) = (cathode, anode) for the shared
// termVoltage/stampHColumn/stampCompanion helpers, which all take terms in
// (neg, pos) order.
func (d *Diode) diodeTerms() []string {
	return []string{d.DevNodes[1], d.DevNodes[0]}
}

func (d *Diode) Group() Group        { return G1 }
func (d *Diode) GroupStartup() Group { return G1 }

func (d *Diode) LinearStamp(*node.Collection, [][]float64, []float64)     {}
func (d *Diode) UndoLinearStamp(*node.Collection, [][]float64, []float64) {}

func (d *Diode) CountNonlinearFuncs() int { return 1 }

func diodeCurrent(v float64) float64 {
	return consts.DiodeIsat * math.Expm1(v/(consts.DiodeEta*consts.ThermalVoltage))
}

func (d *Diode) NonlinearFuncs(nodes *node.Collection, h [][]float64, colOffset int) []GFunc {
	terms := d.diodeTerms()
	stampHColumn(nodes, h, terms, colOffset)

	neg, pos := terms[0], terms[1]
	return []GFunc{func(x []float64) float64 {
		return diodeCurrent(termVoltage(nodes, x, []string{neg, pos}))
	}}
}

func (d *Diode) NonlinearStamp(nodes *node.Collection, x []float64, a [][]float64, b []float64) {
	terms := d.diodeTerms()
	v0 := termVoltage(nodes, x, terms)
	vt := consts.DiodeEta * consts.ThermalVoltage
	gd := consts.DiodeIsat / vt * math.Exp(v0/vt)
	id := diodeCurrent(v0)
	ieq := id - gd*v0

	stampCompanion(nodes, a, b, terms, gd, ieq)
}

// stampHColumn writes the +1/-1 pattern a two-terminal nonlinear device
// contributes to one H column, skipping ground terminals.
func stampHColumn(nodes *node.Collection, h [][]float64, terms []string, col int) {
	if idx, ok := nodes.GetIdx(terms[0]); ok {
		h[idx][col] = -1
	}
	if idx, ok := nodes.GetIdx(terms[1]); ok {
		h[idx][col] = 1
	}
}
