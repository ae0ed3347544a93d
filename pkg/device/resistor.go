package device

import "github.com/edp1096/mna-spice/pkg/node"

// Resistor is a linear two-terminal device, G1 (no extra current unknown).
type Resistor struct {
	BaseDevice
}

// NewResistor builds a Resistor named name between nodes[0] and nodes[1]
// with the given resistance in ohms.
func NewResistor(name string, nodes []string, ohms float64) *Resistor {
	return &Resistor{BaseDevice{DevName: name, DevNodes: nodes, DevValue: ohms}}
}

func (r *Resistor) Group() Group        { return G1 }
func (r *Resistor) GroupStartup() Group { return G1 }

func (r *Resistor) LinearStamp(nodes *node.Collection, a [][]float64, b []float64) {
	g := 1.0 / r.DevValue
	stampConductance(nodes, a, r.DevNodes, g)
}

func (r *Resistor) UndoLinearStamp(nodes *node.Collection, a [][]float64, b []float64) {
	g := 1.0 / r.DevValue
	stampConductance(nodes, a, r.DevNodes, -g)
}

// stampConductance adds g to the symmetric two-terminal conductance pattern
// at (pos, neg), skipping rows/columns belonging to ground. This pattern is
// shared by Resistor, Capacitor and Inductor companion models.
func stampConductance(nodes *node.Collection, a [][]float64, terms []string, g float64) {
	negIdx, negOk := nodes.GetIdx(terms[0])
	posIdx, posOk := nodes.GetIdx(terms[1])

	if negOk {
		a[negIdx][negIdx] += g
	}
	if posOk {
		a[posIdx][posIdx] += g
	}
	if posOk && negOk {
		a[posIdx][negIdx] -= g
		a[negIdx][posIdx] -= g
	}
}
