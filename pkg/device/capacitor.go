package device

import "github.com/edp1096/mna-spice/pkg/node"

// Capacitor is the Trapezoidal-rule companion model for C. It is G1 and
// holds its own (voltage, current) history between transient steps.
type Capacitor struct {
	BaseDevice
	UOld float64 // terminal voltage at the last accepted step
	IOld float64 // branch current at the last accepted step
}

// NewCapacitor builds a Capacitor named name with capacitance farads.
func NewCapacitor(name string, nodes []string, farads float64) *Capacitor {
	return &Capacitor{BaseDevice: BaseDevice{DevName: name, DevNodes: nodes, DevValue: farads}}
}

func (c *Capacitor) Group() Group        { return G1 }
func (c *Capacitor) GroupStartup() Group { return G1 }

// geq/ieq follow the Trapezoidal Norton-equivalent companion model.
func (c *Capacitor) geq(h float64) float64 { return 2 * c.DevValue / h }
func (c *Capacitor) ieq(h float64) float64 { return -(c.geq(h)*c.UOld + c.IOld) }

func (c *Capacitor) terminalVoltage(nodes *node.Collection, x []float64) float64 {
	return termVoltage(nodes, x, c.DevNodes)
}

func (c *Capacitor) InitState(nodes *node.Collection, x []float64) {
	c.UOld = c.terminalVoltage(nodes, x)
	c.IOld = 0
}

func (c *Capacitor) UpdateState(nodes *node.Collection, x []float64, h float64) {
	uNew := c.terminalVoltage(nodes, x)
	iNew := c.geq(h)*(uNew-c.UOld) - c.IOld
	c.UOld = uNew
	c.IOld = iNew
}

func (c *Capacitor) DynamicStamp(nodes *node.Collection, x []float64, h float64, a [][]float64, b []float64) {
	stampCompanion(nodes, a, b, c.DevNodes, c.geq(h), c.ieq(h))
}

func (c *Capacitor) UndoDynamicStamp(nodes *node.Collection, x []float64, h float64, a [][]float64, b []float64) {
	stampCompanion(nodes, a, b, c.DevNodes, -c.geq(h), -c.ieq(h))
}

// termVoltage returns x[pos] - x[neg], treating ground as 0.
func termVoltage(nodes *node.Collection, x []float64, terms []string) float64 {
	var vNeg, vPos float64
	if idx, ok := nodes.GetIdx(terms[0]); ok {
		vNeg = x[idx]
	}
	if idx, ok := nodes.GetIdx(terms[1]); ok {
		vPos = x[idx]
	}
	return vPos - vNeg
}

// stampCompanion adds a Norton companion to (a, b): conductance geq in
// parallel with a current source ieq, so that the branch current flowing
// from pos to neg through the device is geq*(v_pos - v_neg) + ieq. The
// source term therefore enters b with the opposite sign to ISource's.
func stampCompanion(nodes *node.Collection, a [][]float64, b []float64, terms []string, geq, ieq float64) {
	stampConductance(nodes, a, terms, geq)
	if negIdx, ok := nodes.GetIdx(terms[0]); ok {
		b[negIdx] += ieq
	}
	if posIdx, ok := nodes.GetIdx(terms[1]); ok {
		b[posIdx] -= ieq
	}
}
