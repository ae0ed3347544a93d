package device

import "github.com/edp1096/mna-spice/pkg/node"

// Inductor is the Trapezoidal-rule companion model for L. It is G1 in
// normal operation but G2 during the OP "startup" regime, where it is
// stamped as a short (its own current becomes an extra unknown) so the
// circuit has a well-posed DC operating point.
type Inductor struct {
	BaseDevice
	UOld float64
	IOld float64
}

// NewInductor builds an Inductor named name with inductance henries.
func NewInductor(name string, nodes []string, henries float64) *Inductor {
	return &Inductor{BaseDevice: BaseDevice{DevName: name, DevNodes: nodes, DevValue: henries}}
}

func (l *Inductor) Group() Group        { return G1 }
func (l *Inductor) GroupStartup() Group { return G2 }

func (l *Inductor) geq(h float64) float64 { return h / (2 * l.DevValue) }
func (l *Inductor) ieq(h float64) float64 { return l.IOld + l.geq(h)*l.UOld }

// LinearStartupStamp treats the inductor as a short: the extra current
// unknown's row gets zero RHS and +/-1 couplings to its terminals.
func (l *Inductor) LinearStartupStamp(nodes *node.Collection, a [][]float64, b []float64) {
	l.stampStartup(nodes, a, b, 1)
}

func (l *Inductor) UndoLinearStartupStamp(nodes *node.Collection, a [][]float64, b []float64) {
	l.stampStartup(nodes, a, b, -1)
}

func (l *Inductor) stampStartup(nodes *node.Collection, a [][]float64, b []float64, sign float64) {
	isIdx, _ := nodes.GetIdx(l.DevName)
	b[isIdx] += 0 // short: no source term, kept explicit to mirror the sign-symmetric undo

	if negIdx, ok := nodes.GetIdx(l.DevNodes[0]); ok {
		a[isIdx][negIdx] -= sign
		a[negIdx][isIdx] -= sign
	}
	if posIdx, ok := nodes.GetIdx(l.DevNodes[1]); ok {
		a[isIdx][posIdx] += sign
		a[posIdx][isIdx] += sign
	}
}

// InitState reads the inductor's startup-regime current unknown directly
// out of the OP solution vector.
func (l *Inductor) InitState(nodes *node.Collection, x []float64) {
	if isIdx, ok := nodes.GetIdx(l.DevName); ok {
		l.IOld = x[isIdx]
	}
	l.UOld = 0
}

func (l *Inductor) UpdateState(nodes *node.Collection, x []float64, h float64) {
	uNew := termVoltage(nodes, x, l.DevNodes)
	iNew := l.geq(h)*(uNew+l.UOld) + l.IOld
	l.UOld = uNew
	l.IOld = iNew
}

func (l *Inductor) DynamicStamp(nodes *node.Collection, x []float64, h float64, a [][]float64, b []float64) {
	stampCompanion(nodes, a, b, l.DevNodes, l.geq(h), l.ieq(h))
}

func (l *Inductor) UndoDynamicStamp(nodes *node.Collection, x []float64, h float64, a [][]float64, b []float64) {
	stampCompanion(nodes, a, b, l.DevNodes, -l.geq(h), -l.ieq(h))
}
