package device

import (
	"math"

	"github.com/edp1096/mna-spice/internal/consts"
	"github.com/edp1096/mna-spice/pkg/node"
)

// BJT is an NPN transistor modeled by the (simplified) Ebers-Moll
// equations. Terminals are (collector, base, emitter); it carries no
// scalar value, is G1, and registers two independent nonlinear currents
// (ic, ie) - ib is the dependent sum -(ic+ie) and never needs its own
// row/func.
type BJT struct {
	BaseDevice
}

// NewBJT builds a BJT named name with nodes = [collector, base, emitter].
func NewBJT(name string, nodes []string) *BJT {
	return &BJT{BaseDevice{DevName: name, DevNodes: nodes}}
}

func (q *BJT) Group() Group        { return G1 }
func (q *BJT) GroupStartup() Group { return G1 }

func (q *BJT) LinearStamp(*node.Collection, [][]float64, []float64)     {}
func (q *BJT) UndoLinearStamp(*node.Collection, [][]float64, []float64) {}

func (q *BJT) CountNonlinearFuncs() int { return 2 }

func bjtIeIc(vbe, vbc float64) (ie, ic float64) {
	fBE := math.Expm1(vbe / consts.BjtVte)
	fBC := math.Expm1(vbc / consts.BjtVtc)
	ie = -consts.BjtIes*fBE + consts.BjtAlphaR*consts.BjtIcs*fBC
	ic = consts.BjtAlphaF*consts.BjtIes*fBE - consts.BjtIcs*fBC
	return
}

func (q *BJT) terminals(nodes *node.Collection, x []float64) (vbe, vbc float64) {
	vc := nodeVoltage(nodes, x, q.DevNodes[0])
	vb := nodeVoltage(nodes, x, q.DevNodes[1])
	ve := nodeVoltage(nodes, x, q.DevNodes[2])
	return vb - ve, vb - vc
}

func nodeVoltage(nodes *node.Collection, x []float64, name string) float64 {
	if idx, ok := nodes.GetIdx(name); ok {
		return x[idx]
	}
	return 0
}

func (q *BJT) NonlinearFuncs(nodes *node.Collection, h [][]float64, colOffset int) []GFunc {
	vc, vb, ve := q.DevNodes[0], q.DevNodes[1], q.DevNodes[2]

	if idx, ok := nodes.GetIdx(vc); ok {
		h[idx][colOffset] = 1
	}
	if idx, ok := nodes.GetIdx(vb); ok {
		h[idx][colOffset] = -1
		h[idx][colOffset+1] = -1
	}
	if idx, ok := nodes.GetIdx(ve); ok {
		h[idx][colOffset+1] = 1
	}

	vbeVbc := func(x []float64) (vbe, vbc float64) {
		vbV := nodeVoltage(nodes, x, vb)
		return vbV - nodeVoltage(nodes, x, ve), vbV - nodeVoltage(nodes, x, vc)
	}
	icFn := func(x []float64) float64 {
		_, ic := bjtIeIc(vbeVbc(x))
		return ic
	}
	ieFn := func(x []float64) float64 {
		ie, _ := bjtIeIc(vbeVbc(x))
		return ie
	}
	return []GFunc{icFn, ieFn}
}

func (q *BJT) NonlinearStamp(nodes *node.Collection, x []float64, a [][]float64, b []float64) {
	vbe, vbc := q.terminals(nodes, x)

	expBE := math.Exp(vbe / consts.BjtVte)
	expBC := math.Exp(vbc / consts.BjtVtc)

	gee := consts.BjtIes / consts.BjtVte * expBE
	gec := consts.BjtAlphaR * consts.BjtIcs / consts.BjtVtc * expBC
	gce := consts.BjtAlphaF * consts.BjtIes / consts.BjtVte * expBE
	gcc := consts.BjtIcs / consts.BjtVtc * expBC

	ie, ic := bjtIeIc(vbe, vbc)
	ieEq := ie + gee*vbe - gec*vbc
	icEq := ic - gce*vbe + gcc*vbc

	vcIdx, vcOk := nodes.GetIdx(q.DevNodes[0])
	vbIdx, vbOk := nodes.GetIdx(q.DevNodes[1])
	veIdx, veOk := nodes.GetIdx(q.DevNodes[2])

	if vcOk {
		a[vcIdx][vcIdx] += gcc
		b[vcIdx] -= icEq
	}
	if vbOk {
		a[vbIdx][vbIdx] += gcc + gee - gce - gec
		b[vbIdx] += ieEq + icEq
	}
	if veOk {
		a[veIdx][veIdx] += gee
		b[veIdx] -= ieEq
	}
	if veOk && vcOk {
		a[veIdx][vcIdx] -= gec
		a[vcIdx][veIdx] -= gce
	}
	if veOk && vbOk {
		a[veIdx][vbIdx] += gec - gee
		a[vbIdx][veIdx] += gce - gee
	}
	if vcOk && vbOk {
		a[vcIdx][vbIdx] += gce - gcc
		a[vbIdx][vcIdx] += gec - gcc
	}
}
