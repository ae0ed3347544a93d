package device

import "github.com/edp1096/mna-spice/pkg/node"

// VSource is an independent voltage source, G2 (introduces one extra
// current unknown, named after the device).
type VSource struct {
	BaseDevice
}

// NewVSource builds a VSource named name from nodes[0] (neg) to nodes[1]
// (pos) with DC value volts. fn, if non-nil, drives the value in transient.
func NewVSource(name string, nodes []string, volts float64, fn *TimeFunc) *VSource {
	return &VSource{BaseDevice{DevName: name, DevNodes: nodes, DevValue: volts, TranFn: fn}}
}

func (v *VSource) Group() Group        { return G2 }
func (v *VSource) GroupStartup() Group { return G2 }

func (v *VSource) LinearStamp(nodes *node.Collection, a [][]float64, b []float64) {
	v.stamp(nodes, a, b, 1)
}

func (v *VSource) UndoLinearStamp(nodes *node.Collection, a [][]float64, b []float64) {
	v.stamp(nodes, a, b, -1)
}

func (v *VSource) stamp(nodes *node.Collection, a [][]float64, b []float64, sign float64) {
	isIdx, _ := nodes.GetIdx(v.DevName)
	negIdx, negOk := nodes.GetIdx(v.DevNodes[0])
	posIdx, posOk := nodes.GetIdx(v.DevNodes[1])

	b[isIdx] += sign * v.DevValue

	if posOk {
		a[isIdx][posIdx] += sign
		a[posIdx][isIdx] += sign
	}
	if negOk {
		a[isIdx][negIdx] -= sign
		a[negIdx][isIdx] -= sign
	}
}
