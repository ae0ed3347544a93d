package device

import "github.com/edp1096/mna-spice/pkg/node"

// ISource is an independent current source, G1 (no extra current unknown).
// Current is defined as flowing from nodes[0] (neg) to nodes[1] (pos)
// through the source, i.e. out of neg and into pos externally.
type ISource struct {
	BaseDevice
}

// NewISource builds an ISource named name with DC value amps. fn, if
// non-nil, drives the value in transient.
func NewISource(name string, nodes []string, amps float64, fn *TimeFunc) *ISource {
	return &ISource{BaseDevice{DevName: name, DevNodes: nodes, DevValue: amps, TranFn: fn}}
}

func (i *ISource) Group() Group        { return G1 }
func (i *ISource) GroupStartup() Group { return G1 }

func (i *ISource) LinearStamp(nodes *node.Collection, a [][]float64, b []float64) {
	i.stamp(nodes, b, 1)
}

func (i *ISource) UndoLinearStamp(nodes *node.Collection, a [][]float64, b []float64) {
	i.stamp(nodes, b, -1)
}

func (i *ISource) stamp(nodes *node.Collection, b []float64, sign float64) {
	if negIdx, ok := nodes.GetIdx(i.DevNodes[0]); ok {
		b[negIdx] -= sign * i.DevValue
	}
	if posIdx, ok := nodes.GetIdx(i.DevNodes[1]); ok {
		b[posIdx] += sign * i.DevValue
	}
}
