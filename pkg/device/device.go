// Package device implements the Stamp capability set: the uniform contract
// by which every lumped circuit element contributes to the Modified Nodal
// Analysis system (A, b, H, g). Each device type is a concrete struct
// satisfying Stamp; there is no inheritance hierarchy, only a shared
// BaseDevice for the identity/terminal fields every device needs.
package device

import (
	"github.com/edp1096/mna-spice/pkg/node"
)

// Group tags the row-class a device occupies: G1 devices need no extra
// current unknown, G2 devices introduce one (named after the device).
type Group int

const (
	G1 Group = iota
	G2
)

// GFunc is one nonlinear contribution registered against the MNA state: a
// closure of the full unknown vector to a scalar current. It must close
// only over small integers (terminal indices) and device constants, never
// over the device itself - that is what lets the H/g bookkeeping stay valid
// across repeated Newton iterations and transient steps. The MOSFET closure
// is the one exception: it holds the device pointer in order to call
// nmosDS, the drain/source swap it shares with the Jacobian stamp.
type GFunc func(x []float64) float64

// Stamp is the interface every device type implements.
type Stamp interface {
	Name() string
	Nodes() []string
	Group() Group
	GroupStartup() Group // defaults to Group() unless overridden (see Inductor)

	Value() float64
	SetValue(v float64)

	HasTran() bool
	EvalTran(t float64)

	LinearStamp(nodes *node.Collection, a [][]float64, b []float64)
	UndoLinearStamp(nodes *node.Collection, a [][]float64, b []float64)
	LinearStartupStamp(nodes *node.Collection, a [][]float64, b []float64)
	UndoLinearStartupStamp(nodes *node.Collection, a [][]float64, b []float64)

	CountNonlinearFuncs() int
	NonlinearFuncs(nodes *node.Collection, h [][]float64, colOffset int) []GFunc
	NonlinearStamp(nodes *node.Collection, x []float64, a [][]float64, b []float64)

	// DynamicStamp/UndoDynamicStamp/InitState/UpdateState matter only for
	// C and L; every other device gets a no-op default via BaseDevice.
	DynamicStamp(nodes *node.Collection, x []float64, h float64, a [][]float64, b []float64)
	UndoDynamicStamp(nodes *node.Collection, x []float64, h float64, a [][]float64, b []float64)
	InitState(nodes *node.Collection, x []float64)
	UpdateState(nodes *node.Collection, x []float64, h float64)
}

// BaseDevice carries the fields and default no-op methods shared by every
// device. Concrete devices embed it and override what they need.
type BaseDevice struct {
	DevName  string
	DevNodes []string
	DevValue float64
	TranFn   *TimeFunc
}

func (b *BaseDevice) Name() string    { return b.DevName }
func (b *BaseDevice) Nodes() []string { return b.DevNodes }
func (b *BaseDevice) Value() float64  { return b.DevValue }
func (b *BaseDevice) SetValue(v float64) { b.DevValue = v }

func (b *BaseDevice) HasTran() bool { return b.TranFn != nil }
func (b *BaseDevice) EvalTran(t float64) {
	if b.TranFn != nil {
		b.DevValue = b.TranFn.Eval(t)
	}
}

func (b *BaseDevice) LinearStamp(*node.Collection, [][]float64, []float64)     {}
func (b *BaseDevice) UndoLinearStamp(*node.Collection, [][]float64, []float64) {}

func (b *BaseDevice) CountNonlinearFuncs() int { return 0 }
func (b *BaseDevice) NonlinearFuncs(*node.Collection, [][]float64, int) []GFunc { return nil }
func (b *BaseDevice) NonlinearStamp(*node.Collection, []float64, [][]float64, []float64) {}

func (b *BaseDevice) LinearStartupStamp(nodes *node.Collection, a [][]float64, bvec []float64) {}
func (b *BaseDevice) UndoLinearStartupStamp(nodes *node.Collection, a [][]float64, bvec []float64) {
}

func (b *BaseDevice) DynamicStamp(*node.Collection, []float64, float64, [][]float64, []float64)     {}
func (b *BaseDevice) UndoDynamicStamp(*node.Collection, []float64, float64, [][]float64, []float64) {}
func (b *BaseDevice) InitState(*node.Collection, []float64)                                          {}
func (b *BaseDevice) UpdateState(*node.Collection, []float64, float64)                               {}

// Stampers adapts a []Stamp to node.FromElems/FromStartupElems, which take
// the narrower node.Stamper interface to avoid an import cycle.
func Stampers(devs []Stamp) []node.Stamper {
	out := make([]node.Stamper, len(devs))
	for i, d := range devs {
		out[i] = stamperAdaptor{d}
	}
	return out
}

type stamperAdaptor struct{ Stamp }

func (s stamperAdaptor) Group() int        { return int(s.Stamp.Group()) }
func (s stamperAdaptor) GroupStartup() int { return int(s.Stamp.GroupStartup()) }
