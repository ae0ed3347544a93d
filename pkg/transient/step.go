// Package transient implements the Trapezoidal-rule integrator: companion
// stamping of C/L devices plus a PLTE-driven adaptive step controller.
package transient

import (
	"errors"
	"fmt"
	"math"

	"github.com/edp1096/mna-spice/internal/consts"
	"github.com/edp1096/mna-spice/pkg/device"
	"github.com/edp1096/mna-spice/pkg/mna"
	"github.com/edp1096/mna-spice/pkg/newton"
	"github.com/edp1096/mna-spice/pkg/node"
)

// ErrStepTooSmall is fatal: the controller halved h below StepMin trying to
// satisfy either Newton convergence or the LTE bound.
var ErrStepTooSmall = errors.New("transient: step size collapsed below minimum")

// StepMin mirrors consts.TransientStepMin; exported here for callers that
// need to seed the very first step (see the design notes on why T_STEP_MIN
// is always a safe first step regardless of the netlist's print step).
const StepMin = consts.TransientStepMin

func plteTooBig(plte, xNorm newton.Norm) bool {
	return plte.V > xNorm.V*consts.TransientTolRel+consts.TransientTolAbsV ||
		plte.I > xNorm.I*consts.TransientTolRel+consts.TransientTolAbsA
}

func plteCanGrow(plte newton.Norm) bool {
	return plte.V < 0.1*consts.TransientTolAbsV && plte.I < 0.1*consts.TransientTolAbsA
}

// Step advances one transient timestep from (t, x) with suggested size h and
// hard cap hMax, retrying at half size on Newton failure or LTE rejection.
// x is updated in place to the new accepted solution; hist receives the new
// record. Returns the step size actually taken and the suggested size for
// the next call.
func Step(nodes *node.Collection, state *mna.State, devs []device.Stamp, hist *History, x []float64, t, h, hMax float64) (hUsed, nextH float64, err error) {
	for {
		if h < StepMin {
			return 0, 0, ErrStepTooSmall
		}

		for _, d := range devs {
			if d.HasTran() {
				d.UndoLinearStamp(nodes, state.A, state.B)
				d.EvalTran(t + h)
				d.LinearStamp(nodes, state.A, state.B)
			}
		}
		// Linear baseline with the time-varying sources at t+h: restored
		// once the step is accepted.
		aBackup, bBackup := state.CloneAB()
		for _, d := range devs {
			d.DynamicStamp(nodes, x, h, state.A, state.B)
		}

		xNew := append([]float64(nil), x...)
		nIters, solveErr := newton.Solve(nodes, state, devs, xNew)

		if solveErr != nil {
			for _, d := range devs {
				d.UndoDynamicStamp(nodes, x, h, state.A, state.B)
			}
			h /= 2
			continue
		}

		hist.Push(Record{NIters: nIters, X: xNew, T: t + h})

		accept := true
		grow := false
		if hist.Len() >= 4 {
			plte := hist.PLTE(hist.Len() - 2)
			plteNorm := newton.NewNorm(nodes, plte)
			xNorm := newton.NewNorm(nodes, xNew)

			if plteTooBig(plteNorm, xNorm) {
				accept = false
			} else {
				grow = plteCanGrow(plteNorm) && h <= hMax/2
			}
		}

		if !accept {
			hist.Pop()
			for _, d := range devs {
				d.UndoDynamicStamp(nodes, x, h, state.A, state.B)
			}
			h /= 2
			continue
		}

		copy(x, xNew)
		for _, d := range devs {
			d.UpdateState(nodes, x, h)
		}

		for i := range state.A {
			copy(state.A[i], aBackup[i])
		}
		copy(state.B, bBackup)

		used := h
		next := h
		if grow {
			next = h * 2
		}
		if math.IsNaN(used) {
			return 0, 0, fmt.Errorf("transient: NaN step")
		}
		return used, next, nil
	}
}
