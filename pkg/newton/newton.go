// Package newton implements the damped Newton-Raphson solver the engine
// uses to find F(x) = 0 for every analysis (OP, each DC sweep point, and
// every accepted transient step).
package newton

import (
	"errors"
	"fmt"
	"math"

	"github.com/edp1096/mna-spice/internal/consts"
	"github.com/edp1096/mna-spice/pkg/device"
	"github.com/edp1096/mna-spice/pkg/linalg"
	"github.com/edp1096/mna-spice/pkg/mna"
	"github.com/edp1096/mna-spice/pkg/node"
)

// ErrNotConverged is returned when MaxIters is exhausted without both the
// step and the residual norms satisfying the dual convergence test.
var ErrNotConverged = errors.New("newton: did not converge")

// ErrDiverged is returned if the residual becomes Inf/NaN mid-iteration.
var ErrDiverged = errors.New("newton: residual diverged")

// Norm is the dual-class (voltage, current) norm used both for the step
// size and for the residual. Ported from the reference implementation's
// RMS-like per-class norm: sqrt(sum of squares) / count.
type Norm struct {
	V float64
	I float64
}

// Infinity is the sentinel initial "previous" norm: anything compares as
// smaller than it, so the first iteration can never spuriously pass.
func Infinity() Norm { return Norm{V: math.Inf(1), I: math.Inf(1)} }

// NewNorm computes the per-class norm of v over the node collection.
func NewNorm(nodes *node.Collection, v []float64) Norm {
	var sumV, sumI float64
	var nV, nI int
	for _, name := range nodes.Names() {
		n, _ := nodes.Get(name)
		switch n.Kind {
		case node.Voltage:
			sumV += v[n.Idx] * v[n.Idx]
			nV++
		case node.Current:
			sumI += v[n.Idx] * v[n.Idx]
			nI++
		}
	}
	out := Norm{}
	if nV > 0 {
		out.V = math.Sqrt(sumV) / float64(nV)
	}
	if nI > 0 {
		out.I = math.Sqrt(sumI) / float64(nI)
	}
	return out
}

// relTol is the relative part of the convergence threshold. Against the
// Infinity sentinel it is zero, so a first iteration must meet the absolute
// tolerances on its own.
func relTol(old float64) float64 {
	if math.IsInf(old, 1) {
		return 0
	}
	return consts.NewtonTolRel * old
}

func converged(step, stepOld, err, errOld Norm) bool {
	return step.V < relTol(stepOld.V)+consts.NewtonTolAbsV &&
		step.I < relTol(stepOld.I)+consts.NewtonTolAbsA &&
		err.V < relTol(errOld.V)+consts.NewtonTolAbsV &&
		err.I < relTol(errOld.I)+consts.NewtonTolAbsA
}

// dampen applies the smooth saturating limiter
// gamma/K * sign(d) * ln(1+K|d|) component-wise, preserving direction while
// bounding how far a single Newton iteration may move x.
func dampen(d float64) float64 {
	if d == 0 {
		return 0
	}
	sign := 1.0
	if d < 0 {
		sign = -1.0
	}
	return consts.NewtonDampGamma / consts.NewtonDampK * sign * math.Log(1+consts.NewtonDampK*math.Abs(d))
}

// Solve runs damped Newton iteration against state starting from x (updated
// in place) using the nonlinear devices in devs. Returns the iteration
// count on success.
func Solve(nodes *node.Collection, state *mna.State, devs []device.Stamp, x []float64) (int, error) {
	stepOld := Infinity()
	errOld := Infinity()

	for iter := 0; iter < consts.NewtonMaxIters; iter++ {
		jf, bTmp := state.CloneAB()
		xProp := append([]float64(nil), x...)

		for _, d := range devs {
			d.NonlinearStamp(nodes, xProp, jf, bTmp)
		}

		if err := linalg.Solve(jf, bTmp, xProp); err != nil {
			return iter, fmt.Errorf("newton: %w", err)
		}

		xNew := make([]float64, len(x))
		stepTaken := make([]float64, len(x))
		for i := range x {
			raw := xProp[i] - x[i]
			stepTaken[i] = dampen(raw)
			xNew[i] = x[i] + stepTaken[i]
		}

		f0 := state.Err(xNew)
		errNorm := NewNorm(nodes, f0)
		if math.IsInf(errNorm.V, 0) || math.IsInf(errNorm.I, 0) ||
			math.IsNaN(errNorm.V) || math.IsNaN(errNorm.I) {
			return iter, ErrDiverged
		}

		stepNorm := NewNorm(nodes, stepTaken)
		copy(x, xNew)

		if converged(stepNorm, stepOld, errNorm, errOld) {
			return iter + 1, nil
		}
		stepOld, errOld = stepNorm, errNorm
	}

	return consts.NewtonMaxIters, ErrNotConverged
}
