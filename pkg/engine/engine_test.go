package engine

import (
	"testing"

	"github.com/edp1096/mna-spice/pkg/netlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runNetlist(t *testing.T, src string) *Results {
	t.Helper()
	ckt, err := netlist.Parse(src)
	require.NoError(t, err)

	e := New(ckt)
	require.NoError(t, e.Check())

	res, err := e.Run()
	require.NoError(t, err)
	return res
}

// Scenario A: resistive divider. 10V across two 1k resistors splits evenly.
func TestResistiveDivider(t *testing.T) {
	res := runNetlist(t, "divider\nV1 1 0 10\nR1 1 2 1k\nR2 2 0 1k\n.op\n")
	require.NotNil(t, res.OP)
	v2 := res.OP.Get("2")
	require.Len(t, v2, 1)
	assert.InDelta(t, 5.0, v2[0], 1e-6)
}

// Scenario B: current divider. 10mA forced into two parallel 1k resistors
// to ground splits evenly, giving 5V at the shared node.
func TestCurrentDivider(t *testing.T) {
	res := runNetlist(t, "cdivider\nI1 0 1 10m\nR1 1 0 1k\nR2 1 0 1k\n.op\n")
	require.NotNil(t, res.OP)
	v1 := res.OP.Get("1")
	require.Len(t, v1, 1)
	assert.InDelta(t, 5.0, v1[0], 1e-6)
}

// Scenario C: diode DC sweep. Forward voltage rises monotonically with the
// swept supply once conducting.
func TestDiodeDCSweepMonotone(t *testing.T) {
	res := runNetlist(t, "dsweep\nV1 1 0 0\nR1 1 2 1k\nD1 2 0\n.dc V1 0 5 0.5\n")
	require.NotNil(t, res.DC)
	v2 := res.DC.Get("2")
	require.True(t, len(v2) > 2)
	for i := 1; i < len(v2); i++ {
		assert.GreaterOrEqual(t, v2[i], v2[i-1]-1e-9)
	}
}

// Scenario D: NPN common-emitter bias settles to a finite, nonzero
// collector voltage under forward-active conditions.
func TestNPNCommonEmitterBiasConverges(t *testing.T) {
	res := runNetlist(t, "npn\n"+
		"V1 1 0 5\n"+
		"Vb 3 0 0.7\n"+
		"Rc 1 2 1k\n"+
		"Q1 2 3 0\n"+
		".op\n")
	require.NotNil(t, res.OP)
	v2 := res.OP.Get("2")
	require.Len(t, v2, 1)
	assert.True(t, v2[0] > 0 && v2[0] < 5)
}

// Scenario E: diode-connected NMOS (gate tied to drain) settles with
// Vgs == Vds and a positive terminal voltage.
func TestDiodeConnectedNMOSConverges(t *testing.T) {
	res := runNetlist(t, "nmosdiode\n"+
		"V1 1 0 5\n"+
		"R1 1 2 1k\n"+
		"M1 2 2 0\n"+
		".op\n")
	require.NotNil(t, res.OP)
	v2 := res.OP.Get("2")
	require.Len(t, v2, 1)
	assert.True(t, v2[0] > 0 && v2[0] < 5)
}

// Scenario F: RC transient step response. The source steps from 0V to 5V
// at t=0 (a PULSE, not a constant DC value), so RunOP's initial condition
// leaves the capacitor uncharged and the transient integrator actually has
// something to charge toward.
func TestRCTransientStepResponse(t *testing.T) {
	res := runNetlist(t, "rc\n"+
		"V1 1 0 PULSE(0 5 0 1n 1n 20m 40m)\n"+
		"R1 1 2 1k\n"+
		"C1 2 0 1u\n"+
		".tran 5m 10u\n")
	require.NotNil(t, res.Tran)
	v2 := res.Tran.Get("2")
	require.True(t, len(v2) > 2)
	assert.Less(t, v2[0], v2[len(v2)-1])
	assert.Less(t, v2[len(v2)-1], 5.0)
}

func TestCheckRejectsMissingGround(t *testing.T) {
	ckt, err := netlist.Parse("nogrd\nR1 1 2 1k\n.op\n")
	require.NoError(t, err)
	e := New(ckt)
	assert.ErrorIs(t, e.Check(), ErrMissingGround)
}

func TestCheckRejectsDuplicateName(t *testing.T) {
	ckt, err := netlist.Parse("dup\nR1 1 0 1k\nR1 1 0 2k\n.op\n")
	require.NoError(t, err)
	e := New(ckt)
	assert.ErrorIs(t, e.Check(), ErrDuplicateName)
}
