// Package consts holds the fixed build-time constants shared by the device
// model library and the nonlinear solver. None of these are derived from a
// temperature sweep or a config file: the spec this module implements fixes
// them at compile time.
package consts

const (
	ThermalVoltage = 26e-3 // Vt at room temperature (V)

	DiodeIsat = 1.0e-12 // Diode saturation current (A)
	DiodeEta  = 1.0     // Diode emission coefficient

	BjtIes    = 2e-14 // NPN saturation current, B-E junction (A)
	BjtIcs    = 99e-14
	BjtVte    = ThermalVoltage
	BjtVtc    = ThermalVoltage
	BjtAlphaF = 0.99 // Forward common-base current gain
	BjtAlphaR = 0.02 // Reverse common-base current gain

	NmosBeta   = 0.5e-3 // Transconductance parameter (A/V^2)
	NmosVt     = 0.6    // Threshold voltage (V)
	NmosLambda = 0.01   // Channel-length modulation (1/V)
)

// Newton-Raphson solver tuning (DC/OP regime).
const (
	NewtonMaxIters  = 100
	NewtonTolRel    = 1e-3
	NewtonTolAbsV   = 1e-6
	NewtonTolAbsA   = 1e-9
	NewtonDampGamma = 1.3
	NewtonDampK     = 16.0
)

// Transient step controller tuning. Deliberately looser than the Newton
// tolerances above: the LTE test only needs to bound truncation error, not
// drive Newton to machine precision.
const (
	TransientStepMin = 1e-18
	TransientTolRel  = 1e-3
	TransientTolAbsV = 1e-3
	TransientTolAbsA = 1e-6
)
