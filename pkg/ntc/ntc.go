// Package ntc implements the conversion math for NTC thermistors: validation,
// voltage divider equations, the Beta equation and the Steinhart-Hart polynomial.
//
// Every function here is pure and safe for concurrent use.
package ntc

const (
	// KelvinOffset converts between Celsius and Kelvin.
	KelvinOffset = 273.15
	// ReferenceTemperature is 25 °C in Kelvin, the reference point of the Beta equation.
	ReferenceTemperature = 25 + KelvinOffset

	MinResistance  = 0.1 // ohms
	MaxResistance  = 1e6 // ohms
	MinTemperature = -KelvinOffset
	MaxTemperature = 1000.0

	MinBeta = 1000.0
	MaxBeta = 5000.0

	// Epsilon guards near-zero denominators and near-equal points.
	Epsilon = 1e-6
	// DeterminantEpsilon bounds the Steinhart-Hart system determinant.
	DeterminantEpsilon = 1e-12
	// MaxLogResistance bounds ln(R) in the approximate Steinhart-Hart inverse.
	MaxLogResistance = 20.0

	// DefaultResistance25 and DefaultBeta describe the stock 10 kΩ parts.
	DefaultResistance25 = 10000.0
	DefaultBeta         = 3435.0
)
