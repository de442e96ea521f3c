package ntc

import "math"

// ValidateResistance reports whether r lies in [min, max].
func ValidateResistance(r, min, max float64) bool {
	return !math.IsNaN(r) && r >= min && r <= max
}

// ValidateTemperature reports whether t lies in [min, max].
func ValidateTemperature(t, min, max float64) bool {
	return !math.IsNaN(t) && t >= min && t <= max
}

// ValidateVoltage reports whether v lies in [min, max].
func ValidateVoltage(v, min, max float64) bool {
	return !math.IsNaN(v) && v >= min && v <= max
}

// ValidateBeta reports whether beta is a plausible NTC Beta value in Kelvin.
func ValidateBeta(beta float64) bool {
	return !math.IsNaN(beta) && beta >= MinBeta && beta <= MaxBeta
}

// ValidateSteinhartHart reports whether the coefficients are within the ranges
// observed for commercial NTC thermistors.
func ValidateSteinhartHart(a, b, c float64) bool {
	return a >= -1e-2 && a <= 1e-2 &&
		b >= 1e-4 && b <= 1e-3 &&
		c >= -1e-7 && c <= 1e-7
}

func validResistance(r float64) bool {
	return ValidateResistance(r, MinResistance, MaxResistance)
}

func validTemperature(t float64) bool {
	return ValidateTemperature(t, MinTemperature, MaxTemperature)
}
