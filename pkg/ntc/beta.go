package ntc

import "math"

// BetaTemperature converts resistance r to °C using the Beta equation
//
//	1/T = 1/T25 + ln(R/R25)/β
func BetaTemperature(r, r25, beta float64) (float64, error) {
	const op = "beta temperature"
	if !validResistance(r) {
		return 0, NewError(InvalidResistance, op)
	}
	if r25 <= 0 || !ValidateBeta(beta) {
		return 0, NewError(InvalidParameter, op)
	}

	inv := 1/ReferenceTemperature + math.Log(r/r25)/beta
	if inv <= 0 {
		return 0, NewError(ConversionFailed, op)
	}
	return 1/inv - KelvinOffset, nil
}

// BetaResistance converts t in °C to the expected resistance using the Beta equation
//
//	R = R25 * exp(β(1/T - 1/T25))
func BetaResistance(t, r25, beta float64) (float64, error) {
	const op = "beta resistance"
	if !validTemperature(t) {
		return 0, NewError(TemperatureOutOfRange, op)
	}
	if r25 <= 0 || !ValidateBeta(beta) {
		return 0, NewError(InvalidParameter, op)
	}

	k := t + KelvinOffset
	if k <= 0 {
		return 0, NewError(ConversionFailed, op)
	}
	return r25 * math.Exp(beta*(1/k-1/ReferenceTemperature)), nil
}

// BetaFromTwoPoints derives β from two (°C, Ω) measurements.
//
//	β = ln(R1/R2) / (1/T1 - 1/T2)
func BetaFromTwoPoints(t1, r1, t2, r2 float64) (float64, error) {
	const op = "beta from two points"
	if !validTemperature(t1) || !validTemperature(t2) {
		return 0, NewError(TemperatureOutOfRange, op)
	}
	if !validResistance(r1) || !validResistance(r2) {
		return 0, NewError(InvalidResistance, op)
	}
	if math.Abs(t1-t2) < Epsilon {
		return 0, NewError(InvalidParameter, op)
	}

	k1, k2 := t1+KelvinOffset, t2+KelvinOffset
	if k1 <= 0 || k2 <= 0 {
		return 0, NewError(ConversionFailed, op)
	}
	beta := math.Log(r1/r2) / (1/k1 - 1/k2)
	if !ValidateBeta(beta) {
		return 0, NewError(ConversionFailed, op)
	}
	return beta, nil
}
