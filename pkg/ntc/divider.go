package ntc

import "math"

// ResistanceFromVoltage returns the thermistor resistance for the voltage vTh measured
// across it, with rSeries between the thermistor and vRef.
//
//	R = Rs * Vth / (Vref - Vth)
func ResistanceFromVoltage(vTh, vRef, rSeries float64) (float64, error) {
	const op = "resistance from voltage"
	if vRef <= 0 || rSeries <= 0 || !ValidateVoltage(vTh, 0, vRef) {
		return 0, NewError(InvalidParameter, op)
	}
	d := vRef - vTh
	if math.Abs(d) < Epsilon {
		return 0, NewError(ConversionFailed, op)
	}
	return rSeries * vTh / d, nil
}

// VoltageFromResistance returns the voltage across a thermistor of resistance r.
//
//	Vth = Vref * R / (Rs + R)
func VoltageFromResistance(r, vRef, rSeries float64) (float64, error) {
	const op = "voltage from resistance"
	if !validResistance(r) {
		return 0, NewError(InvalidResistance, op)
	}
	if vRef <= 0 || rSeries <= 0 {
		return 0, NewError(InvalidParameter, op)
	}
	total := rSeries + r
	if total <= 0 {
		return 0, NewError(ConversionFailed, op)
	}
	return vRef * r / total, nil
}

// DividerRatio returns R / (Rs + R), the fraction of the reference seen by the ADC.
func DividerRatio(r, rSeries float64) (float64, error) {
	const op = "divider ratio"
	if !validResistance(r) {
		return 0, NewError(InvalidResistance, op)
	}
	if rSeries <= 0 {
		return 0, NewError(InvalidParameter, op)
	}
	return r / (rSeries + r), nil
}
