package ntc

import "math"

// TemperatureAccuracy estimates the reading uncertainty in °C for a part at
// resistance r with the given resistance and Beta tolerances (fractions in [0, 1]).
func TemperatureAccuracy(r, resistanceTolerance, betaTolerance float64) (float64, error) {
	const op = "temperature accuracy"
	if !validResistance(r) {
		return 0, NewError(InvalidResistance, op)
	}
	if resistanceTolerance < 0 || resistanceTolerance > 1 || betaTolerance < 0 || betaTolerance > 1 {
		return 0, NewError(InvalidParameter, op)
	}

	re := r * resistanceTolerance / 100
	be := DefaultBeta * betaTolerance / 1000
	return math.Sqrt(re*re + be*be), nil
}

// OptimalSeriesResistance returns the series resistor that centres the divider
// output over [tMin, tMax]: the geometric mean of the thermistor resistances at
// both ends of the range.
func OptimalSeriesResistance(r25, tMin, tMax float64) (float64, error) {
	const op = "optimal series resistance"
	if !ValidateResistance(r25, 100, 1e6) {
		return 0, NewError(InvalidResistance, op)
	}
	if !validTemperature(tMin) || !validTemperature(tMax) || tMin >= tMax {
		return 0, NewError(InvalidParameter, op)
	}

	rHot, err := BetaResistance(tMax, r25, DefaultBeta)
	if err != nil {
		return 0, err
	}
	rCold, err := BetaResistance(tMin, r25, DefaultBeta)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(rHot * rCold), nil
}
