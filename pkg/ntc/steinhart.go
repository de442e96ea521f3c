package ntc

import "math"

// Coefficients of the Steinhart-Hart equation 1/T = A + B·ln(R) + C·ln(R)³.
type Coefficients struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
	C float64 `yaml:"c"`
}

// DefaultCoefficients fit a generic 10 kΩ NTC.
var DefaultCoefficients = Coefficients{
	A: 1.129241e-3,
	B: 2.341077e-4,
	C: 8.775468e-8,
}

// Valid reports whether the coefficients pass ValidateSteinhartHart.
func (c Coefficients) Valid() bool {
	return ValidateSteinhartHart(c.A, c.B, c.C)
}

// SteinhartHartTemperature converts resistance r to °C.
func SteinhartHartTemperature(r float64, c Coefficients) (float64, error) {
	const op = "steinhart-hart temperature"
	if !validResistance(r) {
		return 0, NewError(InvalidResistance, op)
	}
	if !c.Valid() {
		return 0, NewError(InvalidParameter, op)
	}

	l := math.Log(r)
	inv := c.A + c.B*l + c.C*l*l*l
	if inv <= 0 {
		return 0, NewError(ConversionFailed, op)
	}
	return 1/inv - KelvinOffset, nil
}

// SteinhartHartResistance converts t in °C to resistance. The cubic term is
// ignored, so ln(R) ≈ (1/T - A)/B. The result is an approximation and does not
// round-trip exactly with SteinhartHartTemperature.
func SteinhartHartResistance(t float64, c Coefficients) (float64, error) {
	const op = "steinhart-hart resistance"
	if !validTemperature(t) {
		return 0, NewError(TemperatureOutOfRange, op)
	}
	if !c.Valid() {
		return 0, NewError(InvalidParameter, op)
	}

	k := t + KelvinOffset
	if k <= 0 {
		return 0, NewError(ConversionFailed, op)
	}
	l := (1/k - c.A) / c.B
	if math.Abs(l) >= MaxLogResistance {
		return 0, NewError(ConversionFailed, op)
	}
	return math.Exp(l), nil
}

// SteinhartHartFromThreePoints solves for the coefficients passing through three
// (°C, Ω) measurements.
func SteinhartHartFromThreePoints(t1, r1, t2, r2, t3, r3 float64) (Coefficients, error) {
	const op = "steinhart-hart from three points"
	for _, t := range []float64{t1, t2, t3} {
		if !validTemperature(t) || t+KelvinOffset <= 0 {
			return Coefficients{}, NewError(TemperatureOutOfRange, op)
		}
	}
	for _, r := range []float64{r1, r2, r3} {
		if !validResistance(r) {
			return Coefficients{}, NewError(InvalidResistance, op)
		}
	}
	if math.Abs(t1-t2) < Epsilon || math.Abs(t2-t3) < Epsilon || math.Abs(t1-t3) < Epsilon {
		return Coefficients{}, NewError(InvalidParameter, op)
	}

	l1, l2, l3 := math.Log(r1), math.Log(r2), math.Log(r3)
	c1, c2, c3 := l1*l1*l1, l2*l2*l2, l3*l3*l3
	y1, y2, y3 := 1/(t1+KelvinOffset), 1/(t2+KelvinOffset), 1/(t3+KelvinOffset)

	// Cramer's rule over rows [1, lnR, lnR³] = 1/T.
	det := (l2*c3 - l3*c2) - l1*(c3-c2) + c1*(l3-l2)
	if math.Abs(det) < DeterminantEpsilon {
		return Coefficients{}, NewError(ConversionFailed, op)
	}
	detA := y1*(l2*c3-l3*c2) - l1*(y2*c3-y3*c2) + c1*(y2*l3-y3*l2)
	detB := (y2*c3 - y3*c2) - y1*(c3-c2) + c1*(y3-y2)
	detC := (l2*y3 - l3*y2) - l1*(y3-y2) + y1*(l3-l2)

	coef := Coefficients{A: detA / det, B: detB / det, C: detC / det}
	if !coef.Valid() {
		return Coefficients{}, NewError(ConversionFailed, op)
	}
	return coef, nil
}

// DefaultTemperature converts r to °C with DefaultCoefficients.
func DefaultTemperature(r float64) (float64, error) {
	return SteinhartHartTemperature(r, DefaultCoefficients)
}

// DefaultResistance converts t to resistance with DefaultCoefficients.
func DefaultResistance(t float64) (float64, error) {
	return SteinhartHartResistance(t, DefaultCoefficients)
}
