package ntc

// CelsiusToFahrenheit converts °C to °F.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// FahrenheitToCelsius converts °F to °C.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// CelsiusToKelvin converts °C to K.
func CelsiusToKelvin(c float64) float64 {
	return c + KelvinOffset
}

// KelvinToCelsius converts K to °C.
func KelvinToCelsius(k float64) float64 {
	return k - KelvinOffset
}
