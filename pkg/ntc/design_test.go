package ntc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemperatureAccuracy(t *testing.T) {
	got, err := TemperatureAccuracy(10000, 0.01, 0.01)
	require.NoError(t, err)
	assert.InDelta(t, 1.00059, got, 1e-5)

	_, err = TemperatureAccuracy(10000, 1.5, 0.01)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = TemperatureAccuracy(0, 0.01, 0.01)
	assert.ErrorIs(t, err, ErrInvalidResistance)
}

func TestOptimalSeriesResistance(t *testing.T) {
	got, err := OptimalSeriesResistance(10000, 0, 100)
	require.NoError(t, err)
	assert.InDelta(t, 5322.8, got, 0.1)

	got, err = OptimalSeriesResistance(10000, -40, 125)
	require.NoError(t, err)
	assert.InDelta(t, 11725.2, got, 0.1)

	_, err = OptimalSeriesResistance(10000, 50, 50)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = OptimalSeriesResistance(50, 0, 100)
	assert.ErrorIs(t, err, ErrInvalidResistance)
}

func TestUnits(t *testing.T) {
	assert.InDelta(t, 77.0, CelsiusToFahrenheit(25), 1e-12)
	assert.InDelta(t, 25.0, FahrenheitToCelsius(77), 1e-12)
	assert.InDelta(t, 298.15, CelsiusToKelvin(25), 1e-12)
	assert.InDelta(t, -40.0, CelsiusToFahrenheit(-40), 1e-12)
	assert.InDelta(t, 0.0, KelvinToCelsius(273.15), 1e-12)
}
