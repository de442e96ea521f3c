package ntc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBetaTemperatureAtReference(t *testing.T) {
	got, err := BetaTemperature(10000, 10000, 3435)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, got, 0.1)
}

func TestBetaTemperatureMonotonic(t *testing.T) {
	prev := math.Inf(1)
	for r := 500.0; r <= 200000; r *= 1.5 {
		got, err := BetaTemperature(r, 10000, 3435)
		require.NoError(t, err)
		assert.Less(t, got, prev, "temperature must fall as resistance rises (r=%v)", r)
		prev = got
	}
}

func TestBetaTemperatureErrors(t *testing.T) {
	tests := []struct {
		name string
		r    float64
		r25  float64
		beta float64
		code Code
	}{
		{name: "resistance too low", r: 0.01, r25: 10000, beta: 3435, code: InvalidResistance},
		{name: "resistance too high", r: 2e6, r25: 10000, beta: 3435, code: InvalidResistance},
		{name: "beta too low", r: 1000, r25: 10000, beta: 999, code: InvalidParameter},
		{name: "beta too high", r: 1000, r25: 10000, beta: 5001, code: InvalidParameter},
		{name: "zero r25", r: 1000, r25: 0, beta: 3435, code: InvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BetaTemperature(tt.r, tt.r25, tt.beta)
			require.Error(t, err)
			assert.Equal(t, tt.code, CodeOf(err))
		})
	}
}

func TestBetaRoundTrip(t *testing.T) {
	for c := -40.0; c <= 125; c += 5 {
		r, err := BetaResistance(c, 10000, 3435)
		require.NoError(t, err)
		got, err := BetaTemperature(r, 10000, 3435)
		require.NoError(t, err)
		assert.InDelta(t, c, got, 1e-9)
	}
}

func TestBetaResistanceErrors(t *testing.T) {
	_, err := BetaResistance(-274, 10000, 3435)
	assert.ErrorIs(t, err, ErrTemperatureOutOfRange)

	_, err = BetaResistance(1001, 10000, 3435)
	assert.ErrorIs(t, err, ErrTemperatureOutOfRange)

	_, err = BetaResistance(-273.15, 10000, 3435)
	assert.ErrorIs(t, err, ErrConversionFailed)
}

func TestBetaFromTwoPoints(t *testing.T) {
	r0, err := BetaResistance(0, 10000, 3435)
	require.NoError(t, err)
	r50, err := BetaResistance(50, 10000, 3435)
	require.NoError(t, err)

	beta, err := BetaFromTwoPoints(0, r0, 50, r50)
	require.NoError(t, err)
	assert.InDelta(t, 3435, beta, 1e-6)

	_, err = BetaFromTwoPoints(25, 10000, 25, 9000)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	// Nearly flat curve gives an implausible beta.
	_, err = BetaFromTwoPoints(0, 10100, 50, 10000)
	assert.ErrorIs(t, err, ErrConversionFailed)
}
