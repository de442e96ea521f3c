// Package adc defines the analog sampling capability consumed by the
// thermistor driver, plus mock, serial and periph.io backed implementations.
package adc

import (
	"errors"

	"github.com/chewxy/math32"
)

var (
	ErrNotInitialized = errors.New("adc not initialized")
	ErrInvalidChannel = errors.New("invalid adc channel")
	ErrReadFailed     = errors.New("adc read failed")
	ErrTimeout        = errors.New("adc timeout")
	ErrHardware       = errors.New("adc hardware error")
)

// ADC is a multi-channel analog-to-digital converter.
type ADC interface {
	IsInitialized() bool
	// EnsureInitialized brings the converter up if needed and reports success.
	EnsureInitialized() bool
	IsChannelAvailable(ch uint8) bool
	ReadChannelCount(ch uint8) (uint32, error)
	ReadChannelVoltage(ch uint8) (float32, error)
	ReferenceVoltage() float32
	ResolutionBits() uint8
}

var (
	_ ADC = (*Mock)(nil)
	_ ADC = (*Periph)(nil)
)

// MaxCount returns the full-scale count for the given resolution.
func MaxCount(bits uint8) uint32 {
	if bits == 0 || bits > 32 {
		bits = 32
	}
	return uint32((uint64(1) << bits) - 1)
}

// CountToVoltage converts a raw count into volts.
func CountToVoltage(count uint32, vref float32, bits uint8) float32 {
	return float32(count) / float32(MaxCount(bits)) * vref
}

// VoltageToCount converts volts into the nearest raw count, clamped to full scale.
func VoltageToCount(v, vref float32, bits uint8) uint32 {
	if vref <= 0 {
		return 0
	}
	ratio := math32.Max(0, math32.Min(1, v/vref))
	return uint32(math32.Round(ratio * float32(MaxCount(bits))))
}
