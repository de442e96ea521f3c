package adc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxCount(t *testing.T) {
	assert.Equal(t, uint32(4095), MaxCount(12))
	assert.Equal(t, uint32(65535), MaxCount(16))
	assert.Equal(t, uint32(0xFFFFFFFF), MaxCount(0))
}

func TestCountVoltageConversion(t *testing.T) {
	assert.InDelta(t, 3.3, CountToVoltage(4095, 3.3, 12), 1e-6)
	assert.InDelta(t, 0, CountToVoltage(0, 3.3, 12), 1e-6)

	assert.Equal(t, uint32(2048), VoltageToCount(1.65, 3.3, 12))
	assert.Equal(t, uint32(0), VoltageToCount(-1, 3.3, 12))
	assert.Equal(t, uint32(4095), VoltageToCount(5, 3.3, 12))
	assert.Equal(t, uint32(0), VoltageToCount(1, 0, 12))
}
