package adc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/physic"
)

type fakePin struct {
	sample analog.Sample
	err    error
}

func (f *fakePin) String() string   { return "A0" }
func (f *fakePin) Halt() error      { return nil }
func (f *fakePin) Name() string     { return "A0" }
func (f *fakePin) Number() int      { return 0 }
func (f *fakePin) Function() string { return "ADC" }

func (f *fakePin) Range() (analog.Sample, analog.Sample) {
	return analog.Sample{}, analog.Sample{V: 3300 * physic.MilliVolt, Raw: 4095}
}

func (f *fakePin) Read() (analog.Sample, error) {
	return f.sample, f.err
}

func TestPeriph(t *testing.T) {
	pin := &fakePin{sample: analog.Sample{V: 1650 * physic.MilliVolt, Raw: 2048}}
	p := NewPeriph(3.3, 12, pin)

	_, err := p.ReadChannelVoltage(0)
	assert.ErrorIs(t, err, ErrNotInitialized)

	require.True(t, p.EnsureInitialized())
	assert.True(t, p.IsChannelAvailable(0))
	assert.False(t, p.IsChannelAvailable(1))

	v, err := p.ReadChannelVoltage(0)
	require.NoError(t, err)
	assert.InDelta(t, 1.65, v, 1e-6)

	count, err := p.ReadChannelCount(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(2048), count)

	_, err = p.ReadChannelCount(1)
	assert.ErrorIs(t, err, ErrInvalidChannel)

	pin.err = errors.New("i2c nack")
	_, err = p.ReadChannelVoltage(0)
	assert.ErrorIs(t, err, ErrReadFailed)
}

func TestPeriphWithoutPins(t *testing.T) {
	p := NewPeriph(3.3, 12)
	assert.False(t, p.EnsureInitialized())
}
