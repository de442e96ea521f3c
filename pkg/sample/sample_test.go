package sample

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/gontc/pkg/adc"
)

func newMock(t *testing.T) *adc.Mock {
	t.Helper()
	m := adc.NewMock(nil)
	require.True(t, m.EnsureInitialized())
	return m
}

func TestSamplerSingleRead(t *testing.T) {
	m := newMock(t)
	m.SetVoltage(0, 1.2)

	v, err := Sampler{Samples: 1}.Voltage(m, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.2, v, 1e-6)
	assert.Equal(t, 1, m.Reads())
}

func TestSamplerSingleReadPropagatesError(t *testing.T) {
	m := newMock(t)
	m.FailReads(adc.ErrTimeout)

	_, err := Sampler{Samples: 1}.Voltage(m, 0)
	assert.ErrorIs(t, err, adc.ErrTimeout)
	assert.NotErrorIs(t, err, ErrNoSamples)
}

func TestSamplerAveragesAndSleepsBetweenReads(t *testing.T) {
	m := newMock(t)
	m.SetVoltage(1, 2.0)

	var sleeps []time.Duration
	s := Sampler{
		Samples: 4,
		Delay:   3 * time.Millisecond,
		Sleep:   func(d time.Duration) { sleeps = append(sleeps, d) },
	}

	v, err := s.Voltage(m, 1)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v, 1e-6)
	assert.Equal(t, 4, m.Reads())
	// No wait after the last read.
	assert.Equal(t, []time.Duration{3 * time.Millisecond, 3 * time.Millisecond, 3 * time.Millisecond}, sleeps)
}

func TestSamplerToleratesPartialFailure(t *testing.T) {
	m := newMock(t)
	m.SetVoltage(0, 1.0)
	m.FailReads(adc.ErrReadFailed, nil, adc.ErrHardware)

	v, err := Sampler{Samples: 3}.Voltage(m, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-6)
}

func TestSamplerAllFailed(t *testing.T) {
	m := newMock(t)
	m.FailReads(adc.ErrReadFailed, adc.ErrTimeout)

	_, err := Sampler{Samples: 2}.Voltage(m, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSamples)
	assert.ErrorIs(t, err, adc.ErrTimeout)
}

func TestSamplerZeroDelaySkipsSleep(t *testing.T) {
	m := newMock(t)
	called := false

	_, err := Sampler{Samples: 3, Sleep: func(time.Duration) { called = true }}.Voltage(m, 0)
	require.NoError(t, err)
	assert.False(t, called)
}

func TestSamplerCountRounds(t *testing.T) {
	m := newMock(t)
	m.SetVoltage(0, 1.65)

	count, err := Sampler{Samples: 2}.Count(m, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(2048), count)
}
