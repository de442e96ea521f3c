package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/gontc/pkg/adc"
	"github.com/itohio/gontc/pkg/config"
	"github.com/itohio/gontc/pkg/ntc"
	"github.com/itohio/gontc/pkg/thermistor"
)

func reading(at time.Time, c float64) thermistor.Reading {
	return thermistor.Reading{Timestamp: at, Celsius: c, Valid: true}
}

func newMonitor(window float64, rateSamples int) *Monitor {
	return New(config.MonitorConfig{WindowSeconds: window, RateSamples: rateSamples})
}

func TestNew(t *testing.T) {
	m := newMonitor(10, 3)

	assert.Empty(t, m.Readings())
	assert.Empty(t, m.Rates())
	assert.Equal(t, 0.0, m.Rate())
	_, ok := m.Latest()
	assert.False(t, ok)
}

func TestProcessReading_Rates(t *testing.T) {
	m := newMonitor(10, 3)
	now := time.Now()

	m.processReading(reading(now, 20))
	m.processReading(reading(now.Add(500*time.Millisecond), 21))
	m.processReading(reading(now.Add(time.Second), 21))

	require.Len(t, m.Readings(), 3)
	rates := m.Rates()
	require.Len(t, rates, 2)
	assert.InDelta(t, 2.0, rates[0], 1e-9)
	assert.InDelta(t, 0.0, rates[1], 1e-9)
	assert.InDelta(t, 1.0, m.Rate(), 1e-9)

	latest, ok := m.Latest()
	require.True(t, ok)
	assert.Equal(t, 21.0, latest.Celsius)
}

func TestProcessReading_RateAveragesRecent(t *testing.T) {
	m := newMonitor(100, 2)
	now := time.Now()

	for i, c := range []float64{0, 10, 12, 13} {
		m.processReading(reading(now.Add(time.Duration(i)*time.Second), c))
	}

	assert.Equal(t, []float64{10, 2, 1}, m.Rates())
	assert.InDelta(t, 1.5, m.Rate(), 1e-9)
}

func TestProcessReading_WindowRemoval(t *testing.T) {
	m := newMonitor(1.2, 5)
	now := time.Now()

	m.processReading(reading(now, 20))
	m.processReading(reading(now.Add(500*time.Millisecond), 21))
	m.processReading(reading(now.Add(1500*time.Millisecond), 22))

	readings := m.Readings()
	require.Len(t, readings, 2)
	assert.Equal(t, 21.0, readings[0].Celsius)
	assert.Equal(t, 22.0, readings[1].Celsius)
	assert.Equal(t, []float64{1.0}, m.Rates())

	lo, hi := m.Range()
	assert.Equal(t, 21.0, lo)
	assert.Equal(t, 22.0, hi)
}

func TestProcessReading_RateForgetsDroppedReadings(t *testing.T) {
	m := newMonitor(1.2, 5)
	now := time.Now()

	m.processReading(reading(now, 0))
	m.processReading(reading(now.Add(500*time.Millisecond), 10))
	m.processReading(reading(now.Add(time.Second), 11))
	assert.InDelta(t, 11.0, m.Rate(), 1e-9)

	m.processReading(reading(now.Add(2*time.Second), 12))

	require.Len(t, m.Readings(), 2)
	assert.Equal(t, []float64{1.0}, m.Rates())
	assert.InDelta(t, 1.0, m.Rate(), 1e-9)
}

func TestProcessReading_SkipsInvalidAndStale(t *testing.T) {
	m := newMonitor(10, 1)
	now := time.Now()

	m.processReading(reading(now, 20))
	m.processReading(thermistor.Reading{Timestamp: now.Add(time.Second), Error: ntc.Timeout})
	m.processReading(reading(now, 30))

	require.Len(t, m.Readings(), 1)
	assert.Empty(t, m.Rates())
}

func TestOnUpdate_ReceivesCopies(t *testing.T) {
	m := newMonitor(10, 1)
	now := time.Now()

	var got [][]thermistor.Reading
	m.OnUpdate(func(readings []thermistor.Reading, rates []float64) {
		assert.Len(t, rates, max(len(readings)-1, 0))
		got = append(got, readings)
	})

	m.processReading(reading(now, 20))
	m.processReading(reading(now.Add(time.Second), 21))

	require.Len(t, got, 2)
	assert.Len(t, got[0], 1)
	assert.Len(t, got[1], 2)

	got[1][0].Celsius = 99
	assert.Equal(t, 20.0, m.Readings()[0].Celsius)
}

func TestProcessReadings_NoCallbacksAfterClose(t *testing.T) {
	m := newMonitor(10, 1)
	var mu sync.Mutex
	count := 0
	m.OnUpdate(func([]thermistor.Reading, []float64) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	input := make(chan thermistor.Reading, 3)
	now := time.Now()
	for i := range 3 {
		input <- reading(now.Add(time.Duration(i)*time.Second), 20)
	}
	close(input)
	m.ProcessReadings(input)

	mu.Lock()
	assert.Equal(t, 3, count)
	mu.Unlock()

	m.processReading(reading(now.Add(10*time.Second), 20))
	mu.Lock()
	assert.Equal(t, 3, count)
	mu.Unlock()

	m.Reset()
	assert.Empty(t, m.Readings())
	m.processReading(reading(now.Add(20*time.Second), 20))
	mu.Lock()
	assert.Equal(t, 4, count)
	mu.Unlock()
}

type flakySource struct {
	mu    sync.Mutex
	calls int
}

func (s *flakySource) ReadTemperature() (thermistor.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls%2 == 0 {
		return thermistor.Reading{}, errors.New("flaky")
	}
	return reading(time.Now(), float64(s.calls)), nil
}

func TestPoll(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := Poll(ctx, &flakySource{}, time.Millisecond)

	var got []thermistor.Reading
	for r := range out {
		got = append(got, r)
		if len(got) == 3 {
			cancel()
		}
	}

	require.GreaterOrEqual(t, len(got), 3)
	for _, r := range got {
		assert.True(t, r.Valid)
	}
}

func TestPollDriver(t *testing.T) {
	a := adc.NewMock(nil)
	d := thermistor.NewForType(ntc.TypeNTCG163JFT103FT1S, a)
	require.NoError(t, d.Initialize())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	m := newMonitor(10, 3)
	done := make(chan struct{})
	go func() {
		m.ProcessReadings(Poll(ctx, d, 5*time.Millisecond))
		close(done)
	}()

	assert.Eventually(t, func() bool { return len(m.Readings()) >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	latest, ok := m.Latest()
	require.True(t, ok)
	assert.InDelta(t, 25.0, latest.Celsius, 0.01)
	assert.InDelta(t, 0.0, m.Rate(), 0.01)
}
