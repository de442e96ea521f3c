// Package monitor polls a temperature source and keeps a time window of
// readings together with their rate of change.
package monitor

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/asecurityteam/rolling"

	"github.com/itohio/gontc/pkg/config"
	"github.com/itohio/gontc/pkg/thermistor"
)

var _ TemperatureMonitor = (*Monitor)(nil)

// Source produces temperature readings.
type Source interface {
	ReadTemperature() (thermistor.Reading, error)
}

// TemperatureMonitor processes readings, maintains buffers and notifies listeners.
type TemperatureMonitor interface {
	ProcessReadings(input <-chan thermistor.Reading)
	Readings() []thermistor.Reading                                  // Current window, oldest first
	Rates() []float64                                                // °C/s between consecutive readings, n-1 for n readings
	Rate() float64                                                   // Rate averaged over the last RateSamples
	OnUpdate(func(readings []thermistor.Reading, rates []float64)) // Register callback for updates
}

// Monitor implements TemperatureMonitor.
//
// rates[i] is the change from readings[i] to readings[i+1] divided by the time
// between them. Readings older than the window are dropped together with the
// rates that involve them.
type Monitor struct {
	mu       sync.RWMutex
	readings []thermistor.Reading
	rates    []float64
	smooth   *rolling.PointPolicy
	appended int

	callbacks []func(readings []thermistor.Reading, rates []float64)
	cbMu      sync.RWMutex

	window      time.Duration
	rateSamples int

	// Set when the input channel closes, prevents further callbacks
	shutdown bool
}

// New creates a monitor.
func New(cfg config.MonitorConfig) *Monitor {
	n := cfg.RateSamples
	if n <= 0 {
		n = 1
	}
	return &Monitor{
		readings:    make([]thermistor.Reading, 0),
		rates:       make([]float64, 0),
		smooth:      rolling.NewPointPolicy(rolling.NewWindow(n)),
		window:      time.Duration(cfg.WindowSeconds * float64(time.Second)),
		rateSamples: n,
	}
}

// Poll reads src every interval until ctx is done. Failed reads are logged and
// skipped. The returned channel is closed when polling stops.
func Poll(ctx context.Context, src Source, interval time.Duration) <-chan thermistor.Reading {
	out := make(chan thermistor.Reading, 16)

	go func() {
		defer close(out)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r, err := src.ReadTemperature()
				if err != nil {
					log.Printf("Temperature read failed: %v", err)
					continue
				}
				select {
				case out <- r:
				case <-ctx.Done():
					return
				default:
					log.Printf("Monitor busy, dropping reading")
				}
			}
		}
	}()

	return out
}

// ProcessReadings consumes readings until the input channel closes.
func (m *Monitor) ProcessReadings(input <-chan thermistor.Reading) {
	for r := range input {
		m.processReading(r)
	}
	m.mu.Lock()
	m.shutdown = true
	m.mu.Unlock()
}

func (m *Monitor) processReading(r thermistor.Reading) {
	if !r.Valid {
		return
	}

	m.mu.Lock()
	m.readings = append(m.readings, r)

	cutoff := r.Timestamp.Add(-m.window)
	drop := 0
	for drop < len(m.readings)-1 && !m.readings[drop].Timestamp.After(cutoff) {
		drop++
	}
	if drop > 0 {
		m.readings = m.readings[drop:]
		if drop <= len(m.rates) {
			m.rates = m.rates[drop:]
		} else {
			m.rates = m.rates[:0]
		}
		m.resmooth()
	}

	if n := len(m.readings); n >= 2 {
		prev, cur := m.readings[n-2], m.readings[n-1]
		if dt := cur.Timestamp.Sub(prev.Timestamp).Seconds(); dt > 0 {
			rate := (cur.Celsius - prev.Celsius) / dt
			m.rates = append(m.rates, rate)
			m.smooth.Append(rate)
			m.appended++
		} else {
			// Not newer than the previous reading.
			m.readings = m.readings[:n-1]
		}
		if len(m.rates) > len(m.readings)-1 {
			m.rates = m.rates[len(m.rates)-(len(m.readings)-1):]
		}
	}

	notify := !m.shutdown
	m.mu.Unlock()

	if notify {
		m.notifyCallbacks()
	}
}

// resmooth refills the rate window from the newest rates still in the window.
// Must be called with m.mu held.
func (m *Monitor) resmooth() {
	m.smooth = rolling.NewPointPolicy(rolling.NewWindow(m.rateSamples))
	recent := m.rates[max(0, len(m.rates)-m.rateSamples):]
	for _, r := range recent {
		m.smooth.Append(r)
	}
	m.appended = len(recent)
}

// Readings returns a copy of the current readings.
func (m *Monitor) Readings() []thermistor.Reading {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]thermistor.Reading(nil), m.readings...)
}

// Rates returns a copy of the current rates of change.
func (m *Monitor) Rates() []float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]float64(nil), m.rates...)
}

// Rate returns the rate of change in °C/s averaged over the most recent rates.
func (m *Monitor) Rate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.appended == 0 {
		return 0
	}
	// Unfilled buckets hold zero, so the sum covers only the appended rates.
	return m.smooth.Reduce(rolling.Sum) / float64(min(m.appended, m.rateSamples))
}

// Latest returns the newest reading, if any.
func (m *Monitor) Latest() (thermistor.Reading, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.readings) == 0 {
		return thermistor.Reading{}, false
	}
	return m.readings[len(m.readings)-1], true
}

// Range returns the lowest and highest temperature in the window.
func (m *Monitor) Range() (float64, float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.readings) == 0 {
		return 0, 0
	}
	lo, hi := m.readings[0].Celsius, m.readings[0].Celsius
	for _, r := range m.readings[1:] {
		lo = min(lo, r.Celsius)
		hi = max(hi, r.Celsius)
	}
	return lo, hi
}

// Reset clears all buffers and the shutdown flag before a new chain is started.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readings = m.readings[:0]
	m.rates = m.rates[:0]
	m.smooth = rolling.NewPointPolicy(rolling.NewWindow(m.rateSamples))
	m.appended = 0
	m.shutdown = false
}

// OnUpdate registers a callback invoked after every accepted reading.
// The callback should copy data quickly and return as fast as possible.
func (m *Monitor) OnUpdate(callback func(readings []thermistor.Reading, rates []float64)) {
	m.cbMu.Lock()
	defer m.cbMu.Unlock()
	m.callbacks = append(m.callbacks, callback)
}

// notifyCallbacks copies the buffers under the read lock and invokes callbacks without it.
func (m *Monitor) notifyCallbacks() {
	readings := m.Readings()
	rates := m.Rates()

	m.cbMu.RLock()
	callbacks := make([]func([]thermistor.Reading, []float64), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.cbMu.RUnlock()

	for _, cb := range callbacks {
		if cb != nil {
			cb(readings, rates)
		}
	}
}
