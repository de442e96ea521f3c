package adc

import (
	"math"
	"sync"
	"time"

	"github.com/chewxy/math32"

	"github.com/itohio/gontc/pkg/config"
	"github.com/itohio/gontc/pkg/ntc"
)

// Mock simulates a multi-channel ADC with a thermistor divider on every channel.
// Channels can be pinned to a fixed voltage and reads can be made to fail.
type Mock struct {
	cfg config.MockConfig

	mu          sync.Mutex
	initialized bool
	initFails   bool
	voltages    map[uint8]float32
	failures    []error
	reads       int
	startTime   time.Time
	now         func() time.Time
}

// NewMock creates a mock ADC. A nil cfg gives a noiseless 7-channel, 12-bit,
// 3.3 V converter reading a thermistor held at 25 °C.
func NewMock(cfg *config.MockConfig) *Mock {
	if cfg == nil {
		cfg = &config.MockConfig{
			Channels:         7,
			ReferenceVoltage: 3.3,
			ResolutionBits:   12,
			Temperature:      25,
			SeriesResistance: 10000,
			Resistance25:     10000,
			Beta:             3435,
		}
	}

	return &Mock{
		cfg:       *cfg,
		voltages:  make(map[uint8]float32),
		startTime: time.Now(),
		now:       time.Now,
	}
}

// SetVoltage pins a channel to v volts.
func (m *Mock) SetVoltage(ch uint8, v float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.voltages[ch] = v
}

// SetTemperature changes the simulated thermistor temperature.
func (m *Mock) SetTemperature(c float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.Temperature = c
}

// FailReads queues results for the next reads: a non-nil entry fails that read,
// a nil entry lets it through.
func (m *Mock) FailReads(errs ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, errs...)
}

// FailInitialization makes EnsureInitialized report failure.
func (m *Mock) FailInitialization(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initFails = fail
}

// Reads returns how many channel reads were attempted.
func (m *Mock) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

func (m *Mock) IsInitialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

func (m *Mock) EnsureInitialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initFails {
		return false
	}
	m.initialized = true
	return true
}

func (m *Mock) IsChannelAvailable(ch uint8) bool {
	return ch < m.cfg.Channels
}

func (m *Mock) ReadChannelCount(ch uint8) (uint32, error) {
	v, err := m.ReadChannelVoltage(ch)
	if err != nil {
		return 0, err
	}
	return VoltageToCount(v, m.ReferenceVoltage(), m.cfg.ResolutionBits), nil
}

func (m *Mock) ReadChannelVoltage(ch uint8) (float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads++
	if !m.initialized {
		return 0, ErrNotInitialized
	}
	if ch >= m.cfg.Channels {
		return 0, ErrInvalidChannel
	}
	if len(m.failures) > 0 {
		err := m.failures[0]
		m.failures = m.failures[1:]
		if err != nil {
			return 0, err
		}
	}

	if v, ok := m.voltages[ch]; ok {
		return v, nil
	}
	return m.simulate(ch), nil
}

func (m *Mock) ReferenceVoltage() float32 {
	return float32(m.cfg.ReferenceVoltage)
}

func (m *Mock) ResolutionBits() uint8 {
	return m.cfg.ResolutionBits
}

// simulate returns the divider voltage for the simulated temperature.
// Channel n reads n °C warmer than channel 0.
func (m *Mock) simulate(ch uint8) float32 {
	elapsed := m.now().Sub(m.startTime).Seconds()

	temp := m.cfg.Temperature + float64(ch)
	if m.cfg.Swing != 0 && m.cfg.Period > 0 {
		temp += m.cfg.Swing * math.Sin(2*math.Pi*elapsed/m.cfg.Period.Seconds())
	}

	vref := float32(m.cfg.ReferenceVoltage)
	r, err := ntc.BetaResistance(temp, m.cfg.Resistance25, m.cfg.Beta)
	if err != nil {
		return vref / 2
	}
	v, err := ntc.VoltageFromResistance(r, m.cfg.ReferenceVoltage, m.cfg.SeriesResistance)
	if err != nil {
		return vref / 2
	}

	out := float32(v)
	if m.cfg.NoiseLevel != 0 {
		ns := float32(elapsed * 1e9)
		noise := (math32.Sin(ns*0.001) + math32.Cos(ns*0.0013)) * float32(m.cfg.NoiseLevel) * 0.5
		out += noise
	}
	return math32.Max(0, math32.Min(vref, out))
}
