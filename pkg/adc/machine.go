//go:build tinygo

package adc

import "machine"

// Machine reads on-chip ADC pins of a TinyGo target.
type Machine struct {
	pins        []machine.ADC
	vref        float32
	bits        uint8
	initialized bool
}

var _ ADC = (*Machine)(nil)

// NewMachine creates an ADC over the given analog pins.
func NewMachine(vref float32, bits uint8, pins ...machine.Pin) *Machine {
	adcs := make([]machine.ADC, len(pins))
	for i, p := range pins {
		adcs[i] = machine.ADC{Pin: p}
	}
	return &Machine{pins: adcs, vref: vref, bits: bits}
}

func (m *Machine) IsInitialized() bool {
	return m.initialized
}

func (m *Machine) EnsureInitialized() bool {
	if m.initialized {
		return true
	}
	machine.InitADC()
	for _, a := range m.pins {
		a.Configure(machine.ADCConfig{
			Reference:  uint32(m.vref * 1000),
			Resolution: uint32(m.bits),
		})
	}
	m.initialized = true
	return true
}

func (m *Machine) IsChannelAvailable(ch uint8) bool {
	return int(ch) < len(m.pins)
}

// ReadChannelCount scales the 16-bit TinyGo reading down to the configured resolution.
func (m *Machine) ReadChannelCount(ch uint8) (uint32, error) {
	if !m.initialized {
		return 0, ErrNotInitialized
	}
	if !m.IsChannelAvailable(ch) {
		return 0, ErrInvalidChannel
	}
	return uint32(m.pins[ch].Get()) >> (16 - m.bits), nil
}

func (m *Machine) ReadChannelVoltage(ch uint8) (float32, error) {
	count, err := m.ReadChannelCount(ch)
	if err != nil {
		return 0, err
	}
	return CountToVoltage(count, m.vref, m.bits), nil
}

func (m *Machine) ReferenceVoltage() float32 {
	return m.vref
}

func (m *Machine) ResolutionBits() uint8 {
	return m.bits
}
