package adc

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/physic"
)

// Periph exposes periph.io analog pins as ADC channels, channel n being pins[n].
type Periph struct {
	pins []analog.PinADC
	vref float32
	bits uint8

	mu          sync.Mutex
	initialized bool
}

// NewPeriph wraps pins of a converter with the given reference and resolution.
func NewPeriph(vref float32, bits uint8, pins ...analog.PinADC) *Periph {
	return &Periph{pins: pins, vref: vref, bits: bits}
}

func (p *Periph) IsInitialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// EnsureInitialized succeeds once at least one pin is attached.
func (p *Periph) EnsureInitialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.initialized = len(p.pins) > 0
	return p.initialized
}

func (p *Periph) IsChannelAvailable(ch uint8) bool {
	return int(ch) < len(p.pins)
}

func (p *Periph) read(ch uint8) (analog.Sample, error) {
	if !p.IsInitialized() {
		return analog.Sample{}, ErrNotInitialized
	}
	if !p.IsChannelAvailable(ch) {
		return analog.Sample{}, ErrInvalidChannel
	}
	s, err := p.pins[ch].Read()
	if err != nil {
		return analog.Sample{}, fmt.Errorf("%w: %s: %v", ErrReadFailed, p.pins[ch], err)
	}
	return s, nil
}

func (p *Periph) ReadChannelCount(ch uint8) (uint32, error) {
	s, err := p.read(ch)
	if err != nil {
		return 0, err
	}
	if s.Raw < 0 {
		return 0, nil
	}
	return min(uint32(s.Raw), MaxCount(p.bits)), nil
}

func (p *Periph) ReadChannelVoltage(ch uint8) (float32, error) {
	s, err := p.read(ch)
	if err != nil {
		return 0, err
	}
	return float32(float64(s.V) / float64(physic.Volt)), nil
}

func (p *Periph) ReferenceVoltage() float32 {
	return p.vref
}

func (p *Periph) ResolutionBits() uint8 {
	return p.bits
}
