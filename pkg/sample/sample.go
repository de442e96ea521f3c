// Package sample takes averaged readings from an ADC channel.
package sample

import (
	"errors"
	"time"

	"github.com/itohio/gontc/pkg/adc"
)

// ErrNoSamples is returned when every sample of an averaged read failed.
var ErrNoSamples = errors.New("no valid samples")

// Sampler reads a channel Samples times, waiting Delay between reads, and
// averages the successful results. Sleep defaults to time.Sleep.
type Sampler struct {
	Samples uint32
	Delay   time.Duration
	Sleep   func(time.Duration)
}

// Voltage returns the averaged channel voltage.
func (s Sampler) Voltage(a adc.ADC, ch uint8) (float32, error) {
	sum, n, err := collect(s, func() (float64, error) {
		v, err := a.ReadChannelVoltage(ch)
		return float64(v), err
	})
	if err != nil {
		return 0, err
	}
	return float32(sum / float64(n)), nil
}

// Count returns the averaged raw count, rounded to nearest.
func (s Sampler) Count(a adc.ADC, ch uint8) (uint32, error) {
	sum, n, err := collect(s, func() (float64, error) {
		c, err := a.ReadChannelCount(ch)
		return float64(c), err
	})
	if err != nil {
		return 0, err
	}
	return uint32(sum/float64(n) + 0.5), nil
}

func (s Sampler) sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if s.Sleep != nil {
		s.Sleep(d)
		return
	}
	time.Sleep(d)
}
