// Package thermistor turns ADC readings from an NTC voltage divider into
// calibrated, optionally filtered temperatures.
//
// A Driver is not safe for concurrent use.
package thermistor

import (
	"errors"
	"fmt"
	"time"

	"github.com/itohio/gontc/pkg/adc"
	"github.com/itohio/gontc/pkg/config"
	"github.com/itohio/gontc/pkg/ntc"
	"github.com/itohio/gontc/pkg/sample"
	"github.com/itohio/gontc/pkg/table"
)

type state uint8

const (
	uninitialized state = iota
	initialized
	deinitialized
)

// Driver reads one thermistor attached to one ADC channel.
type Driver[A adc.ADC] struct {
	adc   A
	cfg   config.Thermistor
	table *table.Table
	state state

	filtered    float64
	filterReady bool

	sleep func(time.Duration)
	now   func() time.Time
}

// New creates a driver. The lookup table is cfg.LookupTable when set,
// otherwise the built-in table of cfg.Type, if any.
func New[A adc.ADC](cfg config.Thermistor, a A) (*Driver[A], error) {
	tbl, err := tableFor(cfg)
	if err != nil {
		return nil, err
	}
	return &Driver[A]{
		adc:   a,
		cfg:   cfg,
		table: tbl,
		sleep: time.Sleep,
		now:   time.Now,
	}, nil
}

// NewForType creates a driver with the default configuration of part t.
func NewForType[A adc.ADC](t ntc.Type, a A) *Driver[A] {
	return &Driver[A]{
		adc:   a,
		cfg:   config.ForType(t),
		table: table.ForType(t),
		sleep: time.Sleep,
		now:   time.Now,
	}
}

func tableFor(cfg config.Thermistor) (*table.Table, error) {
	if cfg.LookupTable == "" {
		return table.ForType(cfg.Type), nil
	}
	tbl, err := table.LoadFile(cfg.LookupTable)
	if err != nil {
		return nil, ntc.Wrap(ntc.LookupTableError, "load lookup table", err)
	}
	return tbl, nil
}

// SetSleep replaces the function used to wait between samples.
func (d *Driver[A]) SetSleep(sleep func(time.Duration)) {
	if sleep == nil {
		sleep = time.Sleep
	}
	d.sleep = sleep
}

// Table returns the lookup table in use, or nil.
func (d *Driver[A]) Table() *table.Table {
	return d.table
}

// Initialize validates the configuration and brings up the ADC channel.
// Calling it on an initialized driver does nothing.
func (d *Driver[A]) Initialize() error {
	const op = "initialize"
	if d.state == initialized {
		return nil
	}
	if err := d.cfg.Validate(); err != nil {
		return err
	}
	if !d.adc.EnsureInitialized() {
		return ntc.NewError(ntc.HardwareFault, op)
	}
	if !d.adc.IsChannelAvailable(d.cfg.Channel) {
		return ntc.Wrap(ntc.InvalidParameter, op, fmt.Errorf("channel %d unavailable", d.cfg.Channel))
	}

	d.resetFilter()
	d.state = initialized
	return nil
}

// Deinitialize stops the driver. It is safe to call repeatedly.
func (d *Driver[A]) Deinitialize() {
	d.resetFilter()
	if d.state == initialized {
		d.state = deinitialized
	}
}

// IsInitialized reports whether Initialize succeeded and Deinitialize was not called since.
func (d *Driver[A]) IsInitialized() bool {
	return d.state == initialized
}

// ReadTemperatureCelsius runs a full read cycle.
func (d *Driver[A]) ReadTemperatureCelsius() (float64, error) {
	t, _, _, err := d.read()
	return t, err
}

// ReadTemperatureFahrenheit runs a full read cycle and converts to °F.
func (d *Driver[A]) ReadTemperatureFahrenheit() (float64, error) {
	t, err := d.ReadTemperatureCelsius()
	if err != nil {
		return 0, err
	}
	return ntc.CelsiusToFahrenheit(t), nil
}

// ReadTemperatureKelvin runs a full read cycle and converts to K.
func (d *Driver[A]) ReadTemperatureKelvin() (float64, error) {
	t, err := d.ReadTemperatureCelsius()
	if err != nil {
		return 0, err
	}
	return ntc.CelsiusToKelvin(t), nil
}

// ReadTemperature runs a full read cycle and returns a snapshot. On failure the
// snapshot is marked invalid and carries the error code.
func (d *Driver[A]) ReadTemperature() (Reading, error) {
	r := Reading{Timestamp: d.now()}

	t, v, res, err := d.read()
	if err != nil {
		r.Error = ntc.CodeOf(err)
		return r, err
	}

	r.Celsius = t
	r.Fahrenheit = ntc.CelsiusToFahrenheit(t)
	r.Kelvin = ntc.CelsiusToKelvin(t)
	r.Voltage = v
	r.Resistance = res
	r.Raw = adc.VoltageToCount(float32(v), d.adc.ReferenceVoltage(), d.adc.ResolutionBits())
	r.Valid = true
	r.Error = ntc.Success
	r.Accuracy = ReadingAccuracy
	return r, nil
}

// Voltage returns the (averaged) voltage across the thermistor.
func (d *Driver[A]) Voltage() (float64, error) {
	if err := d.requireInitialized("read voltage"); err != nil {
		return 0, err
	}
	return d.voltage()
}

// Resistance returns the thermistor resistance derived from the divider.
func (d *Driver[A]) Resistance() (float64, error) {
	if err := d.requireInitialized("read resistance"); err != nil {
		return 0, err
	}
	_, r, err := d.resistance()
	return r, err
}

// RawADCValue returns the (averaged) raw count of the channel.
func (d *Driver[A]) RawADCValue() (uint32, error) {
	const op = "read raw value"
	if err := d.requireInitialized(op); err != nil {
		return 0, err
	}
	c, err := d.sampler().Count(d.adc, d.cfg.Channel)
	if err != nil {
		return 0, adcError(op, err)
	}
	return c, nil
}

// read returns the final temperature along with the voltage and resistance it came from.
func (d *Driver[A]) read() (float64, float64, float64, error) {
	const op = "read temperature"
	if err := d.requireInitialized(op); err != nil {
		return 0, 0, 0, err
	}

	v, r, err := d.resistance()
	if err != nil {
		return 0, 0, 0, err
	}
	t, err := d.convert(r)
	if err != nil {
		return 0, 0, 0, err
	}

	t = d.filter(t + d.cfg.CalibrationOffset)

	if !ntc.ValidateTemperature(t, d.cfg.MinTemperature, d.cfg.MaxTemperature) {
		return 0, 0, 0, ntc.Wrap(ntc.TemperatureOutOfRange, op,
			fmt.Errorf("%.2f °C outside [%.2f, %.2f]", t, d.cfg.MinTemperature, d.cfg.MaxTemperature))
	}
	return t, v, r, nil
}

// rawTemperature converts without calibration offset or filtering.
func (d *Driver[A]) rawTemperature() (float64, error) {
	_, r, err := d.resistance()
	if err != nil {
		return 0, err
	}
	return d.convert(r)
}

func (d *Driver[A]) resistance() (float64, float64, error) {
	v, err := d.voltage()
	if err != nil {
		return 0, 0, err
	}
	r, err := ntc.ResistanceFromVoltage(v, d.cfg.ReferenceVoltage, d.cfg.SeriesResistance)
	if err != nil {
		return 0, 0, ntc.Wrap(ntc.ConversionFailed, "resistance", err)
	}
	return v, r, nil
}

func (d *Driver[A]) voltage() (float64, error) {
	v, err := d.sampler().Voltage(d.adc, d.cfg.Channel)
	if err != nil {
		return 0, adcError("read voltage", err)
	}
	return float64(v), nil
}

// convert applies the configured method. The table path falls back to the
// Beta equation when the table is missing or rejects the resistance.
func (d *Driver[A]) convert(r float64) (float64, error) {
	if d.cfg.Method == ntc.MethodLookupTable && d.table != nil {
		if t, err := d.table.TemperatureFromResistance(r); err == nil {
			return t, nil
		}
	}

	t, err := ntc.BetaTemperature(r, d.cfg.Resistance25, d.cfg.Beta)
	if err != nil {
		return 0, ntc.Wrap(ntc.ConversionFailed, "convert", err)
	}
	return t, nil
}

func (d *Driver[A]) filter(t float64) float64 {
	if !d.cfg.Filtering {
		return t
	}
	if !d.filterReady {
		d.filtered = t
		d.filterReady = true
		return t
	}
	d.filtered = d.cfg.FilterAlpha*t + (1-d.cfg.FilterAlpha)*d.filtered
	return d.filtered
}

func (d *Driver[A]) resetFilter() {
	d.filtered = 0
	d.filterReady = false
}

func (d *Driver[A]) sampler() sample.Sampler {
	return sample.Sampler{
		Samples: d.cfg.SampleCount,
		Delay:   d.cfg.SampleDelay,
		Sleep:   d.sleep,
	}
}

func (d *Driver[A]) requireInitialized(op string) error {
	if d.state != initialized {
		return ntc.NewError(ntc.NotInitialized, op)
	}
	return nil
}

// adcError codes an ADC failure while keeping the cause reachable.
func adcError(op string, err error) error {
	code := ntc.AdcReadFailed
	switch {
	case errors.Is(err, sample.ErrNoSamples):
	case errors.Is(err, adc.ErrTimeout):
		code = ntc.Timeout
	case errors.Is(err, adc.ErrHardware):
		code = ntc.HardwareFault
	case errors.Is(err, adc.ErrNotInitialized):
		code = ntc.NotInitialized
	}
	return ntc.Wrap(code, op, err)
}
