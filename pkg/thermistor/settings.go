package thermistor

import (
	"fmt"
	"time"

	"github.com/itohio/gontc/pkg/config"
	"github.com/itohio/gontc/pkg/ntc"
)

// Configuration returns a copy of the current configuration.
func (d *Driver[A]) Configuration() config.Thermistor {
	return d.cfg
}

// SetConfiguration validates and replaces the configuration. The lookup table
// is reloaded when the type or table file changes.
func (d *Driver[A]) SetConfiguration(cfg config.Thermistor) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !d.adc.IsChannelAvailable(cfg.Channel) {
		return ntc.Wrap(ntc.InvalidParameter, "set configuration", fmt.Errorf("channel %d unavailable", cfg.Channel))
	}
	if cfg.Type != d.cfg.Type || cfg.LookupTable != d.cfg.LookupTable {
		tbl, err := tableFor(cfg)
		if err != nil {
			return err
		}
		d.table = tbl
	}
	d.cfg = cfg
	d.resetFilter()
	return nil
}

// SetConversionMethod selects how resistance is converted to temperature.
func (d *Driver[A]) SetConversionMethod(m ntc.Method) error {
	if m > ntc.MethodAuto {
		return ntc.Wrap(ntc.InvalidParameter, "set conversion method", fmt.Errorf("unknown method %d", m))
	}
	d.cfg.Method = m
	d.resetFilter()
	return nil
}

// SetVoltageDivider sets the series resistor in ohms.
func (d *Driver[A]) SetVoltageDivider(seriesResistance float64) error {
	if seriesResistance <= 0 {
		return ntc.NewError(ntc.InvalidParameter, "set voltage divider")
	}
	d.cfg.SeriesResistance = seriesResistance
	d.resetFilter()
	return nil
}

// SetReferenceVoltage sets the divider supply voltage.
func (d *Driver[A]) SetReferenceVoltage(v float64) error {
	if v <= 0 {
		return ntc.NewError(ntc.InvalidParameter, "set reference voltage")
	}
	d.cfg.ReferenceVoltage = v
	d.resetFilter()
	return nil
}

// SetBetaValue sets the Beta coefficient in Kelvin.
func (d *Driver[A]) SetBetaValue(beta float64) error {
	if !ntc.ValidateBeta(beta) {
		return ntc.NewError(ntc.InvalidParameter, "set beta value")
	}
	d.cfg.Beta = beta
	d.resetFilter()
	return nil
}

// SetADCChannel moves the driver to another ADC channel.
func (d *Driver[A]) SetADCChannel(ch uint8) error {
	if !d.adc.IsChannelAvailable(ch) {
		return ntc.Wrap(ntc.InvalidParameter, "set adc channel", fmt.Errorf("channel %d unavailable", ch))
	}
	d.cfg.Channel = ch
	d.resetFilter()
	return nil
}

// SetSamplingParameters sets how many samples are averaged per read and the
// delay between them.
func (d *Driver[A]) SetSamplingParameters(count uint32, delay time.Duration) error {
	if count == 0 || delay < 0 {
		return ntc.NewError(ntc.InvalidParameter, "set sampling parameters")
	}
	d.cfg.SampleCount = count
	d.cfg.SampleDelay = delay
	d.resetFilter()
	return nil
}

// SetFiltering enables or disables exponential smoothing with factor alpha.
func (d *Driver[A]) SetFiltering(enable bool, alpha float64) error {
	if alpha < 0 || alpha > 1 {
		return ntc.NewError(ntc.InvalidParameter, "set filtering")
	}
	d.cfg.Filtering = enable
	d.cfg.FilterAlpha = alpha
	d.resetFilter()
	return nil
}
