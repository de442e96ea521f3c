package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/itohio/gontc/pkg/ntc"
)

// Thermistor is the runtime configuration of a single thermistor channel.
type Thermistor struct {
	Type              ntc.Type      `yaml:"type"`
	Resistance25      float64       `yaml:"resistance_25"` // Ω at 25 °C
	Beta              float64       `yaml:"beta"`          // K
	ReferenceVoltage  float64       `yaml:"reference_voltage"`
	SeriesResistance  float64       `yaml:"series_resistance"`
	CalibrationOffset float64       `yaml:"calibration_offset"` // °C
	Method            ntc.Method    `yaml:"method"`
	Channel           uint8         `yaml:"channel"`
	ResolutionBits    uint8         `yaml:"resolution_bits"`
	SampleCount       uint32        `yaml:"sample_count"`
	SampleDelay       time.Duration `yaml:"sample_delay"`
	MinTemperature    float64       `yaml:"min_temperature"`
	MaxTemperature    float64       `yaml:"max_temperature"`
	Filtering         bool          `yaml:"filtering"`
	FilterAlpha       float64       `yaml:"filter_alpha"`
	LookupTable       string        `yaml:"lookup_table,omitempty"` // Optional YAML table for Custom parts
}

// DefaultThermistor returns the configuration of a 10 kΩ, β 3435 K part on
// channel 0 behind a 10 kΩ series resistor at 3.3 V.
func DefaultThermistor() Thermistor {
	return Thermistor{
		Type:             ntc.TypeNTCG163JFT103FT1S,
		Resistance25:     ntc.DefaultResistance25,
		Beta:             ntc.DefaultBeta,
		ReferenceVoltage: 3.3,
		SeriesResistance: 10000,
		Method:           ntc.MethodAuto,
		Channel:          0,
		ResolutionBits:   12,
		SampleCount:      1,
		SampleDelay:      0,
		MinTemperature:   -40,
		MaxTemperature:   125,
		Filtering:        false,
		FilterAlpha:      0.1,
	}
}

// ForType returns the default configuration for a part. All supported parts
// share the same 10 kΩ / 3435 K characteristics.
func ForType(t ntc.Type) Thermistor {
	cfg := DefaultThermistor()
	cfg.Type = t
	return cfg
}

// Validate checks the invariants required by the driver.
func (t Thermistor) Validate() error {
	var reason string
	switch {
	case t.Resistance25 <= 0:
		reason = "resistance at 25 °C must be positive"
	case !ntc.ValidateBeta(t.Beta):
		reason = fmt.Sprintf("beta %.0f K outside [%.0f, %.0f]", t.Beta, ntc.MinBeta, ntc.MaxBeta)
	case t.ReferenceVoltage <= 0:
		reason = "reference voltage must be positive"
	case t.SeriesResistance <= 0:
		reason = "series resistance must be positive"
	case t.SampleCount == 0:
		reason = "sample count must be positive"
	case t.MinTemperature >= t.MaxTemperature:
		reason = "min temperature must be below max temperature"
	case t.Filtering && (t.FilterAlpha < 0 || t.FilterAlpha > 1):
		reason = "filter alpha must be in [0, 1]"
	default:
		return nil
	}
	return ntc.Wrap(ntc.InvalidParameter, "validate configuration", errors.New(reason))
}

func (t *Thermistor) ensureDefaults() {
	def := DefaultThermistor()

	if t.Resistance25 == 0 {
		t.Resistance25 = def.Resistance25
	}
	if t.Beta == 0 {
		t.Beta = def.Beta
	}
	if t.ReferenceVoltage == 0 {
		t.ReferenceVoltage = def.ReferenceVoltage
	}
	if t.SeriesResistance == 0 {
		t.SeriesResistance = def.SeriesResistance
	}
	if t.ResolutionBits == 0 {
		t.ResolutionBits = def.ResolutionBits
	}
	if t.SampleCount == 0 {
		t.SampleCount = def.SampleCount
	}
	if t.MinTemperature == 0 && t.MaxTemperature == 0 {
		t.MinTemperature = def.MinTemperature
		t.MaxTemperature = def.MaxTemperature
	}
}
