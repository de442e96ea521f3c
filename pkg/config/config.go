package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	ADC        ADCConfig     `yaml:"adc"`
	Thermistor Thermistor    `yaml:"thermistor"`
	Monitor    MonitorConfig `yaml:"monitor"`
	Mock       MockConfig    `yaml:"mock"`
}

// ADCConfig describes the serial-attached ADC board.
type ADCConfig struct {
	Port             string        `yaml:"port"`
	BaudRate         int           `yaml:"baud_rate"`
	Channels         uint8         `yaml:"channels"`
	ReferenceVoltage float64       `yaml:"reference_voltage"` // ADC reference (V)
	ResolutionBits   uint8         `yaml:"resolution_bits"`
	Timeout          time.Duration `yaml:"timeout"` // Max wait for a fresh sample
}

// MonitorConfig contains polling and history parameters.
type MonitorConfig struct {
	Interval      time.Duration `yaml:"interval"`
	WindowSeconds float64       `yaml:"window_seconds"`
	RateSamples   int           `yaml:"rate_samples"` // Derivatives averaged into the reported rate
}

// MockConfig contains mock ADC configuration. The mock simulates a thermistor
// divider whose temperature swings around Temperature.
type MockConfig struct {
	Channels         uint8         `yaml:"channels"`
	ReferenceVoltage float64       `yaml:"reference_voltage"` // V
	ResolutionBits   uint8         `yaml:"resolution_bits"`
	Temperature      float64       `yaml:"temperature"` // Simulated temperature (°C)
	Swing            float64       `yaml:"swing"`       // Amplitude of the slow swing (°C)
	Period           time.Duration `yaml:"period"`      // Period of the swing
	NoiseLevel       float64       `yaml:"noise_level"` // Noise level (V)
	SeriesResistance float64       `yaml:"series_resistance"`
	Resistance25     float64       `yaml:"resistance_25"`
	Beta             float64       `yaml:"beta"`
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		ADC: ADCConfig{
			Port:             "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
			BaudRate:         115200,
			Channels:         2,
			ReferenceVoltage: 3.3,
			ResolutionBits:   12,
			Timeout:          500 * time.Millisecond,
		},
		Thermistor: DefaultThermistor(),
		Monitor: MonitorConfig{
			Interval:      200 * time.Millisecond,
			WindowSeconds: 60,
			RateSamples:   5,
		},
		Mock: MockConfig{
			Channels:         7,
			ReferenceVoltage: 3.3,
			ResolutionBits:   12,
			Temperature:      25,
			Swing:            5,
			Period:           60 * time.Second,
			NoiseLevel:       0.002,
			SeriesResistance: 10000,
			Resistance25:     10000,
			Beta:             3435,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults replaces zero values that can never be valid.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.ADC.Port == "" {
		c.ADC.Port = def.ADC.Port
	}
	if c.ADC.BaudRate == 0 {
		c.ADC.BaudRate = def.ADC.BaudRate
	}
	if c.ADC.Channels == 0 {
		c.ADC.Channels = def.ADC.Channels
	}
	if c.ADC.ReferenceVoltage == 0 {
		c.ADC.ReferenceVoltage = def.ADC.ReferenceVoltage
	}
	if c.ADC.ResolutionBits == 0 {
		c.ADC.ResolutionBits = def.ADC.ResolutionBits
	}
	if c.ADC.Timeout == 0 {
		c.ADC.Timeout = def.ADC.Timeout
	}

	c.Thermistor.ensureDefaults()

	if c.Monitor.Interval == 0 {
		c.Monitor.Interval = def.Monitor.Interval
	}
	if c.Monitor.WindowSeconds == 0 {
		c.Monitor.WindowSeconds = def.Monitor.WindowSeconds
	}
	if c.Monitor.RateSamples == 0 {
		c.Monitor.RateSamples = def.Monitor.RateSamples
	}

	if c.Mock.Channels == 0 {
		c.Mock.Channels = def.Mock.Channels
	}
	if c.Mock.ReferenceVoltage == 0 {
		c.Mock.ReferenceVoltage = def.Mock.ReferenceVoltage
	}
	if c.Mock.ResolutionBits == 0 {
		c.Mock.ResolutionBits = def.Mock.ResolutionBits
	}
	if c.Mock.Period == 0 {
		c.Mock.Period = def.Mock.Period
	}
	if c.Mock.SeriesResistance == 0 {
		c.Mock.SeriesResistance = def.Mock.SeriesResistance
	}
	if c.Mock.Resistance25 == 0 {
		c.Mock.Resistance25 = def.Mock.Resistance25
	}
	if c.Mock.Beta == 0 {
		c.Mock.Beta = def.Mock.Beta
	}
}
