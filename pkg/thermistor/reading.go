package thermistor

import (
	"math"
	"time"

	"periph.io/x/conn/v3/physic"

	"github.com/itohio/gontc/pkg/ntc"
)

// ReadingAccuracy is the nominal uncertainty reported with every reading, in °C.
const ReadingAccuracy = 0.5

// Reading is a snapshot of one read cycle.
type Reading struct {
	Celsius    float64
	Fahrenheit float64
	Kelvin     float64
	Resistance float64 // Ω
	Voltage    float64 // V across the thermistor
	Raw        uint32  // ADC count equivalent of Voltage
	Timestamp  time.Time
	Valid      bool
	Error      ntc.Code
	Accuracy   float64 // ± °C
}

// Temperature returns the reading as a periph.io temperature.
func (r Reading) Temperature() physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(math.Round(r.Celsius*float64(physic.Celsius)))
}

// Potential returns the thermistor voltage as a periph.io quantity.
func (r Reading) Potential() physic.ElectricPotential {
	return physic.ElectricPotential(math.Round(r.Voltage * float64(physic.Volt)))
}

// ElectricResistance returns the thermistor resistance as a periph.io quantity.
func (r Reading) ElectricResistance() physic.ElectricResistance {
	return physic.ElectricResistance(math.Round(r.Resistance * float64(physic.Ohm)))
}
