package main

import "machine"

const (
	// Sampling configuration
	SAMPLE_INTERVAL_MS = 20 // Output interval per channel set in milliseconds
	NUM_SAMPLES        = 16 // Number of conversions averaged into one output
	SAMPLE_DELAY_US    = 50 // Delay between averaged conversions in microseconds

	// ADC configuration
	ADC_REFERENCE_V = 3.3 // Reference voltage in volts
	ADC_RESOLUTION  = 12  // ADC resolution in bits (12-bit = 0-4095)

	// Serial configuration
	// Format "unix_micros,channel,count\n"
	// Example: "1234567890123456,1,4095\n" = ~24 bytes max per line
	// 2 channels * 50 outputs/sec * 24 bytes/line = 2,400 bytes/sec
	// UART 8N1: 10 bits/byte = 24,000 baud minimum
	// 115200 provides ~4.8x headroom
	UART_BAUD_RATE = 115200
)

// Thermistor divider taps, in channel order.
var PINS_ADC = []machine.Pin{machine.A0, machine.A1}
