//go:generate tinygo flash -target=xiao

package main

import (
	"machine"
	"time"

	"github.com/itohio/gontc/pkg/adc"
	"github.com/itohio/gontc/pkg/sample"
)

var (
	uart = machine.UART0

	converter *adc.Machine
	sampler   = sample.Sampler{
		Samples: NUM_SAMPLES,
		Delay:   SAMPLE_DELAY_US * time.Microsecond,
	}

	// Timing
	lastOutput time.Time
)

func main() {
	for _, p := range PINS_ADC {
		p.Configure(machine.PinConfig{Mode: machine.PinInput})
	}

	converter = adc.NewMachine(ADC_REFERENCE_V, ADC_RESOLUTION, PINS_ADC...)
	converter.EnsureInitialized()

	uart.Configure(machine.UARTConfig{
		BaudRate: UART_BAUD_RATE,
	})

	lastOutput = time.Now()

	for {
		now := time.Now()

		if now.Sub(lastOutput) >= time.Duration(SAMPLE_INTERVAL_MS)*time.Millisecond {
			for ch := range uint8(len(PINS_ADC)) {
				outputChannel(ch)
			}
			lastOutput = now
		}

		// Small delay to prevent tight loop (but still allow precise timing)
		time.Sleep(100 * time.Microsecond)
	}
}

// outputChannel prints one averaged conversion as "unix_micros,channel,count\n".
// Example: "1234567890123,0,2048\n"
func outputChannel(ch uint8) {
	count, err := sampler.Count(converter, ch)
	if err != nil {
		// Nothing the host can use, skip this line
		return
	}

	timestampMicros := time.Now().UnixNano() / 1000

	print(timestampMicros)
	print(",")
	print(ch)
	print(",")
	print(count)
	print("\n")
}
