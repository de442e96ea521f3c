package main

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/gontc/pkg/ntc"
	"github.com/itohio/gontc/pkg/thermistor"
)

// readout shows the latest reading as text below the scope.
type readout struct {
	celsius    *widget.Label
	fahrenheit *widget.Label
	kelvin     *widget.Label
	resistance *widget.Label
	voltage    *widget.Label
	rate       *widget.Label
	accuracy   *widget.Label
}

func newReadout() *readout {
	return &readout{
		celsius:    widget.NewLabel("-- °C"),
		fahrenheit: widget.NewLabel("-- °F"),
		kelvin:     widget.NewLabel("-- K"),
		resistance: widget.NewLabel("-- Ω"),
		voltage:    widget.NewLabel("-- V"),
		rate:       widget.NewLabel("-- °C/s"),
		accuracy:   widget.NewLabel("±-- °C"),
	}
}

func (r *readout) container() fyne.CanvasObject {
	return container.NewHBox(r.celsius, r.fahrenheit, r.kelvin, r.resistance, r.voltage, r.rate, r.accuracy)
}

// update must be called on the main thread.
func (r *readout) update(rd thermistor.Reading, rate float64) {
	r.celsius.SetText(fmt.Sprintf("%.2f °C", rd.Celsius))
	r.fahrenheit.SetText(fmt.Sprintf("%.2f °F", rd.Fahrenheit))
	r.kelvin.SetText(fmt.Sprintf("%.2f K", rd.Kelvin))
	r.resistance.SetText(formatResistance(rd.Resistance))
	r.voltage.SetText(fmt.Sprintf("%.4f V", rd.Voltage))
	r.rate.SetText(fmt.Sprintf("%+.3f °C/s", rate))
	r.accuracy.SetText(fmt.Sprintf("±%.1f °C", rd.Accuracy))
}

func formatResistance(ohms float64) string {
	switch {
	case ohms >= 1e6:
		return fmt.Sprintf("%.3f MΩ", ohms/1e6)
	case ohms >= 1e3:
		return fmt.Sprintf("%.3f kΩ", ohms/1e3)
	default:
		return fmt.Sprintf("%.1f Ω", ohms)
	}
}

// showCalibrateDialog asks for the true temperature and calibrates the driver against it.
func showCalibrateDialog(state *appState) {
	if !state.connected() {
		return
	}

	entry := widget.NewEntry()
	entry.SetPlaceHolder("Reference temperature (°C)")

	items := []*widget.FormItem{
		{Text: "Reference (°C)", Widget: entry},
	}

	dialog.ShowForm("Calibrate", "Calibrate", "Cancel", items, func(ok bool) {
		if !ok || !state.connected() {
			return
		}
		ref, err := strconv.ParseFloat(entry.Text, 64)
		if err != nil {
			dialog.ShowError(fmt.Errorf("invalid temperature %q: %w", entry.Text, err), state.window)
			return
		}

		driver := state.session.driver
		if err := driver.Calibrate(ref); err != nil {
			dialog.ShowError(fmt.Errorf("calibration failed (%s): %w", ntc.CodeOf(err), err), state.window)
			return
		}

		state.cfg.Thermistor.CalibrationOffset = driver.Configuration().CalibrationOffset
		state.save()
	}, state.window)
}
