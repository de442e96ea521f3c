package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/gontc/pkg/adc"
	"github.com/itohio/gontc/pkg/ntc"
)

var (
	typeOptions = []string{
		ntc.TypeNTCG163JFT103FT1S.String(),
		ntc.TypeNTCG164JF103FT1S.String(),
		ntc.TypeNTCG163JF103FT1S.String(),
		ntc.TypeCustom.String(),
	}
	methodOptions = []string{
		ntc.MethodAuto.String(),
		ntc.MethodLookupTable.String(),
		ntc.MethodMathematical.String(),
	}
)

// save writes the configuration back to the file it was loaded from.
func (s *appState) save() {
	if err := s.cfg.Save(s.configPath); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save config: %w", err), s.window)
	}
}

// showSettingsDialog displays a settings dialog with tabs for all configuration options.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createADCTab(state),
		createThermistorTab(state),
		createMonitorTab(state),
		createMockTab(state),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(600, 500))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(600, 500))
	d.Show()
}

// createADCTab creates the serial ADC configuration tab.
func createADCTab(state *appState) *container.TabItem {
	ports, err := adc.Ports()
	portOptions := []string{}
	portMap := make(map[string]string) // Map display name to actual port name

	if err == nil {
		for _, port := range ports {
			displayName := port.Name
			if port.Description != "" && port.Description != port.Name {
				displayName = fmt.Sprintf("%s (%s)", port.Name, port.Description)
			}
			portOptions = append(portOptions, displayName)
			portMap[displayName] = port.Name
		}
	}

	currentPort := state.cfg.ADC.Port
	currentDisplay := currentPort
	found := false
	for _, opt := range portOptions {
		if portMap[opt] == currentPort {
			currentDisplay = opt
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
		portMap[currentPort] = currentPort
	}

	portSelect := widget.NewSelect(portOptions, nil)
	if currentDisplay != "" {
		portSelect.SetSelected(currentDisplay)
	}

	baudEntry := widget.NewEntry()
	baudEntry.SetText(strconv.Itoa(state.cfg.ADC.BaudRate))

	vrefEntry := widget.NewEntry()
	vrefEntry.SetText(fmt.Sprintf("%.2f", state.cfg.ADC.ReferenceVoltage))

	bitsEntry := widget.NewEntry()
	bitsEntry.SetText(strconv.Itoa(int(state.cfg.ADC.ResolutionBits)))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
			{Text: "Baud Rate", Widget: baudEntry},
			{Text: "ADC Reference (V)", Widget: vrefEntry},
			{Text: "Resolution (bits)", Widget: bitsEntry},
		},
		OnSubmit: func() {
			changed := false
			if portSelect.Selected != "" {
				selected := portMap[portSelect.Selected]
				if selected == "" {
					selected = portSelect.Selected
				}
				changed = selected != state.cfg.ADC.Port
				state.cfg.ADC.Port = selected
			}
			if v, err := strconv.Atoi(baudEntry.Text); err == nil && v > 0 {
				changed = changed || v != state.cfg.ADC.BaudRate
				state.cfg.ADC.BaudRate = v
			}
			if v, err := strconv.ParseFloat(vrefEntry.Text, 64); err == nil && v > 0 {
				state.cfg.ADC.ReferenceVoltage = v
			}
			if v, err := strconv.ParseUint(bitsEntry.Text, 10, 8); err == nil && v > 0 {
				state.cfg.ADC.ResolutionBits = uint8(v)
			}
			state.save()

			// Reopen the port with the new settings.
			if changed && state.connected() && !state.useMock {
				disconnect(state)
				handleConnect(state)
			}
		},
	}

	return container.NewTabItem("ADC", form)
}

// createThermistorTab creates the thermistor and conversion configuration tab.
func createThermistorTab(state *appState) *container.TabItem {
	th := state.cfg.Thermistor

	typeSelect := widget.NewSelect(typeOptions, nil)
	typeSelect.SetSelected(th.Type.String())

	methodSelect := widget.NewSelect(methodOptions, nil)
	methodSelect.SetSelected(th.Method.String())

	r25Entry := floatEntry(th.Resistance25, "%.0f")
	betaEntry := floatEntry(th.Beta, "%.0f")
	seriesEntry := floatEntry(th.SeriesResistance, "%.0f")
	vrefEntry := floatEntry(th.ReferenceVoltage, "%.3f")
	offsetEntry := floatEntry(th.CalibrationOffset, "%.3f")
	minEntry := floatEntry(th.MinTemperature, "%.1f")
	maxEntry := floatEntry(th.MaxTemperature, "%.1f")
	alphaEntry := floatEntry(th.FilterAlpha, "%.3f")

	channelEntry := widget.NewEntry()
	channelEntry.SetText(strconv.Itoa(int(th.Channel)))

	samplesEntry := widget.NewEntry()
	samplesEntry.SetText(strconv.FormatUint(uint64(th.SampleCount), 10))

	delayEntry := widget.NewEntry()
	delayEntry.SetText(th.SampleDelay.String())

	filterCheck := widget.NewCheck("", nil)
	filterCheck.SetChecked(th.Filtering)

	tableEntry := widget.NewEntry()
	tableEntry.SetText(th.LookupTable)
	tableEntry.SetPlaceHolder("built-in")

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Type", Widget: typeSelect},
			{Text: "Method", Widget: methodSelect},
			{Text: "R25 (Ω)", Widget: r25Entry},
			{Text: "Beta (K)", Widget: betaEntry},
			{Text: "Series Resistor (Ω)", Widget: seriesEntry},
			{Text: "Divider Supply (V)", Widget: vrefEntry},
			{Text: "Channel", Widget: channelEntry},
			{Text: "Samples", Widget: samplesEntry},
			{Text: "Sample Delay", Widget: delayEntry},
			{Text: "Calibration Offset (°C)", Widget: offsetEntry},
			{Text: "Min Temperature (°C)", Widget: minEntry},
			{Text: "Max Temperature (°C)", Widget: maxEntry},
			{Text: "Filtering", Widget: filterCheck},
			{Text: "Filter Alpha", Widget: alphaEntry},
			{Text: "Lookup Table File", Widget: tableEntry},
		},
		OnSubmit: func() {
			th := state.cfg.Thermistor

			if t, err := ntc.ParseType(typeSelect.Selected); err == nil {
				th.Type = t
			}
			if m, err := ntc.ParseMethod(methodSelect.Selected); err == nil {
				th.Method = m
			}
			parseFloat(r25Entry, &th.Resistance25)
			parseFloat(betaEntry, &th.Beta)
			parseFloat(seriesEntry, &th.SeriesResistance)
			parseFloat(vrefEntry, &th.ReferenceVoltage)
			parseFloat(offsetEntry, &th.CalibrationOffset)
			parseFloat(minEntry, &th.MinTemperature)
			parseFloat(maxEntry, &th.MaxTemperature)
			parseFloat(alphaEntry, &th.FilterAlpha)
			if v, err := strconv.ParseUint(channelEntry.Text, 10, 8); err == nil {
				th.Channel = uint8(v)
			}
			if v, err := strconv.ParseUint(samplesEntry.Text, 10, 32); err == nil {
				th.SampleCount = uint32(v)
			}
			if d, err := time.ParseDuration(delayEntry.Text); err == nil {
				th.SampleDelay = d
			}
			th.Filtering = filterCheck.Checked
			th.LookupTable = tableEntry.Text

			if err := th.Validate(); err != nil {
				dialog.ShowError(err, state.window)
				return
			}
			if state.connected() {
				if err := state.session.driver.SetConfiguration(th); err != nil {
					dialog.ShowError(fmt.Errorf("failed to apply thermistor settings: %w", err), state.window)
					return
				}
			}

			state.cfg.Thermistor = th
			state.scopeWidget.SetLimits(th.MinTemperature, th.MaxTemperature)
			state.save()
		},
	}

	return container.NewTabItem("Thermistor", container.NewVScroll(form))
}

// createMonitorTab creates the polling and history configuration tab.
func createMonitorTab(state *appState) *container.TabItem {
	intervalEntry := widget.NewEntry()
	intervalEntry.SetText(state.cfg.Monitor.Interval.String())

	windowEntry := floatEntry(state.cfg.Monitor.WindowSeconds, "%.1f")

	rateEntry := widget.NewEntry()
	rateEntry.SetText(strconv.Itoa(state.cfg.Monitor.RateSamples))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Poll Interval", Widget: intervalEntry},
			{Text: "Window (seconds)", Widget: windowEntry},
			{Text: "Rate Samples", Widget: rateEntry},
		},
		OnSubmit: func() {
			if d, err := time.ParseDuration(intervalEntry.Text); err == nil && d > 0 {
				state.cfg.Monitor.Interval = d
			}
			parseFloat(windowEntry, &state.cfg.Monitor.WindowSeconds)
			if n, err := strconv.Atoi(rateEntry.Text); err == nil && n > 0 {
				state.cfg.Monitor.RateSamples = n
			}
			state.save()
			dialog.ShowInformation("Monitor", "Changes apply after reconnecting.", state.window)
		},
	}

	return container.NewTabItem("Monitor", form)
}

// createMockTab creates the simulated ADC configuration tab.
func createMockTab(state *appState) *container.TabItem {
	tempEntry := floatEntry(state.cfg.Mock.Temperature, "%.2f")
	swingEntry := floatEntry(state.cfg.Mock.Swing, "%.2f")
	noiseEntry := floatEntry(state.cfg.Mock.NoiseLevel, "%.6f")

	periodEntry := widget.NewEntry()
	periodEntry.SetText(state.cfg.Mock.Period.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Temperature (°C)", Widget: tempEntry},
			{Text: "Swing (°C)", Widget: swingEntry},
			{Text: "Swing Period", Widget: periodEntry},
			{Text: "Noise Level (V)", Widget: noiseEntry},
		},
		OnSubmit: func() {
			parseFloat(tempEntry, &state.cfg.Mock.Temperature)
			parseFloat(swingEntry, &state.cfg.Mock.Swing)
			parseFloat(noiseEntry, &state.cfg.Mock.NoiseLevel)
			if d, err := time.ParseDuration(periodEntry.Text); err == nil && d > 0 {
				state.cfg.Mock.Period = d
			}
			state.save()
		},
	}

	return container.NewTabItem("Mock", form)
}

func floatEntry(v float64, format string) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(fmt.Sprintf(format, v))
	return e
}

// parseFloat stores the entry value into dst if it parses.
func parseFloat(e *widget.Entry, dst *float64) {
	if v, err := strconv.ParseFloat(e.Text, 64); err == nil {
		*dst = v
	}
}
