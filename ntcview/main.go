package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/gontc/pkg/adc"
	"github.com/itohio/gontc/pkg/config"
	"github.com/itohio/gontc/pkg/monitor"
	"github.com/itohio/gontc/pkg/scope"
	"github.com/itohio/gontc/pkg/thermistor"
)

func main() {
	var (
		portFlag    = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag  = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag    = flag.Bool("mock", false, "Use simulated ADC instead of serial port")
		channelFlag = flag.Int("channel", -1, "ADC channel override")
	)
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *portFlag != "" {
		cfg.ADC.Port = *portFlag
	}
	if *channelFlag >= 0 {
		cfg.Thermistor.Channel = uint8(*channelFlag)
	}

	application := app.NewWithID("com.itohio.gontc")

	window := application.NewWindow("NTC Thermistor")
	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()

	state := &appState{
		cfg:        cfg,
		configPath: *configFlag,
		monitor:    monitor.New(cfg.Monitor),
		window:     window,
		useMock:    *mockFlag,
	}

	state.scopeWidget = scope.New(
		time.Duration(cfg.Monitor.WindowSeconds*float64(time.Second)),
		cfg.Thermistor.MinTemperature,
		cfg.Thermistor.MaxTemperature,
	)
	state.readout = newReadout()
	watchMonitor(state)

	content := container.NewBorder(
		createToolbar(state),
		state.readout.container(),
		nil,
		nil,
		state.scopeWidget,
	)

	window.SetContent(content)
	window.SetOnClosed(func() { disconnect(state) })
	window.ShowAndRun()
}

// lockedDriver serializes access to the driver between the poller and the UI.
type lockedDriver struct {
	mu sync.Mutex
	d  *thermistor.Driver[adc.ADC]
}

func (l *lockedDriver) ReadTemperature() (thermistor.Reading, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.d.ReadTemperature()
}

func (l *lockedDriver) Calibrate(reference float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.d.Calibrate(reference)
}

func (l *lockedDriver) ResetCalibration() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.d.ResetCalibration()
}

func (l *lockedDriver) SetConfiguration(cfg config.Thermistor) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.d.SetConfiguration(cfg)
}

func (l *lockedDriver) Configuration() config.Thermistor {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.d.Configuration()
}

// session tracks the running measurement chain for graceful shutdown.
type session struct {
	adc     adc.ADC
	driver  *lockedDriver
	cancel  context.CancelFunc
	monitor chan struct{} // Closed when the monitor goroutine exits
}

// appState holds the application state.
type appState struct {
	cfg          *config.Config
	configPath   string
	monitor      *monitor.Monitor
	scopeWidget  *scope.ScopeWidget
	readout      *readout
	window       fyne.Window
	connectBtn   *widget.Button
	calibrateBtn *widget.Button
	useMock      bool
	session      *session

	// Throttling for scope updates
	lastUpdateTime time.Time
	updateMu       sync.Mutex
}

// createToolbar creates the toolbar with Connect, Settings and Calibrate buttons.
func createToolbar(state *appState) fyne.CanvasObject {
	state.connectBtn = widget.NewButtonWithIcon("", theme.LoginIcon(), func() {
		handleConnect(state)
	})

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	state.calibrateBtn = widget.NewButtonWithIcon("Calibrate", theme.ConfirmIcon(), func() {
		showCalibrateDialog(state)
	})
	state.calibrateBtn.Disable()

	return container.NewBorder(
		nil,
		nil,
		container.NewHBox(state.connectBtn, settingsBtn),
		container.NewHBox(state.calibrateBtn),
		nil,
	)
}

func (s *appState) connected() bool {
	return s.session != nil
}

// disconnect stops polling, waits for the monitor to drain and releases the ADC.
func disconnect(state *appState) {
	sess := state.session
	if sess == nil {
		return
	}
	state.session = nil

	sess.cancel()
	<-sess.monitor

	sess.driver.mu.Lock()
	sess.driver.d.Deinitialize()
	sess.driver.mu.Unlock()

	closeADC(sess.adc)
	state.calibrateBtn.Disable()
	state.connectBtn.SetIcon(theme.LoginIcon())
}

// closeADC releases ADCs that hold a port.
func closeADC(a adc.ADC) {
	if c, ok := a.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Printf("Failed to close ADC: %v", err)
		}
	}
}

// handleConnect handles the connect/disconnect button click.
func handleConnect(state *appState) {
	if state.connected() {
		disconnect(state)
		if state.useMock {
			fmt.Println("Disconnected from simulated ADC")
		} else {
			fmt.Println("Disconnected from serial port")
		}
		return
	}

	var a adc.ADC
	if state.useMock {
		a = adc.NewMock(&state.cfg.Mock)
		fmt.Println("Using simulated ADC")
	} else {
		a = adc.NewSerial(state.cfg.ADC)
	}

	driver, err := thermistor.New(state.cfg.Thermistor, a)
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to create driver: %w", err), state.window)
		return
	}
	if err := driver.Initialize(); err != nil {
		closeADC(a)
		if state.useMock {
			dialog.ShowError(fmt.Errorf("failed to initialize simulated ADC: %w", err), state.window)
		} else {
			dialog.ShowError(fmt.Errorf("failed to connect to %s: %w", state.cfg.ADC.Port, err), state.window)
		}
		return
	}
	if !state.useMock {
		fmt.Printf("Connected to serial port: %s\n", state.cfg.ADC.Port)
	}

	state.monitor.Reset()
	state.scopeWidget.SetLimits(state.cfg.Thermistor.MinTemperature, state.cfg.Thermistor.MaxTemperature)

	ctx, cancel := context.WithCancel(context.Background())
	locked := &lockedDriver{d: driver}
	readings := monitor.Poll(ctx, locked, state.cfg.Monitor.Interval)

	done := make(chan struct{})
	go func() {
		defer close(done)
		state.monitor.ProcessReadings(readings)
	}()

	state.session = &session{
		adc:     a,
		driver:  locked,
		cancel:  cancel,
		monitor: done,
	}
	state.calibrateBtn.Enable()
	state.connectBtn.SetIcon(theme.LogoutIcon())
}

// watchMonitor pushes monitor updates to the scope and readout, throttled to ~60 FPS.
func watchMonitor(state *appState) {
	const updateInterval = 16 * time.Millisecond

	state.monitor.OnUpdate(func(readings []thermistor.Reading, rates []float64) {
		state.updateMu.Lock()
		now := time.Now()
		if now.Sub(state.lastUpdateTime) < updateInterval {
			state.updateMu.Unlock()
			return
		}
		state.lastUpdateTime = now
		state.updateMu.Unlock()

		rate := state.monitor.Rate()
		fyne.Do(func() {
			state.scopeWidget.UpdateData(readings, rates, rate)
			if len(readings) > 0 {
				state.readout.update(readings[len(readings)-1], rate)
			}
		})
	})
}
