package scope

import (
	"image/color"
	"math"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/gontc/pkg/sample"
	"github.com/itohio/gontc/pkg/thermistor"
)

// ScopeWidget is a custom Fyne widget that plots temperature over time together
// with its rate of change.
type ScopeWidget struct {
	widget.BaseWidget

	window time.Duration

	// Data (protected by mu)
	mu       sync.RWMutex
	readings []thermistor.Reading
	rates    []float64
	rate     float64
	limitLo  float64
	limitHi  float64

	// Display buffers (reused for downsampling)
	displayReadings []thermistor.Reading
	displayRates    []float64

	// Auto-scaling
	tMin, tMax float64 // °C axis
	rMin, rMax float64 // °C/s axis
	xMin, xMax time.Time

	maxDisplayPoints int
}

// New creates a new ScopeWidget showing at least window of history.
// lo and hi are the valid temperature limits drawn as markers.
func New(window time.Duration, lo, hi float64) *ScopeWidget {
	s := &ScopeWidget{
		window:           window,
		limitLo:          lo,
		limitHi:          hi,
		displayReadings:  make([]thermistor.Reading, 0, 1000),
		displayRates:     make([]float64, 0, 1000),
		maxDisplayPoints: 1000,
	}
	s.ExtendBaseWidget(s)
	s.updateAutoScale()
	s.Refresh()
	return s
}

// UpdateData updates the widget with new readings.
// This should be called from the monitor callback using fyne.Do().
func (s *ScopeWidget) UpdateData(readings []thermistor.Reading, rates []float64, rate float64) {
	s.mu.Lock()
	s.displayReadings = sample.Downsample(s.displayReadings, readings, s.maxDisplayPoints)
	s.displayRates = sample.Downsample(s.displayRates, rates, s.maxDisplayPoints)
	s.readings = readings
	s.rates = rates
	s.rate = rate
	s.updateAutoScale()
	s.mu.Unlock()

	// Refresh outside the lock, the renderer takes a read lock.
	s.Refresh()
}

// SetLimits changes the temperature limit markers.
func (s *ScopeWidget) SetLimits(lo, hi float64) {
	s.mu.Lock()
	s.limitLo, s.limitHi = lo, hi
	s.mu.Unlock()
	s.Refresh()
}

// updateAutoScale recalculates both Y ranges and the time range.
func (s *ScopeWidget) updateAutoScale() {
	now := time.Now()
	if len(s.displayReadings) == 0 {
		s.tMin, s.tMax = 0, 50
		s.rMin, s.rMax = -1, 1
		s.xMin, s.xMax = now, now.Add(s.window)
		return
	}

	temps := make([]float64, len(s.displayReadings))
	for i, r := range s.displayReadings {
		temps[i] = r.Celsius
	}
	s.tMin, s.tMax = scaleRange(temps, 0.1, 1)
	s.rMin, s.rMax = scaleRange(s.displayRates, 0.1, 0.1)

	s.xMin = s.displayReadings[0].Timestamp
	s.xMax = s.displayReadings[len(s.displayReadings)-1].Timestamp
	if s.xMax.Sub(s.xMin) < s.window {
		s.xMax = s.xMin.Add(s.window)
	}
}

// scaleRange returns the range of values widened by margin (a fraction of the
// span) on both sides. Spans narrower than minSpan are centred and widened to it.
func scaleRange(values []float64, margin, minSpan float64) (float64, float64) {
	if len(values) == 0 {
		return -minSpan / 2, minSpan / 2
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	if hi-lo < minSpan {
		mid := (hi + lo) / 2
		lo, hi = mid-minSpan/2, mid+minSpan/2
	}
	m := (hi - lo) * margin
	return lo - m, hi + m
}

// CreateRenderer creates the widget renderer.
func (s *ScopeWidget) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.RGBA{R: 20, G: 20, B: 20, A: 255})
	return &scopeRenderer{
		scope:   s,
		bg:      bg,
		objects: []fyne.CanvasObject{bg},
	}
}
