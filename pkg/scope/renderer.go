package scope

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/itohio/gontc/pkg/thermistor"
)

var (
	gridColor  = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	labelColor = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	tempColor  = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	rateColor  = color.RGBA{R: 100, G: 200, B: 255, A: 255}
	limitColor = color.RGBA{R: 200, G: 50, B: 50, A: 255}
)

// scopeRenderer renders the scope widget.
type scopeRenderer struct {
	scope *ScopeWidget

	bg      *canvas.Rectangle
	objects []fyne.CanvasObject

	lastSize fyne.Size
}

// plot maps data coordinates into the drawing area.
type plot struct {
	x, y, w, h float32
	xMin, xMax time.Time
}

func (p plot) px(t time.Time) float32 {
	span := p.xMax.Sub(p.xMin).Seconds()
	if span <= 0 {
		return p.x
	}
	return p.x + float32(t.Sub(p.xMin).Seconds()/span)*p.w
}

func (p plot) py(v, lo, hi float64) float32 {
	if hi <= lo {
		return p.y + p.h/2
	}
	return p.y + p.h - float32((v-lo)/(hi-lo))*p.h
}

// MinSize returns the minimum size of the widget.
func (r *scopeRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

// Layout arranges the widget components.
func (r *scopeRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	if r.lastSize != size {
		r.lastSize = size
		r.scope.BaseWidget.Refresh()
	}
}

// Refresh redraws everything from the current data.
func (r *scopeRenderer) Refresh() {
	s := r.scope
	s.mu.RLock()
	readings := s.displayReadings
	rates := s.displayRates
	rate := s.rate
	tMin, tMax := s.tMin, s.tMax
	rMin, rMax := s.rMin, s.rMax
	limitLo, limitHi := s.limitLo, s.limitHi
	p := plot{xMin: s.xMin, xMax: s.xMax}
	s.mu.RUnlock()

	size := s.Size()
	if size.Width == 0 || size.Height == 0 {
		return
	}

	r.objects = []fyne.CanvasObject{r.bg}

	const marginLeft, marginRight, marginTop, marginBottom = 60, 60, 20, 40
	p.x, p.y = marginLeft, marginTop
	p.w = size.Width - marginLeft - marginRight
	p.h = size.Height - marginTop - marginBottom

	r.drawGrid(p, tMin, tMax, rMin, rMax)
	r.drawLimit(p, limitLo, tMin, tMax)
	r.drawLimit(p, limitHi, tMin, tMax)

	if len(readings) > 1 {
		r.drawTemperature(p, readings, tMin, tMax)
	}
	if len(rates) > 0 && len(readings) > 1 {
		r.drawRates(p, readings, rates, rMin, rMax)
	}
	if len(readings) > 0 {
		last := readings[len(readings)-1]
		r.text(fmt.Sprintf("%s  %s", formatTemperature(last.Celsius), formatRate(rate)), color.White, 12,
			fyne.TextAlignLeading, fyne.NewPos(p.x+10, p.y+5))
	}
}

// drawGrid draws the grid with °C labels on the left and °C/s labels on the right.
func (r *scopeRenderer) drawGrid(p plot, tMin, tMax, rMin, rMax float64) {
	const hLines, vLines = 8, 10

	for i := range hLines + 1 {
		y := p.y + float32(i)*p.h/hLines
		r.line(gridColor, 1, fyne.NewPos(p.x, y), fyne.NewPos(p.x+p.w, y))

		frac := float64(i) / hLines
		r.text(formatTemperature(tMax-frac*(tMax-tMin)), labelColor, 10, fyne.TextAlignTrailing, fyne.NewPos(p.x-5, y-6))
		r.text(formatRate(rMax-frac*(rMax-rMin)), rateColor, 10, fyne.TextAlignLeading, fyne.NewPos(p.x+p.w+5, y-6))
	}

	span := p.xMax.Sub(p.xMin)
	for i := range vLines + 1 {
		x := p.x + float32(i)*p.w/vLines
		r.line(gridColor, 1, fyne.NewPos(x, p.y), fyne.NewPos(x, p.y+p.h))

		offset := time.Duration(float64(span) * float64(i) / vLines)
		r.text(formatTime(offset), labelColor, 10, fyne.TextAlignCenter, fyne.NewPos(x-20, p.y+p.h+5))
	}
}

// drawLimit draws a horizontal marker at temperature v if it is visible.
func (r *scopeRenderer) drawLimit(p plot, v, lo, hi float64) {
	if v < lo || v > hi {
		return
	}
	y := p.py(v, lo, hi)
	r.line(limitColor, 1, fyne.NewPos(p.x, y), fyne.NewPos(p.x+p.w, y))
}

// drawTemperature draws the temperature curve (orange).
func (r *scopeRenderer) drawTemperature(p plot, readings []thermistor.Reading, lo, hi float64) {
	prev := fyne.NewPos(p.px(readings[0].Timestamp), p.py(readings[0].Celsius, lo, hi))
	for _, rd := range readings[1:] {
		cur := fyne.NewPos(p.px(rd.Timestamp), p.py(rd.Celsius, lo, hi))
		r.line(tempColor, 1.5, prev, cur)
		prev = cur
	}
}

// drawRates draws the rate of change (light blue) at the midpoint of each reading pair.
func (r *scopeRenderer) drawRates(p plot, readings []thermistor.Reading, rates []float64, lo, hi float64) {
	points := make([]fyne.Position, 0, len(rates))
	for i, v := range rates {
		if i+1 >= len(readings) {
			break
		}
		a, b := readings[i].Timestamp, readings[i+1].Timestamp
		mid := a.Add(b.Sub(a) / 2)
		points = append(points, fyne.NewPos(p.px(mid), p.py(v, lo, hi)))
	}
	for i := range len(points) - 1 {
		r.line(rateColor, 2.5, points[i], points[i+1])
	}
}

func (r *scopeRenderer) line(c color.Color, width float32, a, b fyne.Position) {
	l := canvas.NewLine(c)
	l.Position1 = a
	l.Position2 = b
	l.StrokeWidth = width
	r.objects = append(r.objects, l)
}

func (r *scopeRenderer) text(s string, c color.Color, size float32, align fyne.TextAlign, pos fyne.Position) {
	t := canvas.NewText(s, c)
	t.TextSize = size
	t.Alignment = align
	t.Move(pos)
	r.objects = append(r.objects, t)
}

// Objects returns all canvas objects for rendering.
func (r *scopeRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *scopeRenderer) Destroy() {}

func formatTemperature(c float64) string {
	return fmt.Sprintf("%.2f°C", c)
}

func formatRate(r float64) string {
	return fmt.Sprintf("%+.3f°C/s", r)
}

func formatTime(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
